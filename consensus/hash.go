package consensus

import "crypto/sha256"

// Hash256 is the double SHA-256 used for entity ids, block hashes and
// merkle nodes.
func Hash256(b []byte) [32]byte {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}
