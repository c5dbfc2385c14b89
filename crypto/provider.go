package crypto

import "crypto/ed25519"

// Provider is the narrow hash and signature interface consumed by the
// script engine. Implementations must be safe for concurrent use.
type Provider interface {
	Hash256(b []byte) [32]byte
	Hash160(b []byte) [20]byte
	SignDigest(priv ed25519.PrivateKey, digest [32]byte) []byte
	VerifyDigest(pub []byte, sig []byte, digest [32]byte) bool
}
