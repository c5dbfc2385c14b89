package crypto

import (
	"crypto/ed25519"
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// Std is the default Provider built on the Go standard library plus
// x/crypto's RIPEMD-160.
type Std struct{}

func NewStd() Std { return Std{} }

func (Std) Hash256(b []byte) [32]byte {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}

func (Std) Hash160(b []byte) [20]byte {
	first := sha256.Sum256(b)
	h := ripemd160.New()
	h.Write(first[:])
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (Std) SignDigest(priv ed25519.PrivateKey, digest [32]byte) []byte {
	return ed25519.Sign(priv, digest[:])
}

func (Std) VerifyDigest(pub []byte, sig []byte, digest [32]byte) bool {
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), digest[:], sig)
}
