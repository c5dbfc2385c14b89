package crypto

import (
	"crypto/ed25519"
	"testing"
)

func TestHashesAreDeterministic(t *testing.T) {
	p := NewStd()
	msg := []byte("meridian")
	if p.Hash256(msg) != p.Hash256(msg) {
		t.Fatalf("Hash256 not deterministic")
	}
	if p.Hash160(msg) != p.Hash160(msg) {
		t.Fatalf("Hash160 not deterministic")
	}
	if p.Hash256([]byte("a")) == p.Hash256([]byte("b")) {
		t.Fatalf("distinct inputs collided")
	}
}

func TestSignVerifyDigest(t *testing.T) {
	p := NewStd()
	seed := make([]byte, ed25519.SeedSize)
	seed[0] = 0x5a
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)

	digest := p.Hash256([]byte("payload"))
	sig := p.SignDigest(priv, digest)
	if len(sig) != ed25519.SignatureSize {
		t.Fatalf("signature length %d", len(sig))
	}
	if !p.VerifyDigest(pub, sig, digest) {
		t.Fatalf("valid signature rejected")
	}

	other := p.Hash256([]byte("other payload"))
	if p.VerifyDigest(pub, sig, other) {
		t.Fatalf("signature verified over the wrong digest")
	}

	seed[0] = 0x5b
	wrongPub := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	if p.VerifyDigest(wrongPub, sig, digest) {
		t.Fatalf("signature verified under the wrong key")
	}
}

func TestVerifyDigestRejectsBadLengths(t *testing.T) {
	p := NewStd()
	digest := p.Hash256([]byte("x"))
	if p.VerifyDigest([]byte{1, 2, 3}, make([]byte, ed25519.SignatureSize), digest) {
		t.Fatalf("short public key accepted")
	}
	seed := make([]byte, ed25519.SeedSize)
	pub := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	if p.VerifyDigest(pub, []byte{1, 2, 3}, digest) {
		t.Fatalf("short signature accepted")
	}
}
