package script

import (
	"crypto/ed25519"

	"meridian.dev/node/consensus"
	"meridian.dev/node/crypto"
)

// KeyStore resolves the signing keys available for one operation. It
// may be empty; every lookup miss simply yields a smaller partial
// script.
type KeyStore interface {
	KeyByHash(pkh [20]byte) (ed25519.PrivateKey, bool)
	KeyByPubkey(pub []byte) (ed25519.PrivateKey, bool)
}

func makeSignature(prov crypto.Provider, key ed25519.PrivateKey, ent consensus.Entity, idx int, scriptCode []byte, ht consensus.SighashType) []byte {
	digest, err := ent.Sighash(scriptCode, idx, ht)
	if err != nil {
		return nil
	}
	sig := prov.SignDigest(key, digest)
	return append(sig, byte(ht))
}

// Sign produces the best unlocking script the available keys allow for
// input idx of ent against the given locking script. Missing keys are
// not an error: the result is empty or partial.
func Sign(prov crypto.Provider, ks KeyStore, locking []byte, ent consensus.Entity, idx int, ht consensus.SighashType) []byte {
	class, sol := Classify(locking)
	switch class {
	case PayToPubkey:
		key, ok := ks.KeyByPubkey(sol[0])
		if !ok {
			return nil
		}
		sig := makeSignature(prov, key, ent, idx, locking, ht)
		if sig == nil {
			return nil
		}
		return pushData(nil, sig)

	case PayToPubkeyHash:
		var pkh [20]byte
		copy(pkh[:], sol[0])
		key, ok := ks.KeyByHash(pkh)
		if !ok {
			return nil
		}
		pub := key.Public().(ed25519.PublicKey)
		sig := makeSignature(prov, key, ent, idx, locking, ht)
		if sig == nil {
			return nil
		}
		b := pushData(nil, sig)
		return pushData(b, pub)

	case Multisig:
		m := int(sol[0][0])
		pubs := sol[1 : len(sol)-1]
		b := []byte{OP_0}
		count := 0
		for _, pub := range pubs {
			if count == m {
				break
			}
			key, ok := ks.KeyByPubkey(pub)
			if !ok {
				continue
			}
			sig := makeSignature(prov, key, ent, idx, locking, ht)
			if sig == nil {
				continue
			}
			b = pushData(b, sig)
			count++
		}
		return b

	default:
		return nil
	}
}

// Combine folds two candidate unlocking scripts for the same input into
// the best available one. It is a pure function, safe to call with
// a == b, and always re-validates multisig signatures against the
// locking script. Tie-break when both operands fully satisfy: the first
// operand wins (deterministic, no minimality claim).
func Combine(prov crypto.Provider, locking []byte, ent consensus.Entity, idx int, a, b []byte) []byte {
	class, sol := Classify(locking)
	switch class {
	case PayToPubkey, PayToPubkeyHash:
		if len(a) == 0 {
			return b
		}
		return a

	case Multisig:
		return combineMultisig(prov, locking, sol, ent, idx, a, b)

	default:
		if len(a) == 0 {
			return b
		}
		if len(b) == 0 {
			return a
		}
		if len(b) > len(a) {
			return b
		}
		return a
	}
}

func combineMultisig(prov crypto.Provider, locking []byte, sol [][]byte, ent consensus.Entity, idx int, a, b []byte) []byte {
	m := int(sol[0][0])
	pubs := sol[1 : len(sol)-1]
	checker := NewEntityChecker(prov, ent, idx)

	// Attribute every candidate signature to the key it verifies under;
	// first operand's signatures take precedence per key.
	byKey := make(map[int][]byte, m)
	for _, cand := range [][]byte{a, b} {
		for _, sig := range pushElements(cand) {
			for ik, pub := range pubs {
				if _, have := byKey[ik]; have {
					continue
				}
				if checker.CheckSig(sig, pub, locking) {
					byKey[ik] = sig
					break
				}
			}
		}
	}

	out := []byte{OP_0}
	count := 0
	for ik := range pubs {
		if count == m {
			break
		}
		if sig, ok := byKey[ik]; ok {
			out = pushData(out, sig)
			count++
		}
	}
	return out
}
