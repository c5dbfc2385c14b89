package script

import "crypto/ed25519"

// Class is the recognized locking-script pattern.
type Class int

const (
	NonStandard Class = iota
	PayToPubkey
	PayToPubkeyHash
	Multisig
)

func (c Class) String() string {
	switch c {
	case PayToPubkey:
		return "pubkey"
	case PayToPubkeyHash:
		return "pubkeyhash"
	case Multisig:
		return "multisig"
	default:
		return "nonstandard"
	}
}

// Classify matches a locking script against the recognized patterns and
// returns the extracted data elements: the pubkey for pay-to-pubkey,
// the 20-byte key hash for pay-to-pubkey-hash, and {m}, pubkeys..., {n}
// for multisig.
func Classify(locking []byte) (Class, [][]byte) {
	elems, err := tokenize(locking)
	if err != nil {
		return NonStandard, nil
	}

	// <pubkey> OP_CHECKSIG
	if len(elems) == 2 &&
		elems[0].isPush() && len(elems[0].data) == ed25519.PublicKeySize &&
		elems[1].opcode == OP_CHECKSIG {
		return PayToPubkey, [][]byte{elems[0].data}
	}

	// OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY OP_CHECKSIG
	if len(elems) == 5 &&
		elems[0].opcode == OP_DUP &&
		elems[1].opcode == OP_HASH160 &&
		elems[2].isPush() && len(elems[2].data) == 20 &&
		elems[3].opcode == OP_EQUALVERIFY &&
		elems[4].opcode == OP_CHECKSIG {
		return PayToPubkeyHash, [][]byte{elems[2].data}
	}

	// OP_m <pubkey>... OP_n OP_CHECKMULTISIG
	if len(elems) >= 4 && elems[len(elems)-1].opcode == OP_CHECKMULTISIG {
		m, okM := smallInt(elems[0].opcode)
		n, okN := smallInt(elems[len(elems)-2].opcode)
		if !okM || !okN || m < 1 || n < m || n != len(elems)-3 {
			return NonStandard, nil
		}
		sol := make([][]byte, 0, n+2)
		sol = append(sol, []byte{byte(m)})
		for _, e := range elems[1 : len(elems)-2] {
			if !e.isPush() || len(e.data) != ed25519.PublicKeySize {
				return NonStandard, nil
			}
			sol = append(sol, e.data)
		}
		sol = append(sol, []byte{byte(n)})
		return Multisig, sol
	}

	return NonStandard, nil
}

// PayToPubkeyScript builds <pubkey> OP_CHECKSIG.
func PayToPubkeyScript(pub []byte) []byte {
	return append(pushData(nil, pub), OP_CHECKSIG)
}

// PayToPubkeyHashScript builds the standard pay-to-pubkey-hash locking
// script.
func PayToPubkeyHashScript(pkh [20]byte) []byte {
	b := []byte{OP_DUP, OP_HASH160}
	b = pushData(b, pkh[:])
	return append(b, OP_EQUALVERIFY, OP_CHECKSIG)
}

// MultisigScript builds an m-of-n locking script over the given keys.
func MultisigScript(m int, pubs ...[]byte) []byte {
	b := []byte{byte(OP_1 + m - 1)}
	for _, pub := range pubs {
		b = pushData(b, pub)
	}
	b = append(b, byte(OP_1+len(pubs)-1))
	return append(b, OP_CHECKMULTISIG)
}
