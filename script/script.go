// Package script implements the minimal locking/unlocking script engine
// used for co-signing: pattern classification, signing, signature
// combination and stack verification for pay-to-pubkey,
// pay-to-pubkey-hash and m-of-n multisig predicates.
package script

import "meridian.dev/node/consensus"

const (
	OP_0         = 0x00
	OP_PUSHDATA1 = 0x4c
	OP_1         = 0x51
	OP_16        = 0x60
	OP_DUP       = 0x76
	OP_EQUAL     = 0x87
	OP_EQUALVERIFY = 0x88
	OP_HASH160   = 0xa9
	OP_CHECKSIG  = 0xac
	OP_CHECKMULTISIG = 0xae
)

// element is one parsed script token: a raw opcode, or a push with its
// data.
type element struct {
	opcode byte
	data   []byte
}

func (e element) isPush() bool {
	return e.opcode == OP_0 || (e.opcode >= 1 && e.opcode <= OP_PUSHDATA1)
}

// smallInt maps OP_0..OP_16 to their numeric value; ok is false for
// anything else.
func smallInt(op byte) (int, bool) {
	if op == OP_0 {
		return 0, true
	}
	if op >= OP_1 && op <= OP_16 {
		return int(op-OP_1) + 1, true
	}
	return 0, false
}

func tokenize(script []byte) ([]element, error) {
	var elems []element
	for i := 0; i < len(script); {
		op := script[i]
		i++
		switch {
		case op >= 1 && op < OP_PUSHDATA1:
			n := int(op)
			if i+n > len(script) {
				return nil, consensus.Errf(consensus.ENT_ERR_PARSE, "script: truncated push")
			}
			elems = append(elems, element{opcode: op, data: script[i : i+n]})
			i += n
		case op == OP_PUSHDATA1:
			if i >= len(script) {
				return nil, consensus.Errf(consensus.ENT_ERR_PARSE, "script: truncated pushdata1 length")
			}
			n := int(script[i])
			i++
			if i+n > len(script) {
				return nil, consensus.Errf(consensus.ENT_ERR_PARSE, "script: truncated push")
			}
			elems = append(elems, element{opcode: op, data: script[i : i+n]})
			i += n
		default:
			elems = append(elems, element{opcode: op})
		}
	}
	return elems, nil
}

// pushData appends the minimal push encoding of data.
func pushData(dst []byte, data []byte) []byte {
	switch {
	case len(data) == 0:
		return append(dst, OP_0)
	case len(data) < int(OP_PUSHDATA1):
		dst = append(dst, byte(len(data)))
		return append(dst, data...)
	default:
		dst = append(dst, OP_PUSHDATA1, byte(len(data)))
		return append(dst, data...)
	}
}

// pushElements extracts the data of every push element in script,
// skipping empty pushes. Used when merging multisig unlocking scripts.
func pushElements(script []byte) [][]byte {
	elems, err := tokenize(script)
	if err != nil {
		return nil
	}
	var out [][]byte
	for _, e := range elems {
		if e.isPush() && len(e.data) > 0 {
			out = append(out, e.data)
		}
	}
	return out
}
