package script

import (
	"meridian.dev/node/consensus"
	"meridian.dev/node/crypto"
)

// Error is a script validation failure with a human-readable reason,
// surfaced verbatim in per-input error records.
type Error struct {
	Reason string
}

func (e *Error) Error() string { return e.Reason }

func scriptErr(reason string) error { return &Error{Reason: reason} }

const (
	reasonEvalFalse   = "Script evaluated without error but finished with a false/empty top stack element"
	reasonStackSize   = "Operation not valid with the current stack size"
	reasonEqualVerify = "Script failed an OP_EQUALVERIFY operation"
	reasonBadOpcode   = "Opcode missing or not understood"
	reasonPushOnly    = "Only data pushes allowed in unlocking script"
	reasonMultisigArg = "Invalid OP_CHECKMULTISIG argument count"
)

// Checker validates one signature against one public key in the
// context of the entity being verified.
type Checker interface {
	CheckSig(sig, pub, scriptCode []byte) bool
}

// EntityChecker binds signature checking to a specific entity input,
// recomputing the sighash digest per signature's appended hash-type
// byte.
type EntityChecker struct {
	prov crypto.Provider
	ent  consensus.Entity
	idx  int
}

func NewEntityChecker(prov crypto.Provider, ent consensus.Entity, idx int) *EntityChecker {
	return &EntityChecker{prov: prov, ent: ent, idx: idx}
}

const sigWireBytes = 64 + 1 // ed25519 signature plus hash-type byte

func (c *EntityChecker) CheckSig(sig, pub, scriptCode []byte) bool {
	if len(sig) != sigWireBytes {
		return false
	}
	ht := consensus.SighashType(sig[64])
	digest, err := c.ent.Sighash(scriptCode, c.idx, ht)
	if err != nil {
		return false
	}
	return c.prov.VerifyDigest(pub, sig[:64], digest)
}

func castToBool(b []byte) bool {
	for i, v := range b {
		if v != 0 {
			// Negative zero counts as false.
			if i == len(b)-1 && v == 0x80 {
				return false
			}
			return true
		}
	}
	return false
}

type stack [][]byte

func (s *stack) push(b []byte) { *s = append(*s, b) }

func (s *stack) pop() ([]byte, bool) {
	if len(*s) == 0 {
		return nil, false
	}
	top := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return top, true
}

func (s *stack) peek() ([]byte, bool) {
	if len(*s) == 0 {
		return nil, false
	}
	return (*s)[len(*s)-1], true
}

func popInt(s *stack) (int, bool) {
	b, ok := s.pop()
	if !ok {
		return 0, false
	}
	switch len(b) {
	case 0:
		return 0, true
	case 1:
		return int(b[0]), true
	default:
		return 0, false
	}
}

func eval(elems []element, s *stack, scriptCode []byte, checker Checker) error {
	prov := crypto.NewStd()
	for _, e := range elems {
		if e.isPush() {
			s.push(e.data)
			continue
		}
		if n, ok := smallInt(e.opcode); ok {
			s.push([]byte{byte(n)})
			continue
		}
		switch e.opcode {
		case OP_DUP:
			top, ok := s.peek()
			if !ok {
				return scriptErr(reasonStackSize)
			}
			s.push(top)
		case OP_HASH160:
			top, ok := s.pop()
			if !ok {
				return scriptErr(reasonStackSize)
			}
			h := prov.Hash160(top)
			s.push(h[:])
		case OP_EQUAL, OP_EQUALVERIFY:
			b, okB := s.pop()
			a, okA := s.pop()
			if !okA || !okB {
				return scriptErr(reasonStackSize)
			}
			equal := string(a) == string(b)
			if e.opcode == OP_EQUALVERIFY {
				if !equal {
					return scriptErr(reasonEqualVerify)
				}
				continue
			}
			s.push(boolBytes(equal))
		case OP_CHECKSIG:
			pub, okP := s.pop()
			sig, okS := s.pop()
			if !okP || !okS {
				return scriptErr(reasonStackSize)
			}
			s.push(boolBytes(checker.CheckSig(sig, pub, scriptCode)))
		case OP_CHECKMULTISIG:
			if err := evalCheckMultisig(s, scriptCode, checker); err != nil {
				return err
			}
		default:
			return scriptErr(reasonBadOpcode)
		}
	}
	return nil
}

func evalCheckMultisig(s *stack, scriptCode []byte, checker Checker) error {
	n, ok := popInt(s)
	if !ok || n < 0 || n > 16 {
		return scriptErr(reasonMultisigArg)
	}
	if len(*s) < n {
		return scriptErr(reasonStackSize)
	}
	pubs := make([][]byte, n)
	for i := n - 1; i >= 0; i-- {
		pubs[i], _ = s.pop()
	}
	m, ok := popInt(s)
	if !ok || m < 0 || m > n {
		return scriptErr(reasonMultisigArg)
	}
	if len(*s) < m {
		return scriptErr(reasonStackSize)
	}
	sigs := make([][]byte, m)
	for i := m - 1; i >= 0; i-- {
		sigs[i], _ = s.pop()
	}
	// The historical extra pop.
	if _, ok := s.pop(); !ok {
		return scriptErr(reasonStackSize)
	}

	// Ordered matching: signatures must appear in key order.
	success := true
	ik := 0
	for is := 0; is < len(sigs); is++ {
		matched := false
		for ; ik < len(pubs); ik++ {
			if checker.CheckSig(sigs[is], pubs[ik], scriptCode) {
				matched = true
				ik++
				break
			}
		}
		if !matched {
			success = false
			break
		}
	}
	s.push(boolBytes(success))
	return nil
}

func boolBytes(v bool) []byte {
	if v {
		return []byte{1}
	}
	return nil
}

// Verify runs the unlocking script (data pushes only) and then the
// locking script over the resulting stack, under the standard
// non-contextual validation rules. A nil return means the input's
// script satisfied its predicate.
func Verify(scriptSig, scriptPubKey []byte, checker Checker) error {
	sigElems, err := tokenize(scriptSig)
	if err != nil {
		return scriptErr(reasonBadOpcode)
	}
	var s stack
	for _, e := range sigElems {
		if !e.isPush() {
			return scriptErr(reasonPushOnly)
		}
		s.push(e.data)
	}
	pkElems, err := tokenize(scriptPubKey)
	if err != nil {
		return scriptErr(reasonBadOpcode)
	}
	if err := eval(pkElems, &s, scriptPubKey, checker); err != nil {
		return err
	}
	top, ok := s.peek()
	if !ok || !castToBool(top) {
		return scriptErr(reasonEvalFalse)
	}
	return nil
}
