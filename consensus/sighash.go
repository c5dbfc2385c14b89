package consensus

import "math"

// SighashType selects which parts of an entity a signature commits to.
type SighashType uint32

const (
	SighashAll    SighashType = 1
	SighashNone   SighashType = 2
	SighashSingle SighashType = 3

	SighashAnyoneCanPay SighashType = 0x80
)

// Base strips the ANYONECANPAY flag.
func (t SighashType) Base() SighashType { return t &^ SighashAnyoneCanPay }

func (t SighashType) AnyoneCanPay() bool { return t&SighashAnyoneCanPay != 0 }

var sighashNames = map[string]SighashType{
	"ALL":                 SighashAll,
	"ALL|ANYONECANPAY":    SighashAll | SighashAnyoneCanPay,
	"NONE":                SighashNone,
	"NONE|ANYONECANPAY":   SighashNone | SighashAnyoneCanPay,
	"SINGLE":              SighashSingle,
	"SINGLE|ANYONECANPAY": SighashSingle | SighashAnyoneCanPay,
}

// ParseSighashType maps one of the six selector symbols to its value.
// Anything else is a request-validation error.
func ParseSighashType(s string) (SighashType, error) {
	if t, ok := sighashNames[s]; ok {
		return t, nil
	}
	return 0, Errf(REQ_ERR_INVALID, "invalid sighash param %q", s)
}

func (t SighashType) String() string {
	for name, v := range sighashNames {
		if v == t {
			return name
		}
	}
	return "UNKNOWN"
}

// oneDigest is returned for SIGHASH_SINGLE with no output at the input
// index, a quirk kept for compatibility with the legacy scheme.
var oneDigest = [32]byte{0x01}

// sighashInputs builds the reduced input list for the digest: input idx
// carries scriptCode, every other input an empty script, and sequences
// outside idx are zeroed under NONE and SINGLE. ANYONECANPAY keeps only
// input idx.
func sighashInputs(vin []Input, idx int, scriptCode []byte, t SighashType) []Input {
	if t.AnyoneCanPay() {
		in := vin[idx]
		in.ScriptSig = scriptCode
		return []Input{in}
	}
	out := make([]Input, len(vin))
	for i := range vin {
		out[i] = vin[i]
		if i == idx {
			out[i].ScriptSig = scriptCode
			continue
		}
		out[i].ScriptSig = nil
		if t.Base() == SighashNone || t.Base() == SighashSingle {
			out[i].Sequence = 0
		}
	}
	return out
}

// sighashOutputs builds the reduced output list: everything for ALL,
// nothing for NONE, and for SINGLE the outputs up to idx with earlier
// ones blanked. ok is false when SINGLE references a missing output.
func sighashOutputs(vout []Output, idx int, t SighashType) ([]Output, bool) {
	switch t.Base() {
	case SighashNone:
		return nil, true
	case SighashSingle:
		if idx >= len(vout) {
			return nil, false
		}
		out := make([]Output, idx+1)
		for i := 0; i < idx; i++ {
			out[i] = Output{Value: math.MaxUint64}
		}
		out[idx] = vout[idx]
		return out, true
	default:
		return vout, true
	}
}

// Sighash computes the digest a signature over input idx commits to,
// with scriptCode standing in for the unlocking script.
func (tx *Tx) Sighash(scriptCode []byte, idx int, t SighashType) ([32]byte, error) {
	if idx < 0 || idx >= len(tx.Vin) {
		return [32]byte{}, Errf(REQ_ERR_INVALID, "sighash: input index out of range")
	}
	vout, ok := sighashOutputs(tx.Vout, idx, t)
	if !ok {
		return oneDigest, nil
	}
	var b []byte
	b = appendU32le(b, tx.Version)
	b = appendInputs(b, sighashInputs(tx.Vin, idx, scriptCode, t))
	b = appendOutputs(b, vout)
	b = appendU32le(b, tx.LockTime)
	b = appendVarBytes(b, tx.ShieldedData)
	b = appendU32le(b, uint32(t))
	return Hash256(b), nil
}

// Sighash for certificates follows the same reduction rules but the
// digest additionally commits to the sidechain id, epoch, quality,
// end-of-epoch block id and proof blob.
func (c *Certificate) Sighash(scriptCode []byte, idx int, t SighashType) ([32]byte, error) {
	if idx < 0 || idx >= len(c.Vin) {
		return [32]byte{}, Errf(REQ_ERR_INVALID, "sighash: input index out of range")
	}
	vout, ok := sighashOutputs(c.Vout, idx, t)
	if !ok {
		return oneDigest, nil
	}
	var b []byte
	b = appendU32le(b, c.Version)
	b = appendInputs(b, sighashInputs(c.Vin, idx, scriptCode, t))
	b = appendOutputs(b, vout)
	b = appendU32le(b, c.FirstBwtPos)
	b = append(b, c.SidechainID[:]...)
	b = appendU32le(b, c.EpochNumber)
	b = appendU64le(b, c.Quality)
	b = append(b, c.EndEpochBlockHash[:]...)
	b = append(b, c.ScProof...)
	b = appendU32le(b, uint32(t))
	return Hash256(b), nil
}
