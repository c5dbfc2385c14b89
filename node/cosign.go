package node

import (
	"encoding/hex"
	"encoding/json"

	"meridian.dev/node/consensus"
	"meridian.dev/node/crypto"
	"meridian.dev/node/script"
)

// CombineParams carries one combination request: the base entity, any
// independently-signed variants of it, the available keys (may be nil)
// and the sighash selector.
type CombineParams struct {
	Base     consensus.Entity
	Variants []consensus.Entity
	Keys     *KeyRing
	HashType consensus.SighashType

	// Provider defaults to the stdlib implementation when nil.
	Provider crypto.Provider
}

// InputError is one per-input combination failure. Failures are
// collected, never propagated: a bad input must not block the others.
type InputError struct {
	PrevID    [32]byte
	Vout      uint32
	ScriptSig []byte
	Sequence  uint32
	Reason    string
}

func (e InputError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Txid      string `json:"txid"`
		Vout      uint32 `json:"vout"`
		ScriptSig string `json:"scriptSig"`
		Sequence  uint32 `json:"sequence"`
		Error     string `json:"error"`
	}{
		Txid:      hex.EncodeToString(e.PrevID[:]),
		Vout:      e.Vout,
		ScriptSig: hex.EncodeToString(e.ScriptSig),
		Sequence:  e.Sequence,
		Error:     e.Reason,
	})
}

// CombineResult is always produced, even on partial failure: the merged
// entity, the completeness flag, and the ordered per-input errors.
type CombineResult struct {
	Entity   consensus.Entity
	Complete bool
	Errors   []InputError
}

func (r *CombineResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Hex      string       `json:"hex"`
		Complete bool         `json:"complete"`
		Errors   []InputError `json:"errors,omitempty"`
	}{
		Hex:      hex.EncodeToString(r.Entity.Serialize()),
		Complete: r.Complete,
		Errors:   r.Errors,
	})
}

func inputError(in *consensus.Input, reason string) InputError {
	return InputError{
		PrevID:    in.PrevID,
		Vout:      in.PrevVout,
		ScriptSig: append([]byte(nil), in.ScriptSig...),
		Sequence:  in.Sequence,
		Reason:    reason,
	}
}

// CombineEntitySignatures signs what the keys allow, merges in every
// variant's existing signatures, and verifies each input of the working
// entity. Each input is processed independently; a resolution or script
// failure on one is recorded and the loop continues. The caller-supplied
// base and variants are never mutated.
func CombineEntitySignatures(view ChainView, p CombineParams) (*CombineResult, error) {
	if p.Base == nil {
		return nil, consensus.Errf(consensus.REQ_ERR_INVALID, "missing entity")
	}
	for _, v := range p.Variants {
		if v.NumInputs() != p.Base.NumInputs() || v.NumOutputs() != p.Base.NumOutputs() {
			return nil, consensus.Errf(consensus.REQ_ERR_INVALID, "variant shape differs from base entity")
		}
	}
	prov := p.Provider
	if prov == nil {
		prov = crypto.NewStd()
	}

	working := p.Base.Clone()
	// The base's own pre-existing signatures take part in the merge
	// alongside the supplied variants.
	variants := append([]consensus.Entity{p.Base}, p.Variants...)

	hashSingle := p.HashType.Base() == consensus.SighashSingle
	var errs []InputError

	for i := 0; i < working.NumInputs(); i++ {
		in := working.Input(i)
		prev, ok := view.ResolveOutput(in.Outpoint())
		if !ok {
			errs = append(errs, inputError(in, "Input not found or already spent"))
			in.ScriptSig = nil
			continue
		}

		in.ScriptSig = nil
		// Only sign SIGHASH_SINGLE when a corresponding output exists.
		if p.Keys.Len() > 0 && (!hashSingle || i < working.NumOutputs()) {
			in.ScriptSig = script.Sign(prov, p.Keys, prev.ScriptPubKey, working, i, p.HashType)
		}
		for _, v := range variants {
			in.ScriptSig = script.Combine(prov, prev.ScriptPubKey, working, i, in.ScriptSig, v.Input(i).ScriptSig)
		}
		// The accumulator may alias a variant's bytes; the working
		// entity owns its scripts.
		in.ScriptSig = append([]byte(nil), in.ScriptSig...)

		checker := script.NewEntityChecker(prov, working, i)
		if err := script.Verify(in.ScriptSig, prev.ScriptPubKey, checker); err != nil {
			errs = append(errs, inputError(in, err.Error()))
		}
	}

	return &CombineResult{
		Entity:   working,
		Complete: len(errs) == 0,
		Errors:   errs,
	}, nil
}
