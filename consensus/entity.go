package consensus

// Outpoint references one output of a prior entity.
type Outpoint struct {
	EntityID [32]byte
	Vout     uint32
}

// Input spends a prior output. ScriptSig is the only field mutated by
// the combination engine.
type Input struct {
	PrevID    [32]byte
	PrevVout  uint32
	ScriptSig []byte
	Sequence  uint32
}

func (in *Input) Outpoint() Outpoint {
	return Outpoint{EntityID: in.PrevID, Vout: in.PrevVout}
}

// Output locks a value behind a script predicate.
type Output struct {
	Value        uint64
	ScriptPubKey []byte
}

// Entity is the capability shared by transactions and withdrawal
// certificates: ordered inputs and outputs, a canonical serialization,
// and a per-input signature digest. Certificate-only state (epoch
// metadata, proof blob, backward transfers) lives behind the concrete
// *Certificate type.
type Entity interface {
	EntityID() [32]byte
	NumInputs() int
	// Input returns a pointer into the entity's own input array so the
	// combination engine can replace unlocking scripts in place.
	Input(i int) *Input
	NumOutputs() int
	Output(i int) Output
	// Clone returns a deep copy; the engine never mutates a caller's
	// entity directly.
	Clone() Entity
	Serialize() []byte
	Sighash(scriptCode []byte, idx int, hashType SighashType) ([32]byte, error)
}

func cloneInputs(in []Input) []Input {
	out := make([]Input, len(in))
	for i := range in {
		out[i] = in[i]
		out[i].ScriptSig = append([]byte(nil), in[i].ScriptSig...)
	}
	return out
}

func cloneOutputs(in []Output) []Output {
	out := make([]Output, len(in))
	for i := range in {
		out[i] = in[i]
		out[i].ScriptPubKey = append([]byte(nil), in[i].ScriptPubKey...)
	}
	return out
}
