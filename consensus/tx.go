package consensus

// Tx is a standard UTXO-spending transaction.
type Tx struct {
	Version  uint32
	Vin      []Input
	Vout     []Output
	LockTime uint32
	// ShieldedData carries privacy-shielded descriptors opaque to this
	// core; it is serialized verbatim and never interpreted.
	ShieldedData []byte
}

func (tx *Tx) EntityID() [32]byte {
	return Hash256(tx.Serialize())
}

func (tx *Tx) NumInputs() int { return len(tx.Vin) }

func (tx *Tx) Input(i int) *Input { return &tx.Vin[i] }

func (tx *Tx) NumOutputs() int { return len(tx.Vout) }

func (tx *Tx) Output(i int) Output { return tx.Vout[i] }

func (tx *Tx) Clone() Entity {
	cp := &Tx{
		Version:      tx.Version,
		Vin:          cloneInputs(tx.Vin),
		Vout:         cloneOutputs(tx.Vout),
		LockTime:     tx.LockTime,
		ShieldedData: append([]byte(nil), tx.ShieldedData...),
	}
	return cp
}
