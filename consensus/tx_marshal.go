package consensus

func appendInputs(b []byte, vin []Input) []byte {
	b = appendCompactSize(b, uint64(len(vin)))
	for i := range vin {
		in := &vin[i]
		b = append(b, in.PrevID[:]...)
		b = appendU32le(b, in.PrevVout)
		b = appendVarBytes(b, in.ScriptSig)
		b = appendU32le(b, in.Sequence)
	}
	return b
}

func appendOutputs(b []byte, vout []Output) []byte {
	b = appendCompactSize(b, uint64(len(vout)))
	for i := range vout {
		b = appendU64le(b, vout[i].Value)
		b = appendVarBytes(b, vout[i].ScriptPubKey)
	}
	return b
}

// Serialize returns the canonical wire bytes; the exact inverse of
// ParseTx.
func (tx *Tx) Serialize() []byte {
	var b []byte
	b = appendU32le(b, tx.Version)
	b = appendInputs(b, tx.Vin)
	b = appendOutputs(b, tx.Vout)
	b = appendU32le(b, tx.LockTime)
	b = appendVarBytes(b, tx.ShieldedData)
	return b
}

// Serialize returns the canonical wire bytes; the exact inverse of
// ParseCertificate.
func (c *Certificate) Serialize() []byte {
	var b []byte
	b = appendU32le(b, c.Version)
	b = appendInputs(b, c.Vin)
	b = appendOutputs(b, c.Vout)
	b = appendU32le(b, c.FirstBwtPos)
	b = append(b, c.SidechainID[:]...)
	b = appendU32le(b, c.EpochNumber)
	b = appendU64le(b, c.Quality)
	b = append(b, c.EndEpochBlockHash[:]...)
	b = append(b, c.ScProof...)
	return b
}
