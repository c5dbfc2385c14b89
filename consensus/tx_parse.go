package consensus

const (
	maxScriptBytes   = 10_000
	maxShieldedBytes = 1 << 20
	maxEntityItems   = 1 << 17
)

func parseInputs(cur *cursor) ([]Input, error) {
	countU64, err := cur.readCompactSize()
	if err != nil {
		return nil, err
	}
	count, err := toIntLen(countU64, "input_count")
	if err != nil {
		return nil, err
	}
	if count > maxEntityItems {
		return nil, Errf(ENT_ERR_PARSE, "input count exceeds limit")
	}
	vin := make([]Input, 0, count)
	for i := 0; i < count; i++ {
		var in Input
		if in.PrevID, err = cur.readHash(); err != nil {
			return nil, err
		}
		if in.PrevVout, err = cur.readU32LE(); err != nil {
			return nil, err
		}
		if in.ScriptSig, err = cur.readVarBytes(maxScriptBytes); err != nil {
			return nil, err
		}
		if in.Sequence, err = cur.readU32LE(); err != nil {
			return nil, err
		}
		vin = append(vin, in)
	}
	return vin, nil
}

func parseOutputs(cur *cursor) ([]Output, error) {
	countU64, err := cur.readCompactSize()
	if err != nil {
		return nil, err
	}
	count, err := toIntLen(countU64, "output_count")
	if err != nil {
		return nil, err
	}
	if count > maxEntityItems {
		return nil, Errf(ENT_ERR_PARSE, "output count exceeds limit")
	}
	vout := make([]Output, 0, count)
	for i := 0; i < count; i++ {
		var o Output
		if o.Value, err = cur.readU64LE(); err != nil {
			return nil, err
		}
		if o.ScriptPubKey, err = cur.readVarBytes(maxScriptBytes); err != nil {
			return nil, err
		}
		vout = append(vout, o)
	}
	return vout, nil
}

func parseTx(cur *cursor) (*Tx, error) {
	tx := &Tx{}
	var err error
	if tx.Version, err = cur.readU32LE(); err != nil {
		return nil, err
	}
	if tx.Vin, err = parseInputs(cur); err != nil {
		return nil, err
	}
	if tx.Vout, err = parseOutputs(cur); err != nil {
		return nil, err
	}
	if tx.LockTime, err = cur.readU32LE(); err != nil {
		return nil, err
	}
	if tx.ShieldedData, err = cur.readVarBytes(maxShieldedBytes); err != nil {
		return nil, err
	}
	return tx, nil
}

// ParseTx parses exactly one transaction from b, rejecting trailing
// bytes.
func ParseTx(b []byte) (*Tx, error) {
	cur := newCursor(b)
	tx, err := parseTx(cur)
	if err != nil {
		return nil, err
	}
	if cur.remaining() != 0 {
		return nil, Errf(ENT_ERR_PARSE, "%d trailing bytes after transaction", cur.remaining())
	}
	return tx, nil
}

// ParseTxList parses one or more concatenated transactions, the shape
// the combination engine receives its base plus variants in.
func ParseTxList(b []byte) ([]*Tx, error) {
	cur := newCursor(b)
	var txs []*Tx
	for cur.remaining() > 0 {
		tx, err := parseTx(cur)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if len(txs) == 0 {
		return nil, Errf(ENT_ERR_PARSE, "missing transaction")
	}
	return txs, nil
}

func parseCertificate(cur *cursor) (*Certificate, error) {
	c := &Certificate{}
	var err error
	if c.Version, err = cur.readU32LE(); err != nil {
		return nil, err
	}
	if c.Vin, err = parseInputs(cur); err != nil {
		return nil, err
	}
	if c.Vout, err = parseOutputs(cur); err != nil {
		return nil, err
	}
	if c.FirstBwtPos, err = cur.readU32LE(); err != nil {
		return nil, err
	}
	if uint64(c.FirstBwtPos) > uint64(len(c.Vout)) {
		return nil, Errf(ENT_ERR_PARSE, "first backward-transfer position out of range")
	}
	if c.SidechainID, err = cur.readHash(); err != nil {
		return nil, err
	}
	if c.EpochNumber, err = cur.readU32LE(); err != nil {
		return nil, err
	}
	if c.Quality, err = cur.readU64LE(); err != nil {
		return nil, err
	}
	if c.EndEpochBlockHash, err = cur.readHash(); err != nil {
		return nil, err
	}
	proof, err := cur.readExact(CertProofBytes)
	if err != nil {
		return nil, Errf(ENT_ERR_PARSE, "certificate proof blob shorter than %d bytes", CertProofBytes)
	}
	c.ScProof = append([]byte(nil), proof...)
	return c, nil
}

// ParseCertificate parses exactly one withdrawal certificate from b,
// rejecting trailing bytes.
func ParseCertificate(b []byte) (*Certificate, error) {
	cur := newCursor(b)
	c, err := parseCertificate(cur)
	if err != nil {
		return nil, err
	}
	if cur.remaining() != 0 {
		return nil, Errf(ENT_ERR_PARSE, "%d trailing bytes after certificate", cur.remaining())
	}
	return c, nil
}
