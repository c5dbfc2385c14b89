package consensus

// BlockHeader is the fixed 80-byte header committing to the block's
// entity merkle root.
type BlockHeader struct {
	Version    uint32
	PrevBlock  [32]byte
	MerkleRoot [32]byte
	Time       uint32
	Bits       uint32
	Nonce      uint32
}

const blockHeaderBytes = 80

func (h *BlockHeader) Serialize() []byte {
	b := make([]byte, 0, blockHeaderBytes)
	b = appendU32le(b, h.Version)
	b = append(b, h.PrevBlock[:]...)
	b = append(b, h.MerkleRoot[:]...)
	b = appendU32le(b, h.Time)
	b = appendU32le(b, h.Bits)
	b = appendU32le(b, h.Nonce)
	return b
}

func (h *BlockHeader) BlockHash() [32]byte {
	return Hash256(h.Serialize())
}

func parseBlockHeader(cur *cursor) (BlockHeader, error) {
	var h BlockHeader
	var err error
	if h.Version, err = cur.readU32LE(); err != nil {
		return h, err
	}
	if h.PrevBlock, err = cur.readHash(); err != nil {
		return h, err
	}
	if h.MerkleRoot, err = cur.readHash(); err != nil {
		return h, err
	}
	if h.Time, err = cur.readU32LE(); err != nil {
		return h, err
	}
	if h.Bits, err = cur.readU32LE(); err != nil {
		return h, err
	}
	if h.Nonce, err = cur.readU32LE(); err != nil {
		return h, err
	}
	return h, nil
}

// Block carries ordered transactions followed by ordered withdrawal
// certificates; the merkle tree covers both, in that order.
type Block struct {
	Header BlockHeader
	Txs    []*Tx
	Certs  []*Certificate
}

// EntityIDs returns the block's ordered entity-id leaf list.
func (b *Block) EntityIDs() [][32]byte {
	ids := make([][32]byte, 0, len(b.Txs)+len(b.Certs))
	for _, tx := range b.Txs {
		ids = append(ids, tx.EntityID())
	}
	for _, c := range b.Certs {
		ids = append(ids, c.EntityID())
	}
	return ids
}

// Serialize returns the block's wire bytes; the exact inverse of
// ParseBlock.
func (b *Block) Serialize() []byte {
	out := b.Header.Serialize()
	out = appendCompactSize(out, uint64(len(b.Txs)))
	for _, tx := range b.Txs {
		out = appendVarBytes(out, tx.Serialize())
	}
	out = appendCompactSize(out, uint64(len(b.Certs)))
	for _, c := range b.Certs {
		out = appendVarBytes(out, c.Serialize())
	}
	return out
}

const maxBlockBytes = 1 << 22

func ParseBlock(raw []byte) (*Block, error) {
	cur := newCursor(raw)
	var b Block
	var err error
	if b.Header, err = parseBlockHeader(cur); err != nil {
		return nil, err
	}
	txCount, err := cur.readCompactSize()
	if err != nil {
		return nil, err
	}
	n, err := toIntLen(txCount, "tx_count")
	if err != nil {
		return nil, err
	}
	if n > maxEntityItems {
		return nil, Errf(ENT_ERR_PARSE, "tx count exceeds limit")
	}
	for i := 0; i < n; i++ {
		body, err := cur.readVarBytes(maxBlockBytes)
		if err != nil {
			return nil, err
		}
		tx, err := ParseTx(body)
		if err != nil {
			return nil, err
		}
		b.Txs = append(b.Txs, tx)
	}
	certCount, err := cur.readCompactSize()
	if err != nil {
		return nil, err
	}
	n, err = toIntLen(certCount, "cert_count")
	if err != nil {
		return nil, err
	}
	if n > maxEntityItems {
		return nil, Errf(ENT_ERR_PARSE, "cert count exceeds limit")
	}
	for i := 0; i < n; i++ {
		body, err := cur.readVarBytes(maxBlockBytes)
		if err != nil {
			return nil, err
		}
		c, err := ParseCertificate(body)
		if err != nil {
			return nil, err
		}
		b.Certs = append(b.Certs, c)
	}
	if cur.remaining() != 0 {
		return nil, Errf(ENT_ERR_PARSE, "%d trailing bytes after block", cur.remaining())
	}
	return &b, nil
}
