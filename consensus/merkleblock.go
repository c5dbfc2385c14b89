package consensus

import "github.com/willf/bitset"

// PartialMerkleTree is a pruned binary hash tree proving that a subset
// of a block's ordered entity ids belongs to its merkle root. The
// traversal is depth-first pre-order from the root: one bit per visited
// node (set iff some descendant leaf matched), and an explicit hash for
// every leaf reached and for every unmatched subtree, in the same
// order.
type PartialMerkleTree struct {
	leafCount uint32
	nbits     int
	bits      *bitset.BitSet
	hashes    [][32]byte
}

// LeafCount returns the total number of leaves the proof declares.
func (p *PartialMerkleTree) LeafCount() uint32 { return p.leafCount }

func (p *PartialMerkleTree) width(height int) int {
	return (int(p.leafCount) + (1 << height) - 1) >> height
}

func (p *PartialMerkleTree) treeHeight() int {
	h := 0
	for p.width(h) > 1 {
		h++
	}
	return h
}

func hashPair(left, right [32]byte) [32]byte {
	var pre [64]byte
	copy(pre[:32], left[:])
	copy(pre[32:], right[:])
	return Hash256(pre[:])
}

func (p *PartialMerkleTree) calcHash(height, pos int, leaves [][32]byte) [32]byte {
	if height == 0 {
		return leaves[pos]
	}
	left := p.calcHash(height-1, pos*2, leaves)
	right := left
	if pos*2+1 < p.width(height-1) {
		right = p.calcHash(height-1, pos*2+1, leaves)
	}
	return hashPair(left, right)
}

func (p *PartialMerkleTree) build(height, pos int, leaves [][32]byte, matched *bitset.BitSet) {
	parentOfMatch := false
	for i := pos << height; i < (pos+1)<<height && i < len(leaves); i++ {
		if matched.Test(uint(i)) {
			parentOfMatch = true
			break
		}
	}
	p.bits.SetTo(uint(p.nbits), parentOfMatch)
	p.nbits++
	if height == 0 || !parentOfMatch {
		p.hashes = append(p.hashes, p.calcHash(height, pos, leaves))
		return
	}
	p.build(height-1, pos*2, leaves, matched)
	if pos*2+1 < p.width(height-1) {
		p.build(height-1, pos*2+1, leaves, matched)
	}
}

// NewPartialMerkleTree prunes a tree over the full ordered leaf list,
// keeping the branches of every leaf whose bit is set in matched.
func NewPartialMerkleTree(leaves [][32]byte, matched *bitset.BitSet) *PartialMerkleTree {
	p := &PartialMerkleTree{
		leafCount: uint32(len(leaves)),
		bits:      bitset.New(uint(len(leaves))),
	}
	p.build(p.treeHeight(), 0, leaves, matched)
	return p
}

type extractState struct {
	bitsUsed int
	hashUsed int
	matched  [][32]byte
}

func (p *PartialMerkleTree) extract(height, pos int, st *extractState) ([32]byte, error) {
	if st.bitsUsed >= p.nbits {
		return [32]byte{}, Errf(PROOF_ERR_MALFORMED, "overran the bitmask")
	}
	parentOfMatch := p.bits.Test(uint(st.bitsUsed))
	st.bitsUsed++
	if height == 0 || !parentOfMatch {
		if st.hashUsed >= len(p.hashes) {
			return [32]byte{}, Errf(PROOF_ERR_MALFORMED, "overran the hash list")
		}
		h := p.hashes[st.hashUsed]
		st.hashUsed++
		if height == 0 && parentOfMatch {
			// Matched leaves surface their id, in leaf order.
			st.matched = append(st.matched, h)
		}
		return h, nil
	}
	left, err := p.extract(height-1, pos*2, st)
	if err != nil {
		return [32]byte{}, err
	}
	right := left
	if pos*2+1 < p.width(height-1) {
		right, err = p.extract(height-1, pos*2+1, st)
		if err != nil {
			return [32]byte{}, err
		}
		if right == left {
			// A duplicated right branch can only be the odd-node rule,
			// never an explicit pair of equal subtrees.
			return [32]byte{}, Errf(PROOF_ERR_MALFORMED, "duplicate subtree hash")
		}
	}
	return hashPair(left, right), nil
}

// ExtractMatches replays the traversal, recomputing the root and
// recovering the matched leaf ids. Any structural inconsistency between
// leaf count, bitmask and retained hashes is a PROOF_ERR_MALFORMED
// failure before a root is produced.
func (p *PartialMerkleTree) ExtractMatches() ([32]byte, [][32]byte, error) {
	if p.leafCount == 0 {
		return [32]byte{}, nil, Errf(PROOF_ERR_MALFORMED, "zero leaves")
	}
	if p.leafCount > maxEntityItems {
		return [32]byte{}, nil, Errf(PROOF_ERR_MALFORMED, "leaf count exceeds limit")
	}
	if len(p.hashes) > int(p.leafCount) {
		return [32]byte{}, nil, Errf(PROOF_ERR_MALFORMED, "more hashes than leaves")
	}
	if p.nbits < len(p.hashes) {
		return [32]byte{}, nil, Errf(PROOF_ERR_MALFORMED, "fewer bits than hashes")
	}
	st := &extractState{}
	root, err := p.extract(p.treeHeight(), 0, st)
	if err != nil {
		return [32]byte{}, nil, err
	}
	// Everything declared must be consumed: unused hashes or non-padding
	// bits mean the proof does not describe a tree of this leaf count.
	if (st.bitsUsed+7)/8 != (p.nbits+7)/8 {
		return [32]byte{}, nil, Errf(PROOF_ERR_MALFORMED, "unconsumed bitmask bits")
	}
	if st.hashUsed != len(p.hashes) {
		return [32]byte{}, nil, Errf(PROOF_ERR_MALFORMED, "unconsumed hashes")
	}
	return root, st.matched, nil
}

func (p *PartialMerkleTree) appendTo(b []byte) []byte {
	b = appendU32le(b, p.leafCount)
	b = appendCompactSize(b, uint64(len(p.hashes)))
	for _, h := range p.hashes {
		b = append(b, h[:]...)
	}
	packed := make([]byte, (p.nbits+7)/8)
	for i := 0; i < p.nbits; i++ {
		if p.bits.Test(uint(i)) {
			packed[i>>3] |= 1 << (i & 7)
		}
	}
	return appendVarBytes(b, packed)
}

func parsePartialMerkleTree(cur *cursor) (*PartialMerkleTree, error) {
	p := &PartialMerkleTree{}
	var err error
	if p.leafCount, err = cur.readU32LE(); err != nil {
		return nil, err
	}
	hashCountU64, err := cur.readCompactSize()
	if err != nil {
		return nil, err
	}
	hashCount, err := toIntLen(hashCountU64, "hash_count")
	if err != nil {
		return nil, err
	}
	if hashCount > maxEntityItems {
		return nil, Errf(PROOF_ERR_MALFORMED, "hash count exceeds limit")
	}
	p.hashes = make([][32]byte, 0, hashCount)
	for i := 0; i < hashCount; i++ {
		h, err := cur.readHash()
		if err != nil {
			return nil, err
		}
		p.hashes = append(p.hashes, h)
	}
	packed, err := cur.readVarBytes(maxEntityItems / 4)
	if err != nil {
		return nil, err
	}
	p.nbits = len(packed) * 8
	p.bits = bitset.New(uint(p.nbits))
	for i := 0; i < p.nbits; i++ {
		if packed[i>>3]&(1<<(i&7)) != 0 {
			p.bits.Set(uint(i))
		}
	}
	return p, nil
}

// MerkleBlock is the self-contained inclusion proof blob: the block
// header whose merkle root the pruned tree must reproduce, plus the
// tree itself.
type MerkleBlock struct {
	Header BlockHeader
	Tree   *PartialMerkleTree
}

// NewMerkleBlock builds the proof for every block entity whose id is in
// targets.
func NewMerkleBlock(block *Block, targets map[[32]byte]bool) *MerkleBlock {
	leaves := block.EntityIDs()
	matched := bitset.New(uint(len(leaves)))
	for i, id := range leaves {
		if targets[id] {
			matched.Set(uint(i))
		}
	}
	return &MerkleBlock{
		Header: block.Header,
		Tree:   NewPartialMerkleTree(leaves, matched),
	}
}

func (mb *MerkleBlock) Serialize() []byte {
	b := mb.Header.Serialize()
	return mb.Tree.appendTo(b)
}

func ParseMerkleBlock(raw []byte) (*MerkleBlock, error) {
	cur := newCursor(raw)
	var mb MerkleBlock
	var err error
	if mb.Header, err = parseBlockHeader(cur); err != nil {
		return nil, Errf(PROOF_ERR_MALFORMED, "truncated header")
	}
	if mb.Tree, err = parsePartialMerkleTree(cur); err != nil {
		return nil, err
	}
	if cur.remaining() != 0 {
		return nil, Errf(PROOF_ERR_MALFORMED, "%d trailing bytes after proof", cur.remaining())
	}
	return &mb, nil
}
