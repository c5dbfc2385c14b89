package consensus

// MerkleRoot folds an ordered entity-id list into the block merkle
// root. Leaves are the ids themselves; an odd node at any level is
// paired with itself, which is what the pruned-proof width arithmetic
// in merkleblock.go assumes.
func MerkleRoot(ids [][32]byte) [32]byte {
	if len(ids) == 0 {
		return [32]byte{}
	}
	level := make([][32]byte, len(ids))
	copy(level, ids)

	var pre [64]byte
	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			j := i + 1
			if j == len(level) {
				j = i
			}
			copy(pre[:32], level[i][:])
			copy(pre[32:], level[j][:])
			next = append(next, Hash256(pre[:]))
		}
		level = next
	}
	return level[0]
}
