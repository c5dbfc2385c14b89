package consensus

import (
	"testing"

	"github.com/willf/bitset"
)

func testLeaves(n int) [][32]byte {
	leaves := make([][32]byte, n)
	for i := range leaves {
		leaves[i] = Hash256([]byte{byte(i), 0x4d})
	}
	return leaves
}

func buildTree(leaves [][32]byte, matchedIdx ...int) *PartialMerkleTree {
	matched := bitset.New(uint(len(leaves)))
	for _, i := range matchedIdx {
		matched.Set(uint(i))
	}
	return NewPartialMerkleTree(leaves, matched)
}

func TestPartialMerkleTree_RoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 9, 33} {
		leaves := testLeaves(n)
		want := MerkleRoot(leaves)
		for _, matchedIdx := range [][]int{{0}, {n - 1}, {0, n - 1}, {n / 2}} {
			p := buildTree(leaves, matchedIdx...)
			root, matched, err := p.ExtractMatches()
			if err != nil {
				t.Fatalf("n=%d matched=%v: ExtractMatches: %v", n, matchedIdx, err)
			}
			if root != want {
				t.Fatalf("n=%d matched=%v: root mismatch", n, matchedIdx)
			}
			seen := make(map[[32]byte]bool, len(matched))
			for _, id := range matched {
				seen[id] = true
			}
			uniq := make(map[int]bool)
			for _, i := range matchedIdx {
				uniq[i] = true
			}
			if len(seen) != len(uniq) {
				t.Fatalf("n=%d matched=%v: recovered %d ids, want %d", n, matchedIdx, len(seen), len(uniq))
			}
			for i := range uniq {
				if !seen[leaves[i]] {
					t.Fatalf("n=%d: leaf %d not recovered", n, i)
				}
			}
		}
	}
}

func TestPartialMerkleTree_SerializationRoundTrip(t *testing.T) {
	leaves := testLeaves(7)
	p := buildTree(leaves, 2, 5)
	raw := p.appendTo(nil)
	cur := newCursor(raw)
	got, err := parsePartialMerkleTree(cur)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cur.remaining() != 0 {
		t.Fatalf("%d trailing bytes", cur.remaining())
	}
	wantRoot, _, err := p.ExtractMatches()
	if err != nil {
		t.Fatalf("ExtractMatches: %v", err)
	}
	gotRoot, matched, err := got.ExtractMatches()
	if err != nil {
		t.Fatalf("ExtractMatches after parse: %v", err)
	}
	if gotRoot != wantRoot {
		t.Fatalf("root changed across serialization")
	}
	if len(matched) != 2 {
		t.Fatalf("got %d matched ids, want 2", len(matched))
	}
}

func TestPartialMerkleTree_CorruptedHashChangesRoot(t *testing.T) {
	leaves := testLeaves(8)
	p := buildTree(leaves, 3)
	want := MerkleRoot(leaves)
	p.hashes[0][0] ^= 0x01
	root, _, err := p.ExtractMatches()
	if err != nil {
		t.Fatalf("corruption must not fail extraction: %v", err)
	}
	if root == want {
		t.Fatalf("corrupted hash still reproduced the root")
	}
}

func TestPartialMerkleTree_HashCountMismatch(t *testing.T) {
	leaves := testLeaves(8)

	extra := buildTree(leaves, 3)
	extra.hashes = append(extra.hashes, Hash256([]byte("extra")))
	if _, _, err := extra.ExtractMatches(); !IsCode(err, PROOF_ERR_MALFORMED) {
		t.Fatalf("extra hash: want PROOF_ERR_MALFORMED, got %v", err)
	}

	short := buildTree(leaves, 3)
	short.hashes = short.hashes[:len(short.hashes)-1]
	if _, _, err := short.ExtractMatches(); !IsCode(err, PROOF_ERR_MALFORMED) {
		t.Fatalf("missing hash: want PROOF_ERR_MALFORMED, got %v", err)
	}
}

func TestPartialMerkleTree_ZeroLeaves(t *testing.T) {
	p := &PartialMerkleTree{bits: bitset.New(8), nbits: 8}
	if _, _, err := p.ExtractMatches(); !IsCode(err, PROOF_ERR_MALFORMED) {
		t.Fatalf("want PROOF_ERR_MALFORMED, got %v", err)
	}
}

func TestMerkleRoot_MatchesBlockTree(t *testing.T) {
	leaves := testLeaves(5)
	// A fully-pruned single-branch proof over each leaf must reproduce
	// the same root the flat fold computes.
	want := MerkleRoot(leaves)
	for i := range leaves {
		p := buildTree(leaves, i)
		root, _, err := p.ExtractMatches()
		if err != nil {
			t.Fatalf("leaf %d: %v", i, err)
		}
		if root != want {
			t.Fatalf("leaf %d: root mismatch", i)
		}
	}
}
