package node

import (
	"crypto/ed25519"

	"meridian.dev/node/consensus"
	"meridian.dev/node/crypto"
)

// memView is the map-backed ChainView double used across the package
// tests.
type memView struct {
	utxos    map[consensus.Outpoint]consensus.Output
	blocks   map[[32]byte]*consensus.Block
	byEntity map[[32]byte][32]byte
	best     map[[32]byte]bool
}

func newMemView() *memView {
	return &memView{
		utxos:    make(map[consensus.Outpoint]consensus.Output),
		blocks:   make(map[[32]byte]*consensus.Block),
		byEntity: make(map[[32]byte][32]byte),
		best:     make(map[[32]byte]bool),
	}
}

func (m *memView) addUTXO(op consensus.Outpoint, out consensus.Output) {
	m.utxos[op] = out
}

func (m *memView) addBlock(b *consensus.Block, onBest bool) [32]byte {
	hash := b.Header.BlockHash()
	m.blocks[hash] = b
	for _, id := range b.EntityIDs() {
		m.byEntity[id] = hash
	}
	if onBest {
		m.best[hash] = true
	}
	return hash
}

func (m *memView) ResolveOutput(op consensus.Outpoint) (consensus.Output, bool) {
	out, ok := m.utxos[op]
	return out, ok
}

func (m *memView) BlockContaining(entityID [32]byte) ([32]byte, bool) {
	hash, ok := m.byEntity[entityID]
	return hash, ok
}

func (m *memView) LoadBlock(blockHash [32]byte) (*consensus.Block, bool) {
	b, ok := m.blocks[blockHash]
	return b, ok
}

func (m *memView) IsOnBestChain(blockHash [32]byte) bool {
	return m.best[blockHash]
}

var testProv = crypto.NewStd()

func testKey(seedByte byte) ed25519.PrivateKey {
	seed := make([]byte, ed25519.SeedSize)
	seed[0] = seedByte
	return ed25519.NewKeyFromSeed(seed)
}

func testPub(seedByte byte) []byte {
	return testKey(seedByte).Public().(ed25519.PublicKey)
}

// testBlock assembles a block over the given transactions with a
// correct merkle root.
func testBlock(txs ...*consensus.Tx) *consensus.Block {
	b := &consensus.Block{
		Header: consensus.BlockHeader{Version: 1, Time: 1_700_000_000, Bits: 0x1d00ffff},
		Txs:    txs,
	}
	b.Header.MerkleRoot = consensus.MerkleRoot(b.EntityIDs())
	return b
}

func simpleTx(marker byte) *consensus.Tx {
	return &consensus.Tx{
		Version:  1,
		Vin:      []consensus.Input{{PrevID: [32]byte{marker}, Sequence: 0xffffffff}},
		Vout:     []consensus.Output{{Value: uint64(marker), ScriptPubKey: []byte{0x51}}},
		LockTime: uint32(marker),
	}
}
