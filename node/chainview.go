// Package node hosts the signature combination engine and the
// inclusion-proof builder/verifier, wired to a caller-supplied
// read-only chain snapshot.
package node

import "meridian.dev/node/consensus"

// ChainView is the read snapshot both engines consult. The caller
// acquires whatever process-wide lock protects chain and mempool state
// and holds it for the duration of one operation; nothing here writes
// back.
type ChainView interface {
	// ResolveOutput returns the locking script and value of the
	// referenced unspent output, or ok=false when it is spent, unknown
	// or out of range.
	ResolveOutput(op consensus.Outpoint) (consensus.Output, bool)
	// BlockContaining returns the hash of the block that confirmed the
	// given entity id.
	BlockContaining(entityID [32]byte) ([32]byte, bool)
	LoadBlock(blockHash [32]byte) (*consensus.Block, bool)
	IsOnBestChain(blockHash [32]byte) bool
}

// MempoolView layers a pending-output overlay over a backing view, the
// overlay consulted first. The overlay map is copied at construction so
// the view stays a stable snapshot for the operation's lifetime.
type MempoolView struct {
	base    ChainView
	pending map[consensus.Outpoint]consensus.Output
}

func NewMempoolView(base ChainView, pending map[consensus.Outpoint]consensus.Output) *MempoolView {
	cp := make(map[consensus.Outpoint]consensus.Output, len(pending))
	for k, v := range pending {
		cp[k] = v
	}
	return &MempoolView{base: base, pending: cp}
}

func (v *MempoolView) ResolveOutput(op consensus.Outpoint) (consensus.Output, bool) {
	if out, ok := v.pending[op]; ok {
		return out, true
	}
	return v.base.ResolveOutput(op)
}

func (v *MempoolView) BlockContaining(entityID [32]byte) ([32]byte, bool) {
	return v.base.BlockContaining(entityID)
}

func (v *MempoolView) LoadBlock(blockHash [32]byte) (*consensus.Block, bool) {
	return v.base.LoadBlock(blockHash)
}

func (v *MempoolView) IsOnBestChain(blockHash [32]byte) bool {
	return v.base.IsOnBestChain(blockHash)
}
