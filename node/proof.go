package node

import "meridian.dev/node/consensus"

// BuildEntityProof builds a self-contained proof that every target id
// was included in one block. When blockHash is nil the block is
// inferred from the first target's confirming block. All-or-nothing: a
// single absent target fails the whole operation and no proof is
// produced.
func BuildEntityProof(view ChainView, targets [][32]byte, blockHash *[32]byte) ([]byte, error) {
	if len(targets) == 0 {
		return nil, consensus.Errf(consensus.REQ_ERR_INVALID, "no target ids")
	}
	targetSet := make(map[[32]byte]bool, len(targets))
	for _, id := range targets {
		if targetSet[id] {
			return nil, consensus.Errf(consensus.REQ_ERR_INVALID, "duplicated target id")
		}
		targetSet[id] = true
	}

	var ref [32]byte
	if blockHash != nil {
		ref = *blockHash
	} else {
		var ok bool
		if ref, ok = view.BlockContaining(targets[0]); !ok {
			return nil, consensus.Errf(consensus.PROOF_ERR_CHAIN, "transaction not yet in block")
		}
	}
	block, ok := view.LoadBlock(ref)
	if !ok {
		return nil, consensus.Errf(consensus.PROOF_ERR_CHAIN, "block not found")
	}

	found := 0
	for _, id := range block.EntityIDs() {
		if targetSet[id] {
			found++
		}
	}
	if found != len(targetSet) {
		return nil, consensus.Errf(consensus.PROOF_ERR_TARGETS_MISSING, "not all transactions found in specified block")
	}

	return consensus.NewMerkleBlock(block, targetSet).Serialize(), nil
}

// VerifyEntityProof checks a proof blob and returns the entity ids it
// commits to. A recomputed root that fails to reproduce the declared
// one yields an empty id list and no error; a structurally inconsistent
// proof or a proof about a block outside the recognized best chain
// fails, with distinct error codes so callers can tell the two apart.
func VerifyEntityProof(view ChainView, proof []byte) ([][32]byte, error) {
	mb, err := consensus.ParseMerkleBlock(proof)
	if err != nil {
		if consensus.IsCode(err, consensus.PROOF_ERR_MALFORMED) {
			return nil, err
		}
		return nil, consensus.Errf(consensus.PROOF_ERR_MALFORMED, "undecodable proof: %v", err)
	}
	root, matched, err := mb.Tree.ExtractMatches()
	if err != nil {
		return nil, err
	}
	if root != mb.Header.MerkleRoot {
		return [][32]byte{}, nil
	}
	if !view.IsOnBestChain(mb.Header.BlockHash()) {
		return nil, consensus.Errf(consensus.PROOF_ERR_CHAIN, "block not found in chain")
	}
	return matched, nil
}
