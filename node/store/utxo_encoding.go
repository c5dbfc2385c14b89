package store

import (
	"encoding/binary"
	"fmt"

	"meridian.dev/node/consensus"
)

func encodeOutpoint(op consensus.Outpoint) [36]byte {
	var key [36]byte
	copy(key[:32], op.EntityID[:])
	binary.LittleEndian.PutUint32(key[32:], op.Vout)
	return key
}

func encodeOutput(out consensus.Output) []byte {
	b := make([]byte, 8, 8+len(out.ScriptPubKey))
	binary.LittleEndian.PutUint64(b, out.Value)
	return append(b, out.ScriptPubKey...)
}

func decodeOutput(raw []byte) (consensus.Output, error) {
	if len(raw) < 8 {
		return consensus.Output{}, fmt.Errorf("utxo record too short: %d bytes", len(raw))
	}
	return consensus.Output{
		Value:        binary.LittleEndian.Uint64(raw[:8]),
		ScriptPubKey: append([]byte(nil), raw[8:]...),
	}, nil
}
