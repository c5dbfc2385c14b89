package consensus

import "errors"

// CertProofBytes is the exact length of a certificate's opaque validity
// proof blob. Validity of the blob itself is checked by an external
// oracle; this core only enforces the length.
const CertProofBytes = 771

// Certificate is a sidechain withdrawal certificate: a periodic
// attestation spending UTXOs and paying backward transfers out of a
// sidechain balance.
type Certificate struct {
	Version uint32
	Vin     []Input
	Vout    []Output
	// FirstBwtPos is the index of the first backward-transfer output;
	// outputs at or past it are backward transfers. Equal to len(Vout)
	// when the certificate carries none.
	FirstBwtPos uint32

	SidechainID       [32]byte
	EpochNumber       uint32
	Quality           uint64
	EndEpochBlockHash [32]byte
	ScProof           []byte // exactly CertProofBytes
}

func (c *Certificate) EntityID() [32]byte {
	return Hash256(c.Serialize())
}

func (c *Certificate) NumInputs() int { return len(c.Vin) }

func (c *Certificate) Input(i int) *Input { return &c.Vin[i] }

func (c *Certificate) NumOutputs() int { return len(c.Vout) }

func (c *Certificate) Output(i int) Output { return c.Vout[i] }

func (c *Certificate) Clone() Entity {
	cp := &Certificate{
		Version:           c.Version,
		Vin:               cloneInputs(c.Vin),
		Vout:              cloneOutputs(c.Vout),
		FirstBwtPos:       c.FirstBwtPos,
		SidechainID:       c.SidechainID,
		EpochNumber:       c.EpochNumber,
		Quality:           c.Quality,
		EndEpochBlockHash: c.EndEpochBlockHash,
		ScProof:           append([]byte(nil), c.ScProof...),
	}
	return cp
}

// IsBackwardTransfer reports whether output i pays out of the sidechain
// balance. Out-of-range indexes report false.
func (c *Certificate) IsBackwardTransfer(i int) bool {
	return i >= 0 && i < len(c.Vout) && uint32(i) >= c.FirstBwtPos
}

// ErrNotBackwardTransfer is reported when a locking script carries no
// backward-transfer marker at all.
var ErrNotBackwardTransfer = errors.New("not a backward transfer")

const opHash160 = 0xa9

// DecodeBackwardTransfer scans a locking script for the hash160 marker
// and extracts the byte-reversed 20-byte destination hash that follows
// it. A missing marker yields ErrNotBackwardTransfer; a marker with
// truncated trailing bytes yields an ENT_ERR_BWT_DECODE error. Neither
// outcome is fatal to the caller: an output simply goes untagged.
func DecodeBackwardTransfer(lockingScript []byte) ([20]byte, error) {
	var pkh [20]byte
	at := -1
	for i, op := range lockingScript {
		if op == opHash160 {
			at = i
			break
		}
	}
	if at < 0 {
		return pkh, ErrNotBackwardTransfer
	}
	// Skip the marker and the push-length byte that follows it.
	start := at + 2
	if start+20 > len(lockingScript) {
		return pkh, Errf(ENT_ERR_BWT_DECODE, "truncated public key hash after marker")
	}
	for i := 0; i < 20; i++ {
		pkh[i] = lockingScript[start+19-i]
	}
	return pkh, nil
}
