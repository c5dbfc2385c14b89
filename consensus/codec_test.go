package consensus

import (
	"bytes"
	"testing"
)

func sampleTx() *Tx {
	return &Tx{
		Version: 1,
		Vin: []Input{
			{
				PrevID:    [32]byte{0xaa, 0x01},
				PrevVout:  3,
				ScriptSig: []byte{0x01, 0x02, 0x03},
				Sequence:  0xfffffffe,
			},
			{
				PrevID:   [32]byte{0xbb},
				PrevVout: 0,
				Sequence: 0xffffffff,
			},
		},
		Vout: []Output{
			{Value: 5000, ScriptPubKey: []byte{0x76, 0xa9}},
			{Value: 0, ScriptPubKey: nil},
		},
		LockTime:     1000,
		ShieldedData: []byte{0xde, 0xad},
	}
}

func sampleCertificate() *Certificate {
	return &Certificate{
		Version: 1,
		Vin: []Input{
			{PrevID: [32]byte{0x11}, PrevVout: 1, Sequence: 7},
		},
		Vout: []Output{
			{Value: 100, ScriptPubKey: []byte{0x51}},
			{Value: 200, ScriptPubKey: []byte{0x52}},
		},
		FirstBwtPos:       1,
		SidechainID:       [32]byte{0x22},
		EpochNumber:       9,
		Quality:           77,
		EndEpochBlockHash: [32]byte{0x33},
		ScProof:           make([]byte, CertProofBytes),
	}
}

func TestParseTx_RoundTrip(t *testing.T) {
	tx := sampleTx()
	raw := tx.Serialize()
	got, err := ParseTx(raw)
	if err != nil {
		t.Fatalf("ParseTx: %v", err)
	}
	if !bytes.Equal(got.Serialize(), raw) {
		t.Fatalf("reserialization mismatch")
	}
	if got.EntityID() != tx.EntityID() {
		t.Fatalf("entity id changed across round trip")
	}
}

func TestParseTx_TrailingBytes(t *testing.T) {
	raw := append(sampleTx().Serialize(), 0x00)
	if _, err := ParseTx(raw); !IsCode(err, ENT_ERR_PARSE) {
		t.Fatalf("want ENT_ERR_PARSE, got %v", err)
	}
}

func TestParseTxList(t *testing.T) {
	a := sampleTx()
	b := sampleTx()
	b.LockTime = 2000
	raw := append(a.Serialize(), b.Serialize()...)
	txs, err := ParseTxList(raw)
	if err != nil {
		t.Fatalf("ParseTxList: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d txs, want 2", len(txs))
	}
	if txs[1].LockTime != 2000 {
		t.Fatalf("second variant lost its lock time")
	}
	if _, err := ParseTxList(nil); !IsCode(err, ENT_ERR_PARSE) {
		t.Fatalf("empty list: want ENT_ERR_PARSE, got %v", err)
	}
}

func TestParseCertificate_RoundTrip(t *testing.T) {
	c := sampleCertificate()
	raw := c.Serialize()
	got, err := ParseCertificate(raw)
	if err != nil {
		t.Fatalf("ParseCertificate: %v", err)
	}
	if !bytes.Equal(got.Serialize(), raw) {
		t.Fatalf("reserialization mismatch")
	}
	if got.Quality != 77 || got.EpochNumber != 9 {
		t.Fatalf("payload fields lost: %+v", got)
	}
}

func TestParseCertificate_ShortProofBlob(t *testing.T) {
	c := sampleCertificate()
	c.ScProof = c.ScProof[:CertProofBytes-1]
	if _, err := ParseCertificate(c.Serialize()); !IsCode(err, ENT_ERR_PARSE) {
		t.Fatalf("want ENT_ERR_PARSE, got %v", err)
	}
}

func TestParseCertificate_BwtPosOutOfRange(t *testing.T) {
	c := sampleCertificate()
	c.FirstBwtPos = uint32(len(c.Vout)) + 1
	if _, err := ParseCertificate(c.Serialize()); !IsCode(err, ENT_ERR_PARSE) {
		t.Fatalf("want ENT_ERR_PARSE, got %v", err)
	}
}

func TestClone_DoesNotAlias(t *testing.T) {
	tx := sampleTx()
	cp := tx.Clone().(*Tx)
	cp.Vin[0].ScriptSig[0] = 0xff
	if tx.Vin[0].ScriptSig[0] == 0xff {
		t.Fatalf("clone aliases the original's script bytes")
	}
}
