package consensus

import (
	"errors"
	"testing"
)

func TestDecodeBackwardTransfer(t *testing.T) {
	// OP_DUP OP_HASH160 <20 bytes 0x00..0x13> OP_EQUALVERIFY OP_CHECKSIG
	script := []byte{0x76, opHash160, 0x14}
	for i := 0; i < 20; i++ {
		script = append(script, byte(i))
	}
	script = append(script, 0x88, 0xac)

	pkh, err := DecodeBackwardTransfer(script)
	if err != nil {
		t.Fatalf("DecodeBackwardTransfer: %v", err)
	}
	// The extracted hash is byte-reversed.
	for i := 0; i < 20; i++ {
		if pkh[i] != byte(19-i) {
			t.Fatalf("pkh[%d] = %#x, want %#x", i, pkh[i], byte(19-i))
		}
	}
}

func TestDecodeBackwardTransfer_NoMarker(t *testing.T) {
	_, err := DecodeBackwardTransfer([]byte{0x51, 0xac})
	if !errors.Is(err, ErrNotBackwardTransfer) {
		t.Fatalf("want ErrNotBackwardTransfer, got %v", err)
	}
}

func TestDecodeBackwardTransfer_Truncated(t *testing.T) {
	script := []byte{0x76, opHash160, 0x14, 0x01, 0x02}
	_, err := DecodeBackwardTransfer(script)
	if !IsCode(err, ENT_ERR_BWT_DECODE) {
		t.Fatalf("want ENT_ERR_BWT_DECODE, got %v", err)
	}
}

func TestIsBackwardTransfer(t *testing.T) {
	c := sampleCertificate()
	if c.IsBackwardTransfer(0) {
		t.Fatalf("output 0 is before FirstBwtPos")
	}
	if !c.IsBackwardTransfer(1) {
		t.Fatalf("output 1 should be a backward transfer")
	}
	if c.IsBackwardTransfer(2) || c.IsBackwardTransfer(-1) {
		t.Fatalf("out-of-range index must report false")
	}
}
