package consensus

import "testing"

func TestParseSighashType(t *testing.T) {
	cases := map[string]SighashType{
		"ALL":                 SighashAll,
		"NONE":                SighashNone,
		"SINGLE":              SighashSingle,
		"ALL|ANYONECANPAY":    SighashAll | SighashAnyoneCanPay,
		"NONE|ANYONECANPAY":   SighashNone | SighashAnyoneCanPay,
		"SINGLE|ANYONECANPAY": SighashSingle | SighashAnyoneCanPay,
	}
	for name, want := range cases {
		got, err := ParseSighashType(name)
		if err != nil {
			t.Fatalf("ParseSighashType(%q): %v", name, err)
		}
		if got != want {
			t.Fatalf("ParseSighashType(%q) = %#x, want %#x", name, got, want)
		}
	}
	if _, err := ParseSighashType("ALL|NONE"); !IsCode(err, REQ_ERR_INVALID) {
		t.Fatalf("unknown selector: want REQ_ERR_INVALID, got %v", err)
	}
}

func TestSighash_TypesproduceDistinctDigests(t *testing.T) {
	tx := sampleTx()
	code := []byte{0x76, 0xa9}
	seen := make(map[[32]byte]SighashType)
	for _, ht := range []SighashType{
		SighashAll, SighashNone, SighashSingle,
		SighashAll | SighashAnyoneCanPay,
	} {
		d, err := tx.Sighash(code, 0, ht)
		if err != nil {
			t.Fatalf("Sighash(%v): %v", ht, err)
		}
		if prev, dup := seen[d]; dup {
			t.Fatalf("digest collision between %v and %v", prev, ht)
		}
		seen[d] = ht
	}
}

func TestSighash_NoneIgnoresOutputs(t *testing.T) {
	tx := sampleTx()
	code := []byte{0x51}
	before, err := tx.Sighash(code, 0, SighashNone)
	if err != nil {
		t.Fatalf("Sighash: %v", err)
	}
	tx.Vout[0].Value = 999999
	after, err := tx.Sighash(code, 0, SighashNone)
	if err != nil {
		t.Fatalf("Sighash: %v", err)
	}
	if before != after {
		t.Fatalf("NONE digest must not commit to outputs")
	}
	allAfter, err := tx.Sighash(code, 0, SighashAll)
	if err != nil {
		t.Fatalf("Sighash: %v", err)
	}
	if allAfter == after {
		t.Fatalf("ALL and NONE digests must differ")
	}
}

func TestSighash_AnyoneCanPayIgnoresOtherInputs(t *testing.T) {
	tx := sampleTx()
	code := []byte{0x51}
	before, err := tx.Sighash(code, 0, SighashAll|SighashAnyoneCanPay)
	if err != nil {
		t.Fatalf("Sighash: %v", err)
	}
	tx.Vin[1].Sequence = 1
	after, err := tx.Sighash(code, 0, SighashAll|SighashAnyoneCanPay)
	if err != nil {
		t.Fatalf("Sighash: %v", err)
	}
	if before != after {
		t.Fatalf("ANYONECANPAY digest must not commit to other inputs")
	}
}

func TestSighash_SingleWithoutOutputYieldsOneDigest(t *testing.T) {
	tx := sampleTx()
	tx.Vout = tx.Vout[:1]
	d, err := tx.Sighash([]byte{0x51}, 1, SighashSingle)
	if err != nil {
		t.Fatalf("Sighash: %v", err)
	}
	if d != oneDigest {
		t.Fatalf("missing SINGLE output must yield the legacy one digest")
	}
}

func TestSighash_CertificateCommitsToPayload(t *testing.T) {
	c := sampleCertificate()
	code := []byte{0x51}
	before, err := c.Sighash(code, 0, SighashAll)
	if err != nil {
		t.Fatalf("Sighash: %v", err)
	}
	c.Quality++
	after, err := c.Sighash(code, 0, SighashAll)
	if err != nil {
		t.Fatalf("Sighash: %v", err)
	}
	if before == after {
		t.Fatalf("certificate digest must commit to quality")
	}
	c.Quality--
	c.ScProof[0] ^= 0x01
	after2, err := c.Sighash(code, 0, SighashAll)
	if err != nil {
		t.Fatalf("Sighash: %v", err)
	}
	if before == after2 {
		t.Fatalf("certificate digest must commit to the proof blob")
	}
}

func TestSighash_IndexOutOfRange(t *testing.T) {
	tx := sampleTx()
	if _, err := tx.Sighash(nil, len(tx.Vin), SighashAll); !IsCode(err, REQ_ERR_INVALID) {
		t.Fatalf("want REQ_ERR_INVALID, got %v", err)
	}
}
