package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"meridian.dev/node/consensus"
	"meridian.dev/node/node"
	"meridian.dev/node/node/store"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: meridian-cosign <command> [flags]

commands:
  sign         sign/merge a raw transaction (base plus optional variants)
  signcert     sign a raw withdrawal certificate
  proof        build an inclusion proof for entity ids
  verifyproof  verify an inclusion proof and print the committed ids
`)
	os.Exit(2)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func openStore(configPath, dataDir string) *store.DB {
	cfg, err := node.LoadConfigFile(configPath)
	if err != nil {
		fatal("config: %v", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if err := node.ValidateConfig(cfg); err != nil {
		fatal("invalid config: %v", err)
	}
	db, err := store.Open(cfg.DataDir)
	if err != nil {
		fatal("open store: %v", err)
	}
	return db
}

func parseHash(s string) ([32]byte, error) {
	var h [32]byte
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 32 {
		return h, fmt.Errorf("invalid 256-bit id %q", s)
	}
	copy(h[:], raw)
	return h, nil
}

func buildKeyRing(csv string) *node.KeyRing {
	ring := node.NewKeyRing(nil)
	for _, k := range strings.Split(csv, ",") {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if err := ring.AddKeyHex(k); err != nil {
			fatal("private key: %v", err)
		}
	}
	return ring
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal("encode result: %v", err)
	}
	fmt.Println(string(out))
}

func runSign(args []string, cert bool) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	configPath := fs.String("config", "", "TOML config file")
	dataDir := fs.String("datadir", "", "override data directory")
	hexArg := fs.String("hex", "", "hex-encoded entity (transactions: base plus variants concatenated)")
	keysCSV := fs.String("keys", "", "comma-separated hex private keys")
	sighash := fs.String("sighash", "ALL", "sighash type")
	_ = fs.Parse(args)

	raw, err := hex.DecodeString(strings.TrimSpace(*hexArg))
	if err != nil {
		fatal("invalid entity hex")
	}
	ht, err := consensus.ParseSighashType(*sighash)
	if err != nil {
		fatal("%v", err)
	}

	params := node.CombineParams{Keys: buildKeyRing(*keysCSV), HashType: ht}
	if cert {
		c, err := consensus.ParseCertificate(raw)
		if err != nil {
			fatal("cert decode failed: %v", err)
		}
		params.Base = c
	} else {
		txs, err := consensus.ParseTxList(raw)
		if err != nil {
			fatal("tx decode failed: %v", err)
		}
		params.Base = txs[0]
		for _, tx := range txs[1:] {
			params.Variants = append(params.Variants, tx)
		}
	}

	db := openStore(*configPath, *dataDir)
	defer db.Close()

	result, err := node.CombineEntitySignatures(db, params)
	if err != nil {
		fatal("%v", err)
	}
	printJSON(result)
}

func runProof(args []string) {
	fs := flag.NewFlagSet("proof", flag.ExitOnError)
	configPath := fs.String("config", "", "TOML config file")
	dataDir := fs.String("datadir", "", "override data directory")
	idsCSV := fs.String("ids", "", "comma-separated hex entity ids")
	blockHex := fs.String("block", "", "optional block hash to search")
	_ = fs.Parse(args)

	var targets [][32]byte
	for _, s := range strings.Split(*idsCSV, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		id, err := parseHash(s)
		if err != nil {
			fatal("%v", err)
		}
		targets = append(targets, id)
	}
	var blockRef *[32]byte
	if *blockHex != "" {
		h, err := parseHash(*blockHex)
		if err != nil {
			fatal("%v", err)
		}
		blockRef = &h
	}

	db := openStore(*configPath, *dataDir)
	defer db.Close()

	proof, err := node.BuildEntityProof(db, targets, blockRef)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Println(hex.EncodeToString(proof))
}

func runVerifyProof(args []string) {
	fs := flag.NewFlagSet("verifyproof", flag.ExitOnError)
	configPath := fs.String("config", "", "TOML config file")
	dataDir := fs.String("datadir", "", "override data directory")
	proofHex := fs.String("proof", "", "hex-encoded proof")
	_ = fs.Parse(args)

	raw, err := hex.DecodeString(strings.TrimSpace(*proofHex))
	if err != nil {
		fatal("invalid proof hex")
	}

	db := openStore(*configPath, *dataDir)
	defer db.Close()

	matched, err := node.VerifyEntityProof(db, raw)
	if err != nil {
		fatal("%v", err)
	}
	ids := make([]string, 0, len(matched))
	for _, id := range matched {
		ids = append(ids, hex.EncodeToString(id[:]))
	}
	printJSON(ids)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "sign":
		runSign(os.Args[2:], false)
	case "signcert":
		runSign(os.Args[2:], true)
	case "proof":
		runProof(os.Args[2:])
	case "verifyproof":
		runVerifyProof(os.Args[2:])
	default:
		usage()
	}
}
