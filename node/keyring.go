package node

import (
	"crypto/ed25519"
	"encoding/hex"

	"meridian.dev/node/consensus"
	"meridian.dev/node/crypto"
)

// KeyRing is the in-memory signing-key capability handed to one
// combination operation. Keys are addressed by the hash160 of their
// public key.
type KeyRing struct {
	prov   crypto.Provider
	byHash map[[20]byte]ed25519.PrivateKey
}

// NewKeyRing builds an empty ring; a nil provider selects the stdlib
// implementation.
func NewKeyRing(prov crypto.Provider) *KeyRing {
	if prov == nil {
		prov = crypto.NewStd()
	}
	return &KeyRing{
		prov:   prov,
		byHash: make(map[[20]byte]ed25519.PrivateKey),
	}
}

func (k *KeyRing) AddKey(priv ed25519.PrivateKey) error {
	if len(priv) != ed25519.PrivateKeySize {
		return consensus.Errf(consensus.REQ_ERR_INVALID, "invalid private key length %d", len(priv))
	}
	pub := priv.Public().(ed25519.PublicKey)
	k.byHash[k.prov.Hash160(pub)] = priv
	return nil
}

// AddKeyHex accepts a hex-encoded 64-byte ed25519 private key, the form
// keys arrive in over the request boundary.
func (k *KeyRing) AddKeyHex(s string) error {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return consensus.Errf(consensus.REQ_ERR_INVALID, "invalid private key hex")
	}
	return k.AddKey(ed25519.PrivateKey(raw))
}

func (k *KeyRing) Len() int {
	if k == nil {
		return 0
	}
	return len(k.byHash)
}

func (k *KeyRing) KeyByHash(pkh [20]byte) (ed25519.PrivateKey, bool) {
	priv, ok := k.byHash[pkh]
	return priv, ok
}

func (k *KeyRing) KeyByPubkey(pub []byte) (ed25519.PrivateKey, bool) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, false
	}
	return k.KeyByHash(k.prov.Hash160(pub))
}
