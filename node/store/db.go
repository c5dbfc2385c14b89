// Package store persists blocks, the entity→block index, the best
// chain and the UTXO set in a single bbolt file, and exposes them as a
// node.ChainView read snapshot.
package store

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"meridian.dev/node/consensus"
)

var (
	bucketBlocks      = []byte("blocks_by_hash")
	bucketEntityIndex = []byte("entity_to_block")
	bucketBestChain   = []byte("best_chain_by_hash")
	bucketUtxo        = []byte("utxo_by_outpoint")
)

type DB struct {
	db *bolt.DB
}

func Open(datadir string) (*DB, error) {
	if datadir == "" {
		return nil, fmt.Errorf("datadir required")
	}
	if err := os.MkdirAll(datadir, 0o750); err != nil {
		return nil, err
	}
	path := filepath.Join(datadir, "chain.db")
	bdb, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open bbolt: %w", err)
	}
	d := &DB{db: bdb}
	if err := d.db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketBlocks, bucketEntityIndex, bucketBestChain, bucketUtxo} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = bdb.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// PutBlock stores the block, indexes every entity id it confirms, and
// when onBestChain records its membership at the given height.
func (d *DB) PutBlock(b *consensus.Block, height uint64, onBestChain bool) error {
	hash := b.Header.BlockHash()
	raw := b.Serialize()
	return d.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketBlocks).Put(hash[:], raw); err != nil {
			return err
		}
		idx := tx.Bucket(bucketEntityIndex)
		for _, id := range b.EntityIDs() {
			if err := idx.Put(id[:], hash[:]); err != nil {
				return err
			}
		}
		if onBestChain {
			var h8 [8]byte
			binary.LittleEndian.PutUint64(h8[:], height)
			return tx.Bucket(bucketBestChain).Put(hash[:], h8[:])
		}
		return nil
	})
}

func (d *DB) PutUTXO(op consensus.Outpoint, out consensus.Output) error {
	key := encodeOutpoint(op)
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketUtxo).Put(key[:], encodeOutput(out))
	})
}

func (d *DB) DeleteUTXO(op consensus.Outpoint) error {
	key := encodeOutpoint(op)
	return d.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketUtxo).Delete(key[:])
	})
}

// ResolveOutput implements node.ChainView. Read failures surface as
// unavailable.
func (d *DB) ResolveOutput(op consensus.Outpoint) (consensus.Output, bool) {
	key := encodeOutpoint(op)
	var out consensus.Output
	found := false
	err := d.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketUtxo).Get(key[:])
		if raw == nil {
			return nil
		}
		decoded, err := decodeOutput(raw)
		if err != nil {
			return err
		}
		out = decoded
		found = true
		return nil
	})
	if err != nil {
		return consensus.Output{}, false
	}
	return out, found
}

func (d *DB) BlockContaining(entityID [32]byte) ([32]byte, bool) {
	var hash [32]byte
	found := false
	_ = d.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketEntityIndex).Get(entityID[:])
		if len(raw) == 32 {
			copy(hash[:], raw)
			found = true
		}
		return nil
	})
	return hash, found
}

func (d *DB) LoadBlock(blockHash [32]byte) (*consensus.Block, bool) {
	var block *consensus.Block
	err := d.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketBlocks).Get(blockHash[:])
		if raw == nil {
			return nil
		}
		b, err := consensus.ParseBlock(raw)
		if err != nil {
			return err
		}
		block = b
		return nil
	})
	if err != nil || block == nil {
		return nil, false
	}
	return block, true
}

func (d *DB) IsOnBestChain(blockHash [32]byte) bool {
	found := false
	_ = d.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(bucketBestChain).Get(blockHash[:]) != nil
		return nil
	})
	return found
}
