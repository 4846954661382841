package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/friendbook/internal/shared"
	bolt "go.etcd.io/bbolt"
)

const (
	boltBucket  = "kv"
	boltTimeout = 5 * time.Second
)

// BoltBridge persists values in a single-file bbolt database.
//
// The file is opened per operation so several processes can share it; bbolt's file lock serializes them.
type BoltBridge struct {
	path string
}

// NewBoltBridge creates the database file and bucket at path if needed.
func NewBoltBridge(path string) (*BoltBridge, error) {
	b := &BoltBridge{path: path}
	err := b.update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: bolt init %s: %v", shared.ErrStorage, path, err)
	}
	return b, nil
}

func (b *BoltBridge) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	var (
		value string
		found bool
	)
	db, err := b.open()
	if err != nil {
		return "", false, storageErr("get", key, err)
	}
	defer db.Close()

	err = db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(boltBucket))
		if bkt == nil {
			return nil
		}
		// bytes are only valid inside the transaction
		if v := bkt.Get([]byte(key)); v != nil {
			value, found = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", false, storageErr("get", key, err)
	}
	return value, found, nil
}

func (b *BoltBridge) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := b.update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		if err != nil {
			return err
		}
		return bkt.Put([]byte(key), []byte(value))
	})
	if err != nil {
		return storageErr("set", key, err)
	}
	return nil
}

func (b *BoltBridge) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := b.update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(boltBucket))
		if bkt == nil {
			return nil
		}
		return bkt.Delete([]byte(key))
	})
	if err != nil {
		return storageErr("remove", key, err)
	}
	return nil
}

func (b *BoltBridge) Close() error { return nil }

func (b *BoltBridge) open() (*bolt.DB, error) {
	return bolt.Open(b.path, 0600, &bolt.Options{Timeout: boltTimeout})
}

func (b *BoltBridge) update(fn func(*bolt.Tx) error) error {
	db, err := b.open()
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Update(fn)
}
