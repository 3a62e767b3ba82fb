package blobstore

import (
	"go.etcd.io/bbolt"

	"github.com/go-roadmap/roadmap-core/pkg/maperr"
)

// blobBucket is the single bucket BoltStore keeps all entries in.
const blobBucket = "mapCacheBlobs"

// BoltStore is a single-file embedded alternative to FileStore, backed
// by bbolt, for deployments that prefer one cache file over many small
// ones.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (creating if necessary) the bbolt file at path and
// ensures blobBucket exists.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o644, nil)
	if err != nil {
		return nil, maperr.Wrap(maperr.CacheIOError, "open bolt store", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(blobBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, maperr.Wrap(maperr.CacheIOError, "create bolt bucket", err)
	}

	return &BoltStore{db: db}, nil
}

// Save writes data under key inside blobBucket.
func (b *BoltStore) Save(key string, data []byte) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(blobBucket)).Put([]byte(key), data)
	})
	if err != nil {
		return maperr.Wrap(maperr.CacheIOError, "bolt put", err)
	}
	return nil
}

// Load reads the blob stored under key.
func (b *BoltStore) Load(key string) ([]byte, error) {
	var data []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(blobBucket)).Get([]byte(key))
		if v == nil {
			return maperr.New(maperr.CacheIOError, "bolt key not found")
		}
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Delete removes key from blobBucket. A missing key is not an error.
func (b *BoltStore) Delete(key string) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(blobBucket)).Delete([]byte(key))
	})
	if err != nil {
		return maperr.Wrap(maperr.CacheIOError, "bolt delete", err)
	}
	return nil
}

// Close releases the underlying bbolt file handle.
func (b *BoltStore) Close() error {
	return b.db.Close()
}
