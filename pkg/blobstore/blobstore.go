// Package blobstore defines the byte-blob persistence collaborator that
// MapCache's disk level writes through to, plus two concrete backends.
package blobstore

// BlobStore persists and retrieves opaque byte blobs by key. MapCache
// uses it for the disk level of its two-level cache; key is the
// entry's stringified entry_number.
type BlobStore interface {
	Save(key string, data []byte) error
	Load(key string) ([]byte, error)
	Delete(key string) error
}
