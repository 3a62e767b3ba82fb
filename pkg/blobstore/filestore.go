package blobstore

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"

	"github.com/go-roadmap/roadmap-core/pkg/maperr"
)

// DefaultCompressThreshold is the blob size, in bytes, at or above which
// FileStore compresses before writing.
const DefaultCompressThreshold = 512

const (
	rawMarker      byte = 0
	deflatedMarker byte = 1
)

// FileStore is the spec-literal BlobStore backend: one
// cache.entry_{key}.json file per entry under Dir, flate-compressed
// when the payload crosses CompressThreshold.
type FileStore struct {
	Dir               string
	CompressThreshold int
}

// NewFileStore creates dir if it does not exist and returns a FileStore
// rooted there.
func NewFileStore(dir string, compressThreshold int) (*FileStore, error) {
	if compressThreshold <= 0 {
		compressThreshold = DefaultCompressThreshold
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, maperr.Wrap(maperr.CacheIOError, "create blob store directory", err)
	}
	return &FileStore{Dir: dir, CompressThreshold: compressThreshold}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.Dir, fmt.Sprintf("cache.entry_%s.json", key))
}

// Save writes data under key, flate-compressing it first when it meets
// CompressThreshold.
func (f *FileStore) Save(key string, data []byte) error {
	var out bytes.Buffer
	if len(data) >= f.CompressThreshold {
		out.WriteByte(deflatedMarker)
		w, err := flate.NewWriter(&out, flate.DefaultCompression)
		if err != nil {
			return maperr.Wrap(maperr.CacheIOError, "open flate writer", err)
		}
		if _, err := w.Write(data); err != nil {
			return maperr.Wrap(maperr.CacheIOError, "compress blob", err)
		}
		if err := w.Close(); err != nil {
			return maperr.Wrap(maperr.CacheIOError, "flush compressed blob", err)
		}
	} else {
		out.WriteByte(rawMarker)
		out.Write(data)
	}

	if err := os.WriteFile(f.path(key), out.Bytes(), 0o644); err != nil {
		return maperr.Wrap(maperr.CacheIOError, "write blob file", err)
	}
	return nil
}

// Load reads and, if necessary, decompresses the blob stored under key.
func (f *FileStore) Load(key string) ([]byte, error) {
	raw, err := os.ReadFile(f.path(key))
	if err != nil {
		return nil, maperr.Wrap(maperr.CacheIOError, "read blob file", err)
	}
	if len(raw) == 0 {
		return nil, maperr.New(maperr.CacheIOError, "empty blob file")
	}

	marker, payload := raw[0], raw[1:]
	switch marker {
	case rawMarker:
		return payload, nil
	case deflatedMarker:
		r := flate.NewReader(bytes.NewReader(payload))
		defer r.Close()
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, maperr.Wrap(maperr.CacheIOError, "decompress blob", err)
		}
		return data, nil
	default:
		return nil, maperr.New(maperr.CacheIOError, "unrecognized blob marker")
	}
}

// Delete removes the blob file for key. A missing file is not an error.
func (f *FileStore) Delete(key string) error {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return maperr.Wrap(maperr.CacheIOError, "delete blob file", err)
	}
	return nil
}
