package blobstore

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestFileStoreSaveLoadSmallPayload(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), DefaultCompressThreshold)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	want := []byte(`{"x":1}`)
	if err := fs.Save("1", want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := fs.Load("1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Load() = %q, want %q", got, want)
	}
}

func TestFileStoreCompressesLargePayload(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), 16)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	want := bytes.Repeat([]byte("abcdefgh"), 100)
	if err := fs.Save("2", want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := fs.Load("2")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Load() round-trip mismatch for compressed payload")
	}
}

func TestFileStoreDeleteThenLoadFails(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), DefaultCompressThreshold)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	if err := fs.Save("3", []byte("data")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := fs.Delete("3"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := fs.Delete("3"); err != nil {
		t.Fatalf("Delete() on missing file should be a no-op, got %v", err)
	}
	if _, err := fs.Load("3"); err == nil {
		t.Fatalf("Load() after Delete() should fail")
	}
}

func TestBoltStoreSaveLoadDelete(t *testing.T) {
	bs, err := NewBoltStore(filepath.Join(t.TempDir(), "cache.bolt"))
	if err != nil {
		t.Fatalf("NewBoltStore() error = %v", err)
	}
	defer bs.Close()

	want := []byte(`{"y":2}`)
	if err := bs.Save("1", want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := bs.Load("1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Load() = %q, want %q", got, want)
	}

	if err := bs.Delete("1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := bs.Load("1"); err == nil {
		t.Fatalf("Load() after Delete() should fail")
	}
}
