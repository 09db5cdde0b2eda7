package repositories

import (
	"context"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
)

// BlobStore is the key-value seam the local repository persists through:
// one opaque blob under one well-known key.
type BlobStore interface {
	// Get returns the blob. ok is false when the key has never been written.
	Get(ctx context.Context) (data []byte, ok bool, err error)
	// Set overwrites the blob.
	Set(ctx context.Context, data []byte) error
}

// FileBlobStore keeps the blob in a single file on disk.
type FileBlobStore struct {
	path string
}

func NewFileBlobStore(path string) *FileBlobStore {
	return &FileBlobStore{path: path}
}

func (s *FileBlobStore) Get(ctx context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (s *FileBlobStore) Set(ctx context.Context, data []byte) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0644)
}

// RedisBlobStore keeps the blob under a single redis key.
type RedisBlobStore struct {
	rdb *redis.Client
	key string
}

func NewRedisBlobStore(rdb *redis.Client, key string) *RedisBlobStore {
	return &RedisBlobStore{rdb: rdb, key: key}
}

func (s *RedisBlobStore) Get(ctx context.Context) ([]byte, bool, error) {
	val, err := s.rdb.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, false, nil // key never written
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (s *RedisBlobStore) Set(ctx context.Context, data []byte) error {
	return s.rdb.Set(ctx, s.key, data, 0).Err()
}
