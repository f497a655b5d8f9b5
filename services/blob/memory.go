package blobsvc

import (
	"context"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/festify/console/core"
)

// MemoryStore is a BlobStore kept in process memory, with the same URL scheme as GCSStore.
type MemoryStore struct {
	bucket  string
	objects map[string][]byte
	mutex   sync.RWMutex
}

var _ core.BlobStore = (*MemoryStore)(nil)

func NewMemoryStore(bucket string) *MemoryStore {
	return &MemoryStore{bucket: bucket, objects: make(map[string][]byte)}
}

func (s *MemoryStore) IsDurable(str string) bool {
	return strings.HasPrefix(str, "https://") && strings.Contains(str, s.bucket)
}

func (s *MemoryStore) Check(payload string) error {
	if s.IsDurable(payload) {
		return nil
	}
	_, _, err := decodePayload(payload)
	return err
}

func (s *MemoryStore) Upload(_ context.Context, dir, payload string) (string, error) {
	if s.IsDurable(payload) {
		return payload, nil
	}
	data, _, err := decodePayload(payload)
	if err != nil {
		return "", err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	name := path.Join(dir, uuid.NewString())
	s.objects[name] = data
	return downloadURL(s.bucket, name, uuid.NewString()), nil
}

func (s *MemoryStore) Delete(_ context.Context, url string) error {
	name, ok := objectName(s.bucket, url)
	if !ok {
		return nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.objects, name)
	return nil
}

// Put stores data under name and returns its durable URL.
func (s *MemoryStore) Put(name string, data []byte) string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.objects[name] = data
	return downloadURL(s.bucket, name, uuid.NewString())
}

// Has reports whether the blob behind url exists.
func (s *MemoryStore) Has(url string) bool {
	name, ok := objectName(s.bucket, url)
	if !ok {
		return false
	}
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	_, ok = s.objects[name]
	return ok
}

// Len returns the number of stored blobs.
func (s *MemoryStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.objects)
}
