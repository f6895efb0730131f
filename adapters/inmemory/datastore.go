package inmemory

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/Abraxas-365/pdfquery/storage"
)

type object struct {
	data []byte
	info storage.ObjectInfo
}

// DataStore implements storage.DataStore using in-memory storage
type DataStore struct {
	objects map[string]object
	mu      sync.RWMutex
}

// NewDataStore creates a new in-memory data store
func NewDataStore() *DataStore {
	return &DataStore{
		objects: make(map[string]object),
	}
}

func (s *DataStore) Put(ctx context.Context, key string, data io.Reader, options ...storage.PutOption) error {
	opts := &storage.PutOptions{}
	for _, opt := range options {
		opt(opts)
	}

	content, err := io.ReadAll(data)
	if err != nil {
		return storage.NewStorageError("Put", key, err, storage.ErrCodeInternal,
			"failed to read object data")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[key] = object{
		data: content,
		info: storage.ObjectInfo{
			Key:          key,
			Size:         int64(len(content)),
			LastModified: time.Now(),
			ContentType:  opts.ContentType,
			Metadata:     opts.Metadata,
		},
	}
	return nil
}

func (s *DataStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, exists := s.objects[key]
	if !exists {
		return nil, storage.NewStorageError("Get", key, nil, storage.ErrCodeNotFound,
			"object not found")
	}

	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (s *DataStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, key)
	return nil
}

func (s *DataStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.objects[key]
	return exists, nil
}
