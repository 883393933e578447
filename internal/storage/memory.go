package storage

import (
	"context"
	"fmt"
	"sync"
)

var _ ObjectStorage = (*InMemory)(nil)

type object struct {
	data        []byte
	contentType string
}

// InMemory implements ObjectStorage for tests and local tooling.
type InMemory struct {
	mu      sync.RWMutex
	objects map[string]object

	// FailOn makes Upload fail for a specific object name; used to
	// exercise partial-failure paths.
	FailOn map[string]bool
}

func NewInMemory() *InMemory {
	return &InMemory{
		objects: make(map[string]object),
		FailOn:  make(map[string]bool),
	}
}

func (s *InMemory) Upload(ctx context.Context, bucket, name string, data []byte, contentType string) error {
	key := bucket + "/" + name
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailOn[name] {
		return fmt.Errorf("%w: injected failure for %s", ErrUploadFailed, name)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.objects[key] = object{data: cp, contentType: contentType}
	return nil
}

func (s *InMemory) PublicURL(bucket, name string) string {
	return "memory://" + bucket + "/" + name
}

// Get returns a stored object's bytes and content type.
func (s *InMemory) Get(bucket, name string) ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[bucket+"/"+name]
	if !ok {
		return nil, "", ErrNotFound
	}
	return obj.data, obj.contentType, nil
}

// Len reports how many objects are stored.
func (s *InMemory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
