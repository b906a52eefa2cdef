package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process stager for the mock provider and tests.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte

	Uploads int
	Deletes int
}

// NewMemory creates an empty in-memory stager.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

// Upload stores data under a synthetic mem:// URI.
func (m *Memory) Upload(_ context.Context, data []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	uri := "mem://" + uuid.NewString()
	m.objects[uri] = data
	m.Uploads++
	return uri, nil
}

// Delete removes a stored object.
func (m *Memory) Delete(_ context.Context, uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[uri]; !ok {
		return fmt.Errorf("no staged object %q", uri)
	}
	delete(m.objects, uri)
	m.Deletes++
	return nil
}

// Len reports how many objects are currently staged.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
