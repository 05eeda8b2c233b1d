package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
)

// Memory is an in-memory blob store used in development and tests, selected
// when the repository backend is memory.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]*memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

var _ interfaces.StorageClient = &Memory{}

func NewMemory() *Memory {
	return &Memory{
		objects: make(map[string]*memoryObject),
	}
}

func (m *Memory) Put(ctx context.Context, key string, r io.Reader, contentType string) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to read object body", goerr.V("key", key))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = &memoryObject{
		data:        data,
		contentType: contentType,
	}

	return int64(len(data)), nil
}

// SignedURL returns a synthetic URL. There is nothing to sign in memory; the
// value only has to be stable and unique per object.
func (m *Memory) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, exists := m.objects[key]; !exists {
		return "", goerr.New("object not found", goerr.V("key", key))
	}

	return fmt.Sprintf("memory://%s?expires_in=%d", key, int(ttl.Seconds())), nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.objects[key]; !exists {
		return goerr.New("object not found", goerr.V("key", key))
	}

	delete(m.objects, key)
	return nil
}

// Get returns the stored object, used by tests.
func (m *Memory) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, exists := m.objects[key]
	if !exists {
		return nil, "", false
	}
	data := make([]byte, len(obj.data))
	copy(data, obj.data)
	return data, obj.contentType, true
}

// Keys returns the stored object keys, used by tests.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.objects))
	for key := range m.objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (m *Memory) Close() error {
	return nil
}
