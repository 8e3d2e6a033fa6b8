package forecastcache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryItem struct {
	data     []byte
	expireAt time.Time // zero means no expiry
	accessed time.Time
}

func (m *memoryItem) expired() bool {
	return !m.expireAt.IsZero() && time.Now().After(m.expireAt)
}

// MemoryStore implements Store using in-process storage. With maxSize 0 the
// store is unbounded (the reference design for a small fixed category
// count); otherwise the least recently used entry is evicted when full.
type MemoryStore struct {
	mu      sync.Mutex
	data    map[string]*memoryItem
	maxSize int
}

// NewMemoryStore creates an in-memory store. maxSize 0 means unbounded.
func NewMemoryStore(maxSize int) *MemoryStore {
	return &MemoryStore{
		data:    make(map[string]*memoryItem),
		maxSize: maxSize,
	}
}

func (m *MemoryStore) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.data[key]
	if !ok || item.expired() {
		if ok {
			delete(m.data, key)
		}
		return ErrCacheMiss
	}

	item.accessed = time.Now()
	return json.Unmarshal(item.data, dest)
}

func (m *MemoryStore) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSize > 0 && len(m.data) >= m.maxSize {
		if _, exists := m.data[key]; !exists {
			m.evictLRU()
		}
	}

	item := &memoryItem{data: data, accessed: time.Now()}
	if ttl > 0 {
		item.expireAt = time.Now().Add(ttl)
	}
	m.data[key] = item
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.data[key]
	return ok && !item.expired(), nil
}

// Close releases nothing for the memory store; it satisfies Store.
func (m *MemoryStore) Close() error {
	return nil
}

func (m *MemoryStore) evictLRU() {
	var oldestKey string
	var oldestTime time.Time

	for key, item := range m.data {
		if oldestKey == "" || item.accessed.Before(oldestTime) {
			oldestKey = key
			oldestTime = item.accessed
		}
	}
	if oldestKey != "" {
		delete(m.data, oldestKey)
	}
}
