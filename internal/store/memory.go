package store

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore keeps values as encoded JSON in process memory. It counts reads
// and writes per key and can be told to fail, which makes it the store of
// choice for tests that need to assert a write did or did not happen.
type MemoryStore struct {
	mu        sync.Mutex
	values    map[string][]byte
	getsByKey map[string]int
	setsByKey map[string]int
	getErr    error
	setErr    error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:    make(map[string][]byte),
		getsByKey: make(map[string]int),
		setsByKey: make(map[string]int),
	}
}

// GetParam returns a fresh decoded copy of the value stored under key.
func (m *MemoryStore) GetParam(key string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.getsByKey[key]++
	if m.getErr != nil {
		return nil, m.getErr
	}
	raw, ok := m.values[key]
	if !ok {
		return nil, notFound(key)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}
	return v, nil
}

// SetParam encodes value and stores it under key. Failed attempts are counted
// too.
func (m *MemoryStore) SetParam(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setsByKey[key]++
	if m.setErr != nil {
		return m.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	m.values[key] = raw
	return nil
}

// PutRaw stores raw JSON under key without touching the counters. It lets
// tests seed malformed or legacy documents.
func (m *MemoryStore) PutRaw(key, rawJSON string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = []byte(rawJSON)
}

// Raw returns the JSON currently stored under key.
func (m *MemoryStore) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.values[key]
	return string(raw), ok
}

// FailGet makes every following GetParam return err. A nil err clears it.
func (m *MemoryStore) FailGet(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

// FailSet makes every following SetParam return err. A nil err clears it.
func (m *MemoryStore) FailSet(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr = err
}

// Gets returns the total number of GetParam calls.
func (m *MemoryStore) Gets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sum(m.getsByKey)
}

// Sets returns the total number of SetParam calls.
func (m *MemoryStore) Sets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sum(m.setsByKey)
}

// GetsFor returns the number of GetParam calls for key.
func (m *MemoryStore) GetsFor(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getsByKey[key]
}

// SetsFor returns the number of SetParam calls for key.
func (m *MemoryStore) SetsFor(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setsByKey[key]
}

// ResetCounters zeroes the read and write counters.
func (m *MemoryStore) ResetCounters() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getsByKey = make(map[string]int)
	m.setsByKey = make(map[string]int)
}

func sum(counts map[string]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}
