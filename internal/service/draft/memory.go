package draft

import (
	"context"
	"sync"
)

const backendMemory = "memory"

// MemoryStore keeps the serialized draft in process memory.
type MemoryStore struct {
	mu  sync.RWMutex
	raw []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(ctx context.Context, d ProfileDraft) error {
	data, err := encodeDraft(d)
	if err == nil {
		m.mu.Lock()
		m.raw = data
		m.mu.Unlock()
	}
	auditSave(ctx, backendMemory, err)
	return err
}

func (m *MemoryStore) Load(ctx context.Context) (*ProfileDraft, error) {
	m.mu.RLock()
	raw := m.raw
	m.mu.RUnlock()

	if raw == nil {
		return nil, ErrNotFound
	}
	return decodeDraft(ctx, backendMemory, raw)
}

// SetRaw replaces the stored bytes verbatim, bypassing serialization.
// Tests use it to simulate hand-edited or foreign data.
func (m *MemoryStore) SetRaw(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = data
}

// Clear empties the slot (useful for test cleanup).
func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = nil
}

// Compile-time interface check
var _ Store = (*MemoryStore)(nil)
