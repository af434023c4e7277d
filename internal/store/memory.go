package store

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/lead-enricher/internal/types"
)

// RawEntry is one captured provider payload.
type RawEntry struct {
	Email    string
	Source   string
	Payload  any
	StoredAt time.Time
}

// Memory is an in-memory Store for mock mode and tests.
type Memory struct {
	mu        sync.RWMutex
	raw       []RawEntry
	finalized map[string]*types.FinalizedRecord
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{finalized: make(map[string]*types.FinalizedRecord)}
}

func (m *Memory) StoreRaw(_ context.Context, email, source string, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = append(m.raw, RawEntry{Email: email, Source: source, Payload: payload, StoredAt: time.Now()})
	return nil
}

func (m *Memory) UpsertFinalized(_ context.Context, record *types.FinalizedRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *record
	m.finalized[record.Email] = &copied
	return nil
}

func (m *Memory) GetFinalized(_ context.Context, email string) (*types.FinalizedRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.finalized[email]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

// Raw returns the captured raw payloads for inspection in tests.
func (m *Memory) Raw() []RawEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RawEntry, len(m.raw))
	copy(out, m.raw)
	return out
}

func (m *Memory) Close() {}
