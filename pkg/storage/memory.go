package storage

import (
	"context"
	"sync"

	"github.com/goliatone/go-portfolio/pkg/profile"
)

// MemoryAdapter keeps the encoded profile in memory. It still runs the codec
// so round-trip behaviour matches the persistent backends.
type MemoryAdapter struct {
	mu      sync.Mutex
	format  Format
	data    []byte
	saveErr error
	saves   int
}

var _ Adapter = (*MemoryAdapter)(nil)

// NewMemoryAdapter returns an empty in-memory cache.
func NewMemoryAdapter(format Format) *MemoryAdapter {
	if format == "" {
		format = FormatJSON
	}
	return &MemoryAdapter{format: format}
}

// Seed stores raw bytes as if they had been written by a previous session.
func (m *MemoryAdapter) Seed(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
}

// FailSaves makes subsequent saves fail with err. Pass nil to recover.
func (m *MemoryAdapter) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// Saves reports how many successful writes happened.
func (m *MemoryAdapter) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Bytes returns a copy of the stored payload.
func (m *MemoryAdapter) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// Load implements Adapter.
func (m *MemoryAdapter) Load(ctx context.Context) (profile.Profile, bool, error) {
	if err := ctx.Err(); err != nil {
		return profile.Profile{}, false, err
	}
	m.mu.Lock()
	data := append([]byte(nil), m.data...)
	m.mu.Unlock()

	if data == nil {
		return profile.Profile{}, false, nil
	}
	p, err := Decode(m.format, data)
	if err != nil {
		return profile.Profile{}, false, wrapErr("load", DefaultKey, err)
	}
	return p, true, nil
}

// Save implements Adapter.
func (m *MemoryAdapter) Save(ctx context.Context, p profile.Profile) error {
	if err := ctx.Err(); err != nil {
		return wrapErr("save", DefaultKey, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return wrapErr("save", DefaultKey, m.saveErr)
	}
	data, err := Encode(m.format, p)
	if err != nil {
		return wrapErr("save", DefaultKey, err)
	}
	m.data = data
	m.saves++
	return nil
}
