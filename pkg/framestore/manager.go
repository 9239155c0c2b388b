// Package framestore holds a named registry of reference frames, each
// under a point-count quota, adapted from the teacher's tenant/namespace
// manager: instead of per-tenant vector quotas it enforces a per-frame
// point budget, since a reference frame held for repeated correspondence
// runs is this module's analogue of a tenant's index.
package framestore

import (
	"fmt"
	"sync"
	"time"

	"github.com/therealutkarshpriyadarshi/pointmesh/pkg/frame"
)

// Quota limits how many points a stored reference frame may hold.
type Quota struct {
	MaxPoints int64 // <= 0 means unlimited
}

// DefaultQuota caps a reference frame at five million points.
func DefaultQuota() Quota {
	return Quota{MaxPoints: 5_000_000}
}

// UnlimitedQuota imposes no point cap.
func UnlimitedQuota() Quota {
	return Quota{MaxPoints: -1}
}

// Entry is one named reference frame under management.
type Entry struct {
	Name      string
	Frame     *frame.Frame
	Quota     Quota
	CreatedAt time.Time
	UpdatedAt time.Time

	mu sync.RWMutex
}

// CheckPointQuota reports whether f's point count is within e's quota.
func (e *Entry) CheckPointQuota(f *frame.Frame) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.Quota.MaxPoints > 0 && int64(f.Len()) > e.Quota.MaxPoints {
		return fmt.Errorf("framestore: frame %q has %d points, exceeding quota of %d",
			e.Name, f.Len(), e.Quota.MaxPoints)
	}
	return nil
}

// Replace swaps in a new frame for this entry, subject to the entry's
// quota.
func (e *Entry) Replace(f *frame.Frame) error {
	if err := e.CheckPointQuota(f); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Frame = f
	e.UpdatedAt = time.Now()
	return nil
}

// Manager is a thread-safe named registry of reference frames.
type Manager struct {
	entries map[string]*Entry
	mu      sync.RWMutex
}

// NewManager creates an empty frame store.
func NewManager() *Manager {
	return &Manager{entries: make(map[string]*Entry)}
}

// Register adds a new named reference frame under the given quota. It
// fails if the name is already registered or the frame exceeds the quota.
func (m *Manager) Register(name string, f *frame.Frame, quota Quota) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[name]; exists {
		return nil, fmt.Errorf("framestore: %q already registered", name)
	}

	entry := &Entry{Name: name, Frame: f, Quota: quota, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := entry.CheckPointQuota(f); err != nil {
		return nil, err
	}

	m.entries[name] = entry
	return entry, nil
}

// Get retrieves a registered reference frame by name.
func (m *Manager) Get(name string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.entries[name]
	if !exists {
		return nil, fmt.Errorf("framestore: %q not found", name)
	}
	return entry, nil
}

// Remove deletes a registered reference frame.
func (m *Manager) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[name]; !exists {
		return fmt.Errorf("framestore: %q not found", name)
	}
	delete(m.entries, name)
	return nil
}

// List returns every registered entry, in no particular order.
func (m *Manager) List() []*Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]*Entry, 0, len(m.entries))
	for _, e := range m.entries {
		entries = append(entries, e)
	}
	return entries
}

// Count returns the number of registered reference frames.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
