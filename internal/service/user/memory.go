package user

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/janisto/huma-users/internal/platform/timeutil"
)

// MemoryStore implements Store in process memory. It is the default backend
// and the one used by unit tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[int64]Record
	lastID  int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[int64]Record),
	}
}

func (m *MemoryStore) Create(_ context.Context, r Record) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastID++
	r.ID = m.lastID
	r.BirthDate = timeutil.DateOf(r.BirthDate)
	m.records[r.ID] = r
	return &r, nil
}

func (m *MemoryStore) Get(_ context.Context, id int64) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return &r, nil
}

func (m *MemoryStore) Save(_ context.Context, r Record) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[r.ID]; !ok {
		return nil, &NotFoundError{ID: r.ID}
	}
	r.BirthDate = timeutil.DateOf(r.BirthDate)
	m.records[r.ID] = r
	return &r, nil
}

func (m *MemoryStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return &NotFoundError{ID: id}
	}
	delete(m.records, id)
	return nil
}

func (m *MemoryStore) FindByBirthDateBetween(_ context.Context, from, to time.Time) ([]Record, error) {
	from, to = timeutil.DateOf(from), timeutil.DateOf(to)
	return m.collect(func(r Record) bool {
		return !r.BirthDate.Before(from) && !r.BirthDate.After(to)
	}, 0), nil
}

func (m *MemoryStore) List(_ context.Context, afterID int64, limit int) ([]Record, error) {
	return m.collect(func(r Record) bool { return r.ID > afterID }, limit), nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

// Len returns the number of stored records.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// collect returns matching records ordered by id, capped at limit when positive.
func (m *MemoryStore) collect(match func(Record) bool, limit int) []Record {
	m.mu.RLock()
	out := make([]Record, 0)
	for _, r := range m.records {
		if match(r) {
			out = append(out, r)
		}
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b Record) int { return cmp.Compare(a.ID, b.ID) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Compile-time interface check
var _ Store = (*MemoryStore)(nil)
