package db

import (
	"context"
	"sort"
	"sync"

	"github.com/mithrel/pressgen/pkg/api"
)

type memStore struct {
	mu   sync.RWMutex
	byID map[string]api.Record
}

func newMemStore() *memStore {
	return &memStore{byID: make(map[string]api.Record)}
}

func (m *memStore) Put(ctx context.Context, r api.Record) error {
	if r.ID == "" {
		return ErrConflict
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[r.ID]; ok {
		return ErrConflict
	}
	m.byID[r.ID] = r
	return nil
}

func (m *memStore) Get(ctx context.Context, id string) (api.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.byID[id]
	if !ok {
		return api.Record{}, ErrNotFound
	}
	return r, nil
}

func (m *memStore) List(ctx context.Context, q api.ListQuery) ([]api.Record, error) {
	m.mu.RLock()
	out := make([]api.Record, 0, len(m.byID))
	for _, r := range m.byID {
		if q.Kind != "" && r.Kind != q.Kind {
			continue
		}
		out = append(out, r)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	limit := q.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memStore) Close() error { return nil }
