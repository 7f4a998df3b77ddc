// Package state provides the core.Store implementations: MongoDB for
// production and an in-memory store for tests and local development.
package state

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/viewgraph/pkg/core"
)

// MemoryStore is an in-process core.Store. It mirrors the MongoStore
// contract exactly so the importer and handlers can be tested without a
// running database.
type MemoryStore struct {
	mu        sync.RWMutex
	views     map[int]*core.View
	relations map[string]*core.ViewRelation

	// Insertion order, so listings are stable.
	viewOrder     []int
	relationOrder []string
}

var _ core.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		views:     make(map[int]*core.View),
		relations: make(map[string]*core.ViewRelation),
	}
}

func (s *MemoryStore) CreateView(_ context.Context, view *core.View) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.views[view.ViewID]; exists {
		return fmt.Errorf("view %d: %w", view.ViewID, core.ErrDuplicateKey)
	}
	v := *view
	s.views[view.ViewID] = &v
	s.viewOrder = append(s.viewOrder, view.ViewID)
	return nil
}

func (s *MemoryStore) GetView(_ context.Context, viewID int) (*core.View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.views[viewID]
	if !ok {
		return nil, fmt.Errorf("view %d: %w", viewID, core.ErrNotFound)
	}
	out := *v
	return &out, nil
}

func (s *MemoryStore) ListViews(_ context.Context, opts core.ListViewsOptions) ([]*core.View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*core.View, 0, len(s.viewOrder))
	for _, id := range s.viewOrder {
		v := s.views[id]
		if opts.ViewID != nil && v.ViewID != *opts.ViewID {
			continue
		}
		if opts.Search != "" && !viewMatches(v, opts.Search) {
			continue
		}
		c := *v
		out = append(out, &c)
	}
	return out, nil
}

func viewMatches(v *core.View, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(v.Name), needle) {
		return true
	}
	if v.Name2 != nil && strings.Contains(strings.ToLower(*v.Name2), needle) {
		return true
	}
	if v.Alias != nil && strings.Contains(strings.ToLower(*v.Alias), needle) {
		return true
	}
	return false
}

func (s *MemoryStore) UpdateView(_ context.Context, viewID int, patch core.ViewUpdate) (*core.View, error) {
	if patch.IsEmpty() {
		return nil, core.ErrNoFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.views[viewID]
	if !ok {
		return nil, fmt.Errorf("view %d: %w", viewID, core.ErrNotFound)
	}
	if patch.Name != nil {
		v.Name = *patch.Name
	}
	if patch.Name2 != nil {
		v.Name2 = patch.Name2
	}
	if patch.Alias != nil {
		v.Alias = patch.Alias
	}
	out := *v
	return &out, nil
}

func (s *MemoryStore) DeleteView(_ context.Context, viewID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.views[viewID]; !ok {
		return fmt.Errorf("view %d: %w", viewID, core.ErrNotFound)
	}
	delete(s.views, viewID)
	s.viewOrder = removeInt(s.viewOrder, viewID)

	// Cascade: drop every relation referencing the view as either endpoint.
	for id, r := range s.relations {
		if r.IDView1 == viewID || r.IDView2 == viewID {
			delete(s.relations, id)
			s.relationOrder = removeString(s.relationOrder, id)
		}
	}
	return nil
}

func (s *MemoryStore) CreateRelation(_ context.Context, rel *core.ViewRelation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.views[rel.IDView1]; !ok {
		return fmt.Errorf("view %d: %w", rel.IDView1, core.ErrInvalidReference)
	}
	if _, ok := s.views[rel.IDView2]; !ok {
		return fmt.Errorf("view %d: %w", rel.IDView2, core.ErrInvalidReference)
	}
	r := *rel
	s.relations[rel.ID] = &r
	s.relationOrder = append(s.relationOrder, rel.ID)
	return nil
}

func (s *MemoryStore) GetRelation(_ context.Context, id string) (*core.ViewRelation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.relations[id]
	if !ok {
		return nil, fmt.Errorf("relation %s: %w", id, core.ErrNotFound)
	}
	out := *r
	return &out, nil
}

func (s *MemoryStore) ListRelations(_ context.Context, opts core.ListRelationsOptions) ([]*core.ViewRelation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*core.ViewRelation, 0, len(s.relationOrder))
	for _, id := range s.relationOrder {
		r := s.relations[id]
		if opts.ViewID != nil && r.IDView1 != *opts.ViewID && r.IDView2 != *opts.ViewID {
			continue
		}
		if opts.Search != "" && !strings.Contains(strings.ToLower(r.Relation), strings.ToLower(opts.Search)) {
			continue
		}
		c := *r
		out = append(out, &c)
	}
	return out, nil
}

func (s *MemoryStore) UpdateRelation(_ context.Context, id string, patch core.RelationUpdate) (*core.ViewRelation, error) {
	if patch.IsEmpty() {
		return nil, core.ErrNoFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.relations[id]
	if !ok {
		return nil, fmt.Errorf("relation %s: %w", id, core.ErrNotFound)
	}
	if patch.Relation != nil {
		r.Relation = *patch.Relation
	}
	if patch.Relation2 != nil {
		r.Relation2 = patch.Relation2
	}
	if patch.EdgeWeight != nil {
		r.EdgeWeight = patch.EdgeWeight
	}
	out := *r
	return &out, nil
}

func (s *MemoryStore) DeleteRelation(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.relations[id]; !ok {
		return fmt.Errorf("relation %s: %w", id, core.ErrNotFound)
	}
	delete(s.relations, id)
	s.relationOrder = removeString(s.relationOrder, id)
	return nil
}

func (s *MemoryStore) GraphData(ctx context.Context) (*core.GraphData, error) {
	views, err := s.ListViews(ctx, core.ListViewsOptions{})
	if err != nil {
		return nil, err
	}
	relations, err := s.ListRelations(ctx, core.ListRelationsOptions{})
	if err != nil {
		return nil, err
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ViewID < views[j].ViewID })
	return core.BuildGraph(views, relations), nil
}

func (s *MemoryStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.views = make(map[int]*core.View)
	s.relations = make(map[string]*core.ViewRelation)
	s.viewOrder = nil
	s.relationOrder = nil
	return nil
}

func (s *MemoryStore) Stats(_ context.Context) (*core.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &core.Stats{
		ViewsCount:     int64(len(s.views)),
		RelationsCount: int64(len(s.relations)),
	}, nil
}

func (s *MemoryStore) Close(_ context.Context) error {
	return nil
}

func removeInt(s []int, v int) []int {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

func removeString(s []string, v string) []string {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
