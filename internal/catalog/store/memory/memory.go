// Package memory provides a mutex-guarded in-memory implementation of the
// catalog store contract. It backs unit tests and local development; the
// postgres package is the production implementation.
package memory

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"refdata/internal/catalog/core"
	"refdata/pkg/platform/sentinel"
)

// Store keeps aggregates of one entity type in process memory. Reads return
// clones so callers can never alias the stored record.
type Store[A core.Attributes] struct {
	mu   sync.RWMutex
	desc core.Descriptor[A]
	recs map[uuid.UUID]*core.Aggregate[A]
}

func New[A core.Attributes](desc core.Descriptor[A]) *Store[A] {
	return &Store[A]{
		desc: desc,
		recs: make(map[uuid.UUID]*core.Aggregate[A]),
	}
}

func (s *Store[A]) FindByID(ctx context.Context, id uuid.UUID) (*core.Aggregate[A], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *Store[A]) FindOneByCondition(ctx context.Context, cond core.Condition) (*core.Aggregate[A], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.sorted() {
		if s.matchesAll(rec, cond) {
			return rec.Clone(), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *Store[A]) FindAllByCondition(ctx context.Context, cond core.Condition) ([]*core.Aggregate[A], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*core.Aggregate[A]
	for _, rec := range s.sorted() {
		if s.matchesAll(rec, cond) {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

func (s *Store[A]) FindPage(ctx context.Context, c *core.Criteria) ([]*core.Aggregate[A], int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	cond := c.Filters()
	var matched []*core.Aggregate[A]
	for _, rec := range s.sorted() {
		if s.matchesAll(rec, cond) {
			matched = append(matched, rec)
		}
	}

	total := len(matched)
	start := c.Offset()
	if start > total {
		start = total
	}
	end := start + c.PageSize()
	if end > total {
		end = total
	}
	page := make([]*core.Aggregate[A], 0, end-start)
	for _, rec := range matched[start:end] {
		page = append(page, rec.Clone())
	}
	return page, total, nil
}

func (s *Store[A]) Insert(ctx context.Context, a *core.Aggregate[A]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recs[a.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.recs[a.ID] = a.Clone()
	return nil
}

func (s *Store[A]) Update(ctx context.Context, a *core.Aggregate[A]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.recs[a.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if stored.Version != a.Version {
		return sentinel.ErrStale
	}
	a.Version++
	s.recs[a.ID] = a.Clone()
	return nil
}

// sorted returns records ordered by creation time then id, so pagination is
// deterministic across identical queries. Callers must hold the lock.
func (s *Store[A]) sorted() []*core.Aggregate[A] {
	out := make([]*core.Aggregate[A], 0, len(s.recs))
	for _, rec := range s.recs {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func (s *Store[A]) matchesAll(rec *core.Aggregate[A], cond core.Condition) bool {
	for _, f := range cond {
		if !s.matches(rec, f) {
			return false
		}
	}
	return true
}

func (s *Store[A]) matches(rec *core.Aggregate[A], f core.Filter) bool {
	var value any
	if f.Field == core.FieldEnabled {
		value = rec.Enabled
	} else {
		get, ok := s.desc.Fields[f.Field]
		if !ok {
			return false
		}
		value = get(rec.Attrs)
	}

	switch f.Op {
	case core.OpEq:
		return reflect.DeepEqual(value, f.Value)
	case core.OpGte:
		cmp, ok := compareValues(value, f.Value)
		return ok && cmp >= 0
	case core.OpLte:
		cmp, ok := compareValues(value, f.Value)
		return ok && cmp <= 0
	default:
		return false
	}
}

func compareValues(a, b any) (int, bool) {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), true
		}
	case int:
		if y, ok := b.(int); ok {
			return compareOrdered(x, y), true
		}
	case int64:
		if y, ok := b.(int64); ok {
			return compareOrdered(x, y), true
		}
	case float64:
		if y, ok := b.(float64); ok {
			return compareOrdered(x, y), true
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y), true
		}
	}
	return 0, false
}

func compareOrdered[T int | int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
