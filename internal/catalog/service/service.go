// Package service orchestrates the reference data engine per entity type:
// field-level validation before any mutation, read-through caching on point
// lookups, metrics and audit-style logging around every write.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"refdata/internal/catalog/cache"
	"refdata/internal/catalog/core"
	"refdata/internal/platform/metrics"
	"refdata/pkg/optional"
	"refdata/pkg/requestcontext"
)

// Attributes is the entity contract this layer requires on top of the
// engine's: field-level validation with aggregated per-field errors.
type Attributes interface {
	core.Attributes
	Validate() error
}

// Patch merges supplied fields over current attributes and reports which
// fields were supplied.
type Patch[A Attributes] interface {
	Apply(A) (A, []string)
}

// Service exposes the write and query operations for one entity type.
type Service[A Attributes] struct {
	engine  *core.Engine[A]
	cache   *cache.Cache[A]
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option[A Attributes] func(*Service[A])

func WithLogger[A Attributes](logger *slog.Logger) Option[A] {
	return func(s *Service[A]) { s.logger = logger }
}

func WithCache[A Attributes](c *cache.Cache[A]) Option[A] {
	return func(s *Service[A]) { s.cache = c }
}

func WithMetrics[A Attributes](m *metrics.Metrics) Option[A] {
	return func(s *Service[A]) { s.metrics = m }
}

// New constructs a Service over a configured engine.
func New[A Attributes](engine *core.Engine[A], opts ...Option[A]) *Service[A] {
	s := &Service[A]{engine: engine}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service[A]) Create(ctx context.Context, a A) (*core.Aggregate[A], error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	agg, err := s.engine.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	s.recordMutation("create")
	s.logAudit(ctx, s.engine.Kind()+".created", "id", agg.ID.String())
	return agg, nil
}

func (s *Service[A]) Update(ctx context.Context, id uuid.UUID, a A, enabled optional.Value[bool]) (*core.Aggregate[A], error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	agg, err := s.engine.Update(ctx, id, a, enabled)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	s.recordMutation("update")
	s.logAudit(ctx, s.engine.Kind()+".updated", "id", id.String())
	return agg, nil
}

func (s *Service[A]) Patch(ctx context.Context, id uuid.UUID, patch Patch[A], enabled optional.Value[bool]) (*core.Aggregate[A], error) {
	agg, err := s.engine.Patch(ctx, id, func(cur A) (A, []string, error) {
		merged, supplied := patch.Apply(cur)
		if err := merged.Validate(); err != nil {
			return merged, nil, err
		}
		return merged, supplied, nil
	}, enabled)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	s.recordMutation("patch")
	s.logAudit(ctx, s.engine.Kind()+".patched", "id", id.String())
	return agg, nil
}

func (s *Service[A]) Disable(ctx context.Context, id uuid.UUID) (*core.Aggregate[A], error) {
	return s.setEnabled(ctx, id, false)
}

func (s *Service[A]) Enable(ctx context.Context, id uuid.UUID) (*core.Aggregate[A], error) {
	return s.setEnabled(ctx, id, true)
}

func (s *Service[A]) setEnabled(ctx context.Context, id uuid.UUID, enabled bool) (*core.Aggregate[A], error) {
	agg, err := s.engine.SetEnabled(ctx, id, enabled)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	op := "disable"
	event := ".disabled"
	if enabled {
		op = "enable"
		event = ".activated"
	}
	s.recordMutation(op)
	s.logAudit(ctx, s.engine.Kind()+event, "id", id.String())
	return agg, nil
}

// Get serves point lookups through the cache when one is configured.
// Cache failures degrade to a store read.
func (s *Service[A]) Get(ctx context.Context, id uuid.UUID) (*core.Aggregate[A], error) {
	if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
		return cached, nil
	} else if err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "cache read failed", "kind", s.engine.Kind(), "error", err)
	}
	agg, err := s.engine.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, agg); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "cache write failed", "kind", s.engine.Kind(), "error", err)
	}
	return agg, nil
}

func (s *Service[A]) List(ctx context.Context, c *core.Criteria) (*core.Page[A], error) {
	start := time.Now()
	page, err := s.engine.List(ctx, c)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveQuery(s.engine.Kind(), time.Since(start))
	}
	return page, nil
}

func (s *Service[A]) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Invalidate(ctx, id); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "cache invalidation failed", "kind", s.engine.Kind(), "error", err)
	}
}

func (s *Service[A]) recordMutation(op string) {
	if s.metrics != nil {
		s.metrics.RecordMutation(s.engine.Kind(), op)
	}
}

func (s *Service[A]) logAudit(ctx context.Context, event string, attributes ...any) {
	if s.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	if subject := requestcontext.Subject(ctx); subject != "" {
		attributes = append(attributes, "subject", subject)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
}
