package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	dErrors "refdata/pkg/domain-errors"
	"refdata/pkg/optional"
	"refdata/pkg/platform/sentinel"
	"refdata/pkg/requestcontext"
)

// Engine implements the four write operations plus point and paged reads for
// one entity type. All operations are bounded and synchronous; cancellation
// of the inbound context aborts before anything is committed.
type Engine[A Attributes] struct {
	desc      Descriptor[A]
	store     Store[A]
	validator *Validator[A]
	uow       UnitOfWork
	publisher EventPublisher
	logger    *slog.Logger
	tracer    trace.Tracer
}

// EngineOption configures optional engine collaborators.
type EngineOption[A Attributes] func(*Engine[A])

// WithUnitOfWork sets the commit boundary. Defaults to a pass-through for
// stores that commit per operation.
func WithUnitOfWork[A Attributes](uow UnitOfWork) EngineOption[A] {
	return func(e *Engine[A]) { e.uow = uow }
}

// WithPublisher drains committed events to the given sink.
func WithPublisher[A Attributes](p EventPublisher) EngineOption[A] {
	return func(e *Engine[A]) { e.publisher = p }
}

func WithLogger[A Attributes](logger *slog.Logger) EngineOption[A] {
	return func(e *Engine[A]) { e.logger = logger }
}

// NewEngine builds an engine for one entity type from its descriptor.
func NewEngine[A Attributes](desc Descriptor[A], store Store[A], opts ...EngineOption[A]) *Engine[A] {
	e := &Engine[A]{
		desc:      desc,
		store:     store,
		validator: NewValidator(desc, store),
		uow:       NewNopUnitOfWork(),
		tracer:    otel.Tracer("refdata/catalog"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validator exposes the engine's validator for callers that need the
// reverse dependent check in isolation.
func (e *Engine[A]) Validator() *Validator[A] { return e.validator }

// Kind returns the entity kind this engine serves.
func (e *Engine[A]) Kind() string { return e.desc.Kind }

// Create allocates identity, applies the attributes, enables the aggregate
// and emits a Created event. Field-level validation is the caller's job;
// uniqueness and reference checks run here.
func (e *Engine[A]) Create(ctx context.Context, attrs A) (*Aggregate[A], error) {
	ctx, span := e.startSpan(ctx, "create")
	defer span.End()

	now := requestcontext.Now(ctx)
	var agg *Aggregate[A]
	var events []Event
	err := e.uow.RunInTx(ctx, func(ctx context.Context) error {
		if err := e.validator.ValidateMutation(ctx, uuid.Nil, attrs, nil, nil); err != nil {
			return err
		}
		agg = &Aggregate[A]{
			ID:        uuid.New(),
			Attrs:     attrs,
			Enabled:   true,
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := e.store.Insert(ctx, agg); err != nil {
			return e.translateWrite(err)
		}
		events = []Event{e.newEvent(EventCreated, agg.ID, now, nil)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.publish(ctx, events)
	return agg, nil
}

// Update replaces every attribute wholesale. An explicit enabled value that
// differs from the current state goes through the dedicated lifecycle
// transition so the correct event fires (and the disable dependent check
// runs).
func (e *Engine[A]) Update(ctx context.Context, id uuid.UUID, attrs A, enabled optional.Value[bool]) (*Aggregate[A], error) {
	ctx, span := e.startSpan(ctx, "update")
	defer span.End()

	now := requestcontext.Now(ctx)
	var agg *Aggregate[A]
	var events []Event
	err := e.uow.RunInTx(ctx, func(ctx context.Context) error {
		current, err := e.load(ctx, id)
		if err != nil {
			return err
		}
		if err := e.validator.ValidateMutation(ctx, id, attrs, &current.Attrs, nil); err != nil {
			return err
		}

		next := current.Clone()
		next.Attrs = attrs
		next.UpdatedAt = now
		events = []Event{e.newEvent(EventUpdated, id, now, nil)}

		if target, ok := enabled.Get(); ok && target != current.Enabled {
			if !target {
				if err := e.validator.EnsureNoActiveDependents(ctx, id); err != nil {
					return err
				}
			}
			next.Enabled = target
			events = append(events, e.lifecycleEvent(id, target, now))
		}

		if err := e.store.Update(ctx, next); err != nil {
			return e.translateWrite(err)
		}
		agg = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.publish(ctx, events)
	return agg, nil
}

// Patch merges the supplied fields into the current attributes: a supplied
// field replaces the current value (explicit zero included), an omitted
// field keeps it. apply returns the merged attributes plus the names of the
// supplied fields, or an error when the merged result fails field-level
// validation; mutation checks run only against the supplied fields. A patch
// that changes nothing writes nothing and emits nothing.
func (e *Engine[A]) Patch(ctx context.Context, id uuid.UUID, apply func(A) (A, []string, error), enabled optional.Value[bool]) (*Aggregate[A], error) {
	ctx, span := e.startSpan(ctx, "patch")
	defer span.End()

	now := requestcontext.Now(ctx)
	var agg *Aggregate[A]
	var events []Event
	err := e.uow.RunInTx(ctx, func(ctx context.Context) error {
		current, err := e.load(ctx, id)
		if err != nil {
			return err
		}

		merged, supplied, err := apply(current.Attrs)
		if err != nil {
			return err
		}
		if err := e.validator.ValidateMutation(ctx, id, merged, &current.Attrs, supplied); err != nil {
			return err
		}

		changed := e.changedFields(current.Attrs, merged, supplied)
		target, transition := enabled.Get()
		transition = transition && target != current.Enabled

		if len(changed) == 0 && !transition {
			agg = current
			return nil
		}

		next := current.Clone()
		next.Attrs = merged
		next.UpdatedAt = now
		if len(changed) > 0 {
			events = append(events, e.newEvent(EventPatched, id, now, changed))
		}
		if transition {
			if !target {
				if err := e.validator.EnsureNoActiveDependents(ctx, id); err != nil {
					return err
				}
			}
			next.Enabled = target
			events = append(events, e.lifecycleEvent(id, target, now))
		}

		if err := e.store.Update(ctx, next); err != nil {
			return e.translateWrite(err)
		}
		agg = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.publish(ctx, events)
	return agg, nil
}

// SetEnabled applies an explicit Enable or Disable. Transitions are
// idempotent: an aggregate already in the target state is returned as-is
// with no event. Disabling first verifies no enabled dependent still
// references this aggregate.
func (e *Engine[A]) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) (*Aggregate[A], error) {
	ctx, span := e.startSpan(ctx, "set_enabled")
	defer span.End()

	now := requestcontext.Now(ctx)
	var agg *Aggregate[A]
	var events []Event
	err := e.uow.RunInTx(ctx, func(ctx context.Context) error {
		current, err := e.load(ctx, id)
		if err != nil {
			return err
		}
		if current.Enabled == enabled {
			agg = current
			return nil
		}
		if !enabled {
			if err := e.validator.EnsureNoActiveDependents(ctx, id); err != nil {
				return err
			}
		}

		next := current.Clone()
		next.Enabled = enabled
		next.UpdatedAt = now
		if err := e.store.Update(ctx, next); err != nil {
			return e.translateWrite(err)
		}
		agg = next
		events = []Event{e.lifecycleEvent(id, enabled, now)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.publish(ctx, events)
	return agg, nil
}

// Get loads one aggregate by id.
func (e *Engine[A]) Get(ctx context.Context, id uuid.UUID) (*Aggregate[A], error) {
	return e.load(ctx, id)
}

// List runs a paged query over the criteria's effective filters.
func (e *Engine[A]) List(ctx context.Context, c *Criteria) (*Page[A], error) {
	ctx, span := e.startSpan(ctx, "list")
	defer span.End()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	items, total, err := e.store.FindPage(ctx, c)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("failed to list %s records", e.desc.Kind))
	}
	return NewPage(items, total, c), nil
}

func (e *Engine[A]) load(ctx context.Context, id uuid.UUID) (*Aggregate[A], error) {
	agg, err := e.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("%s not found", e.desc.Kind))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("failed to load %s", e.desc.Kind))
	}
	return agg, nil
}

func (e *Engine[A]) changedFields(current, merged A, supplied []string) []string {
	changed := make([]string, 0, len(supplied))
	for _, field := range supplied {
		get, ok := e.desc.Fields[field]
		if !ok {
			changed = append(changed, field)
			continue
		}
		if !reflect.DeepEqual(get(current), get(merged)) {
			changed = append(changed, field)
		}
	}
	return changed
}

func (e *Engine[A]) translateWrite(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrStale):
		return dErrors.New(dErrors.CodeConflict, fmt.Sprintf("%s was modified concurrently", e.desc.Kind))
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.New(dErrors.CodeConflict, fmt.Sprintf("%s already exists", e.desc.Kind))
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("failed to persist %s", e.desc.Kind))
	}
}

func (e *Engine[A]) newEvent(t EventType, id uuid.UUID, at time.Time, changed []string) Event {
	return Event{
		Kind:          e.desc.Kind,
		Type:          t,
		AggregateID:   id,
		OccurredAt:    at,
		ChangedFields: changed,
	}
}

func (e *Engine[A]) lifecycleEvent(id uuid.UUID, enabled bool, at time.Time) Event {
	t := EventDisabled
	if enabled {
		t = EventActivated
	}
	return e.newEvent(t, id, at, nil)
}

func (e *Engine[A]) publish(ctx context.Context, events []Event) {
	if e.publisher == nil || len(events) == 0 {
		return
	}
	if err := e.publisher.Publish(ctx, events); err != nil && e.logger != nil {
		e.logger.WarnContext(ctx, "failed to publish domain events",
			"kind", e.desc.Kind,
			"count", len(events),
			"error", err,
		)
	}
}

func (e *Engine[A]) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, "catalog."+op,
		trace.WithAttributes(attribute.String("entity.kind", e.desc.Kind)))
}
