package core

import (
	"context"

	"github.com/google/uuid"
)

// Store is the sole persistence contract the engine depends on.
// Implementations return sentinel.ErrNotFound for missing records,
// sentinel.ErrAlreadyUsed for primary-key collisions on Insert and
// sentinel.ErrStale for version mismatches on Update.
//
// FindOneByCondition and FindAllByCondition take raw conditions with no
// default enabled filter, because uniqueness probes must see disabled
// records too. FindPage applies the criteria's effective filters.
type Store[A Attributes] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Aggregate[A], error)
	FindOneByCondition(ctx context.Context, cond Condition) (*Aggregate[A], error)
	FindAllByCondition(ctx context.Context, cond Condition) ([]*Aggregate[A], error)
	FindPage(ctx context.Context, c *Criteria) ([]*Aggregate[A], int, error)
	Insert(ctx context.Context, a *Aggregate[A]) error
	Update(ctx context.Context, a *Aggregate[A]) error
}

// UnitOfWork brackets one load-validate-mutate-commit cycle. Events emitted
// by a mutation are considered durable only once RunInTx returns nil.
type UnitOfWork interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type nopUnitOfWork struct{}

func (nopUnitOfWork) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// NewNopUnitOfWork returns a pass-through unit of work for stores that
// commit each operation directly (in-memory store, tests).
func NewNopUnitOfWork() UnitOfWork { return nopUnitOfWork{} }
