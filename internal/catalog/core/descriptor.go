package core

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"refdata/pkg/platform/sentinel"
)

// FieldGetter extracts a filterable/comparable field value from an attribute
// struct. Getters return normalized scalars (string, bool, int64, float64,
// time.Time, uuid.UUID) or nil for an unset optional reference.
type FieldGetter[A Attributes] func(A) any

// ExistsFunc reports whether a record with the given id exists in some other
// entity's store. Existence ignores the enabled flag: references to disabled
// records stay valid.
type ExistsFunc func(ctx context.Context, id uuid.UUID) (bool, error)

// UniqueKey declares one uniqueness constraint. Fields lists the constituent
// field names in declared order; Values extracts the corresponding tuple from
// an attribute struct. Uniqueness spans enabled and disabled records.
type UniqueKey[A Attributes] struct {
	Fields []string
	Values func(A) []any
}

// Reference declares one foreign-key field. Value returns nil when the
// optional reference is unset. Exists resolves against the target entity's
// store.
type Reference[A Attributes] struct {
	Field  string
	Target string
	Value  func(A) *uuid.UUID
	Exists ExistsFunc
}

// DependentCheck guards Disable: it reports whether any still-enabled
// aggregate of another type holds a reference to the given id.
type DependentCheck struct {
	Description string
	Exists      ExistsFunc
}

// Descriptor is the declarative per-entity configuration that drives the
// validator, the engine and the in-memory store. Check order is fixed:
// unique keys first (declared order), then references (declared order).
type Descriptor[A Attributes] struct {
	Kind       string
	UniqueKeys []UniqueKey[A]
	References []Reference[A]
	Dependents []DependentCheck
	Fields     map[string]FieldGetter[A]
}

// ExistsInStore adapts a store's point lookup into an ExistsFunc for
// reference resolution.
func ExistsInStore[A Attributes](store Store[A]) ExistsFunc {
	return func(ctx context.Context, id uuid.UUID) (bool, error) {
		_, err := store.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	}
}

// EnabledReferrerExists builds an ExistsFunc probing for an enabled aggregate
// whose field equals the given id. Used as the reverse lookup behind
// DependentCheck.
func EnabledReferrerExists[A Attributes](store Store[A], field string) ExistsFunc {
	return func(ctx context.Context, id uuid.UUID) (bool, error) {
		_, err := store.FindOneByCondition(ctx, Condition{
			Eq(field, id),
			Eq(FieldEnabled, true),
		})
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	}
}
