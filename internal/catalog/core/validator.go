package core

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"

	dErrors "refdata/pkg/domain-errors"
	"refdata/pkg/platform/sentinel"
)

// Validator runs the uniqueness and referential checks shared by Create,
// Update and Patch. Checks run in a fixed order, unique keys first and
// references after, each in declared order, and the first violation
// short-circuits. When a request carries both a duplicate key and a missing
// reference, the caller therefore always sees the duplicate-key conflict.
type Validator[A Attributes] struct {
	desc  Descriptor[A]
	store Store[A]
}

func NewValidator[A Attributes](desc Descriptor[A], store Store[A]) *Validator[A] {
	return &Validator[A]{desc: desc, store: store}
}

// ValidateMutation verifies that applying candidate to the aggregate
// identified by selfID would violate no uniqueness key and leave no dangling
// reference.
//
// current is nil for Create. supplied limits checks to the named fields
// (Patch semantics); nil means every field counts as supplied. A check is
// also skipped when the candidate value equals the current persisted value:
// a no-op change is always allowed.
func (v *Validator[A]) ValidateMutation(ctx context.Context, selfID uuid.UUID, candidate A, current *A, supplied []string) error {
	suppliedSet := toSet(supplied)

	for _, key := range v.desc.UniqueKeys {
		if !anySupplied(suppliedSet, key.Fields) {
			continue
		}
		values := key.Values(candidate)
		if current != nil && reflect.DeepEqual(values, key.Values(*current)) {
			continue
		}
		if err := v.checkUnique(ctx, selfID, key, values); err != nil {
			return err
		}
	}

	for _, ref := range v.desc.References {
		if !fieldSupplied(suppliedSet, ref.Field) {
			continue
		}
		target := ref.Value(candidate)
		if target == nil {
			continue
		}
		if current != nil {
			if cur := ref.Value(*current); cur != nil && *cur == *target {
				continue
			}
		}
		exists, err := ref.Exists(ctx, *target)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("failed to resolve %s", ref.Field))
		}
		if !exists {
			return dErrors.New(dErrors.CodeNotFound,
				fmt.Sprintf("%s %q referenced by %s does not exist", ref.Target, target.String(), ref.Field)).
				WithField(ref.Field, target.String())
		}
	}

	return nil
}

func (v *Validator[A]) checkUnique(ctx context.Context, selfID uuid.UUID, key UniqueKey[A], values []any) error {
	cond := make(Condition, 0, len(key.Fields))
	for i, field := range key.Fields {
		cond = append(cond, Eq(field, values[i]))
	}
	existing, err := v.store.FindOneByCondition(ctx, cond)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "uniqueness probe failed")
	}
	if existing.ID == selfID {
		return nil
	}

	conflict := dErrors.New(dErrors.CodeConflict,
		fmt.Sprintf("%s with %s already exists", v.desc.Kind, describeKey(key.Fields, values)))
	for i, field := range key.Fields {
		conflict = conflict.WithField(field, fmt.Sprintf("%v", values[i]))
	}
	return conflict
}

// EnsureNoActiveDependents guards Disable: it fails with a conflict when any
// still-enabled aggregate of another type references the given id.
func (v *Validator[A]) EnsureNoActiveDependents(ctx context.Context, id uuid.UUID) error {
	for _, dep := range v.desc.Dependents {
		exists, err := dep.Exists(ctx, id)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "dependent check failed")
		}
		if exists {
			return dErrors.New(dErrors.CodeConflict,
				fmt.Sprintf("%s is still referenced by %s", v.desc.Kind, dep.Description))
		}
	}
	return nil
}

func describeKey(fields []string, values []any) string {
	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s %q", field, fmt.Sprintf("%v", values[i]))
	}
	return strings.Join(parts, ", ")
}

func toSet(fields []string) map[string]bool {
	if fields == nil {
		return nil
	}
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

// fieldSupplied treats a nil set as "everything supplied".
func fieldSupplied(set map[string]bool, field string) bool {
	return set == nil || set[field]
}

func anySupplied(set map[string]bool, fields []string) bool {
	if set == nil {
		return true
	}
	for _, f := range fields {
		if set[f] {
			return true
		}
	}
	return false
}
