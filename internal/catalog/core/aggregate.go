// Package core implements the shared mutation-and-validation engine and the
// dynamic paginated query engine used by every entity type in the catalog.
//
// Entity packages supply an attribute struct plus a Descriptor (unique keys,
// references, filterable fields). Everything else lives here once:
// create/update/patch merge semantics, lifecycle transitions, uniqueness
// and referential checks, pagination.
package core

import (
	"time"

	"github.com/google/uuid"
)

// Attributes is the entity-specific payload carried by an aggregate.
// Implementations are plain value structs; Kind names the entity type.
type Attributes interface {
	Kind() string
}

// Aggregate is the unit of mutation and persistence. Identity is immutable
// after creation; attributes are replaced wholesale (Update) or merged
// (Patch); Enabled is toggled only through explicit lifecycle transitions.
//
// Version increments on every successful write. Stores reject a write whose
// version no longer matches the stored record, so two concurrent updates to
// the same aggregate cannot silently lose one of them.
type Aggregate[A Attributes] struct {
	ID        uuid.UUID `json:"id"`
	Attrs     A         `json:"attrs"`
	Enabled   bool      `json:"enabled"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a shallow copy. Attribute structs hold scalars and
// identifier pointers only, so a shallow copy is a safe working copy for
// the engine's validate-then-mutate flow.
func (a *Aggregate[A]) Clone() *Aggregate[A] {
	cp := *a
	return &cp
}
