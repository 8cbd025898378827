package core

import (
	dErrors "refdata/pkg/domain-errors"
)

// Op is a filter comparison operator. There is no OR composition: all
// filters on a criteria combine with logical AND.
type Op string

const (
	OpEq  Op = "eq"
	OpGte Op = "gte"
	OpLte Op = "lte"
)

// FieldEnabled is the pseudo-field addressing the aggregate lifecycle flag.
// Stores resolve it against Aggregate.Enabled rather than the attributes.
const FieldEnabled = "enabled"

// Filter constrains a single field.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Condition is a conjunction of filters.
type Condition []Filter

// Eq builds an exact-match filter.
func Eq(field string, value any) Filter { return Filter{Field: field, Op: OpEq, Value: value} }

// Gte builds a lower-bound filter.
func Gte(field string, value any) Filter { return Filter{Field: field, Op: OpGte, Value: value} }

// Lte builds an upper-bound filter.
func Lte(field string, value any) Filter { return Filter{Field: field, Op: OpLte, Value: value} }

// Pagination defaults. Callers may omit page number and size entirely.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
)

// Criteria accumulates optional filters plus a result window. An absent
// filter imposes no constraint. Unless the caller filters on the enabled
// flag explicitly, list queries see only enabled records.
type Criteria struct {
	filters    Condition
	pageNumber int
	pageSize   int
	enabledSet bool
}

// NewCriteria starts an empty criteria with default pagination.
func NewCriteria() *Criteria {
	return &Criteria{pageNumber: DefaultPageNumber, pageSize: DefaultPageSize}
}

// Eq adds an exact-match filter.
func (c *Criteria) Eq(field string, value any) *Criteria {
	if field == FieldEnabled {
		c.enabledSet = true
	}
	c.filters = append(c.filters, Eq(field, value))
	return c
}

// Min adds a one-sided lower bound.
func (c *Criteria) Min(field string, value any) *Criteria {
	c.filters = append(c.filters, Gte(field, value))
	return c
}

// Max adds a one-sided upper bound.
func (c *Criteria) Max(field string, value any) *Criteria {
	c.filters = append(c.filters, Lte(field, value))
	return c
}

// Enabled filters on the lifecycle flag explicitly, overriding the default.
func (c *Criteria) Enabled(enabled bool) *Criteria {
	return c.Eq(FieldEnabled, enabled)
}

// Page sets the result window. Zero values keep the defaults.
func (c *Criteria) Page(number, size int) *Criteria {
	if number != 0 {
		c.pageNumber = number
	}
	if size != 0 {
		c.pageSize = size
	}
	return c
}

// Validate enforces the field-level pagination invariants.
func (c *Criteria) Validate() error {
	fields := make(map[string]string)
	if c.pageNumber < 1 {
		fields["page_number"] = "must be at least 1"
	}
	if c.pageSize < 1 {
		fields["page_size"] = "must be at least 1"
	}
	if len(fields) > 0 {
		return dErrors.NewValidation(fields)
	}
	return nil
}

// Filters returns the effective conjunction, appending the default
// enabled=true filter when the caller did not constrain the flag.
func (c *Criteria) Filters() Condition {
	if c.enabledSet {
		return c.filters
	}
	out := make(Condition, len(c.filters), len(c.filters)+1)
	copy(out, c.filters)
	return append(out, Eq(FieldEnabled, true))
}

// PageNumber returns the 1-based page number.
func (c *Criteria) PageNumber() int { return c.pageNumber }

// PageSize returns the window size.
func (c *Criteria) PageSize() int { return c.pageSize }

// Offset returns the 0-based item offset for SQL stores.
func (c *Criteria) Offset() int { return (c.pageNumber - 1) * c.pageSize }

// Page is one bounded result window. An empty result set is a valid page
// with zero totals, never an error.
type Page[A Attributes] struct {
	Items      []*Aggregate[A] `json:"items"`
	TotalCount int             `json:"total_count"`
	TotalPages int             `json:"total_pages"`
	PageNumber int             `json:"page_number"`
	PageSize   int             `json:"page_size"`
}

// NewPage assembles a page, deriving TotalPages = ceil(total/size).
func NewPage[A Attributes](items []*Aggregate[A], total int, c *Criteria) *Page[A] {
	totalPages := 0
	if total > 0 {
		totalPages = (total + c.PageSize() - 1) / c.PageSize()
	}
	if items == nil {
		items = []*Aggregate[A]{}
	}
	return &Page[A]{
		Items:      items,
		TotalCount: total,
		TotalPages: totalPages,
		PageNumber: c.PageNumber(),
		PageSize:   c.PageSize(),
	}
}
