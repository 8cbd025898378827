// Package postgres implements the catalog store contract on PostgreSQL.
// One generic Store serves every entity type; a per-entity Mapper supplies
// the table name, attribute columns and scan plumbing.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"refdata/internal/catalog/core"
	"refdata/pkg/platform/sentinel"
	txcontext "refdata/pkg/platform/tx"
)

// Mapper describes how one entity type maps onto its table. Columns and the
// slices produced by Values / ScanDest share one fixed order.
type Mapper[A core.Attributes] struct {
	// Table is the entity table name.
	Table string
	// Columns lists the attribute columns (metadata columns are shared).
	Columns []string
	// Values extracts the attribute column values for writes.
	Values func(A) []any
	// ScanDest returns scan destinations for the attribute columns plus a
	// finisher assembling the attribute struct after the row is scanned.
	ScanDest func() ([]any, func() A)
}

// metaColumns are shared by every entity table, in scan order.
const metaColumns = "id, enabled, version, created_at, updated_at"

// Store is a generic PostgreSQL-backed catalog store. It joins a
// transaction carried in context (pkg/platform/tx) when one is present.
type Store[A core.Attributes] struct {
	db     *sql.DB
	mapper Mapper[A]
}

func New[A core.Attributes](db *sql.DB, mapper Mapper[A]) *Store[A] {
	return &Store[A]{db: db, mapper: mapper}
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store[A]) q(ctx context.Context) querier {
	if sqlTx, ok := txcontext.From(ctx); ok {
		return sqlTx
	}
	return s.db
}

func (s *Store[A]) selectClause() string {
	cols := metaColumns
	if len(s.mapper.Columns) > 0 {
		cols += ", " + strings.Join(s.mapper.Columns, ", ")
	}
	return fmt.Sprintf("SELECT %s FROM %s", cols, s.mapper.Table)
}

func (s *Store[A]) FindByID(ctx context.Context, id uuid.UUID) (*core.Aggregate[A], error) {
	row := s.q(ctx).QueryRowContext(ctx, s.selectClause()+" WHERE id = $1", id)
	return s.scanRow(row)
}

func (s *Store[A]) FindOneByCondition(ctx context.Context, cond core.Condition) (*core.Aggregate[A], error) {
	where, args := buildWhere(cond, 1)
	query := s.selectClause() + where + " ORDER BY created_at, id LIMIT 1"
	row := s.q(ctx).QueryRowContext(ctx, query, args...)
	return s.scanRow(row)
}

func (s *Store[A]) FindAllByCondition(ctx context.Context, cond core.Condition) ([]*core.Aggregate[A], error) {
	where, args := buildWhere(cond, 1)
	query := s.selectClause() + where + " ORDER BY created_at, id"
	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.mapper.Table, err)
	}
	defer rows.Close()
	return s.scanRows(rows)
}

func (s *Store[A]) FindPage(ctx context.Context, c *core.Criteria) ([]*core.Aggregate[A], int, error) {
	cond := c.Filters()
	where, args := buildWhere(cond, 1)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", s.mapper.Table, where)
	if err := s.q(ctx).QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", s.mapper.Table, err)
	}

	n := len(args)
	query := fmt.Sprintf("%s%s ORDER BY created_at, id LIMIT $%d OFFSET $%d",
		s.selectClause(), where, n+1, n+2)
	rows, err := s.q(ctx).QueryContext(ctx, query, append(args, c.PageSize(), c.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("page %s: %w", s.mapper.Table, err)
	}
	defer rows.Close()

	items, err := s.scanRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store[A]) Insert(ctx context.Context, a *core.Aggregate[A]) error {
	cols := []string{"id", "enabled", "version", "created_at", "updated_at"}
	cols = append(cols, s.mapper.Columns...)
	args := []any{a.ID, a.Enabled, a.Version, a.CreatedAt, a.UpdatedAt}
	args = append(args, s.mapper.Values(a.Attrs)...)

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.mapper.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	if _, err := s.q(ctx).ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert %s: %w", s.mapper.Table, err)
	}
	return nil
}

func (s *Store[A]) Update(ctx context.Context, a *core.Aggregate[A]) error {
	sets := []string{"enabled = $2", "version = version + 1", "updated_at = $3"}
	args := []any{a.ID, a.Enabled, a.UpdatedAt}
	values := s.mapper.Values(a.Attrs)
	for i, col := range s.mapper.Columns {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)+1))
		args = append(args, values[i])
	}
	args = append(args, a.Version)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $1 AND version = $%d",
		s.mapper.Table, strings.Join(sets, ", "), len(args))

	res, err := s.q(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("update %s: %w", s.mapper.Table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s: %w", s.mapper.Table, err)
	}
	if affected == 0 {
		// Distinguish a missing row from a version mismatch.
		var exists bool
		probe := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)", s.mapper.Table)
		if err := s.q(ctx).QueryRowContext(ctx, probe, a.ID).Scan(&exists); err != nil {
			return fmt.Errorf("update probe %s: %w", s.mapper.Table, err)
		}
		if !exists {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrStale
	}
	a.Version++
	return nil
}

func (s *Store[A]) scanRow(row *sql.Row) (*core.Aggregate[A], error) {
	var agg core.Aggregate[A]
	dests, finish := s.mapper.ScanDest()
	all := append([]any{&agg.ID, &agg.Enabled, &agg.Version, &agg.CreatedAt, &agg.UpdatedAt}, dests...)
	if err := row.Scan(all...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan %s: %w", s.mapper.Table, err)
	}
	agg.Attrs = finish()
	return &agg, nil
}

func (s *Store[A]) scanRows(rows *sql.Rows) ([]*core.Aggregate[A], error) {
	var out []*core.Aggregate[A]
	for rows.Next() {
		var agg core.Aggregate[A]
		dests, finish := s.mapper.ScanDest()
		all := append([]any{&agg.ID, &agg.Enabled, &agg.Version, &agg.CreatedAt, &agg.UpdatedAt}, dests...)
		if err := rows.Scan(all...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.mapper.Table, err)
		}
		agg.Attrs = finish()
		out = append(out, &agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.mapper.Table, err)
	}
	return out, nil
}

func buildWhere(cond core.Condition, firstArg int) (string, []any) {
	if len(cond) == 0 {
		return "", nil
	}
	clauses := make([]string, 0, len(cond))
	args := make([]any, 0, len(cond))
	for _, f := range cond {
		op := "="
		switch f.Op {
		case core.OpGte:
			op = ">="
		case core.OpLte:
			op = "<="
		}
		clauses = append(clauses, fmt.Sprintf("%s %s $%d", f.Field, op, firstArg+len(args)))
		args = append(args, f.Value)
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
