// Package recordstore executes parameterized statements against the
// relational engine backing the travel catalog.
//
// A statement is prepared from query text, bound to positional values and then
// read with First or All, or executed with Run. Statements that target a table
// outside the catalog schema fail softly: reads come back empty and writes
// report Success=false, without an error. Errors are reserved for the engine
// itself and for a bind count that does not match the placeholders.
package recordstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/observability"
)

// Dialect names the SQL flavour. Values match goqu dialect names.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// ErrBindMismatch is returned when the bound value count differs from the
// number of placeholders in the query.
var ErrBindMismatch = errors.New("recordstore: bound values do not match placeholders")

// CatalogTables lists every table the schema migrations create.
var CatalogTables = []string{
	"roles",
	"users",
	"islands",
	"services",
	"packages",
	"bookings",
	"reviews",
	"ferries",
	"ferry_schedules",
	"service_providers",
}

// Result is the outcome of Run.
type Result struct {
	Success      bool
	LastInsertID int64
	RowsAffected int64
}

// Store is a handle on one database. It is safe for concurrent use.
type Store struct {
	db      *sqlx.DB
	dialect Dialect
	tables  map[string]struct{}
	metrics *observability.Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithMetrics records statement durations on the db.query.duration histogram.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithTables replaces the set of tables statements may target.
func WithTables(names ...string) Option {
	return func(s *Store) {
		s.tables = make(map[string]struct{}, len(names))
		for _, n := range names {
			s.tables[n] = struct{}{}
		}
	}
}

// New wraps an open connection pool.
func New(db *sqlx.DB, dialect Dialect, opts ...Option) *Store {
	s := &Store{db: db, dialect: dialect}
	WithTables(CatalogTables...)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dialect returns the SQL flavour of the underlying engine.
func (s *Store) Dialect() Dialect { return s.dialect }

// DB exposes the connection pool for migrations and health checks.
func (s *Store) DB() *sqlx.DB { return s.db }

// Ping verifies the engine is reachable.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// Prepare parses query text and returns an unbound statement. `?`
// placeholders are rewritten to the engine's bind style.
func (s *Store) Prepare(query string) *Statement {
	stripped := stripLiterals(query)
	table := targetTable(stripped)
	_, known := s.tables[table]

	return &Statement{
		store:        s,
		query:        s.db.Rebind(query),
		table:        table,
		known:        known,
		kind:         classify(stripped),
		placeholders: countPlaceholders(stripped),
	}
}

// Batch runs statements in order and stops at the first error. Statements
// that already ran stay applied; there is no enclosing transaction.
func (s *Store) Batch(ctx context.Context, stmts ...*Statement) ([]Result, error) {
	results := make([]Result, 0, len(stmts))
	for i, st := range stmts {
		res, err := st.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("batch statement %d: %w", i, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Statement is a prepared query plus its bound values. Bind returns a copy,
// so one prepared statement can be bound many times.
type Statement struct {
	store        *Store
	query        string
	table        string
	known        bool
	kind         Kind
	placeholders int
	args         []any
}

// Bind attaches positional values in placeholder order.
func (st *Statement) Bind(args ...any) *Statement {
	cp := *st
	cp.args = append([]any(nil), args...)
	return &cp
}

// Table is the target table parsed from the query text.
func (st *Statement) Table() string { return st.table }

// Kind is the statement class parsed from the query text.
func (st *Statement) Kind() Kind { return st.kind }

// SQL is the query text as sent to the engine.
func (st *Statement) SQL() string { return st.query }

func (st *Statement) checkBind() error {
	if len(st.args) != st.placeholders {
		return fmt.Errorf("%w: %d placeholders, %d values (table %q)", ErrBindMismatch, st.placeholders, len(st.args), st.table)
	}
	return nil
}

// First scans the first matching row into dest. It reports false with a nil
// error when no row matches or the table is unknown.
func (st *Statement) First(ctx context.Context, dest any) (bool, error) {
	if !st.known {
		st.logUnknown(ctx)
		return false, nil
	}
	if err := st.checkBind(); err != nil {
		return false, err
	}

	start := time.Now()
	err := st.store.db.GetContext(ctx, dest, st.query, st.args...)
	st.observe(ctx, start)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query %s: %w", st.table, err)
	}
	return true, nil
}

// All scans every matching row into dest, which must point to a slice.
// An unknown table or no matches leave dest as an empty, non-nil slice.
func (st *Statement) All(ctx context.Context, dest any) error {
	if !st.known {
		st.logUnknown(ctx)
		if err := emptySlice(dest); err != nil {
			return err
		}
		reflect.ValueOf(dest).Elem().SetLen(0)
		return nil
	}
	if err := st.checkBind(); err != nil {
		return err
	}

	start := time.Now()
	err := st.store.db.SelectContext(ctx, dest, st.query, st.args...)
	st.observe(ctx, start)

	if err != nil {
		return fmt.Errorf("query %s: %w", st.table, err)
	}
	return emptySlice(dest)
}

// Run executes an insert, update or delete. Inserts report the generated id.
// Non-mutating statements and unknown tables return Success=false.
func (st *Statement) Run(ctx context.Context) (Result, error) {
	if !st.known || !st.kind.Mutating() {
		st.logUnknown(ctx)
		return Result{}, nil
	}
	if err := st.checkBind(); err != nil {
		return Result{}, err
	}

	start := time.Now()
	defer st.observe(ctx, start)

	if st.kind == KindInsert && st.store.dialect == DialectPostgres {
		query := st.query
		if !hasReturning(query) {
			query += " RETURNING id"
		}
		var id int64
		if err := st.store.db.QueryRowxContext(ctx, query, st.args...).Scan(&id); err != nil {
			return Result{}, fmt.Errorf("insert %s: %w", st.table, err)
		}
		return Result{Success: true, LastInsertID: id, RowsAffected: 1}, nil
	}

	res, err := st.store.db.ExecContext(ctx, st.query, st.args...)
	if err != nil {
		return Result{}, fmt.Errorf("%s %s: %w", st.kind, st.table, err)
	}

	out := Result{Success: true}
	if out.RowsAffected, err = res.RowsAffected(); err != nil {
		return Result{}, fmt.Errorf("%s %s: rows affected: %w", st.kind, st.table, err)
	}
	if st.kind == KindInsert {
		if out.LastInsertID, err = res.LastInsertId(); err != nil {
			return Result{}, fmt.Errorf("insert %s: last insert id: %w", st.table, err)
		}
	}
	return out, nil
}

func (st *Statement) observe(ctx context.Context, start time.Time) {
	took := time.Since(start)
	observability.RecordDBMetric(ctx, st.store.metrics, st.kind.String(), st.table, took)
	observability.LoggerFromContext(ctx).Debug().
		Str("table", st.table).
		Str("op", st.kind.String()).
		Dur("took", took).
		Msg("statement executed")
}

func (st *Statement) logUnknown(ctx context.Context) {
	observability.LoggerFromContext(ctx).Debug().
		Str("table", st.table).
		Str("op", st.kind.String()).
		Msg("statement skipped: no writable target table")
}

func emptySlice(dest any) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("recordstore: All needs a pointer to a slice, got %T", dest)
	}
	if v.Elem().IsNil() {
		v.Elem().Set(reflect.MakeSlice(v.Elem().Type(), 0, 0))
	}
	return nil
}
