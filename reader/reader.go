package reader

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/db2django/db2django/logger"
	"github.com/db2django/db2django/schema"
)

var (
	// ErrUnknownDriver is returned when no reader is registered for the
	// requested driver name.
	ErrUnknownDriver = errors.New("unknown driver")
	// ErrNoTables is returned when the source database contains no user
	// tables.
	ErrNoTables = errors.New("no tables found")
)

// Reader introspects one source database. Implementations delegate the
// heavy lifting to the database/sql driver for their engine.
type Reader interface {
	// Driver returns the registered driver name.
	Driver() string
	// Tables returns all user tables with columns, indexes and row
	// counts, in a deterministic order.
	Tables(ctx context.Context) ([]*schema.Table, error)
	// Relationships returns all single-column foreign-key edges.
	Relationships(ctx context.Context) ([]*schema.Relationship, error)
	// Rows streams every row of the given table in storage order.
	Rows(ctx context.Context, table string) (RowIter, error)
	Close() error
}

// RowIter iterates table rows. Usage follows sql.Rows:
//
//	for it.Next() { row := it.Row() }
//	err := it.Err()
type RowIter interface {
	Columns() []string
	Next() bool
	Row() []any
	Err() error
	Close() error
}

// OpenFunc constructs a Reader over an opened connection.
type OpenFunc func(db *sql.DB, log logger.Logger) Reader

var readers = make(map[string]OpenFunc)

// Register registers a reader constructor for a driver name. Called from
// init in each engine file.
func Register(driver string, fn OpenFunc) {
	readers[driver] = fn
}

// Open connects to the source database and returns its Reader. The
// connection is pinged so a missing or corrupt file fails here rather
// than on first query.
func Open(driver, dsn string, log logger.Logger) (Reader, error) {
	fn, ok := readers[driver]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s source: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s source: %w", driver, err)
	}

	if log == nil {
		log = logger.NewStdLogger()
	}
	return fn(db, log), nil
}

// sqlRowIter adapts *sql.Rows to RowIter, scanning every column into an
// untyped value.
type sqlRowIter struct {
	rows *sql.Rows
	cols []string
	row  []any
	err  error
}

func newSQLRowIter(rows *sql.Rows) (*sqlRowIter, error) {
	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, err
	}
	return &sqlRowIter{rows: rows, cols: cols}, nil
}

func (it *sqlRowIter) Columns() []string { return it.cols }

func (it *sqlRowIter) Next() bool {
	if it.err != nil || !it.rows.Next() {
		return false
	}
	values := make([]any, len(it.cols))
	ptrs := make([]any, len(it.cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := it.rows.Scan(ptrs...); err != nil {
		it.err = err
		return false
	}
	it.row = values
	return true
}

func (it *sqlRowIter) Row() []any { return it.row }

func (it *sqlRowIter) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.rows.Err()
}

func (it *sqlRowIter) Close() error { return it.rows.Close() }

// queryRows runs a SELECT * over the quoted table and logs the statement
// with its duration.
func queryRows(ctx context.Context, db *sql.DB, log logger.Logger, query string) (RowIter, error) {
	start := time.Now()
	rows, err := db.QueryContext(ctx, query)
	log.SQL(query, time.Since(start))
	if err != nil {
		return nil, err
	}
	return newSQLRowIter(rows)
}

// countRows returns the exact row count of a table. Desktop-scale
// databases make COUNT(*) affordable.
func countRows(ctx context.Context, db *sql.DB, log logger.Logger, query string) (int64, error) {
	start := time.Now()
	var n int64
	err := db.QueryRowContext(ctx, query).Scan(&n)
	log.SQL(query, time.Since(start))
	return n, err
}
