package reader

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/db2django/db2django/logger"
	"github.com/db2django/db2django/schema"
)

// sqliteReader introspects a SQLite database file, the legacy desktop
// container this tool exists for. All metadata comes from sqlite_master
// and the PRAGMA family.
type sqliteReader struct {
	db  *sql.DB
	log logger.Logger
}

func init() {
	Register("sqlite3", func(db *sql.DB, log logger.Logger) Reader {
		return &sqliteReader{db: db, log: log}
	})
}

func (r *sqliteReader) Driver() string { return "sqlite3" }

func (r *sqliteReader) Close() error { return r.db.Close() }

func (r *sqliteReader) Tables(ctx context.Context) ([]*schema.Table, error) {
	const q = "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name"
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, q)
	r.log.SQL(q, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrNoTables
	}

	var tables []*schema.Table
	for _, name := range names {
		t, err := r.table(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", name, err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func (r *sqliteReader) table(ctx context.Context, name string) (*schema.Table, error) {
	t := &schema.Table{Name: name}

	q := fmt.Sprintf("PRAGMA table_info(%s)", quoteSQLite(name))
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, q)
	r.log.SQL(q, time.Since(start))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid     int
			colName string
			decl    string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &colName, &decl, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		t.Columns = append(t.Columns, &schema.Column{
			Name:       colName,
			Raw:        decl,
			Type:       schema.ParseDataType(decl),
			NotNull:    notNull == 1,
			PrimaryKey: pk > 0,
			Default:    dflt.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.indexes(ctx, t); err != nil {
		return nil, err
	}

	n, err := countRows(ctx, r.db, r.log, fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteSQLite(name)))
	if err != nil {
		return nil, err
	}
	t.RowCount = n
	return t, nil
}

func (r *sqliteReader) indexes(ctx context.Context, t *schema.Table) error {
	q := fmt.Sprintf("PRAGMA index_list(%s)", quoteSQLite(t.Name))
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, q)
	r.log.SQL(q, time.Since(start))
	if err != nil {
		return err
	}

	type listed struct {
		name    string
		unique  bool
		primary bool
	}
	var names []listed
	for rows.Next() {
		var (
			seq     int
			name    string
			unique  int
			origin  string
			partial int
		)
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			rows.Close()
			return err
		}
		names = append(names, listed{name: name, unique: unique == 1, primary: origin == "pk"})
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return err
	}

	for _, l := range names {
		idx := &schema.Index{Name: l.name, Unique: l.unique, Primary: l.primary}
		iq := fmt.Sprintf("PRAGMA index_info(%s)", quoteSQLite(l.name))
		start := time.Now()
		irows, err := r.db.QueryContext(ctx, iq)
		r.log.SQL(iq, time.Since(start))
		if err != nil {
			return err
		}
		for irows.Next() {
			var (
				seqno, cid int
				colName    sql.NullString
			)
			if err := irows.Scan(&seqno, &cid, &colName); err != nil {
				irows.Close()
				return err
			}
			if colName.Valid {
				idx.Columns = append(idx.Columns, colName.String)
			}
		}
		err = irows.Err()
		irows.Close()
		if err != nil {
			return err
		}
		if len(idx.Columns) > 0 {
			t.Indexes = append(t.Indexes, idx)
		}
	}
	return nil
}

func (r *sqliteReader) Relationships(ctx context.Context) ([]*schema.Relationship, error) {
	tables, err := r.tableNames(ctx)
	if err != nil {
		return nil, err
	}

	var rels []*schema.Relationship
	for _, table := range tables {
		q := fmt.Sprintf("PRAGMA foreign_key_list(%s)", quoteSQLite(table))
		start := time.Now()
		rows, err := r.db.QueryContext(ctx, q)
		r.log.SQL(q, time.Since(start))
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var (
				id, seq            int
				refTable, from     string
				to                 sql.NullString
				onUpdate, onDelete string
				match              string
			)
			if err := rows.Scan(&id, &seq, &refTable, &from, &to, &onUpdate, &onDelete, &match); err != nil {
				rows.Close()
				return nil, err
			}
			// Composite keys arrive as multiple seq rows; only the
			// first column maps to a Django ForeignKey.
			if seq > 0 {
				continue
			}
			rels = append(rels, &schema.Relationship{
				FromTable:  table,
				FromColumn: from,
				ToTable:    refTable,
				ToColumn:   to.String,
			})
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, err
		}
	}
	return rels, nil
}

func (r *sqliteReader) Rows(ctx context.Context, table string) (RowIter, error) {
	return queryRows(ctx, r.db, r.log, fmt.Sprintf("SELECT * FROM %s", quoteSQLite(table)))
}

func (r *sqliteReader) tableNames(ctx context.Context) ([]string, error) {
	const q = "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name"
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, q)
	r.log.SQL(q, time.Since(start))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func quoteSQLite(name string) string {
	return `"` + name + `"`
}
