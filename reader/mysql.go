package reader

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/db2django/db2django/logger"
	"github.com/db2django/db2django/schema"
)

// mysqlReader introspects a live MySQL database through SHOW statements
// and information_schema.
type mysqlReader struct {
	db  *sql.DB
	log logger.Logger
}

func init() {
	Register("mysql", func(db *sql.DB, log logger.Logger) Reader {
		return &mysqlReader{db: db, log: log}
	})
}

func (r *mysqlReader) Driver() string { return "mysql" }

func (r *mysqlReader) Close() error { return r.db.Close() }

func (r *mysqlReader) Tables(ctx context.Context) ([]*schema.Table, error) {
	const q = "SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME"
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

func (r *mysqlReader) table(ctx context.Context, name string) (*schema.Table, error) {
	t := &schema.Table{Name: name}

	q := fmt.Sprintf("SHOW FULL COLUMNS FROM %s", quoteMySQL(name))
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, q)
	r.log.SQL(q, time.Since(start))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			field, typ, null, key, extra, privileges, comment string
			collation, dflt                                   sql.NullString
		)
		if err := rows.Scan(&field, &typ, &collation, &null, &key, &dflt, &extra, &privileges, &comment); err != nil {
			return nil, err
		}
		t.Columns = append(t.Columns, &schema.Column{
			Name:       field,
			Raw:        typ,
			Type:       schema.ParseDataType(typ),
			NotNull:    null == "NO",
			PrimaryKey: key == "PRI",
			Default:    dflt.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.indexes(ctx, t); err != nil {
		return nil, err
	}

	n, err := countRows(ctx, r.db, r.log, fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteMySQL(name)))
	if err != nil {
		return nil, err
	}
	t.RowCount = n
	return t, nil
}

func (r *mysqlReader) indexes(ctx context.Context, t *schema.Table) error {
	const q = `SELECT INDEX_NAME, COLUMN_NAME, NON_UNIQUE
		FROM information_schema.STATISTICS
		WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?
		ORDER BY INDEX_NAME, SEQ_IN_INDEX`
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, q, t.Name)
	r.log.SQL(q, time.Since(start), t.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	byName := make(map[string]*schema.Index)
	var order []string
	for rows.Next() {
		var (
			idxName, colName string
			nonUnique        int
		)
		if err := rows.Scan(&idxName, &colName, &nonUnique); err != nil {
			return err
		}
		idx, ok := byName[idxName]
		if !ok {
			idx = &schema.Index{
				Name:    idxName,
				Unique:  nonUnique == 0,
				Primary: idxName == "PRIMARY",
			}
			byName[idxName] = idx
			order = append(order, idxName)
		}
		idx.Columns = append(idx.Columns, colName)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, name := range order {
		t.Indexes = append(t.Indexes, byName[name])
	}
	return nil
}

func (r *mysqlReader) Relationships(ctx context.Context) ([]*schema.Relationship, error) {
	const q = `SELECT TABLE_NAME, COLUMN_NAME, REFERENCED_TABLE_NAME, REFERENCED_COLUMN_NAME
		FROM information_schema.KEY_COLUMN_USAGE
		WHERE TABLE_SCHEMA = DATABASE()
		  AND REFERENCED_TABLE_NAME IS NOT NULL
		  AND ORDINAL_POSITION = 1
		ORDER BY TABLE_NAME, COLUMN_NAME`
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, q)
	r.log.SQL(q, time.Since(start))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rels []*schema.Relationship
	for rows.Next() {
		var rel schema.Relationship
		if err := rows.Scan(&rel.FromTable, &rel.FromColumn, &rel.ToTable, &rel.ToColumn); err != nil {
			return nil, err
		}
		rels = append(rels, &rel)
	}
	return rels, rows.Err()
}

func (r *mysqlReader) Rows(ctx context.Context, table string) (RowIter, error) {
	return queryRows(ctx, r.db, r.log, fmt.Sprintf("SELECT * FROM %s", quoteMySQL(table)))
}

func quoteMySQL(name string) string {
	return "`" + name + "`"
}
