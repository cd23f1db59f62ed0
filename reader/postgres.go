package reader

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/db2django/db2django/logger"
	"github.com/db2django/db2django/schema"
)

// postgresReader introspects a live PostgreSQL database through the
// system catalogs. Only the public schema is read; a schema prefix on
// the generated Meta blocks is handled downstream.
type postgresReader struct {
	db  *sql.DB
	log logger.Logger
}

func init() {
	Register("postgres", func(db *sql.DB, log logger.Logger) Reader {
		return &postgresReader{db: db, log: log}
	})
}

func (r *postgresReader) Driver() string { return "postgres" }

func (r *postgresReader) Close() error { return r.db.Close() }

func (r *postgresReader) Tables(ctx context.Context) ([]*schema.Table, error) {
	const q = "SELECT tablename FROM pg_catalog.pg_tables WHERE schemaname = 'public' ORDER BY tablename"
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

func (r *postgresReader) table(ctx context.Context, name string) (*schema.Table, error) {
	t := &schema.Table{Name: name}

	const q = `SELECT c.column_name, c.data_type, c.is_nullable, c.column_default,
			COALESCE(c.character_maximum_length, 0),
			COALESCE(c.numeric_precision, 0), COALESCE(c.numeric_scale, 0)
		FROM information_schema.columns c
		WHERE c.table_schema = 'public' AND c.table_name = $1
		ORDER BY c.ordinal_position`
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, q, name)
	r.log.SQL(q, time.Since(start), name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			colName, dataType, nullable string
			dflt                        sql.NullString
			maxLen, precision, scale    int
		)
		if err := rows.Scan(&colName, &dataType, &nullable, &dflt, &maxLen, &precision, &scale); err != nil {
			return nil, err
		}
		dt := schema.ParseDataType(dataType)
		if dt.Kind == schema.KindText && maxLen > 0 {
			dt.Length = maxLen
		}
		if dt.Kind == schema.KindDecimal {
			dt.Precision, dt.Scale = precision, scale
		}
		t.Columns = append(t.Columns, &schema.Column{
			Name:    colName,
			Raw:     dataType,
			Type:    dt,
			NotNull: nullable == "NO",
			Default: dflt.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.indexes(ctx, t); err != nil {
		return nil, err
	}
	for _, idx := range t.Indexes {
		if idx.Primary && len(idx.Columns) >= 1 {
			for _, colName := range idx.Columns {
				if c := t.Column(colName); c != nil {
					c.PrimaryKey = true
				}
			}
		}
	}

	n, err := countRows(ctx, r.db, r.log, fmt.Sprintf("SELECT COUNT(*) FROM %s", quotePostgres(name)))
	if err != nil {
		return nil, err
	}
	t.RowCount = n
	return t, nil
}

func (r *postgresReader) indexes(ctx context.Context, t *schema.Table) error {
	const q = `SELECT i.relname, a.attname, ix.indisunique, ix.indisprimary
		FROM pg_class c
		JOIN pg_index ix ON c.oid = ix.indrelid
		JOIN pg_class i ON i.oid = ix.indexrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		JOIN pg_attribute a ON a.attrelid = c.oid AND a.attnum = ANY(ix.indkey)
		WHERE n.nspname = 'public' AND c.relname = $1
		ORDER BY i.relname, array_position(ix.indkey, a.attnum)`
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
			unique, primary  bool
		)
		if err := rows.Scan(&idxName, &colName, &unique, &primary); err != nil {
			return err
		}
		idx, ok := byName[idxName]
		if !ok {
			idx = &schema.Index{Name: idxName, Unique: unique, Primary: primary}
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

func (r *postgresReader) Relationships(ctx context.Context) ([]*schema.Relationship, error) {
	const q = `SELECT c.conrelid::regclass::text, a.attname,
			c.confrelid::regclass::text, af.attname
		FROM pg_constraint c
		JOIN pg_attribute a ON a.attrelid = c.conrelid AND a.attnum = c.conkey[1]
		JOIN pg_attribute af ON af.attrelid = c.confrelid AND af.attnum = c.confkey[1]
		WHERE c.contype = 'f'
		ORDER BY 1, 2`
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

func (r *postgresReader) Rows(ctx context.Context, table string) (RowIter, error) {
	return queryRows(ctx, r.db, r.log, fmt.Sprintf("SELECT * FROM %s", quotePostgres(table)))
}

func quotePostgres(name string) string {
	return `"` + name + `"`
}
