// Package load transfers source data straight into PostgreSQL instead
// of going through a generated pg_data.sql script. Children are cleared
// before parents and refilled after them, all inside one transaction.
package load

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/db2django/db2django/django"
	"github.com/db2django/db2django/logger"
	"github.com/db2django/db2django/reader"
)

// Run copies every row of every model into the target database. The
// target tables must already exist, normally via the generated models
// and a Django migrate.
func Run(ctx context.Context, app *django.App, src reader.Reader, targetDSN string, log logger.Logger) error {
	if log == nil {
		log = logger.NewStdLogger()
	}

	db, err := sql.Open("postgres", targetDSN)
	if err != nil {
		return fmt.Errorf("open target: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping target: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	models := app.Models()
	for i := len(models) - 1; i >= 0; i-- {
		stmt := fmt.Sprintf("DELETE FROM %s", models[i].PGTable())
		start := time.Now()
		_, err := tx.ExecContext(ctx, stmt)
		log.SQL(stmt, time.Since(start))
		if err != nil {
			return fmt.Errorf("clear %s: %w", models[i].Name(), err)
		}
	}

	for _, m := range models {
		if err := copyModel(ctx, tx, m, src, log); err != nil {
			return fmt.Errorf("load %s: %w", m.Name(), err)
		}
	}
	return tx.Commit()
}

func copyModel(ctx context.Context, tx *sql.Tx, m *django.Model, src reader.Reader, log logger.Logger) error {
	it, err := src.Rows(ctx, m.Table().Name)
	if err != nil {
		return err
	}
	defer it.Close()

	cols := it.Columns()
	table, schemaName := splitPGTable(m)

	var stmt *sql.Stmt
	if schemaName != "" {
		stmt, err = tx.PrepareContext(ctx, pq.CopyInSchema(schemaName, table, cols...))
	} else {
		stmt, err = tx.PrepareContext(ctx, pq.CopyIn(table, cols...))
	}
	if err != nil {
		return err
	}

	start := time.Now()
	var count int64
	for it.Next() {
		if _, err := stmt.ExecContext(ctx, it.Row()...); err != nil {
			stmt.Close()
			return err
		}
		count++
	}
	if err := it.Err(); err != nil {
		stmt.Close()
		return err
	}
	// Final Exec flushes the COPY buffer.
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return err
	}
	if err := stmt.Close(); err != nil {
		return err
	}
	log.Info("copied %d rows into %s in %v", count, m.PGTable(), time.Since(start))
	return nil
}

// splitPGTable recovers the bare table and schema names from the quoted
// reference, since pq.CopyIn quotes on its own.
func splitPGTable(m *django.Model) (table, schemaName string) {
	ref := m.PGTable()
	ref = strings.ReplaceAll(ref, `"`, "")
	if i := strings.IndexByte(ref, '.'); i >= 0 {
		return ref[i+1:], ref[:i]
	}
	return ref, ""
}
