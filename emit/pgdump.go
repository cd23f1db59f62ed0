package emit

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/db2django/db2django/django"
	"github.com/db2django/db2django/reader"
)

// PGDump renders the pg_data.sql script: DELETE statements in reverse
// dependency order so children go first, then one COPY block per model
// with every source row in the COPY text format.
func PGDump(ctx context.Context, app *django.App, r reader.Reader, w io.Writer) error {
	bw := bufio.NewWriter(w)

	models := app.Models()
	for i := len(models) - 1; i >= 0; i-- {
		fmt.Fprintf(bw, "DELETE FROM %s;\n", models[i].PGTable())
	}

	for _, m := range models {
		if err := copyBlock(ctx, m, r, bw); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func copyBlock(ctx context.Context, m *django.Model, r reader.Reader, bw *bufio.Writer) error {
	it, err := r.Rows(ctx, m.Table().Name)
	if err != nil {
		return err
	}
	defer it.Close()

	cols := it.Columns()
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = `"` + c + `"`
	}
	fmt.Fprintf(bw, "COPY %s (%s) FROM stdin;\n", m.PGTable(), strings.Join(quoted, ", "))

	values := make([]string, len(cols))
	for it.Next() {
		row := it.Row()
		for i, colName := range cols {
			values[i] = pgCopyValue(m.Table().Column(colName), row[i])
		}
		fmt.Fprintln(bw, strings.Join(values, "\t"))
	}
	if err := it.Err(); err != nil {
		return err
	}
	fmt.Fprintln(bw, `\.`)
	fmt.Fprintln(bw)
	return nil
}
