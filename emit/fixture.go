package emit

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/db2django/db2django/django"
	"github.com/db2django/db2django/reader"
)

// fixtureEntry is one object of a Django JSON fixture. encoding/json
// sorts the fields map by key, which keeps the output stable.
type fixtureEntry struct {
	PK     any            `json:"pk"`
	Model  string         `json:"model"`
	Fields map[string]any `json:"fields"`
}

// Fixture renders every row of every model as a Django JSON fixture,
// suitable for loaddata. Tables with a generated primary key get a
// zero-based counter as pk, matching what loaddata would assign.
func Fixture(ctx context.Context, app *django.App, r reader.Reader, w io.Writer) error {
	var entries []fixtureEntry
	for _, m := range app.Models() {
		rows, err := modelEntries(ctx, app, m, r)
		if err != nil {
			return err
		}
		entries = append(entries, rows...)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func modelEntries(ctx context.Context, app *django.App, m *django.Model, r reader.Reader) ([]fixtureEntry, error) {
	it, err := r.Rows(ctx, m.Table().Name)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	modelRef := app.Options().AppName + "." + strings.ToLower(m.Name())
	pk := m.PK()
	counter := int64(0)

	var entries []fixtureEntry
	for it.Next() {
		row := it.Row()
		entry := fixtureEntry{
			Model:  modelRef,
			Fields: make(map[string]any),
		}
		for i, colName := range it.Columns() {
			f := m.Field(colName)
			if f == nil {
				continue
			}
			if f == pk {
				entry.PK = jsonValue(f.Column(), row[i])
				continue
			}
			entry.Fields[f.Name()] = jsonValue(f.Column(), row[i])
		}
		if pk.Generated() {
			entry.PK = counter
			counter++
		}
		entries = append(entries, entry)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
