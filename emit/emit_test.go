package emit

import (
	"context"

	"github.com/db2django/db2django/django"
	"github.com/db2django/db2django/logger"
	"github.com/db2django/db2django/reader"
	"github.com/db2django/db2django/schema"
)

// fakeReader serves canned rows per table, standing in for a real
// database during emitter tests.
type fakeReader struct {
	tables []*schema.Table
	rels   []*schema.Relationship
	cols   map[string][]string
	rows   map[string][][]any
}

func (f *fakeReader) Driver() string { return "fake" }

func (f *fakeReader) Tables(ctx context.Context) ([]*schema.Table, error) {
	return f.tables, nil
}

func (f *fakeReader) Relationships(ctx context.Context) ([]*schema.Relationship, error) {
	return f.rels, nil
}

func (f *fakeReader) Rows(ctx context.Context, table string) (reader.RowIter, error) {
	return &fakeIter{cols: f.cols[table], rows: f.rows[table], pos: -1}, nil
}

func (f *fakeReader) Close() error { return nil }

type fakeIter struct {
	cols []string
	rows [][]any
	pos  int
}

func (it *fakeIter) Columns() []string { return it.cols }

func (it *fakeIter) Next() bool {
	it.pos++
	return it.pos < len(it.rows)
}

func (it *fakeIter) Row() []any   { return it.rows[it.pos] }
func (it *fakeIter) Err() error   { return nil }
func (it *fakeIter) Close() error { return nil }

// library builds a two-table source with one FK and canned data.
func library() *fakeReader {
	authors := &schema.Table{
		Name: "authors",
		Columns: []*schema.Column{
			{Name: "id", Raw: "INTEGER", Type: schema.DataType{Kind: schema.KindInteger}, NotNull: true, PrimaryKey: true},
			{Name: "name", Raw: "VARCHAR(120)", Type: schema.DataType{Kind: schema.KindText, Length: 120}, NotNull: true},
		},
		RowCount: 2,
	}
	books := &schema.Table{
		Name: "books",
		Columns: []*schema.Column{
			{Name: "id", Raw: "INTEGER", Type: schema.DataType{Kind: schema.KindInteger}, NotNull: true, PrimaryKey: true},
			{Name: "title", Raw: "VARCHAR(200)", Type: schema.DataType{Kind: schema.KindText, Length: 200}, NotNull: true},
			{Name: "in_print", Raw: "BOOLEAN", Type: schema.DataType{Kind: schema.KindBool}},
			{Name: "author_id", Raw: "INTEGER", Type: schema.DataType{Kind: schema.KindInteger}, NotNull: true},
		},
		RowCount: 2,
	}
	return &fakeReader{
		tables: []*schema.Table{authors, books},
		rels: []*schema.Relationship{
			{FromTable: "books", FromColumn: "author_id", ToTable: "authors", ToColumn: "id"},
		},
		cols: map[string][]string{
			"authors": {"id", "name"},
			"books":   {"id", "title", "in_print", "author_id"},
		},
		rows: map[string][][]any{
			"authors": {
				{int64(1), "Miguel de Cervantes"},
				{int64(2), "Emily Brontë"},
			},
			"books": {
				{int64(10), "Don Quixote", int64(1), int64(1)},
				{int64(11), "Wuthering\tHeights", nil, int64(2)},
			},
		},
	}
}

func libraryApp(src *fakeReader, opts django.Options) (*django.App, error) {
	log := logger.NewStdLogger()
	log.SetLevel(logger.LogLevelSilent)
	return django.NewApp(src.tables, src.rels, opts, log)
}
