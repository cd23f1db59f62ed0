package emit

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/db2django/db2django/django"
	"github.com/db2django/db2django/schema"
)

func TestFixture(t *testing.T) {
	src := library()
	app, err := libraryApp(src, django.Options{})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	var buf bytes.Buffer
	if err := Fixture(context.Background(), app, src, &buf); err != nil {
		t.Fatalf("Fixture() error = %v", err)
	}

	var entries []fixtureEntry
	if err := json.Unmarshal(buf.Bytes(), &entries); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("len(entries) = %d, want 4", len(entries))
	}

	first := entries[0]
	if first.Model != "myapp.authors" {
		t.Errorf("entries[0].Model = %q, want myapp.authors", first.Model)
	}
	if pk, ok := first.PK.(float64); !ok || pk != 1 {
		t.Errorf("entries[0].PK = %v, want 1", first.PK)
	}
	if first.Fields["name"] != "Miguel de Cervantes" {
		t.Errorf("entries[0].Fields = %v", first.Fields)
	}

	book := entries[2]
	if book.Model != "myapp.books" {
		t.Errorf("entries[2].Model = %q, want myapp.books", book.Model)
	}
	// The FK value lands under the renamed field, the pk stays out of
	// fields, and the bool-typed integer is coerced.
	if _, present := book.Fields["id"]; present {
		t.Error("primary key leaked into fields")
	}
	if fk, ok := book.Fields["author"].(float64); !ok || fk != 1 {
		t.Errorf("fields[author] = %v, want 1", book.Fields["author"])
	}
	if book.Fields["in_print"] != true {
		t.Errorf("fields[in_print] = %v, want true", book.Fields["in_print"])
	}
	if entries[3].Fields["in_print"] != nil {
		t.Errorf("fields[in_print] = %v, want null", entries[3].Fields["in_print"])
	}
}

func TestFixtureGeneratedPK(t *testing.T) {
	// A table without a usable primary key numbers its fixture entries
	// from zero.
	src := &fakeReader{
		tables: []*schema.Table{{
			Name: "ratings",
			Columns: []*schema.Column{
				{Name: "stars", Raw: "INTEGER", Type: schema.DataType{Kind: schema.KindInteger}, NotNull: true, PrimaryKey: true},
				{Name: "reviewer", Raw: "VARCHAR(40)", Type: schema.DataType{Kind: schema.KindText, Length: 40}, NotNull: true, PrimaryKey: true},
			},
		}},
		cols: map[string][]string{"ratings": {"stars", "reviewer"}},
		rows: map[string][][]any{"ratings": {
			{int64(5), "ana"},
			{int64(3), "bob"},
		}},
	}
	app, err := libraryApp(src, django.Options{})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	var buf bytes.Buffer
	if err := Fixture(context.Background(), app, src, &buf); err != nil {
		t.Fatalf("Fixture() error = %v", err)
	}

	var entries []fixtureEntry
	if err := json.Unmarshal(buf.Bytes(), &entries); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	for i, e := range entries {
		if pk, ok := e.PK.(float64); !ok || pk != float64(i) {
			t.Errorf("entries[%d].PK = %v, want %d", i, e.PK, i)
		}
		if e.Fields["stars"] == nil || e.Fields["reviewer"] == nil {
			t.Errorf("entries[%d].Fields = %v, want both source columns", i, e.Fields)
		}
	}
}
