package django

import (
	"reflect"
	"testing"

	"github.com/db2django/db2django/schema"
)

// bookshop returns a small three-table schema with two FK fields on the
// same target and a table without a usable primary key.
func bookshop() ([]*schema.Table, []*schema.Relationship) {
	authors := &schema.Table{
		Name: "authors",
		Columns: []*schema.Column{
			{Name: "id", Raw: "INTEGER", Type: schema.DataType{Kind: schema.KindInteger}, NotNull: true, PrimaryKey: true},
			{Name: "name", Raw: "VARCHAR(120)", Type: schema.DataType{Kind: schema.KindText, Length: 120}, NotNull: true},
		},
	}
	books := &schema.Table{
		Name: "books",
		Columns: []*schema.Column{
			{Name: "id", Raw: "INTEGER", Type: schema.DataType{Kind: schema.KindInteger}, NotNull: true, PrimaryKey: true},
			{Name: "title", Raw: "VARCHAR(200)", Type: schema.DataType{Kind: schema.KindText, Length: 200}, NotNull: true},
			{Name: "author_id", Raw: "INTEGER", Type: schema.DataType{Kind: schema.KindInteger}, NotNull: true},
			{Name: "editor_id", Raw: "INTEGER", Type: schema.DataType{Kind: schema.KindInteger}},
		},
	}
	shelves := &schema.Table{
		Name: "shelf_slots",
		Columns: []*schema.Column{
			{Name: "room", Raw: "VARCHAR(20)", Type: schema.DataType{Kind: schema.KindText, Length: 20}, NotNull: true, PrimaryKey: true},
			{Name: "slot", Raw: "INTEGER", Type: schema.DataType{Kind: schema.KindInteger}, NotNull: true, PrimaryKey: true},
			{Name: "book_id", Raw: "INTEGER", Type: schema.DataType{Kind: schema.KindInteger}},
		},
		Indexes: []*schema.Index{
			{Name: "shelf_slots_pk", Columns: []string{"room", "slot"}, Unique: true, Primary: true},
			{Name: "shelf_slots_room_book", Columns: []string{"room", "book_id"}, Unique: true},
		},
	}

	rels := []*schema.Relationship{
		{FromTable: "books", FromColumn: "author_id", ToTable: "authors", ToColumn: "id"},
		{FromTable: "books", FromColumn: "editor_id", ToTable: "authors", ToColumn: "id"},
		{FromTable: "shelf_slots", FromColumn: "book_id", ToTable: "books", ToColumn: ""},
	}

	// Tables deliberately listed with referents first; ordering must fix
	// that up.
	return []*schema.Table{shelves, books, authors}, rels
}

func newTestApp(t *testing.T, opts Options) *App {
	t.Helper()
	tables, rels := bookshop()
	app, err := NewApp(tables, rels, opts, nil)
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	return app
}

func TestAppDependencyOrder(t *testing.T) {
	app := newTestApp(t, Options{})

	var got []string
	for _, m := range app.Models() {
		got = append(got, m.Name())
	}
	want := []string{"Authors", "Books", "ShelfSlots"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("model order = %v, want %v", got, want)
	}
}

func TestAppForeignKeyFieldNames(t *testing.T) {
	app := newTestApp(t, Options{})
	books := app.ModelByTable("books")
	if books == nil {
		t.Fatal("books model missing")
	}

	fks := books.ForeignKeyFields()
	if len(fks) != 2 {
		t.Fatalf("len(ForeignKeyFields()) = %d, want 2", len(fks))
	}
	if fks[0].Name() != "author" || fks[1].Name() != "editor" {
		t.Errorf("FK field names = %q, %q, want author, editor", fks[0].Name(), fks[1].Name())
	}
	// Stripped names round-trip through Django's attname, so no
	// db_column is needed.
	attrs, err := fks[0].Attrs()
	if err != nil {
		t.Fatalf("Attrs() error = %v", err)
	}
	for _, a := range attrs {
		if a == "db_column='author_id'" {
			t.Errorf("Attrs() = %v, db_column should be omitted", attrs)
		}
	}
}

func TestAppGeneratedPrimaryKey(t *testing.T) {
	app := newTestApp(t, Options{})
	slots := app.ModelByTable("shelf_slots")
	if slots == nil {
		t.Fatal("shelf_slots model missing")
	}

	pk := slots.PK()
	if pk == nil {
		t.Fatal("PK() = nil")
	}
	if !pk.Generated() || pk.Name() != "id" {
		t.Errorf("PK() = %q generated=%v, want generated id", pk.Name(), pk.Generated())
	}
	if cls, _ := pk.Class(); cls != "AutoField" {
		t.Errorf("PK class = %q, want AutoField", cls)
	}
	if slots.Fields()[0] != pk {
		t.Error("generated primary key is not the first field")
	}
}

func TestAppImplicitTargetColumn(t *testing.T) {
	app := newTestApp(t, Options{})
	slots := app.ModelByTable("shelf_slots")

	f := slots.Field("book_id")
	if f == nil {
		t.Fatal("book_id field missing")
	}
	rel := f.ForeignKey()
	if rel == nil {
		t.Fatal("ForeignKey() = nil")
	}
	if rel.To.Model().Name() != "Books" || rel.To.Name() != "id" {
		t.Errorf("FK target = %s.%s, want Books.id", rel.To.Model().Name(), rel.To.Name())
	}
}

func TestAppInlineNames(t *testing.T) {
	app := newTestApp(t, Options{})

	authors := app.ModelByTable("authors")
	got := authors.InlineNames()
	// Two FK fields on Books, so the inline names carry the field.
	want := []string{"BooksAuthorInline", "BooksEditorInline"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("InlineNames() = %v, want %v", got, want)
	}

	books := app.ModelByTable("books")
	got = books.InlineNames()
	want = []string{"ShelfSlotsInline"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("InlineNames() = %v, want %v", got, want)
	}
}

func TestAppUniqueTogether(t *testing.T) {
	app := newTestApp(t, Options{})
	slots := app.ModelByTable("shelf_slots")

	got := slots.UniqueTogether()
	want := [][]string{{"room", "book"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UniqueTogether() = %v, want %v", got, want)
	}
}

func TestAppRenames(t *testing.T) {
	app := newTestApp(t, Options{
		TableNames:  map[string]string{"authors": "Writer"},
		ColumnNames: map[string]string{"books.editor_id": "copy_editor"},
	})

	if m := app.ModelByTable("authors"); m.Name() != "Writer" {
		t.Errorf("renamed model = %q, want Writer", m.Name())
	}

	books := app.ModelByTable("books")
	f := books.Field("editor_id")
	if f.Name() != "copy_editor" {
		t.Errorf("renamed field = %q, want copy_editor", f.Name())
	}
	attrs, err := f.Attrs()
	if err != nil {
		t.Fatalf("Attrs() error = %v", err)
	}
	var hasDBColumn bool
	for _, a := range attrs {
		if a == "db_column='editor_id'" {
			hasDBColumn = true
		}
	}
	if !hasDBColumn {
		t.Errorf("Attrs() = %v, want explicit db_column for renamed FK", attrs)
	}
}

func TestAppSkipTables(t *testing.T) {
	app := newTestApp(t, Options{SkipTables: []string{"shelf_slots"}})

	if len(app.Models()) != 2 {
		t.Fatalf("len(Models()) = %d, want 2", len(app.Models()))
	}
	if app.ModelByTable("shelf_slots") != nil {
		t.Error("skipped table still converted")
	}
	// The FK out of the skipped table must be dropped, not fail.
	if got := app.ModelByTable("books").InlineNames(); len(got) != 0 {
		t.Errorf("InlineNames() = %v, want none", got)
	}
}

func TestModelDBTable(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"default naming", Options{}, ""},
		{"kept names", Options{KeepTableNames: true}, "books"},
		{"schema prefix", Options{Schema: "legacy"}, `legacy"."myapp_books`},
		{"schema and kept names", Options{Schema: "legacy", KeepTableNames: true}, `legacy"."books`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, tt.opts)
			if got := app.ModelByTable("books").DBTable(); got != tt.want {
				t.Errorf("DBTable() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModelPGTable(t *testing.T) {
	app := newTestApp(t, Options{Schema: "legacy"})
	if got := app.ModelByTable("books").PGTable(); got != `"legacy"."myapp_books"` {
		t.Errorf(`PGTable() = %q, want "legacy"."myapp_books"`, got)
	}
}
