package emit

import (
	"bytes"
	"context"
	"testing"

	"github.com/db2django/db2django/django"
)

const wantPGDump = `DELETE FROM "myapp_books";
DELETE FROM "myapp_authors";
COPY "myapp_authors" ("id", "name") FROM stdin;
1	Miguel de Cervantes
2	Emily Brontë
\.

COPY "myapp_books" ("id", "title", "in_print", "author_id") FROM stdin;
10	Don Quixote	t	1
11	Wuthering\tHeights	\N	2
\.

`

func TestPGDump(t *testing.T) {
	src := library()
	app, err := libraryApp(src, django.Options{})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	var buf bytes.Buffer
	if err := PGDump(context.Background(), app, src, &buf); err != nil {
		t.Fatalf("PGDump() error = %v", err)
	}
	if got := buf.String(); got != wantPGDump {
		t.Errorf("PGDump() mismatch:\ngot:\n%s\nwant:\n%s", got, wantPGDump)
	}
}

func TestPGDumpKeepTableNames(t *testing.T) {
	src := library()
	app, err := libraryApp(src, django.Options{KeepTableNames: true, Schema: "legacy"})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	var buf bytes.Buffer
	if err := PGDump(context.Background(), app, src, &buf); err != nil {
		t.Fatalf("PGDump() error = %v", err)
	}
	want := `COPY "legacy"."books" (`
	if !bytes.Contains(buf.Bytes(), []byte(want)) {
		t.Errorf("PGDump() output missing %q", want)
	}
}
