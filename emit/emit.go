// Package emit renders the generated artifacts: the Django models and
// admin sources, the JSON data fixture, and the PostgreSQL data dump.
// Every emitter is a pure function of the model graph (plus rows, for
// the data outputs) writing lines to an io.Writer.
package emit

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Output describes one artifact the converter can produce.
type Output struct {
	Name    string // flag name: models, admin, fixture, pg
	Title   string // canonical file name, used in the stdout banner
	Comment string // line comment marker of the artifact's language
}

// Outputs lists every supported artifact in emission order.
var Outputs = []Output{
	{Name: "models", Title: "models.py", Comment: "#"},
	{Name: "admin", Title: "admin.py", Comment: "#"},
	{Name: "fixture", Title: "fixture.json", Comment: "#"},
	{Name: "pg", Title: "pg_data.sql", Comment: "--"},
}

const bannerWidth = 68

// Write runs the emitter against the named file. An empty path skips
// the output entirely; "-" writes to stdout behind a banner line so
// several outputs can share one stream.
func Write(path string, out Output, emit func(w io.Writer) error) error {
	if path == "" {
		return nil
	}
	if path == "-" {
		pad := bannerWidth - len(out.Title)
		if pad < 1 {
			pad = 1
		}
		fmt.Fprintf(os.Stdout, "\n\n%s %s %s\n\n",
			strings.Repeat(out.Comment, pad), out.Title, strings.Repeat(out.Comment, 2))
		return emit(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := emit(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
