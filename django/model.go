package django

import (
	"sort"
	"strings"

	"github.com/db2django/db2django/schema"
)

// Model is one Django model class derived from a table.
type Model struct {
	app    *App
	table  *schema.Table
	name   string
	fields []*Field
	pk     *Field
}

func newModel(app *App, table *schema.Table) *Model {
	m := &Model{app: app, table: table}

	m.name = app.opts.TableNames[table.Name]
	if m.name == "" {
		m.name = schema.SnakeToCamel(table.Name)
	}

	pkCol := table.PrimaryKey()
	for _, col := range table.Columns {
		name := app.opts.ColumnNames[table.Name+"."+col.Name]
		if name == "" {
			name = schema.CamelToSnake(col.Name)
		}
		f := &Field{
			model: m,
			col:   col,
			name:  name,
			pk:    col == pkCol,
		}
		m.fields = append(m.fields, f)
		if f.pk {
			m.pk = f
		}
	}

	// Primary key first, remaining fields in column order.
	sort.SliceStable(m.fields, func(i, j int) bool {
		return m.fields[i].pk && !m.fields[j].pk
	})

	if m.pk == nil {
		// No single-column primary key in the source table; inject a
		// hidden AutoField the way Django would.
		m.pk = &Field{model: m, name: "id", pk: true, generated: true}
		m.fields = append([]*Field{m.pk}, m.fields...)
	}
	return m
}

func (m *Model) Table() *schema.Table { return m.table }
func (m *Model) Name() string         { return m.name }
func (m *Model) Fields() []*Field     { return m.fields }
func (m *Model) PK() *Field           { return m.pk }

func (m *Model) VerboseName() string {
	return schema.CamelToEnglish(m.name)
}

func (m *Model) VerboseNamePlural() string {
	return m.VerboseName() + "s"
}

// DBTable returns the table name to pin in Meta.db_table, or "" when the
// default Django naming is in effect.
func (m *Model) DBTable() string {
	if !m.app.opts.KeepTableNames && m.app.opts.Schema == "" {
		return ""
	}
	name := m.table.Name
	if !m.app.opts.KeepTableNames {
		name = m.app.opts.AppName + "_" + strings.ToLower(m.name)
	}
	if m.app.opts.Schema != "" {
		// PostgreSQL schema routing via Django's quoted db_table trick.
		name = m.app.opts.Schema + `"."` + name
	}
	return name
}

// PGTable returns the quoted PostgreSQL table reference used by the
// data dump and the direct loader.
func (m *Model) PGTable() string {
	name := m.app.opts.AppName + "_" + strings.ToLower(m.name)
	if m.app.opts.KeepTableNames {
		name = m.table.Name
	}
	quoted := `"` + name + `"`
	if m.app.opts.Schema != "" {
		quoted = `"` + m.app.opts.Schema + `".` + quoted
	}
	return quoted
}

// Field returns the field derived from the named column, or nil.
func (m *Model) Field(column string) *Field {
	for _, f := range m.fields {
		if f.col != nil && f.col.Name == column {
			return f
		}
	}
	return nil
}

// FieldByName returns the field with the given Django name, or nil.
func (m *Model) FieldByName(name string) *Field {
	for _, f := range m.fields {
		if f.name == name {
			return f
		}
	}
	return nil
}

// ForeignKeyFields returns this model's FK-holding fields in declaration
// order.
func (m *Model) ForeignKeyFields() []*Field {
	var out []*Field
	for _, f := range m.fields {
		if f.ForeignKey() != nil {
			out = append(out, f)
		}
	}
	return out
}

// RelatedModels returns the distinct FK target models, name-sorted for
// deterministic traversal.
func (m *Model) RelatedModels() []*Model {
	seen := make(map[*Model]bool)
	var out []*Model
	for _, f := range m.ForeignKeyFields() {
		target := f.ForeignKey().To.model
		if target != m && !seen[target] {
			seen[target] = true
			out = append(out, target)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// InlineNames returns the admin inline class names to attach to this
// model's registration, one per model referencing it, sorted.
func (m *Model) InlineNames() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range m.fields {
		for _, rel := range m.app.reverse[f] {
			name := rel.From.InlineName()
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	sort.Strings(out)
	return out
}

// UniqueTogether returns the field-name groups for Meta.unique_together,
// one group per multi-column unique index.
func (m *Model) UniqueTogether() [][]string {
	var out [][]string
	for _, idx := range m.table.MultiColumnIndexes() {
		if !idx.Unique || idx.Primary {
			continue
		}
		var group []string
		for _, col := range idx.Columns {
			if f := m.Field(col); f != nil {
				group = append(group, f.name)
			}
		}
		if len(group) == len(idx.Columns) {
			out = append(out, group)
		}
	}
	return out
}
