package django

import (
	"strings"

	"github.com/db2django/db2django/logger"
	"github.com/db2django/db2django/schema"
)

// Rel is a resolved foreign-key edge between two fields. From holds the
// key, To is the referenced field.
type Rel struct {
	From *Field
	To   *Field
}

// App is the set of models generated for one Django application,
// ordered so FK targets precede the models referencing them.
type App struct {
	opts    Options
	models  []*Model
	byTable map[string]*Model
	forward map[*Field]*Rel
	reverse map[*Field][]*Rel
	log     logger.Logger
}

// NewApp builds the model graph from introspected tables and
// relationships. Tables listed in opts.SkipTables are dropped; FK edges
// touching a dropped or unknown table are ignored with a warning.
func NewApp(tables []*schema.Table, rels []*schema.Relationship, opts Options, log logger.Logger) (*App, error) {
	if log == nil {
		log = logger.NewStdLogger()
	}
	app := &App{
		opts:    opts.withDefaults(),
		byTable: make(map[string]*Model),
		forward: make(map[*Field]*Rel),
		reverse: make(map[*Field][]*Rel),
		log:     log,
	}

	for _, t := range tables {
		if app.opts.skipped(t.Name) {
			log.Info("skipping table %s", t.Name)
			continue
		}
		m := newModel(app, t)
		app.models = append(app.models, m)
		app.byTable[t.Name] = m
	}

	for _, rel := range rels {
		if err := app.wire(rel); err != nil {
			return nil, err
		}
	}
	app.renameForeignKeyFields()
	app.models = app.order()
	return app, nil
}

func (a *App) Options() Options { return a.opts }

// Models returns all models in FK dependency order.
func (a *App) Models() []*Model { return a.models }

// ModelByTable returns the model generated for a table name, or nil.
func (a *App) ModelByTable(table string) *Model { return a.byTable[table] }

func (a *App) wire(rel *schema.Relationship) error {
	from := a.byTable[rel.FromTable]
	to := a.byTable[rel.ToTable]
	if from == nil || to == nil {
		a.log.Warn("ignoring relationship %s.%s -> %s.%s: table not converted",
			rel.FromTable, rel.FromColumn, rel.ToTable, rel.ToColumn)
		return nil
	}

	fromField := from.Field(rel.FromColumn)
	if fromField == nil {
		a.log.Warn("ignoring relationship %s.%s: no such column", rel.FromTable, rel.FromColumn)
		return nil
	}

	var toField *Field
	if rel.ToColumn == "" {
		// Key declared against the implicit primary key.
		toField = to.PK()
	} else {
		toField = to.Field(rel.ToColumn)
	}
	if toField == nil {
		a.log.Warn("ignoring relationship %s.%s -> %s.%s: target column not converted",
			rel.FromTable, rel.FromColumn, rel.ToTable, rel.ToColumn)
		return nil
	}

	r := &Rel{From: fromField, To: toField}
	a.forward[fromField] = r
	a.reverse[toField] = append(a.reverse[toField], r)
	return nil
}

// renameForeignKeyFields strips the conventional _id suffix from FK
// field names so Django's own attname (<name>_id) lands back on the
// source column. Explicit renames and colliding names are left alone.
func (a *App) renameForeignKeyFields() {
	for _, m := range a.models {
		for _, f := range m.ForeignKeyFields() {
			if _, renamed := a.opts.ColumnNames[m.table.Name+"."+f.col.Name]; renamed {
				continue
			}
			short := strings.TrimSuffix(f.name, "_id")
			if short == f.name || short == "" {
				continue
			}
			if m.FieldByName(short) != nil {
				continue
			}
			f.name = short
		}
	}
}

// order sorts models depth-first so every FK target comes before the
// models referencing it. Cycles are broken at the first revisited model.
func (a *App) order() []*Model {
	done := make(map[*Model]bool)
	var out []*Model

	var visit func(m *Model)
	visit = func(m *Model) {
		if done[m] {
			return
		}
		done[m] = true
		for _, related := range m.RelatedModels() {
			visit(related)
		}
		out = append(out, m)
	}

	for _, m := range a.models {
		visit(m)
	}
	return out
}
