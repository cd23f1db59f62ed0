package django

import (
	"fmt"

	"github.com/db2django/db2django/schema"
)

// Field is one Django model field derived from a table column. A
// generated field is the synthetic hidden AutoField primary key injected
// when the source table has no usable single-column primary key.
type Field struct {
	model     *Model
	col       *schema.Column // nil for generated fields
	name      string
	pk        bool
	generated bool
}

func (f *Field) Model() *Model          { return f.model }
func (f *Field) Column() *schema.Column { return f.col }
func (f *Field) Name() string           { return f.name }
func (f *Field) PrimaryKey() bool       { return f.pk }
func (f *Field) Generated() bool        { return f.generated }

// VerboseName is the human-readable label emitted for the field.
func (f *Field) VerboseName() string {
	return schema.CamelToEnglish(f.name)
}

// ForeignKey returns the relationship this field holds, or nil.
func (f *Field) ForeignKey() *Rel {
	return f.model.app.forward[f]
}

// index returns the single-column non-primary index covering this field,
// or nil.
func (f *Field) index() *schema.Index {
	if f.col == nil {
		return nil
	}
	idx := f.model.table.SingleColumnIndex(f.col.Name)
	if idx == nil || idx.Primary {
		return nil
	}
	return idx
}

// Class resolves the Django field class for this field.
func (f *Field) Class() (string, error) {
	if f.generated {
		return "AutoField", nil
	}
	if f.ForeignKey() != nil {
		return "ForeignKey", nil
	}
	return fieldClass(f.model.table.Name, f.col, f.pk, f.model.app.opts.Loose)
}

// Attrs returns the ordered argument list of the field declaration, one
// string per line of generated code, without trailing commas.
func (f *Field) Attrs() ([]string, error) {
	if f.generated {
		return nil, nil
	}

	if rel := f.ForeignKey(); rel != nil {
		attrs := []string{
			rel.To.model.Name(),
			"on_delete=models.CASCADE",
		}
		if rel.To.name != "id" {
			attrs = append(attrs, fmt.Sprintf("to_field='%s'", rel.To.name))
		}
		attrs = append(attrs, fmt.Sprintf("verbose_name=_('%s')", f.VerboseName()))
		if !f.col.NotNull {
			attrs = append(attrs, "null=True")
		}
		// Django stores a ForeignKey under <name>_id unless told
		// otherwise.
		if f.name+"_id" != f.col.Name {
			attrs = append(attrs, fmt.Sprintf("db_column='%s'", f.col.Name))
		}
		return attrs, nil
	}

	cls, err := f.Class()
	if err != nil {
		return nil, err
	}

	attrs := []string{fmt.Sprintf("_('%s')", f.VerboseName())}
	switch cls {
	case "CharField":
		attrs = append(attrs, fmt.Sprintf("max_length=%d", f.col.Type.Length))
	case "DecimalField":
		attrs = append(attrs,
			fmt.Sprintf("max_digits=%d", f.col.Type.Precision),
			fmt.Sprintf("decimal_places=%d", f.col.Type.Scale))
	}

	if f.pk {
		attrs = append(attrs, "primary_key=True")
	} else if idx := f.index(); idx != nil {
		attrs = append(attrs, "db_index=True")
		if idx.Unique {
			attrs = append(attrs, "unique=True")
		}
	}

	if !f.pk && !f.col.NotNull {
		attrs = append(attrs, "null=True")
	}

	if f.name != f.col.Name {
		attrs = append(attrs, fmt.Sprintf("db_column='%s'", f.col.Name))
	}
	return attrs, nil
}

// InlineName names the admin TabularInline class generated for this FK
// field. Models with a single FK field use the short form.
func (f *Field) InlineName() string {
	if len(f.model.ForeignKeyFields()) > 1 {
		return f.model.Name() + schema.SnakeToCamel(f.name) + "Inline"
	}
	return f.model.Name() + "Inline"
}
