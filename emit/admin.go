package emit

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/db2django/db2django/django"
)

// Admin renders the admin.py source: the model import block, one
// TabularInline class per FK-holding model, and one registration per
// model with every field in list_display.
func Admin(app *django.App, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "from django.contrib import admin")
	fmt.Fprintf(bw, "from %s.models import (\n", app.Options().AppName)
	for _, m := range app.Models() {
		fmt.Fprintf(bw, "    %s,\n", m.Name())
	}
	fmt.Fprintln(bw, ")")

	for _, m := range app.Models() {
		fkFields := m.ForeignKeyFields()
		for _, f := range fkFields {
			fmt.Fprintln(bw)
			fmt.Fprintln(bw)
			fmt.Fprintf(bw, "class %s(admin.TabularInline):\n", f.InlineName())
			fmt.Fprintf(bw, "    model = %s\n", m.Name())
			if len(fkFields) > 1 {
				fmt.Fprintf(bw, "    fk_name = '%s'\n", f.Name())
			}
		}
	}

	for _, m := range app.Models() {
		names := make([]string, len(m.Fields()))
		for i, f := range m.Fields() {
			names[i] = fmt.Sprintf("'%s'", f.Name())
		}

		fmt.Fprintln(bw)
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "admin.site.register(")
		fmt.Fprintf(bw, "    %s,\n", m.Name())

		inlines := m.InlineNames()
		if len(inlines) == 0 {
			fmt.Fprintf(bw, "    list_display=(%s))\n", strings.Join(names, ", "))
			continue
		}
		fmt.Fprintf(bw, "    list_display=(%s),\n", strings.Join(names, ", "))
		if len(inlines) == 1 {
			fmt.Fprintf(bw, "    inlines=[%s])\n", inlines[0])
			continue
		}
		fmt.Fprintln(bw, "    inlines=[")
		for i, name := range inlines {
			if i == len(inlines)-1 {
				fmt.Fprintf(bw, "        %s])\n", name)
			} else {
				fmt.Fprintf(bw, "        %s,\n", name)
			}
		}
	}
	return bw.Flush()
}
