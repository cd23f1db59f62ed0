package emit

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/db2django/db2django/django"
)

// Models renders the models.py source: one model class per table, in FK
// dependency order.
func Models(app *django.App, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "from django.db import models")
	fmt.Fprintln(bw, "from django.utils.translation import gettext_lazy as _")

	for _, m := range app.Models() {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw)
		fmt.Fprintf(bw, "class %s(models.Model):\n", m.Name())

		for _, f := range m.Fields() {
			if f.Generated() {
				continue
			}
			cls, err := f.Class()
			if err != nil {
				return err
			}
			attrs, err := f.Attrs()
			if err != nil {
				return err
			}
			fmt.Fprintf(bw, "    %s = models.%s(\n", f.Name(), cls)
			for i, attr := range attrs {
				terminator := ","
				if i == len(attrs)-1 {
					terminator = ",)"
				}
				fmt.Fprintf(bw, "        %s%s\n", attr, terminator)
			}
		}

		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "    class Meta:")
		if dbTable := m.DBTable(); dbTable != "" {
			fmt.Fprintf(bw, "        db_table = '%s'\n", dbTable)
		}
		if groups := m.UniqueTogether(); len(groups) > 0 {
			fmt.Fprintln(bw, "        unique_together = (")
			for _, group := range groups {
				parts := make([]string, len(group))
				for i, name := range group {
					parts[i] = fmt.Sprintf("'%s',", name)
				}
				fmt.Fprintf(bw, "            (%s),\n", strings.Join(parts, " "))
			}
			fmt.Fprintln(bw, "        )")
		}
		fmt.Fprintf(bw, "        verbose_name = _('%s')\n", m.VerboseName())
		fmt.Fprintf(bw, "        verbose_name_plural = _('%s')\n", m.VerboseNamePlural())
	}
	return bw.Flush()
}
