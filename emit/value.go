package emit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/db2django/db2django/schema"
)

const timestampLayout = "2006-01-02 15:04:05"

// jsonValue converts a driver value to its fixture representation.
// SQLite hands booleans back as integers, so the column's declared kind
// decides the coercion.
func jsonValue(col *schema.Column, v any) any {
	switch tv := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(tv)
	case time.Time:
		return tv.Format(timestampLayout)
	case int64:
		if col != nil && col.Type.Kind == schema.KindBool {
			return tv != 0
		}
		return tv
	default:
		return v
	}
}

// copyEscaper escapes the characters that terminate fields or records in
// the COPY text format.
var copyEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\t", `\t`,
	"\n", `\n`,
	"\r", `\r`,
)

// pgCopyValue formats a driver value as one COPY text-format column.
func pgCopyValue(col *schema.Column, v any) string {
	switch tv := v.(type) {
	case nil:
		return `\N`
	case bool:
		if tv {
			return "t"
		}
		return "f"
	case []byte:
		return copyEscaper.Replace(string(tv))
	case string:
		return copyEscaper.Replace(tv)
	case time.Time:
		return tv.Format(timestampLayout)
	case int64:
		if col != nil && col.Type.Kind == schema.KindBool {
			if tv != 0 {
				return "t"
			}
			return "f"
		}
		return fmt.Sprintf("%d", tv)
	case float64:
		return strconv.FormatFloat(tv, 'g', -1, 64)
	default:
		return copyEscaper.Replace(fmt.Sprintf("%v", tv))
	}
}
