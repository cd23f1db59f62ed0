package django

import (
	"errors"
	"fmt"

	"github.com/db2django/db2django/schema"
)

// ErrUnmappedType is returned in strict mode when a native column type
// has no entry in the field mapping table.
var ErrUnmappedType = errors.New("unmapped column type")

// fieldClasses is the static mapping table from normalized native type
// kinds to Django field classes. Text and integer kinds are refined in
// fieldClass because length and primary-key status change the class.
var fieldClasses = map[schema.Kind]string{
	schema.KindText:     "TextField",
	schema.KindInteger:  "IntegerField",
	schema.KindSmallInt: "SmallIntegerField",
	schema.KindBigInt:   "BigIntegerField",
	schema.KindBool:     "BooleanField",
	schema.KindFloat:    "FloatField",
	schema.KindDecimal:  "DecimalField",
	schema.KindDate:     "DateField",
	schema.KindTime:     "TimeField",
	schema.KindDateTime: "DateTimeField",
	schema.KindBlob:     "BinaryField",
	schema.KindJSON:     "JSONField",
}

// fieldClass resolves the Django field class for a column. With loose
// mapping an unknown native type degrades to TextField instead of
// failing the conversion.
func fieldClass(table string, col *schema.Column, primaryKey, loose bool) (string, error) {
	dt := col.Type
	switch dt.Kind {
	case schema.KindText:
		if dt.Length > 0 {
			return "CharField", nil
		}
		return "TextField", nil
	case schema.KindInteger, schema.KindSmallInt:
		if primaryKey {
			return "AutoField", nil
		}
	case schema.KindBigInt:
		if primaryKey {
			return "BigAutoField", nil
		}
	case schema.KindUnknown:
		if loose {
			return "TextField", nil
		}
		return "", fmt.Errorf("%w: %s.%s (%s)", ErrUnmappedType, table, col.Name, col.Raw)
	}

	cls, ok := fieldClasses[dt.Kind]
	if !ok {
		if loose {
			return "TextField", nil
		}
		return "", fmt.Errorf("%w: %s.%s (%s)", ErrUnmappedType, table, col.Name, col.Raw)
	}
	return cls, nil
}
