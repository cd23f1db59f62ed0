package schema

import (
	"strconv"
	"strings"
)

// Kind is the normalized type family of a column, independent of the
// exact spelling the source database uses.
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindInteger
	KindSmallInt
	KindBigInt
	KindBool
	KindFloat
	KindDecimal
	KindDate
	KindTime
	KindDateTime
	KindBlob
	KindJSON
)

var kindNames = map[Kind]string{
	KindUnknown:  "unknown",
	KindText:     "text",
	KindInteger:  "integer",
	KindSmallInt: "smallint",
	KindBigInt:   "bigint",
	KindBool:     "bool",
	KindFloat:    "float",
	KindDecimal:  "decimal",
	KindDate:     "date",
	KindTime:     "time",
	KindDateTime: "datetime",
	KindBlob:     "blob",
	KindJSON:     "json",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// DataType is a parsed native column type: a normalized kind plus the
// size arguments the declaration carried.
type DataType struct {
	Kind      Kind `json:"kind"`
	Length    int  `json:"length,omitempty"`    // text/blob length; 0 = unbounded
	Precision int  `json:"precision,omitempty"` // decimal digits
	Scale     int  `json:"scale,omitempty"`     // decimal places
}

// Column represents one introspected table column.
type Column struct {
	Name       string   `json:"name"`
	Raw        string   `json:"raw_type"` // declared type as the database spells it
	Type       DataType `json:"type"`
	NotNull    bool     `json:"not_null"`
	PrimaryKey bool     `json:"primary_key"`
	Default    string   `json:"default,omitempty"`
}

// ParseDataType normalizes a declared column type such as "VARCHAR(40)",
// "decimal(10,2)" or "timestamp without time zone" into a DataType.
// Unrecognized declarations come back as KindUnknown; policy for those
// is decided by the mapper, not here.
func ParseDataType(decl string) DataType {
	base := strings.ToUpper(strings.TrimSpace(decl))
	var args []int
	if open := strings.Index(base, "("); open != -1 {
		if close := strings.Index(base, ")"); close > open {
			for _, part := range strings.Split(base[open+1:close], ",") {
				if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
					args = append(args, n)
				}
			}
		}
		base = strings.TrimSpace(base[:open])
	}

	dt := DataType{}
	switch len(args) {
	case 1:
		dt.Length = args[0]
	case 2:
		dt.Precision, dt.Scale = args[0], args[1]
	}

	switch base {
	case "TINYINT":
		// MySQL convention: tinyint(1) is a boolean flag.
		if dt.Length == 1 {
			dt = DataType{Kind: KindBool}
		} else {
			dt.Kind = KindSmallInt
		}
	case "SMALLINT", "INT2":
		dt.Kind = KindSmallInt
	case "INT", "INTEGER", "MEDIUMINT", "INT4", "SERIAL":
		dt.Kind = KindInteger
	case "BIGINT", "INT8", "LONG", "BIGSERIAL":
		dt.Kind = KindBigInt
	case "BOOLEAN", "BOOL", "BIT":
		dt = DataType{Kind: KindBool}
	case "TEXT", "CLOB", "TINYTEXT", "MEDIUMTEXT", "LONGTEXT", "MEMO":
		dt = DataType{Kind: KindText}
	case "CHAR", "NCHAR", "VARCHAR", "NVARCHAR", "CHARACTER", "CHARACTER VARYING", "VARYING CHARACTER":
		dt.Kind = KindText
	case "FLOAT", "REAL", "DOUBLE", "DOUBLE PRECISION":
		dt.Kind = KindFloat
	case "DECIMAL", "NUMERIC", "MONEY", "CURRENCY":
		dt.Kind = KindDecimal
	case "DATE":
		dt.Kind = KindDate
	case "TIME", "TIME WITHOUT TIME ZONE", "TIME WITH TIME ZONE":
		dt.Kind = KindTime
	case "DATETIME", "TIMESTAMP", "TIMESTAMP WITHOUT TIME ZONE", "TIMESTAMP WITH TIME ZONE", "TIMESTAMPTZ", "SHORT_DATE_TIME":
		dt.Kind = KindDateTime
	case "BLOB", "TINYBLOB", "MEDIUMBLOB", "LONGBLOB", "BYTEA", "BINARY", "VARBINARY", "OLE":
		dt.Kind = KindBlob
	case "JSON", "JSONB":
		dt.Kind = KindJSON
	default:
		dt.Kind = KindUnknown
	}
	return dt
}
