package schema

// Table represents the introspected metadata of one database table.
type Table struct {
	Name     string    `json:"name"`
	Columns  []*Column `json:"columns"`
	Indexes  []*Index  `json:"indexes,omitempty"`
	RowCount int64     `json:"row_count"`
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// PrimaryKey returns the single primary-key column, or nil when the
// table has no primary key or a composite one.
func (t *Table) PrimaryKey() *Column {
	var pk *Column
	for _, c := range t.Columns {
		if c.PrimaryKey {
			if pk != nil {
				return nil
			}
			pk = c
		}
	}
	return pk
}

// SingleColumnIndex returns the index covering exactly the given column,
// or nil.
func (t *Table) SingleColumnIndex(column string) *Index {
	for _, idx := range t.Indexes {
		if len(idx.Columns) == 1 && idx.Columns[0] == column {
			return idx
		}
	}
	return nil
}

// MultiColumnIndexes returns all indexes spanning more than one column.
func (t *Table) MultiColumnIndexes() []*Index {
	var out []*Index
	for _, idx := range t.Indexes {
		if len(idx.Columns) > 1 {
			out = append(out, idx)
		}
	}
	return out
}
