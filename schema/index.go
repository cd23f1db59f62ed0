package schema

// Index represents one table index with its ordered column names.
type Index struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Unique  bool     `json:"unique"`
	Primary bool     `json:"primary"`
}

// Relationship is a single-column foreign-key edge. FromTable.FromColumn
// holds the key, ToTable.ToColumn is the referenced column. ToColumn may
// be empty when the source database declares the key against the implicit
// primary key of the target table.
type Relationship struct {
	FromTable  string `json:"from_table"`
	FromColumn string `json:"from_column"`
	ToTable    string `json:"to_table"`
	ToColumn   string `json:"to_column,omitempty"`
}
