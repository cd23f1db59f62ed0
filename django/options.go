package django

// Options controls how schema metadata is turned into Django
// declarations. The rename maps replace the translation hooks of older
// converters: TableNames overrides the generated model name per table,
// ColumnNames overrides the field name per "table.column" key.
type Options struct {
	AppName        string            `mapstructure:"app_name"`
	Schema         string            `mapstructure:"schema"`
	KeepTableNames bool              `mapstructure:"keep_table_names"`
	Loose          bool              `mapstructure:"loose"`
	TableNames     map[string]string `mapstructure:"table_names"`
	ColumnNames    map[string]string `mapstructure:"column_names"`
	SkipTables     []string          `mapstructure:"skip_tables"`
}

const defaultAppName = "myapp"

func (o Options) withDefaults() Options {
	if o.AppName == "" {
		o.AppName = defaultAppName
	}
	return o
}

func (o Options) skipped(table string) bool {
	for _, t := range o.SkipTables {
		if t == table {
			return true
		}
	}
	return false
}
