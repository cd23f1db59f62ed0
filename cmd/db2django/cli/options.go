package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"github.com/db2django/db2django/cache"
	"github.com/db2django/db2django/django"
)

// renameConfig is the config-file section replacing the name translation
// hooks of older converters. List entries keep table and column names
// case-sensitive, which map keys in viper would not.
type renameConfig struct {
	Tables []struct {
		Table string `mapstructure:"table"`
		Model string `mapstructure:"model"`
	} `mapstructure:"tables"`
	Columns []struct {
		Table  string `mapstructure:"table"`
		Column string `mapstructure:"column"`
		Field  string `mapstructure:"field"`
	} `mapstructure:"columns"`
}

// appOptions assembles the conversion options from flags and config.
func appOptions() (django.Options, error) {
	opts := django.Options{
		AppName:        viper.GetString("app-name"),
		Schema:         viper.GetString("schema"),
		KeepTableNames: viper.GetBool("keep-table-names"),
		Loose:          viper.GetBool("loose"),
		SkipTables:     viper.GetStringSlice("skip_tables"),
	}

	var renames renameConfig
	if err := viper.UnmarshalKey("renames", &renames); err != nil {
		return opts, fmt.Errorf("invalid renames config: %w", err)
	}
	if len(renames.Tables) > 0 {
		opts.TableNames = make(map[string]string, len(renames.Tables))
		for _, r := range renames.Tables {
			opts.TableNames[r.Table] = r.Model
		}
	}
	if len(renames.Columns) > 0 {
		opts.ColumnNames = make(map[string]string, len(renames.Columns))
		for _, r := range renames.Columns {
			opts.ColumnNames[r.Table+"."+r.Column] = r.Field
		}
	}
	return opts, nil
}

// newCache builds the optional schema snapshot cache. At most one
// backend may be selected.
func newCache() (cache.Cache, error) {
	dir := viper.GetString("cache-dir")
	redisURL := viper.GetString("redis")
	ttl := viper.GetDuration("cache-ttl")
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	switch {
	case dir != "" && redisURL != "":
		return nil, errors.New("choose either --cache-dir or --redis, not both")
	case dir != "":
		return cache.NewFileCache(dir, ttl)
	case redisURL != "":
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return cache.NewRedisCache(opt, ttl)
	default:
		return nil, nil
	}
}

// checkSource rejects a missing database file up front. The sqlite3
// driver would otherwise create an empty database and report no tables.
func checkSource(driver, dsn string) error {
	if driver != "sqlite3" {
		return nil
	}
	if _, err := os.Stat(dsn); err != nil {
		return fmt.Errorf("database file %s: %w", dsn, err)
	}
	return nil
}
