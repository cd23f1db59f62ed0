package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/db2django/db2django"
)

func ConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <database-file-or-dsn>",
		Short: "Generate Django sources from the database schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()

			cfg := db2django.Config{
				Driver:      viper.GetString("driver"),
				DSN:         args[0],
				ModelsFile:  viper.GetString("models-file"),
				AdminFile:   viper.GetString("admin-file"),
				FixtureFile: viper.GetString("fixture-file"),
				PGFile:      viper.GetString("pg-file"),
				Logger:      log,
			}
			if cfg.ModelsFile == "" && cfg.AdminFile == "" && cfg.FixtureFile == "" && cfg.PGFile == "" {
				return errors.New("no outputs requested; pass at least one of --models-file, --admin-file, --fixture-file, --pg-file")
			}
			if err := checkSource(cfg.Driver, cfg.DSN); err != nil {
				return err
			}

			opts, err := appOptions()
			if err != nil {
				return err
			}
			cfg.App = opts

			c, err := newCache()
			if err != nil {
				return err
			}
			if c != nil {
				defer c.Close()
				cfg.Cache = c
			}

			return db2django.Run(context.Background(), cfg)
		},
	}

	cmd.Flags().String("driver", "sqlite3", "source driver (sqlite3, mysql, postgres)")
	cmd.Flags().StringP("models-file", "m", "", "models.py output path, - for stdout")
	cmd.Flags().StringP("admin-file", "a", "", "admin.py output path, - for stdout")
	cmd.Flags().StringP("fixture-file", "f", "", "fixture.json output path, - for stdout")
	cmd.Flags().StringP("pg-file", "p", "", "pg_data.sql output path, - for stdout")
	cmd.Flags().StringP("app-name", "n", "", "Django application name (default myapp)")
	cmd.Flags().StringP("schema", "s", "", "PostgreSQL schema to pin in Meta.db_table")
	cmd.Flags().BoolP("keep-table-names", "k", false, "keep source table names via Meta.db_table")
	cmd.Flags().Bool("loose", false, "map unknown column types to TextField instead of failing")
	cmd.Flags().String("cache-dir", "", "directory for the schema snapshot cache")
	cmd.Flags().String("redis", "", "redis URL for the schema snapshot cache")
	cmd.Flags().Duration("cache-ttl", 0, "snapshot cache lifetime (default 15m)")

	return cmd
}
