package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/db2django/db2django"
	"github.com/db2django/db2django/load"
)

func LoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <database-file-or-dsn>",
		Short: "Copy all source data directly into a PostgreSQL database",
		Long: `Copy all source data directly into a PostgreSQL database.

The target tables must already exist, normally created by running the
generated models through Django's migrate. Rows go in via COPY inside a
single transaction, children cleared before parents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()

			target := viper.GetString("target")
			if target == "" {
				return errors.New("--target is required")
			}

			cfg := db2django.Config{
				Driver: viper.GetString("driver"),
				DSN:    args[0],
				Logger: log,
			}
			if err := checkSource(cfg.Driver, cfg.DSN); err != nil {
				return err
			}
			opts, err := appOptions()
			if err != nil {
				return err
			}
			cfg.App = opts

			r, err := db2django.OpenReader(cfg.Driver, cfg.DSN, log)
			if err != nil {
				return err
			}
			defer r.Close()

			ctx := context.Background()
			app, err := db2django.Introspect(ctx, r, cfg)
			if err != nil {
				return err
			}
			return load.Run(ctx, app, r, target, log)
		},
	}

	cmd.Flags().String("driver", "sqlite3", "source driver (sqlite3, mysql, postgres)")
	cmd.Flags().StringP("target", "t", "", "PostgreSQL DSN of the target database")
	cmd.Flags().StringP("app-name", "n", "", "Django application name (default myapp)")
	cmd.Flags().StringP("schema", "s", "", "target PostgreSQL schema")
	cmd.Flags().BoolP("keep-table-names", "k", false, "target tables use the source table names")
	cmd.Flags().Bool("loose", false, "map unknown column types to TextField instead of failing")

	return cmd
}
