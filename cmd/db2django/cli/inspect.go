package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/db2django/db2django"
	"github.com/db2django/db2django/schema"
)

// inspectPayload is the JSON document `inspect` prints: the raw
// introspection result before any Django mapping.
type inspectPayload struct {
	Driver        string                 `json:"driver"`
	Tables        []*schema.Table        `json:"tables"`
	Relationships []*schema.Relationship `json:"relationships"`
}

func InspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <database-file-or-dsn>",
		Short: "Print the introspected schema as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			cfg := db2django.Config{
				Driver: viper.GetString("driver"),
				DSN:    args[0],
				Logger: log,
			}
			if err := checkSource(cfg.Driver, cfg.DSN); err != nil {
				return err
			}

			c, err := newCache()
			if err != nil {
				return err
			}
			if c != nil {
				defer c.Close()
				cfg.Cache = c
			}

			r, err := db2django.OpenReader(cfg.Driver, cfg.DSN, log)
			if err != nil {
				return err
			}
			defer r.Close()

			ctx := context.Background()
			tables, rels, err := db2django.Snapshot(ctx, r, cfg)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(inspectPayload{
				Driver:        cfg.Driver,
				Tables:        tables,
				Relationships: rels,
			})
		},
	}

	cmd.Flags().String("driver", "sqlite3", "source driver (sqlite3, mysql, postgres)")
	cmd.Flags().String("cache-dir", "", "directory for the schema snapshot cache")
	cmd.Flags().String("redis", "", "redis URL for the schema snapshot cache")
	cmd.Flags().Duration("cache-ttl", 0, "snapshot cache lifetime (default 15m)")

	return cmd
}
