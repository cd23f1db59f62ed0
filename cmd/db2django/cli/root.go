package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/db2django/db2django/logger"
)

// RootCmd builds the db2django command tree. Every flag can also be set
// through a DB2DJANGO_* environment variable or the optional config
// file.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "db2django",
		Short:        "Generate Django models, admin registrations and data dumps from a legacy database",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			viper.BindPFlags(cmd.Flags())
			if cfg := viper.GetString("config"); cfg != "" {
				viper.SetConfigFile(cfg)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.PersistentFlags().String("config", "", "path to a YAML config file with renames and skip lists")
	cmd.PersistentFlags().String("log-level", "info", "log level (silent, error, warn, info)")
	cmd.PersistentFlags().String("log-format", "text", "log format (text, json)")

	viper.SetEnvPrefix("db2django")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	cmd.AddCommand(ConvertCmd())
	cmd.AddCommand(InspectCmd())
	cmd.AddCommand(LoadCmd())
	cmd.AddCommand(VersionCmd())

	return cmd
}

// newLogger builds the run logger from the persistent flags.
func newLogger() logger.Logger {
	log := logger.NewStdLogger()
	log.SetLevel(logger.ParseLevel(viper.GetString("log-level")))
	if viper.GetString("log-format") == "json" {
		log.SetFormat(logger.LogFormatJSON)
	}
	return log
}
