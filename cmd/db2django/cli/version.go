package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Overridden at build time via -ldflags "-X .../cli.version=...".
var version = "dev"

func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the db2django version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("db2django", version)
		},
	}
}
