package main

import (
	"os"

	"github.com/db2django/db2django/cmd/db2django/cli"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
