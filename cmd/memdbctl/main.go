// Package main provides the entry point for memdbctl.
package main

import (
	"fmt"
	"os"

	"github.com/shrtyk/memdb/internal/cli/command"
)

func main() {
	app := command.App(command.DialGRPC, os.Stdout)

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
