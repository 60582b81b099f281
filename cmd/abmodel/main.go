// ABOUTME: Main entry point for the abmodel CLI
// ABOUTME: Sets up the Cobra root command and exits non-zero on any failure
package main

import (
	"fmt"
	"os"

	"github.com/harper/abmodel/cmd/abmodel/commands"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersion(version, commit, date)

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
