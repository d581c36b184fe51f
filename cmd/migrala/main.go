// Package main provides the migrala command, the operational companion
// to the migrala migration library. Migrations themselves are Go code
// registered with the library; this command inspects and adjusts the
// version ledger of a target database.
//
// Usage:
//
//	migrala status               # Show applied versions and the current version
//	migrala version              # Print the current version
//	migrala mark <version>       # Record a version as applied without running it
//	migrala unmark <version>     # Remove a version's ledger record
//	migrala dialects             # List supported dialects
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Database drivers
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/hlop3z/migrala/internal/cli"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

// Global flags
var (
	databaseURL string
	dialectName string
	configFile  string
	plainOutput bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "migrala",
		Short:   "Schema migration ledger tool",
		Long:    "Migrala manages database schema evolution through versioned migration units.\nThis command inspects and adjusts the version ledger of a target database.",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if plainOutput {
				cli.SetDefault(&cli.Config{Mode: cli.ModePlain, Writer: os.Stdout})
			}
		},
	}

	bindConfigFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		statusCmd(),
		versionCmd(),
		markCmd(),
		unmarkCmd(),
		dialectsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.Error("error:"), err)
		os.Exit(1)
	}
}
