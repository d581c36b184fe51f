package main

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hlop3z/migrala/internal/cli"
	"github.com/hlop3z/migrala/internal/dialect"
	"github.com/hlop3z/migrala/internal/engine"
	"github.com/hlop3z/migrala/internal/merr"
)

// withLedger opens the configured database and hands a ready ledger to fn.
func withLedger(fn func(ctx context.Context, db *sql.DB, l engine.Ledger) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, d, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	ledger := engine.NewLedger(db, d)
	if err := ledger.EnsureTable(ctx); err != nil {
		return err
	}
	return fn(ctx, db, ledger)
}

func parseVersion(arg string) (int64, error) {
	v, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || v <= 0 {
		return 0, merr.New(merr.ErrConfigInvalid, "version must be a positive integer").
			With("argument", arg)
	}
	return v, nil
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied versions and the current version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(func(ctx context.Context, db *sql.DB, l engine.Ledger) error {
				applied, err := l.AppliedVersions(ctx)
				if err != nil {
					return err
				}
				current, err := l.CurrentVersion(ctx)
				if err != nil {
					return err
				}

				cli.Println(cli.Header("Migration status"))
				if len(applied) == 0 {
					cli.Println(cli.Muted("  no versions applied"))
					return nil
				}
				for _, v := range applied {
					marker := "  "
					if v == current {
						marker = cli.Success("* ")
					}
					cli.Printf("%s%d\n", marker, v)
				}
				cli.Printf("current: %s\n", cli.Success(strconv.FormatInt(current, 10)))
				return nil
			})
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(func(ctx context.Context, db *sql.DB, l engine.Ledger) error {
				current, err := l.CurrentVersion(ctx)
				if err != nil {
					return err
				}
				cli.Printf("%d\n", current)
				return nil
			})
		},
	}
}

func markCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark <version>",
		Short: "Record a version as applied without running it",
		Long:  "Records a version in the ledger without executing any SQL.\nUse when adopting a database that was migrated by other means.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseVersion(args[0])
			if err != nil {
				return err
			}
			return withLedger(func(ctx context.Context, db *sql.DB, l engine.Ledger) error {
				if err := l.MarkApplied(ctx, v); err != nil {
					return err
				}
				cli.Printf("%s marked %d as applied\n", cli.Success("ok:"), v)
				return nil
			})
		},
	}
}

func unmarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unmark <version>",
		Short: "Remove a version's ledger record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseVersion(args[0])
			if err != nil {
				return err
			}
			return withLedger(func(ctx context.Context, db *sql.DB, l engine.Ledger) error {
				if err := l.MarkUnapplied(ctx, v); err != nil {
					return err
				}
				cli.Printf("%s removed %d from the ledger\n", cli.Success("ok:"), v)
				return nil
			})
		},
	}
}

func dialectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List supported dialects",
		Run: func(cmd *cobra.Command, args []string) {
			cli.Println(cli.Header("Supported dialects"))
			for _, name := range dialect.Names() {
				d := dialect.Get(name)
				note := ""
				if !d.SupportsTransactionalDDL() {
					note = cli.Muted(" (non-transactional DDL)")
				}
				cli.Printf("  %s%s\n", name, note)
			}
		},
	}
}
