package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := db.Migrate(); err != nil {
				return err
			}
			return printVersion(cmd, db)
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1, got %d", steps)
			}
			_, db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := db.MigrateDown(steps); err != nil {
				return err
			}
			return printVersion(cmd, db)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			return printVersion(cmd, db)
		},
	})

	return cmd
}

type versioner interface {
	MigrationVersion() (version uint, dirty bool, ok bool, err error)
}

func printVersion(cmd *cobra.Command, db versioner) error {
	version, dirty, ok, err := db.MigrationVersion()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch {
	case !ok:
		fmt.Fprintln(out, "schema version: none")
	case dirty:
		fmt.Fprintf(out, "schema version: %d (dirty)\n", version)
	default:
		fmt.Fprintf(out, "schema version: %d\n", version)
	}
	return nil
}
