package main

import (
	"fmt"

	"github.com/spf13/cobra"

	infraPostgres "github.com/bibbank/treasury/internal/infrastructure/postgres"
	"github.com/bibbank/treasury/pkg/postgres"
)

func newMigrateCmd() *cobra.Command {
	var dsn, source string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the PostgreSQL schema",
		Long: `Apply or roll back the treasury schema. Migrations compiled into the
binary are used unless --source names another location, for example
file://internal/infrastructure/postgres/migrations.`,
	}
	cmd.PersistentFlags().StringVar(&dsn, "dsn", "", "PostgreSQL connection URL (required)")
	cmd.PersistentFlags().StringVar(&source, "source", "", "migration source URL (default embedded)")
	_ = cmd.MarkPersistentFlagRequired("dsn")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				var err error
				if source != "" {
					err = postgres.RunMigrations(dsn, source)
				} else {
					err = postgres.RunEmbeddedMigrations(dsn, infraPostgres.Migrations, infraPostgres.MigrationsDir)
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				var err error
				if source != "" {
					err = postgres.RunMigrationsDown(dsn, source)
				} else {
					err = postgres.RunEmbeddedMigrationsDown(dsn, infraPostgres.Migrations, infraPostgres.MigrationsDir)
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations rolled back")
				return nil
			},
		},
	)
	return cmd
}
