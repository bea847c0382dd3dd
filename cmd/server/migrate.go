package main

import (
	"github.com/recallify/catalog-service/app/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(database.Up), string(database.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := database.ParseDirection(args[0])
			if err != nil {
				return err
			}

			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			return database.Migrate(cfg.Postgres.DSN(), dir, log)
		},
	}
}
