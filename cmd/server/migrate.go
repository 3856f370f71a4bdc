package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"notes-api/internal/repository/sqlite"
	"notes-api/internal/server"
)

func newMigrateCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configFile)
			if err != nil {
				return err
			}

			if cfg.Storage.Driver != server.DriverSQLite {
				return fmt.Errorf("migrate requires the %q storage driver, got %q", server.DriverSQLite, cfg.Storage.Driver)
			}

			// Open применяет схему сам
			db, err := sqlite.Open(cmd.Context(), cfg.Storage.DSN, cfg.Storage.BusyTimeoutMS)
			if err != nil {
				return err
			}
			defer db.Close()

			logger.WithField("dsn", cfg.Storage.DSN).Info("database schema is up to date")
			return nil
		},
	}
}
