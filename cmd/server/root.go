package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"notes-api/internal/config"
	"notes-api/internal/logger"
)

const defaultConfigFile = "config.yml"

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "notes-api",
		Short:         "HTTP API for notes",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Без подкоманды запускаем сервер
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configFile)
		},
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", defaultConfigFile, "path to config file (empty for defaults only)")

	root.AddCommand(newServeCmd(&configFile), newMigrateCmd(&configFile))
	return root
}

// setup загружает конфигурацию и создает логгер
func setup(configFile string) (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		log.WithError(err).Error("error initializing config")
		return nil, nil, err
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.WithError(err).Error("error initializing logger")
		return nil, nil, err
	}

	return cfg, appLogger, nil
}
