package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"notes-api/internal/server"
)

func newServeCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, *configFile)
		},
	}
}

func runServe(cmd *cobra.Command, configFile string) error {
	cfg, logger, err := setup(configFile)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(cmd.Context(), cfg, logger)
	if err != nil {
		logger.WithError(err).Error("failed to create server")
		return err
	}

	// Канал для graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := srv.Start()

	// Ожидание сигнала или ошибки
	var serveErr error
	select {
	case serveErr = <-errChan:
		logger.WithError(serveErr).Error("server error")
	case sig := <-sigChan:
		logger.WithField("signal", sig.String()).Info("received signal, starting graceful shutdown")
	}

	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("shutdown failed")
		if serveErr == nil {
			serveErr = err
		}
	}

	logger.Info("notes API stopped")
	return serveErr
}
