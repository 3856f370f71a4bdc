package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"notes-api/internal/config"
)

// New создает logrus логгер по настройкам из конфигурации
func New(cfg *config.ConfigLogger) (*log.Logger, error) {
	return newWithOutput(cfg, os.Stdout)
}

func newWithOutput(cfg *config.ConfigLogger, out io.Writer) (*log.Logger, error) {
	logger := log.New()
	logger.SetOutput(out)

	if cfg == nil {
		return logger, nil
	}

	if cfg.Level != "" {
		level, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		logger.SetLevel(level)
	}

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	return logger, nil
}
