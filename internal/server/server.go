package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"notes-api/internal/api/rest"
	"notes-api/internal/api/rest/middleware"
	"notes-api/internal/api/swagger"
	"notes-api/internal/config"
	"notes-api/internal/repository"
	"notes-api/internal/repository/memory"
	"notes-api/internal/repository/sqlite"
	"notes-api/internal/service/notes"
	"notes-api/internal/tracing"
)

// Драйверы хранилища
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Server представляет HTTP сервер приложения
type Server struct {
	Echo *echo.Echo
	Addr string

	config *config.Config
	logger *log.Logger
	store  repository.Store

	// tracerProvider nil, если трассировка выключена
	tracerProvider *sdktrace.TracerProvider
}

// OpenStore создает хранилище по настройкам конфигурации
func OpenStore(ctx context.Context, cfg *config.ConfigStorage) (repository.Store, error) {
	switch cfg.Driver {
	case DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DSN, cfg.BusyTimeoutMS)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(db), nil
	case DriverMemory:
		return memory.NewRepository(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// NewServer создает сервер и инициализирует компоненты (Repository → Service → Handler)
func NewServer(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Server, error) {
	store, err := OpenStore(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.WithFields(log.Fields{
		"driver": cfg.Storage.Driver,
		"dsn":    cfg.Storage.DSN,
	}).Info("initialized note store")

	var (
		tp             trace.TracerProvider = noop.NewTracerProvider()
		tracerProvider *sdktrace.TracerProvider
	)
	if cfg.Tracing != nil && cfg.Tracing.Enabled {
		tracerProvider, err = tracing.NewProvider(cfg.Tracing, logger)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("init tracing: %w", err), store.Close())
		}
		tp = tracerProvider
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
		logger.WithField("exporter", cfg.Tracing.Exporter).Info("initialized request tracing")
	}

	noteSvc := notes.NewNoteService(store)
	noteHandler := rest.NewHandler(noteSvc)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = config.Seconds(cfg.Server.HTTPReadTimeout)
	e.Server.WriteTimeout = config.Seconds(cfg.Server.HTTPWriteTimeout)
	e.Server.IdleTimeout = config.Seconds(cfg.Server.HTTPIdleTimeout)
	e.Server.ReadHeaderTimeout = config.Seconds(cfg.Server.HTTPReadHeaderTimeout)

	// Recover стоит внутри Logging, чтобы паника попала в лог как 500
	e.Use(
		middleware.RequestID(),
		middleware.Logging(logger),
		echomw.Recover(),
		middleware.Tracing(tp),
		middleware.CORS(cfg.HTTP.CORSAllowedOrigins, cfg.HTTP.CORSMaxAge),
		middleware.RateLimit(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst),
	)
	if cfg.Server.BodyLimit != "" {
		e.Use(echomw.BodyLimit(cfg.Server.BodyLimit))
	}

	rest.Setup(e, noteHandler)
	if cfg.Swagger != nil && cfg.Swagger.Enabled {
		swagger.Register(e)
		logger.Info("API description available at /swagger.json")
	}

	return &Server{
		Echo:   e,
		Addr:   net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.PortHTTP)),
		config: cfg,
		logger: logger,
		store:  store,

		tracerProvider: tracerProvider,
	}, nil
}

// Start запускает HTTP сервер в горутине.
// Возвращает канал ошибок для отслеживания ошибок сервера.
func (s *Server) Start() <-chan error {
	errChan := make(chan error, 1)

	go func() {
		s.logger.WithField("addr", s.Addr).Info("HTTP server listening")
		if err := s.Echo.Start(s.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	return errChan
}

// Shutdown дожидается завершения активных запросов в пределах graceful_shutdown_timeout
// и закрывает хранилище
func (s *Server) Shutdown() error {
	s.logger.Info("starting graceful shutdown")

	ctx, cancel := context.WithTimeout(context.Background(), config.Seconds(s.config.Server.GracefulShutdownTimeout))
	defer cancel()

	var shutdownErr error
	if err := s.Echo.Shutdown(ctx); err != nil {
		s.logger.WithError(err).Warn("graceful shutdown timeout, forcing stop")
		shutdownErr = errors.Join(err, s.Echo.Close())
	} else {
		s.logger.Info("HTTP server stopped gracefully")
	}

	if s.tracerProvider != nil {
		if err := s.tracerProvider.Shutdown(ctx); err != nil {
			shutdownErr = errors.Join(shutdownErr, fmt.Errorf("shutdown tracing: %w", err))
		}
	}

	if err := s.store.Close(); err != nil {
		shutdownErr = errors.Join(shutdownErr, fmt.Errorf("close store: %w", err))
	}

	return shutdownErr
}
