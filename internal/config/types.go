package config

import "time"

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text | json
}

// ConfigServer настройки HTTP сервера
type ConfigServer struct {
	Host                    string `mapstructure:"host"`
	PortHTTP                int    `mapstructure:"port_http"`
	HTTPReadTimeout         int    `mapstructure:"http_read_timeout"`
	HTTPWriteTimeout        int    `mapstructure:"http_write_timeout"`
	HTTPIdleTimeout         int    `mapstructure:"http_idle_timeout"`
	HTTPReadHeaderTimeout   int    `mapstructure:"http_read_header_timeout"`
	GracefulShutdownTimeout int    `mapstructure:"graceful_shutdown_timeout"`
	BodyLimit               string `mapstructure:"body_limit"`
}

// ConfigHTTP настройки middleware HTTP API
type ConfigHTTP struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	CORSMaxAge         int    `mapstructure:"cors_max_age"`
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
}

// ConfigStorage настройки хранилища
type ConfigStorage struct {
	Driver        string `mapstructure:"driver"` // sqlite | memory
	DSN           string `mapstructure:"dsn"`
	BusyTimeoutMS int    `mapstructure:"busy_timeout_ms"`
}

// ConfigTracing настройки трассировки запросов
type ConfigTracing struct {
	Enabled     bool    `mapstructure:"enabled"`
	Exporter    string  `mapstructure:"exporter"` // log
	ServiceName string  `mapstructure:"service_name"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// ConfigSwagger настройки отдачи описания API
type ConfigSwagger struct {
	Enabled bool `mapstructure:"enabled"`
}

// Config основная структура конфигурации
type Config struct {
	Logger  *ConfigLogger  `mapstructure:"logger"`
	Server  *ConfigServer  `mapstructure:"server"`
	HTTP    *ConfigHTTP    `mapstructure:"http"`
	Storage *ConfigStorage `mapstructure:"storage"`
	Swagger *ConfigSwagger `mapstructure:"swagger"`
	Tracing *ConfigTracing `mapstructure:"tracing"`
}

// Defaults значения по умолчанию для всех ключей Config
var Defaults = map[string]any{
	"logger.level":                     "info",
	"logger.format":                    "text",
	"server.host":                      "0.0.0.0",
	"server.port_http":                 8080,
	"server.http_read_timeout":         15,
	"server.http_write_timeout":        15,
	"server.http_idle_timeout":         60,
	"server.http_read_header_timeout":  5,
	"server.graceful_shutdown_timeout": 10,
	"server.body_limit":                "1M",
	"http.cors_allowed_origins":        "*",
	"http.cors_max_age":                86400,
	"http.rate_limit_rps":              100,
	"http.rate_limit_burst":            10,
	"storage.driver":                   "sqlite",
	"storage.dsn":                      "data/notes.db",
	"storage.busy_timeout_ms":          5000,
	"swagger.enabled":                  true,
	"tracing.enabled":                  false,
	"tracing.exporter":                 "log",
	"tracing.service_name":             "notes-api",
	"tracing.sample_ratio":             1.0,
}

// Seconds переводит значение конфигурации в секундах в time.Duration
func Seconds(v int) time.Duration {
	return time.Duration(v) * time.Second
}
