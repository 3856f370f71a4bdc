package tracing

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"notes-api/internal/config"
)

// ExporterLog пишет завершенные span'ы в логгер приложения
const ExporterLog = "log"

// NewProvider создает провайдер трассировки по настройкам конфигурации.
// Span'ы отправляются экспортеру пачками, остаток сбрасывается в Shutdown.
func NewProvider(cfg *config.ConfigTracing, logger *log.Logger) (*sdktrace.TracerProvider, error) {
	var exporter sdktrace.SpanExporter
	switch cfg.Exporter {
	case ExporterLog:
		exporter = NewLogExporter(logger)
	default:
		return nil, fmt.Errorf("unknown tracing exporter %q", cfg.Exporter)
	}

	ratio := cfg.SampleRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
		)),
	), nil
}

var _ sdktrace.SpanExporter = (*LogExporter)(nil)

// LogExporter экспортер span'ов в logrus, одна запись на span
type LogExporter struct {
	logger *log.Logger
}

// NewLogExporter создает экспортер, пишущий в logger
func NewLogExporter(logger *log.Logger) *LogExporter {
	return &LogExporter{logger: logger}
}

// ExportSpans пишет span'ы в лог
func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		sc := span.SpanContext()
		fields := log.Fields{
			"span":        span.Name(),
			"kind":        span.SpanKind().String(),
			"trace_id":    sc.TraceID().String(),
			"span_id":     sc.SpanID().String(),
			"status":      span.Status().Code.String(),
			"duration_ms": float64(span.EndTime().Sub(span.StartTime()).Microseconds()) / 1000,
		}
		if parent := span.Parent(); parent.IsValid() {
			fields["parent_span_id"] = parent.SpanID().String()
		}
		for _, kv := range span.Attributes() {
			fields[string(kv.Key)] = kv.Value.Emit()
		}

		e.logger.WithFields(fields).Info("span ended")
	}
	return nil
}

// Shutdown ничего не делает: логгер живет дольше провайдера
func (e *LogExporter) Shutdown(ctx context.Context) error {
	return nil
}
