package tracing

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"

	"notes-api/internal/config"
)

func TestNewProvider_UnknownExporter(t *testing.T) {
	logger, _ := test.NewNullLogger()

	_, err := NewProvider(&config.ConfigTracing{Exporter: "jaeger"}, logger)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "jaeger")
}

func TestNewProvider_LogExporterFlushesOnShutdown(t *testing.T) {
	// Arrange
	logger, hook := test.NewNullLogger()
	tp, err := NewProvider(&config.ConfigTracing{
		Exporter:    ExporterLog,
		ServiceName: "notes-api",
		SampleRatio: 1,
	}, logger)
	require.NoError(t, err)

	// Act
	ctx, parent := tp.Tracer("test").Start(testContext(t), "parent")
	_, child := tp.Tracer("test").Start(ctx, "child")
	child.SetAttributes(attribute.String("note.title", "shopping"))
	child.End()
	parent.End()
	require.NoError(t, tp.Shutdown(testContext(t)))

	// Assert
	entries := hook.AllEntries()
	require.Len(t, entries, 2)

	byName := make(map[string]map[string]any, len(entries))
	for _, entry := range entries {
		assert.Equal(t, "span ended", entry.Message)
		byName[entry.Data["span"].(string)] = entry.Data
	}

	require.Contains(t, byName, "child")
	require.Contains(t, byName, "parent")
	assert.Equal(t, "shopping", byName["child"]["note.title"])
	assert.Equal(t, byName["parent"]["span_id"], byName["child"]["parent_span_id"])
	assert.Equal(t, byName["parent"]["trace_id"], byName["child"]["trace_id"])
	assert.NotContains(t, byName["parent"], "parent_span_id")
}

// testContext stands in for testing.T.Context (Go 1.24+): a context that is
// cancelled when the test finishes.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
