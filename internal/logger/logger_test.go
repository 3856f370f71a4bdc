package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-api/internal/config"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newWithOutput(&config.ConfigLogger{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	assert.Equal(t, log.DebugLevel, logger.GetLevel())

	logger.WithField("title", "shopping").Debug("note created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "note created", entry["msg"])
	assert.Equal(t, "shopping", entry["title"])
}

func TestNew_NilConfig(t *testing.T) {
	logger, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
}

func TestNew_Errors(t *testing.T) {
	_, err := New(&config.ConfigLogger{Level: "loud"})
	assert.Error(t, err)

	_, err = New(&config.ConfigLogger{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
