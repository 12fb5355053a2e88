package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "debug", "json")
	require.NoError(t, err)

	logger.WithField("kind", "uniform").Debug("measured trajectory")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "measured trajectory", entry["message"])
	assert.Equal(t, "debug", entry["severity"])
	assert.Equal(t, "uniform", entry["kind"])
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", "text")
	require.NoError(t, err)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewRejectsBadSettings(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", "text")
	assert.ErrorIs(t, err, ErrParseLogLevel)

	_, err = New(&bytes.Buffer{}, "info", "yaml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
