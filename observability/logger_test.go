package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONInProduction(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production", "info")
	logger.Info("quota reset", "date", "2026-03-01")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "quota reset", line["msg"])
	assert.Equal(t, "2026-03-01", line["date"])
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "local", "warn")
	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown", "key", "is_pro")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=is_pro")
}
