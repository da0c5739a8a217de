package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("verbose"))
	assert.Equal(t, FormatJSON, ParseFormat(" json "))
	assert.Equal(t, FormatText, ParseFormat("logfmt"))
}

func TestNew_JSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Info, Format: FormatJSON, App: "kennel-console", Output: zapcore.AddSync(&buf)})

	log.With(map[string]any{"component": "reservations"}).
		Info("reservation created", map[string]any{"reservation_id": "r1", "error": errors.New("x"), " ": "dropped"})
	log.Debug("hidden", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "reservation created", entry["msg"])
	assert.Equal(t, "kennel-console", entry["app"])
	assert.Equal(t, "reservations", entry["component"])
	assert.Equal(t, "r1", entry["reservation_id"])
	assert.Equal(t, "x", entry["error"])
	assert.NotContains(t, entry, " ")
}
