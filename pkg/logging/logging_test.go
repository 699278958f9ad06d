package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := New(Config{Level: LevelInfo, Format: FormatText, Output: &buf})
		log.Info("saved record", "id", "42")

		out := buf.String()
		assert.Contains(t, out, "saved record")
		assert.Contains(t, out, "id=42")
	})

	t.Run("json format", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})
		log.Info("saved record", "id", "42")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "saved record", entry["msg"])
		assert.Equal(t, "42", entry["id"])
	})

	t.Run("level filtering", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := New(Config{Level: LevelWarn, Format: FormatText, Output: &buf})
		log.Info("dropped")
		log.Warn("kept")

		out := buf.String()
		assert.NotContains(t, out, "dropped")
		assert.Contains(t, out, "kept")
	})
}

func TestNop(t *testing.T) {
	t.Parallel()

	// Must not panic and must not write anywhere visible.
	log := Nop()
	log.Info("discarded")
	log.Error("also discarded")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]Level{
		"debug":   LevelDebug,
		"DEBUG":   LevelDebug,
		"info":    LevelInfo,
		"warn":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"bogus":   LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
	assert.Equal(t, LevelError, ParseLevel(strings.ToUpper("error")))
}
