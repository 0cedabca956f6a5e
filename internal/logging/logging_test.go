package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/junioryono/inject"
	"github.com/junioryono/inject/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line: %s", line)
		lines = append(lines, entry)
	}
	return lines
}

func TestNew(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(config.Logging{Level: "info", Format: "json"}, &buf)

		logger.Debug().Msg("hidden")
		logger.Info().Str("k", "v").Msg("visible")

		lines := decodeLines(t, &buf)
		require.Len(t, lines, 1)
		assert.Equal(t, "visible", lines[0]["message"])
		assert.Equal(t, "info", lines[0]["level"])
		assert.Equal(t, "v", lines[0]["k"])
		assert.Contains(t, lines[0], "time")
	})

	t.Run("console format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(config.Logging{Level: "debug", Format: "console"}, &buf)

		logger.Debug().Msg("console line")

		out := buf.String()
		assert.Contains(t, out, "console line")
		assert.Contains(t, out, "DBG")
		assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(config.Logging{Level: "loud", Format: "json"}, &buf)

		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})
}

func TestModule(t *testing.T) {
	var buf bytes.Buffer
	registry := inject.NewRegistry()
	t.Cleanup(func() { registry.Close() })

	registry.AddModules(Module(config.Logging{Level: "info", Format: "json"}, &buf))

	assert.Equal(t, 3, registry.Count())

	unnamed := inject.MustResolve[zerolog.Logger](registry)
	unnamed.Info().Msg("from default")
	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "from default", lines[0]["message"])

	buf.Reset()
	console := inject.MustResolve[zerolog.Logger](registry, inject.Name(FormatConsole))
	console.Info().Msg("from console")
	assert.Contains(t, buf.String(), "from console")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))

	_, ok := inject.Optional[zerolog.Logger](registry, inject.Name(FormatJSON))
	assert.True(t, ok)
}

func TestHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.Logging{Level: "debug", Format: "json"}, &buf)

	registry := inject.NewRegistryWithOptions(Hooks(logger))
	t.Cleanup(func() { registry.Close() })
	inject.Register(registry, inject.Unique, func() string { return "value" }, inject.Name("greeting"))

	_, err := inject.Resolve[string](registry, inject.Name("greeting"))
	require.NoError(t, err)
	_, err = inject.Resolve[int](registry)
	require.Error(t, err)

	// Optional misses are not errors
	_, ok := inject.Optional[bool](registry)
	require.False(t, ok)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "capability resolved", lines[0]["message"])
	assert.Equal(t, "string[greeting]", lines[0][FieldCapability])
	assert.Contains(t, lines[0], FieldDuration)

	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "capability resolution failed", lines[1]["message"])
	assert.Equal(t, "int", lines[1][FieldCapability])
	assert.Contains(t, lines[1]["error"], "capability not registered")
}

func TestForRegistry(t *testing.T) {
	var buf bytes.Buffer
	registry := inject.NewRegistry()

	logger := ForRegistry(New(config.Logging{Level: "info", Format: "json"}, &buf), registry)
	logger.Info().Msg("tagged")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, registry.ID(), lines[0][FieldRegistry])
}
