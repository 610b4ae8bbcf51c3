package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NivBraz/baconipsum/internal/config"
)

func TestInitJSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	require.NoError(t, Init(config.LogConfig{Level: "info", Format: "json"}, &buf))

	log.Debug().Msg("hidden")
	log.Info().Str("url", "https://baconipsum.com/api/").Msg("visible")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "https://baconipsum.com/api/", entry["url"])
}

func TestInitConsole(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	require.NoError(t, Init(config.LogConfig{Level: "debug", Format: "console"}, &buf))

	log.Debug().Msg("requesting placeholder text")
	assert.Contains(t, buf.String(), "requesting placeholder text")
}

func TestInitInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Init(config.LogConfig{Level: "loud", Format: "json"}, &buf))
}
