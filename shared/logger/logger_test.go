package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"cheapticket/config"
	"cheapticket/shared/constant"
	"cheapticket/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restore resets the global logger state touched by a test.
func restore(t *testing.T) {
	t.Helper()

	previous, level := log.Logger, zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(level)
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "info", want: zerolog.InfoLevel},
		{level: "warn", want: zerolog.WarnLevel},
		{level: "error", want: zerolog.ErrorLevel},
		{level: "", want: zerolog.NoLevel},
		{level: "verbose", want: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			restore(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.level

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestSetOutput(t *testing.T) {
	restore(t)

	var buf bytes.Buffer

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.App.Name = "cheapticket"

	logger.SetOutput(cfg, &buf)
	log.Info().Str("kind", "hotel").Msg("booking saved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "cheapticket", entry["app"])
	assert.Equal(t, "hotel", entry["kind"])
	assert.Equal(t, "booking saved", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestSetOutput_Console(t *testing.T) {
	restore(t)

	var buf bytes.Buffer

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvDevelopment

	logger.SetOutput(cfg, &buf)
	log.Info().Msg("booting")

	assert.Contains(t, buf.String(), "booting")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer

	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger.ErrorWithStack(errors.New("smtp unavailable"))

	out := buf.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, "smtp unavailable")
	assert.Contains(t, out, "logger_test")
}
