package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name  string
		level Level
	}{
		{"Debug level", LevelDebug},
		{"Info level", LevelInfo},
		{"Warn level", LevelWarn},
		{"Error level", LevelError},
		{"Unknown level falls back to info", Level("NOPE")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Just ensure it doesn't panic
			Init(tt.level)
		})
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(LevelDebug, &buf)

	Debug().Msg("debug message")
	assert.Contains(t, buf.String(), "debug message")
	assert.Contains(t, buf.String(), "DBG")

	buf.Reset()
	InitWithWriter(LevelWarn, &buf)

	Info().Msg("should be filtered")
	assert.NotContains(t, buf.String(), "should be filtered")

	Warn().Msg("warn message")
	assert.Contains(t, buf.String(), "warn message")

	Error().Msg("error message")
	assert.Contains(t, buf.String(), "error message")
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(LevelDebug, &buf)

	sub := With("resizer")
	sub.Info().Msg("component message")

	assert.Contains(t, buf.String(), "component message")
	assert.Contains(t, buf.String(), "resizer")
}

func TestLegacyLevelAliases(t *testing.T) {
	assert.Equal(t, toLevelValue(Level("warning")), toLevelValue(LevelWarn))
	assert.Equal(t, toLevelValue(Level("critical")), toLevelValue(LevelError))
}
