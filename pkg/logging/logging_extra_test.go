package logging

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	LogCommand(logger, "rustfmt", []string{"--edition", "2021"})

	output := buf.String()
	assert.Contains(t, output, "rustfmt")
	assert.Contains(t, output, "--edition")
	assert.Contains(t, output, "2021")
	assert.Contains(t, output, "Executing command")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	done := LogOperationStart(logger, "files")
	time.Sleep(time.Millisecond)
	done()

	output := buf.String()
	assert.Contains(t, output, "Operation started")
	assert.Contains(t, output, "Operation completed")
	assert.Contains(t, output, "duration")
	assert.Contains(t, output, "files")
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	base := zerolog.New(&buf)
	logger := base.With().Str("component", "dispatch").Logger()
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"dispatch"`)
	assert.NotPanics(t, func() { l := GetLogger("dispatch"); l.Debug().Msg("noop") })
}
