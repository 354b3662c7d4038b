package logging

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/socforge/socforge/logging/colors"
	"github.com/stretchr/testify/assert"
)

// TestLoggerWritesStructuredOutput ensures log events reach attached writers as structured JSON with color directives
// stripped from the message.
func TestLoggerWritesStructuredOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(zerolog.InfoLevel, false, &buf)

	logger.Info("converted ", colors.Bold, "neorv32", colors.Reset, " core")
	output := buf.String()
	assert.Contains(t, output, `"level":"info"`)
	assert.Contains(t, output, `"message":"converted neorv32 core"`)
	assert.NotContains(t, output, "\x1b[")
}

// TestSubLoggerAddsContext ensures sub-loggers attach their key-value context to every event.
func TestSubLoggerAddsContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(zerolog.InfoLevel, false, &buf)

	subLogger := logger.NewSubLogger("module", "hdl")
	subLogger.Info("fetching sources")
	assert.Contains(t, buf.String(), `"module":"hdl"`)
}

// TestLoggerChainsErrors ensures an error argument is attached to the event rather than interpolated into the message.
func TestLoggerChainsErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(zerolog.InfoLevel, false, &buf)

	logger.Error("conversion failed", errors.New("exit status 1"))
	output := buf.String()
	assert.Contains(t, output, `"error":"exit status 1"`)
	assert.Contains(t, output, `"message":"conversion failed"`)
}

// TestAddWriterDeduplicates ensures registering the same writer twice does not duplicate log output.
func TestAddWriterDeduplicates(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(zerolog.InfoLevel, false, &buf)

	logger.AddWriter(&buf, STRUCTURED)
	logger.Info("once")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("once")))
}

// TestSetLevel ensures events below the configured level are suppressed.
func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(zerolog.InfoLevel, false, &buf)
	logger.SetLevel(zerolog.WarnLevel)

	logger.Info("suppressed")
	logger.Warn("emitted")
	output := buf.String()
	assert.NotContains(t, output, "suppressed")
	assert.Contains(t, output, "emitted")
	assert.Equal(t, zerolog.WarnLevel, logger.Level())
}
