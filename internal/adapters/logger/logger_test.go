package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/embark/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Debug("hidden")
	lg.Info("some message")
	lg.Warn("some warning")

	assert.Equal(t, "some message\n! some warning\n", buf.String())
}

func TestLogger_SetLevel(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.SetLevel(slog.LevelWarn)
	lg.Info("quiet")
	lg.Warn("loud")
	assert.Equal(t, "! loud\n", buf.String())

	buf.Reset()
	lg.SetLevel(slog.LevelDebug)
	lg.Debug("details")
	assert.Equal(t, "· details\n", buf.String())
}

func TestLogger_Error(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := zerr.With(zerr.Wrap(errors.New("connection refused"), "engine download failed"), "url", "https://mirror")
	lg.Error(err)

	assert.Equal(t,
		"✗ Error: engine download failed\n"+
			"       url: https://mirror\n\n"+
			"  Caused by:\n"+
			"    → connection refused\n",
		buf.String())
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.SetJSON(true)
	lg.Error(errors.New("boom"))

	assert.Contains(t, buf.String(), `"msg":"operation failed"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)
}
