package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"go.trai.ch/embark/internal/adapters/logger"
)

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		minLevel   slog.Level
		level      slog.Level
		msg        string
		goldenName string
	}{
		{"info level", slog.LevelInfo, slog.LevelInfo, "information message", "handler_info"},
		{"warn level", slog.LevelInfo, slog.LevelWarn, "warning message", "handler_warn"},
		{"error level", slog.LevelInfo, slog.LevelError, "error message", "handler_error"},
		{"debug level filtered", slog.LevelInfo, slog.LevelDebug, "debug message", "handler_debug_filtered"},
		{"debug level enabled", slog.LevelDebug, slog.LevelDebug, "debug message", "handler_debug_enabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			handler := logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: tt.minLevel})
			lg := slog.New(handler)

			lg.Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	tests := []struct {
		name       string
		attrs      []slog.Attr
		msg        string
		goldenName string
	}{
		{"single attribute", []slog.Attr{slog.String("key", "value")}, "single attr message", "handler_attrs_single"},
		{"multiple attributes", []slog.Attr{slog.String("a", "1"), slog.Int("b", 2)}, "multi attr message", "handler_attrs_multi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			handler := logger.NewPrettyHandler(buf, nil).WithAttrs(tt.attrs)
			slog.New(handler).Info(tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	tests := []struct {
		name       string
		groups     []string
		key, value string
		msg        string
		goldenName string
	}{
		{"single group", []string{"request"}, "id", "123", "single group message", "handler_group_single"},
		{"nested groups", []string{"a", "b"}, "key", "val", "nested group message", "handler_group_nested"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			var handler slog.Handler = logger.NewPrettyHandler(buf, nil)
			for _, g := range tt.groups {
				handler = handler.WithGroup(g)
			}

			slog.New(handler).Info(tt.msg, tt.key, tt.value)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}
