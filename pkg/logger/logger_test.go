package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	log, err := New("debug")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug to be enabled")
	}

	log, err = New("")
	if err != nil {
		t.Fatalf("new default: %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) || !log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info as default level")
	}

	if _, err := New("loud"); err == nil {
		t.Fatalf("expected unknown level to fail")
	}
}

func TestNamedWithNilBase(t *testing.T) {
	if Named(nil, "svc") == nil {
		t.Fatalf("expected a no-op logger")
	}
}
