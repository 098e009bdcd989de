package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"

	"biolink/internal/config"
)

func TestNewWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(config.LogConfig{Level: "debug", Format: "json"}, &buf)

	l.WithField("slug", "dra-perez").Info("slug checked")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log line, got %q: %v", buf.String(), err)
	}
	if entry["slug"] != "dra-perez" {
		t.Fatalf("expected slug field, got %v", entry["slug"])
	}
	if l.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", l.GetLevel())
	}
}

func TestNewWithOutput_UnknownLevel(t *testing.T) {
	l := NewWithOutput(config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	if l.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level, got %s", l.GetLevel())
	}
}
