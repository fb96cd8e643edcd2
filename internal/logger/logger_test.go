package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewWith_JSONOutsideLocal(t *testing.T) {
	var buf bytes.Buffer
	log := NewWith("production", "info", &buf)
	log.WithError(errors.New("boom")).Info("scored")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if line["msg"] != "scored" || line["error"] != "boom" {
		t.Fatalf("unexpected log line: %v", line)
	}
}

func TestNewWith_Level(t *testing.T) {
	if got := NewWith("", "debug", &bytes.Buffer{}).Logger.GetLevel(); got != logrus.DebugLevel {
		t.Fatalf("level got %v want debug", got)
	}
	if got := NewWith("", "bogus", &bytes.Buffer{}).Logger.GetLevel(); got != logrus.InfoLevel {
		t.Fatalf("level got %v want info", got)
	}
}

func TestWithRequest_UsesHeaderOrGeneratesID(t *testing.T) {
	log := Discard()

	r := httptest.NewRequest("POST", "/api/v1/analyze", nil)
	r.Header.Set(RequestIDHeader, "req-123")
	if got := log.WithRequest(r).Data["req_id"]; got != "req-123" {
		t.Fatalf("req_id got %v want req-123", got)
	}

	r = httptest.NewRequest("GET", "/healthz", nil)
	id, _ := log.WithRequest(r).Data["req_id"].(string)
	if len(id) != 36 {
		t.Fatalf("expected generated uuid, got %q", id)
	}
}
