package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	return entry
}

func TestLoggerFields(t *testing.T) {
	defer setup(os.Stderr, "production")

	tests := []struct {
		name  string
		log   func()
		check func(t *testing.T, entry map[string]any)
	}{
		{
			name: "key value pairs become fields",
			log:  func() { Info("served", "user_id", 7, "source", "popular") },
			check: func(t *testing.T, entry map[string]any) {
				if entry["message"] != "served" {
					t.Errorf("message = %v, want served", entry["message"])
				}
				if entry["source"] != "popular" {
					t.Errorf("source = %v, want popular", entry["source"])
				}
				if entry["user_id"] != float64(7) {
					t.Errorf("user_id = %v, want 7", entry["user_id"])
				}
			},
		},
		{
			name: "error value becomes error field",
			log:  func() { Error("store failed", errors.New("connection refused")) },
			check: func(t *testing.T, entry map[string]any) {
				if entry["error"] != "connection refused" {
					t.Errorf("error = %v, want connection refused", entry["error"])
				}
				if entry["level"] != "error" {
					t.Errorf("level = %v, want error", entry["level"])
				}
			},
		},
		{
			name: "dangling key is kept",
			log:  func() { Warn("odd args", "orphan") },
			check: func(t *testing.T, entry map[string]any) {
				if entry["detail"] != "orphan" {
					t.Errorf("detail = %v, want orphan", entry["detail"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			setup(&buf, "production")
			tt.log()
			tt.check(t, decodeLine(t, &buf))
		})
	}
}

func TestLoggerProductionSkipsDebug(t *testing.T) {
	defer setup(os.Stderr, "production")

	var buf bytes.Buffer
	setup(&buf, "production")
	Debug("hidden", "k", "v")

	if buf.Len() != 0 {
		t.Errorf("debug output in production: %q", buf.String())
	}
}
