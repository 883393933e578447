package obs

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestLogEventEmitsJSON(t *testing.T) {
	logger := Logger()
	original := logger.Writer()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(original)

	Info("role resolved", map[string]any{"identity_id": "ident-1"})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log not valid JSON: %v", err)
	}
	if entry["level"] != "info" || entry["msg"] != "role resolved" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["identity_id"] != "ident-1" {
		t.Fatalf("field lost: %v", entry)
	}
	if entry["ts"] == "" {
		t.Fatal("timestamp missing")
	}
}
