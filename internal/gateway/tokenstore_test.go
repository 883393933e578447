package gateway

import (
	"path/filepath"
	"testing"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session", "tokens.json")
	s := NewFileTokenStore(path)

	_, _, ok, err := s.Load()
	if err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	if err := s.Save("at-1", "rt-1"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	access, refresh, ok, err := s.Load()
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if access != "at-1" || refresh != "rt-1" {
		t.Fatalf("unexpected tokens: %s %s", access, refresh)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, _, ok, _ := s.Load(); ok {
		t.Fatal("store not cleared")
	}
	// Clearing twice is a no-op.
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}
