package config

import (
	"testing"
	"time"
)

func TestLoadRequiresSupabaseSettings(t *testing.T) {
	t.Setenv("BLUSH_SUPABASE_URL", "")
	t.Setenv("BLUSH_SUPABASE_ANON_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing supabase settings")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BLUSH_SUPABASE_URL", "https://x.supabase.co")
	t.Setenv("BLUSH_SUPABASE_ANON_KEY", "anon")
	t.Setenv("BLUSH_STORAGE_BUCKET", "")
	t.Setenv("BLUSH_RESOLVE_TIMEOUT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StorageBucket != "project-updates" {
		t.Fatalf("unexpected bucket: %s", cfg.StorageBucket)
	}
	if cfg.ResolveTimeout != 10*time.Second {
		t.Fatalf("unexpected resolve timeout: %v", cfg.ResolveTimeout)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("BLUSH_SUPABASE_URL", "https://x.supabase.co")
	t.Setenv("BLUSH_SUPABASE_ANON_KEY", "anon")
	t.Setenv("BLUSH_RESOLVE_TIMEOUT", "3s")
	t.Setenv("BLUSH_UPLOAD_RATE", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ResolveTimeout != 3*time.Second || cfg.UploadRate != 2 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsBadUploadRate(t *testing.T) {
	t.Setenv("BLUSH_SUPABASE_URL", "https://x.supabase.co")
	t.Setenv("BLUSH_SUPABASE_ANON_KEY", "anon")
	t.Setenv("BLUSH_UPLOAD_RATE", "-1")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative upload rate")
	}
}
