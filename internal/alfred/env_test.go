package alfred

import (
	"strings"
	"testing"
)

func TestCacheDir_AlfredEnv(t *testing.T) {
	t.Setenv("alfred_workflow_cache", "/tmp/alfred/cache")
	if got := CacheDir(); got != "/tmp/alfred/cache" {
		t.Errorf("CacheDir() = %q, want env value", got)
	}
}

func TestCacheDir_Fallback(t *testing.T) {
	t.Setenv("alfred_workflow_cache", "")
	got := CacheDir()
	if got == "" {
		t.Fatal("CacheDir() = empty")
	}
	if !strings.Contains(got, appName) {
		t.Errorf("CacheDir() = %q, want path namespaced by %q", got, appName)
	}
}

func TestDataDir_AlfredEnv(t *testing.T) {
	t.Setenv("alfred_workflow_data", "/tmp/alfred/data")
	if got := DataDir(); got != "/tmp/alfred/data" {
		t.Errorf("DataDir() = %q, want env value", got)
	}
}
