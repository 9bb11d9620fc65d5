package updater

import (
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cache := &VersionCache{
		LatestVersion:   "1.2.0",
		CurrentVersion:  "1.1.0",
		ReleaseURL:      "https://example.test/releases/v1.2.0",
		CheckedAt:       time.Now().Truncate(time.Second),
		UpdateAvailable: true,
	}

	if err := SaveCache(dir, cache); err != nil {
		t.Fatalf("SaveCache: %v", err)
	}

	loaded, err := LoadCache(dir)
	if err != nil {
		t.Fatalf("LoadCache: %v", err)
	}
	if loaded == nil {
		t.Fatal("LoadCache returned nil for existing cache")
	}
	if loaded.LatestVersion != cache.LatestVersion || !loaded.UpdateAvailable {
		t.Errorf("loaded = %+v, want %+v", loaded, cache)
	}
}

func TestLoadCacheMissing(t *testing.T) {
	loaded, err := LoadCache(t.TempDir())
	if err != nil {
		t.Fatalf("LoadCache: %v", err)
	}
	if loaded != nil {
		t.Errorf("loaded = %+v, want nil for missing cache", loaded)
	}
}

func TestIsCacheStale(t *testing.T) {
	if !IsCacheStale(nil, time.Hour) {
		t.Error("nil cache should be stale")
	}

	fresh := &VersionCache{CheckedAt: time.Now()}
	if IsCacheStale(fresh, time.Hour) {
		t.Error("fresh cache reported stale")
	}

	old := &VersionCache{CheckedAt: time.Now().Add(-2 * time.Hour)}
	if !IsCacheStale(old, time.Hour) {
		t.Error("old cache reported fresh")
	}
}
