package updater

import "testing"

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		current, latest string
		want            int
	}{
		{"1.0.0", "1.1.0", -1},
		{"v1.2.3", "1.2.3", 0},
		{"2.0.0", "v1.9.9", 1},
		{"0.9.0", "1.0.0-rc.1", -1},
	}

	for _, tt := range tests {
		got, err := CompareVersions(tt.current, tt.latest)
		if err != nil {
			t.Errorf("CompareVersions(%q, %q): %v", tt.current, tt.latest, err)
			continue
		}
		if got != tt.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.current, tt.latest, got, tt.want)
		}
	}
}

func TestCompareVersionsInvalid(t *testing.T) {
	if _, err := CompareVersions("dev", "1.0.0"); err == nil {
		t.Error("CompareVersions accepted non-semver input, want error")
	}
}

func TestIsUpdateAvailable(t *testing.T) {
	available, err := IsUpdateAvailable("1.0.0", "1.0.1")
	if err != nil {
		t.Fatalf("IsUpdateAvailable: %v", err)
	}
	if !available {
		t.Error("IsUpdateAvailable(1.0.0, 1.0.1) = false, want true")
	}

	available, err = IsUpdateAvailable("1.0.1", "1.0.1")
	if err != nil {
		t.Fatalf("IsUpdateAvailable: %v", err)
	}
	if available {
		t.Error("IsUpdateAvailable(1.0.1, 1.0.1) = true, want false")
	}
}
