package platform

import (
	"runtime"
	"testing"
)

func TestIsTermuxFromEnvVersion(t *testing.T) {
	t.Setenv("TERMUX_VERSION", "0.118.0")
	t.Setenv("PREFIX", "")

	if !IsTermux() {
		t.Error("IsTermux() = false with TERMUX_VERSION set, want true")
	}
}

func TestIsTermuxFromPrefix(t *testing.T) {
	t.Setenv("TERMUX_VERSION", "")
	t.Setenv("PREFIX", "/data/data/com.termux/files/usr")

	if !IsTermux() {
		t.Error("IsTermux() = false with Termux PREFIX set, want true")
	}
}

func TestDetectFillsRuntimeFields(t *testing.T) {
	info := Detect()

	if info.OS != runtime.GOOS {
		t.Errorf("OS = %q, want %q", info.OS, runtime.GOOS)
	}
	if info.Architecture != runtime.GOARCH {
		t.Errorf("Architecture = %q, want %q", info.Architecture, runtime.GOARCH)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"termux with version", Info{Architecture: "arm64", Termux: true, TermuxVer: "0.118.0"}, "Termux 0.118.0 (arm64)"},
		{"termux without version", Info{Architecture: "arm64", Termux: true}, "Termux (arm64)"},
		{"plain linux", Info{OS: "linux", Architecture: "amd64"}, "linux/amd64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}
