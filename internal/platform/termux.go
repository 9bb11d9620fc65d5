package platform

import (
	"os"
	"runtime"
	"strings"
)

// termuxPrefix is the app-private directory the Termux APK is installed under.
const termuxPrefix = "/data/data/com.termux"

// Info describes the detected host environment.
type Info struct {
	OS           string // runtime.GOOS
	Architecture string // runtime.GOARCH
	Termux       bool
	TermuxVer    string // TERMUX_VERSION when set
}

// Detect inspects the current process environment and filesystem and returns
// the host environment description.
func Detect() Info {
	return Info{
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		Termux:       IsTermux(),
		TermuxVer:    os.Getenv("TERMUX_VERSION"),
	}
}

// IsTermux reports whether the process appears to be running inside Termux.
// Any single indicator suffices: the app-private directory exists,
// TERMUX_VERSION is set, or PREFIX points into the Termux tree.
func IsTermux() bool {
	if _, err := os.Stat(termuxPrefix); err == nil {
		return true
	}
	if os.Getenv("TERMUX_VERSION") != "" {
		return true
	}
	if prefix := os.Getenv("PREFIX"); strings.Contains(prefix, termuxPrefix) {
		return true
	}
	return false
}

// Label returns a short human-readable environment label for status output.
func (i Info) Label() string {
	if i.Termux {
		if i.TermuxVer != "" {
			return "Termux " + i.TermuxVer + " (" + i.Architecture + ")"
		}
		return "Termux (" + i.Architecture + ")"
	}
	return i.OS + "/" + i.Architecture
}
