package instance

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/termbot-labs/termbot/internal/branding"
)

// Directory and file name constants for the instance convention.
const (
	InstancesDir = "instances"
	ConfigDir    = "config"
	LogsDir      = "logs"
	RegistryFile = "instances.json"
	SettingsFile = "settings.txt"
	MessagesFile = "messages.txt"
	GroupsFile   = "groups.txt"
	TokenFile    = "bot_token.txt"
	TokensEnv    = "tokens.env"
)

// Permission constants. Config trees hold bot tokens, so they are private.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
	DirPermNormal  os.FileMode = 0755
)

// DefaultRoot returns the instances root directory. It checks the
// TERMBOT_INSTANCES environment variable first, then falls back to
// ~/.termbot/instances.
func DefaultRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("INSTANCES")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir(), InstancesDir), nil
}

// Dir returns the directory of a named instance under root.
func Dir(root, name string) string {
	return filepath.Join(root, name)
}

// ConfigPath returns the config directory of a named instance.
func ConfigPath(root, name string) string {
	return filepath.Join(root, name, ConfigDir)
}

// TokenPath returns the bot token file of a named instance.
func TokenPath(root, name string) string {
	return filepath.Join(root, name, ConfigDir, TokenFile)
}
