package instance

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"

	"github.com/termbot-labs/termbot/internal/platform"
)

// tokenRe matches the BotFather token shape: numeric bot ID, a colon, then
// the secret. Only the shape is checked; validity is the bot's problem.
var tokenRe = regexp.MustCompile(`^\d+:[A-Za-z0-9_-]{20,}$`)

// SaveToken writes the bot token for an instance with private permissions.
// The bot encrypts the plaintext file on its first run.
func SaveToken(root, name, token string) error {
	token = strings.TrimSpace(token)
	if !tokenRe.MatchString(token) {
		return fmt.Errorf("token does not look like a bot token (expected <id>:<secret>)")
	}

	if _, err := Get(root, name); err != nil {
		return err
	}

	path := TokenPath(root, name)
	if err := os.MkdirAll(filepath.Dir(path), DirPermSecure); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), FilePermSecure); err != nil {
		return fmt.Errorf("writing token: %w", err)
	}
	if err := platform.Chmod(path, FilePermSecure); err != nil {
		return fmt.Errorf("securing token file: %w", err)
	}
	return nil
}

// LoadTokens reads optional service tokens from the instance's tokens.env.
// A missing file is not an error; skills of the bot that need no extra
// tokens run without one.
func LoadTokens(root, name string) (map[string]string, error) {
	path := filepath.Join(ConfigPath(root, name), TokensEnv)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]string{}, nil
	}

	tokens, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return tokens, nil
}
