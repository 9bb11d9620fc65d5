package instance

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestSaveToken(t *testing.T) {
	root := t.TempDir()
	if _, err := Create(root, "bot", validSettings()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	token := "123456789:AAHdqTcvbXJKxoJ0a1b2c3d4e5f6g7h8i9j"
	if err := SaveToken(root, "bot", token+"\n"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	data, err := os.ReadFile(TokenPath(root, "bot"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != token {
		t.Errorf("token file = %q, want %q", data, token)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(TokenPath(root, "bot"))
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != FilePermSecure {
			t.Errorf("token permissions = %o, want %o", perm, FilePermSecure)
		}
	}
}

func TestSaveTokenRejectsMalformed(t *testing.T) {
	root := t.TempDir()
	if _, err := Create(root, "bot", validSettings()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, token := range []string{"", "no-colon", "abc:short", ":missing-id"} {
		if err := SaveToken(root, "bot", token); err == nil {
			t.Errorf("SaveToken(%q) succeeded, want error", token)
		}
	}
}

func TestSaveTokenUnknownInstance(t *testing.T) {
	err := SaveToken(t.TempDir(), "ghost", "123456789:AAHdqTcvbXJKxoJ0a1b2c3d4e5f6g7h8i9j")
	if err == nil {
		t.Error("SaveToken for unknown instance succeeded, want error")
	}
}

func TestLoadTokens(t *testing.T) {
	root := t.TempDir()
	if _, err := Create(root, "bot", validSettings()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	env := "WEATHER_API_KEY=abc123\nNEWS_API_KEY=xyz789\n"
	if err := os.WriteFile(filepath.Join(ConfigPath(root, "bot"), TokensEnv), []byte(env), 0600); err != nil {
		t.Fatal(err)
	}

	tokens, err := LoadTokens(root, "bot")
	if err != nil {
		t.Fatalf("LoadTokens: %v", err)
	}
	if tokens["WEATHER_API_KEY"] != "abc123" {
		t.Errorf("WEATHER_API_KEY = %q, want abc123", tokens["WEATHER_API_KEY"])
	}
	if len(tokens) != 2 {
		t.Errorf("len = %d, want 2", len(tokens))
	}
}

func TestLoadTokensMissingFile(t *testing.T) {
	root := t.TempDir()
	if _, err := Create(root, "bot", validSettings()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	tokens, err := LoadTokens(root, "bot")
	if err != nil {
		t.Fatalf("LoadTokens: %v", err)
	}
	if len(tokens) != 0 {
		t.Errorf("len = %d, want 0 for missing tokens.env", len(tokens))
	}
}
