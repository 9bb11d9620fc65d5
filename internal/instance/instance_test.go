package instance

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func validSettings() Settings {
	return Settings{IntervalMinutes: 5, AdminIDs: []int64{123456789}}
}

func TestCreateScaffoldsTree(t *testing.T) {
	root := t.TempDir()

	rec, err := Create(root, "my_bot", validSettings())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if rec.Description != "Bot instance: my_bot" {
		t.Errorf("Description = %q, want default description", rec.Description)
	}

	for _, rel := range []string{
		filepath.Join("my_bot", ConfigDir, SettingsFile),
		filepath.Join("my_bot", ConfigDir, MessagesFile),
		filepath.Join("my_bot", ConfigDir, GroupsFile),
		filepath.Join("my_bot", LogsDir),
		RegistryFile,
	} {
		if _, err := os.Stat(filepath.Join(root, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(root, "my_bot", ConfigDir))
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != DirPermSecure {
			t.Errorf("config dir permissions = %o, want %o", perm, DirPermSecure)
		}
	}

	settings, err := os.ReadFile(filepath.Join(root, "my_bot", ConfigDir, SettingsFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(settings), "interval_minutes=5") {
		t.Errorf("settings = %q, want interval_minutes=5", settings)
	}
	if !strings.Contains(string(settings), "admin_ids=123456789") {
		t.Errorf("settings = %q, want admin_ids=123456789", settings)
	}
}

func TestCreateValidation(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name     string
		instance string
		settings Settings
	}{
		{"bad name", "no spaces allowed", validSettings()},
		{"path traversal", "../evil", validSettings()},
		{"zero interval", "ok", Settings{IntervalMinutes: 0, AdminIDs: []int64{1}}},
		{"no admins", "ok", Settings{IntervalMinutes: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Create(root, tt.instance, tt.settings); err == nil {
				t.Errorf("Create(%q, %+v) succeeded, want error", tt.instance, tt.settings)
			}
		})
	}
}

func TestCreateDuplicate(t *testing.T) {
	root := t.TempDir()

	if _, err := Create(root, "bot", validSettings()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := Create(root, "bot", validSettings()); err == nil {
		t.Error("second Create succeeded, want duplicate error")
	}
}

func TestListSorted(t *testing.T) {
	root := t.TempDir()

	for _, name := range []string{"zulu", "alpha", "mike"} {
		if _, err := Create(root, name, validSettings()); err != nil {
			t.Fatalf("Create(%s): %v", name, err)
		}
	}

	records, err := List(root)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len = %d, want 3", len(records))
	}
	if records[0].Name != "alpha" || records[2].Name != "zulu" {
		t.Errorf("order = [%s %s %s], want sorted by name", records[0].Name, records[1].Name, records[2].Name)
	}
}

func TestListEmptyRoot(t *testing.T) {
	records, err := List(t.TempDir())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len = %d, want 0", len(records))
	}
}

func TestDelete(t *testing.T) {
	root := t.TempDir()

	if _, err := Create(root, "bot", validSettings()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := Delete(root, "bot"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := os.Stat(Dir(root, "bot")); !os.IsNotExist(err) {
		t.Error("instance directory still exists after Delete")
	}
	if _, err := Get(root, "bot"); err == nil {
		t.Error("Get succeeded after Delete, want not-found error")
	}
}

func TestDeleteUnknown(t *testing.T) {
	if err := Delete(t.TempDir(), "ghost"); err == nil {
		t.Error("Delete of unknown instance succeeded, want error")
	}
}
