package instance

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/termbot-labs/termbot/internal/platform"
)

// nameRe bounds instance names to filesystem-safe identifiers.
var nameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,32}$`)

// Settings are the caller-supplied parameters for a new instance.
type Settings struct {
	Description     string
	IntervalMinutes int
	AdminIDs        []int64
	AutoStart       bool
}

// Record is a registry entry for one instance.
type Record struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	IntervalMinutes int       `json:"interval_minutes"`
	AdminIDs        []int64   `json:"admin_ids"`
	AutoStart       bool      `json:"auto_start"`
	CreatedAt       time.Time `json:"created_at"`
}

// Create scaffolds a new instance directory tree and registers it. The
// config tree is created private (0700) because it will hold the bot token.
func Create(root, name string, s Settings) (*Record, error) {
	if !nameRe.MatchString(name) {
		return nil, fmt.Errorf("invalid instance name %q: use 1-32 letters, digits, - or _", name)
	}
	if s.IntervalMinutes < 1 {
		return nil, fmt.Errorf("interval must be at least 1 minute, got %d", s.IntervalMinutes)
	}
	if len(s.AdminIDs) == 0 {
		return nil, fmt.Errorf("instance %q needs at least one admin ID", name)
	}

	reg, err := loadRegistry(root)
	if err != nil {
		return nil, err
	}
	if _, exists := reg[name]; exists {
		return nil, fmt.Errorf("instance %q already exists", name)
	}

	configDir := ConfigPath(root, name)
	if err := os.MkdirAll(configDir, DirPermSecure); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}
	if err := platform.Chmod(configDir, DirPermSecure); err != nil {
		return nil, fmt.Errorf("securing config directory: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(root, name, LogsDir), DirPermNormal); err != nil {
		return nil, fmt.Errorf("creating logs directory: %w", err)
	}

	if err := writeInitialConfig(configDir, name, s); err != nil {
		return nil, err
	}

	rec := &Record{
		Name:            name,
		Description:     s.Description,
		IntervalMinutes: s.IntervalMinutes,
		AdminIDs:        s.AdminIDs,
		AutoStart:       s.AutoStart,
		CreatedAt:       time.Now().UTC(),
	}
	if rec.Description == "" {
		rec.Description = "Bot instance: " + name
	}

	reg[name] = *rec
	if err := saveRegistry(root, reg); err != nil {
		return nil, err
	}
	return rec, nil
}

// writeInitialConfig seeds settings.txt, messages.txt, and an empty
// groups.txt, matching the layout the bot itself reads.
func writeInitialConfig(configDir, name string, s Settings) error {
	settings := fmt.Sprintf("interval_minutes=%d\nadmin_ids=%s\n", s.IntervalMinutes, joinIDs(s.AdminIDs))
	if err := os.WriteFile(filepath.Join(configDir, SettingsFile), []byte(settings), FilePermSecure); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}

	message := fmt.Sprintf("Hello from %s!\n", name)
	if err := os.WriteFile(filepath.Join(configDir, MessagesFile), []byte(message), 0644); err != nil {
		return fmt.Errorf("writing messages: %w", err)
	}

	if err := os.WriteFile(filepath.Join(configDir, GroupsFile), nil, 0644); err != nil {
		return fmt.Errorf("writing groups: %w", err)
	}
	return nil
}

// List returns all registered instances sorted by name.
func List(root string) ([]Record, error) {
	reg, err := loadRegistry(root)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(reg))
	for _, rec := range reg {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

// Get returns the registry entry for a named instance.
func Get(root, name string) (*Record, error) {
	reg, err := loadRegistry(root)
	if err != nil {
		return nil, err
	}
	rec, ok := reg[name]
	if !ok {
		return nil, fmt.Errorf("instance %q not found", name)
	}
	return &rec, nil
}

// Delete removes an instance from the registry and deletes its directory.
func Delete(root, name string) error {
	reg, err := loadRegistry(root)
	if err != nil {
		return err
	}
	if _, ok := reg[name]; !ok {
		return fmt.Errorf("instance %q not found", name)
	}

	if err := os.RemoveAll(Dir(root, name)); err != nil {
		return fmt.Errorf("removing instance directory: %w", err)
	}

	delete(reg, name)
	return saveRegistry(root, reg)
}

func loadRegistry(root string) (map[string]Record, error) {
	data, err := os.ReadFile(filepath.Join(root, RegistryFile))
	if os.IsNotExist(err) {
		return map[string]Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading instance registry: %w", err)
	}

	var reg map[string]Record
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parsing instance registry: %w", err)
	}
	return reg, nil
}

func saveRegistry(root string, reg map[string]Record) error {
	if err := os.MkdirAll(root, DirPermNormal); err != nil {
		return fmt.Errorf("creating instances root: %w", err)
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling instance registry: %w", err)
	}
	if err := os.WriteFile(filepath.Join(root, RegistryFile), data, 0644); err != nil {
		return fmt.Errorf("writing instance registry: %w", err)
	}
	return nil
}

func joinIDs(ids []int64) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%d", id)
	}
	return out
}
