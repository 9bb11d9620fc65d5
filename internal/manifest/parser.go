package manifest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// maxManifestSize guards against parsing an obviously wrong file.
const maxManifestSize = 1 << 20

// ParseFile reads and parses a setup-plan manifest.
func ParseFile(path string) (*Plan, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// Parse parses raw YAML bytes into a Plan. The path is used only for error
// messages.
func Parse(data []byte, path string) (*Plan, error) {
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parsing plan %s: %w", path, err)
	}
	if len(plan.Packages) == 0 {
		return nil, fmt.Errorf("plan %s declares no packages", path)
	}
	return &plan, nil
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan %s: %w", path, err)
	}
	if info.Size() > maxManifestSize {
		return nil, fmt.Errorf("plan %s is too large (%d bytes)", path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan %s: %w", path, err)
	}
	return data, nil
}
