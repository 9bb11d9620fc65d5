package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

const samplePlan = `name: android-bot-env
description: test plan
system_packages:
  - python
  - git
packages:
  - name: cryptography
    constraint: ">=41.0.0 <42.0.0"
    strategies: [prebuilt-wheel, source-build, system-package, pinned-legacy]
    pinned: "40.0.2"
    system_name: python-cryptography
    timeout_seconds: 1800
  - name: colorama
    strategies: [prebuilt-wheel]
    optional: true
tools:
  - name: python
    min_version: "3.9.0"
  - name: git
`

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFile(t *testing.T) {
	plan, err := ParseFile(writePlan(t, samplePlan))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	if plan.Name != "android-bot-env" {
		t.Errorf("Name = %q, want %q", plan.Name, "android-bot-env")
	}
	if len(plan.SystemPackages) != 2 {
		t.Errorf("len(SystemPackages) = %d, want 2", len(plan.SystemPackages))
	}
	if len(plan.Packages) != 2 {
		t.Fatalf("len(Packages) = %d, want 2", len(plan.Packages))
	}

	crypto := plan.Packages[0]
	if crypto.SystemName != "python-cryptography" {
		t.Errorf("SystemName = %q, want %q", crypto.SystemName, "python-cryptography")
	}
	if crypto.TimeoutSeconds != 1800 {
		t.Errorf("TimeoutSeconds = %d, want 1800", crypto.TimeoutSeconds)
	}
	if len(crypto.Strategies) != 4 || crypto.Strategies[0] != "prebuilt-wheel" {
		t.Errorf("Strategies = %v, want four entries starting with prebuilt-wheel", crypto.Strategies)
	}

	if !plan.Packages[1].Optional {
		t.Error("colorama should be optional")
	}
	if len(plan.Tools) != 2 || plan.Tools[0].MinVersion != "3.9.0" {
		t.Errorf("Tools = %v, want python with min_version 3.9.0", plan.Tools)
	}
}

func TestParseFileRejectsEmptyPackages(t *testing.T) {
	if _, err := ParseFile(writePlan(t, "name: empty\npackages: []\n")); err == nil {
		t.Error("ParseFile accepted a plan with no packages, want error")
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("ParseFile succeeded on missing file, want error")
	}
}

func TestDefaultPlanIsValid(t *testing.T) {
	plan := Default()

	if len(plan.Packages) == 0 {
		t.Fatal("default plan has no packages")
	}

	// The cryptography chain is the reason this tool exists.
	crypto := plan.Packages[0]
	if crypto.Name != "cryptography" {
		t.Fatalf("Packages[0].Name = %q, want cryptography", crypto.Name)
	}
	if len(crypto.Strategies) != 4 {
		t.Errorf("cryptography strategies = %v, want full four-step chain", crypto.Strategies)
	}
	if crypto.Pinned == "" {
		t.Error("cryptography has no pinned legacy version")
	}
}
