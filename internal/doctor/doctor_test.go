package doctor

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/termbot-labs/termbot/internal/instance"
	"github.com/termbot-labs/termbot/internal/manifest"
)

// fakeRunner answers version probes with canned output per flag.
type fakeRunner struct {
	byFlag map[string]string
}

func (f *fakeRunner) Run(_ context.Context, _ string, args ...string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("no args")
	}
	out, ok := f.byFlag[args[0]]
	if !ok {
		return "", errors.New("unknown flag")
	}
	return out, nil
}

func TestAtLeast(t *testing.T) {
	tests := []struct {
		have, want string
		ok         bool
	}{
		{"3.11.4", "3.9.0", true},
		{"3.9.0", "3.9.0", true},
		{"3.8.2", "3.9.0", false},
		{"3.9", "3.9.0", true},
		{"2.39", "2.0", true},
	}

	for _, tt := range tests {
		got, err := atLeast(tt.have, tt.want)
		if err != nil {
			t.Errorf("atLeast(%q, %q): %v", tt.have, tt.want, err)
			continue
		}
		if got != tt.ok {
			t.Errorf("atLeast(%q, %q) = %v, want %v", tt.have, tt.want, got, tt.ok)
		}
	}
}

func TestProbeVersionFallsThroughFlags(t *testing.T) {
	// openssl answers only to the bare "version" subcommand.
	r := &fakeRunner{byFlag: map[string]string{
		"version": "OpenSSL 3.1.2 1 Aug 2023",
	}}

	if got := probeVersion(context.Background(), "openssl", r); got != "3.1.2" {
		t.Errorf("probeVersion = %q, want 3.1.2", got)
	}
}

func TestProbeVersionNoAnswer(t *testing.T) {
	r := &fakeRunner{byFlag: map[string]string{}}

	if got := probeVersion(context.Background(), "mystery", r); got != "" {
		t.Errorf("probeVersion = %q, want empty", got)
	}
}

func TestCheckToolsMissingBinary(t *testing.T) {
	tools := []manifest.ToolCheck{{Name: "definitely-not-installed-anywhere-7f3a"}}

	results := CheckTools(context.Background(), tools, &fakeRunner{})
	if len(results) != 1 {
		t.Fatalf("len = %d, want 1", len(results))
	}
	if results[0].Status != StatusMissing {
		t.Errorf("Status = %q, want %q", results[0].Status, StatusMissing)
	}
}

func TestCheckInstancesReportsTree(t *testing.T) {
	root := t.TempDir()
	if _, err := instance.Create(root, "bot", instance.Settings{IntervalMinutes: 5, AdminIDs: []int64{1}}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	var buf bytes.Buffer
	if err := CheckInstances(&buf, root, false); err != nil {
		t.Fatalf("CheckInstances: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "[ OK ]") {
		t.Errorf("output has no OK lines:\n%s", out)
	}
	if strings.Contains(out, "[MISS]") {
		t.Errorf("fresh instance reported missing pieces:\n%s", out)
	}
}

func TestCheckInstancesEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := CheckInstances(&buf, t.TempDir(), false); err != nil {
		t.Fatalf("CheckInstances: %v", err)
	}
	if !strings.Contains(buf.String(), "no instances registered") {
		t.Errorf("output = %q, want empty-registry note", buf.String())
	}
}
