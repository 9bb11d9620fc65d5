// Package doctor runs post-setup smoke tests: required tools present and new
// enough, instance trees intact with private permissions. Results are data;
// the CLI decides how to render them and whether failures matter.
package doctor

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/termbot-labs/termbot/internal/manifest"
	"github.com/termbot-labs/termbot/internal/strategy"
)

// Status classifies one check.
type Status string

const (
	StatusOK       Status = "ok"
	StatusMissing  Status = "missing"
	StatusOutdated Status = "outdated"
	StatusUnknown  Status = "unknown"
)

// CheckResult is the outcome of one tool check.
type CheckResult struct {
	Name    string
	Status  Status
	Version string // extracted version, empty when none was found
	Detail  string
}

// versionFlags is the fallback order for asking a tool its version.
// openssl only answers to the bare "version" subcommand.
var versionFlags = []string{"--version", "-version", "version", "-V"}

// versionRe pulls the first dotted version token out of tool output.
var versionRe = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// checkTimeout bounds each version probe; a hung tool is reported, not
// waited on.
const checkTimeout = 10 * time.Second

// CheckTools verifies each declared tool is on PATH and, when a minimum
// version is declared, that the installed version satisfies it.
func CheckTools(ctx context.Context, tools []manifest.ToolCheck, r strategy.Runner) []CheckResult {
	if r == nil {
		r = strategy.ExecRunner{}
	}

	results := make([]CheckResult, 0, len(tools))
	for _, tool := range tools {
		results = append(results, checkTool(ctx, tool, r))
	}
	return results
}

func checkTool(ctx context.Context, tool manifest.ToolCheck, r strategy.Runner) CheckResult {
	if _, err := exec.LookPath(tool.Name); err != nil {
		return CheckResult{Name: tool.Name, Status: StatusMissing, Detail: "not found in PATH"}
	}

	version := probeVersion(ctx, tool.Name, r)
	if version == "" {
		return CheckResult{Name: tool.Name, Status: StatusUnknown, Detail: "installed, version not reported"}
	}

	if tool.MinVersion == "" {
		return CheckResult{Name: tool.Name, Status: StatusOK, Version: version}
	}

	ok, err := atLeast(version, tool.MinVersion)
	if err != nil {
		return CheckResult{Name: tool.Name, Status: StatusUnknown, Version: version, Detail: err.Error()}
	}
	if !ok {
		return CheckResult{
			Name:    tool.Name,
			Status:  StatusOutdated,
			Version: version,
			Detail:  fmt.Sprintf("have %s, need >= %s", version, tool.MinVersion),
		}
	}
	return CheckResult{Name: tool.Name, Status: StatusOK, Version: version}
}

// probeVersion tries the known version flags until one produces a parseable
// version token.
func probeVersion(ctx context.Context, name string, r strategy.Runner) string {
	for _, flag := range versionFlags {
		probeCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		out, err := r.Run(probeCtx, name, flag)
		cancel()
		if err != nil {
			continue
		}
		if v := versionRe.FindString(out); v != "" {
			return v
		}
	}
	return ""
}

// atLeast reports whether have satisfies ">= want". Two-segment versions
// ("3.9") are padded before parsing.
func atLeast(have, want string) (bool, error) {
	hv, err := semver.NewVersion(pad(have))
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", have, err)
	}
	c, err := semver.NewConstraint(">=" + pad(want))
	if err != nil {
		return false, fmt.Errorf("parsing minimum version %q: %w", want, err)
	}
	return c.Check(hv), nil
}

func pad(v string) string {
	if strings.Count(v, ".") == 1 {
		return v + ".0"
	}
	return v
}
