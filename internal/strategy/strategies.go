package strategy

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/termbot-labs/termbot/internal/resolver"
)

// Strategy identifiers accepted in setup plans. Order in a plan is the order
// the resolver tries them.
const (
	IDPrebuiltWheel = "prebuilt-wheel"
	IDSourceBuild   = "source-build"
	IDSystemPackage = "system-package"
	IDPinnedLegacy  = "pinned-legacy"
)

// PipWheel installs a package from a prebuilt wheel only. Fails when no
// binary wheel exists for the platform, which on Termux is the common case
// for native extensions.
type PipWheel struct {
	Runner Runner
	Pip    string // pip binary, defaults to "pip"
}

func (s *PipWheel) Name() string { return IDPrebuiltWheel }

func (s *PipWheel) Install(ctx context.Context, target resolver.Target) (string, error) {
	spec, err := pipSpec(target)
	if err != nil {
		return "", err
	}
	return runnerOrDefault(s.Runner).Run(ctx, pipBin(s.Pip), "install", "--only-binary", ":all:", spec)
}

// PipSource compiles a package from its source distribution, skipping the
// wheel cache so a previously failed build does not get replayed.
type PipSource struct {
	Runner Runner
	Pip    string
}

func (s *PipSource) Name() string { return IDSourceBuild }

func (s *PipSource) Install(ctx context.Context, target resolver.Target) (string, error) {
	spec, err := pipSpec(target)
	if err != nil {
		return "", err
	}
	return runnerOrDefault(s.Runner).Run(ctx, pipBin(s.Pip), "install", "--no-binary", ":all:", "--no-cache-dir", spec)
}

// SystemPackage installs the Termux package-manager build of a package,
// e.g., python-cryptography for cryptography. The system build ignores the
// target's version constraint; whatever the repository carries wins.
type SystemPackage struct {
	Runner  Runner
	Pkg     string // package manager binary, defaults to "pkg"
	Package string // system package name, defaults to the target name
}

func (s *SystemPackage) Name() string { return IDSystemPackage }

func (s *SystemPackage) Install(ctx context.Context, target resolver.Target) (string, error) {
	name := s.Package
	if name == "" {
		name = target.Name
	}
	bin := s.Pkg
	if bin == "" {
		bin = "pkg"
	}
	return runnerOrDefault(s.Runner).Run(ctx, bin, "install", "-y", name)
}

// PinnedVersion installs an exact older release known to build on the
// platform, overriding the target's constraint as a last resort.
type PinnedVersion struct {
	Runner  Runner
	Pip     string
	Version string // required exact version, e.g., "40.0.2"
}

func (s *PinnedVersion) Name() string { return IDPinnedLegacy }

func (s *PinnedVersion) Install(ctx context.Context, target resolver.Target) (string, error) {
	if s.Version == "" {
		return "", fmt.Errorf("pinned-legacy strategy for %s has no pinned version", target.Name)
	}
	spec := fmt.Sprintf("%s==%s", target.Name, s.Version)
	return runnerOrDefault(s.Runner).Run(ctx, pipBin(s.Pip), "install", spec)
}

// Options configures strategy construction for one target.
type Options struct {
	Runner     Runner
	Pip        string // pip binary override
	Pkg        string // system package manager binary override
	SystemName string // system package name for IDSystemPackage
	Pinned     string // exact version for IDPinnedLegacy
}

// FromNames builds an ordered strategy list from plan identifiers. Unknown
// identifiers and a pinned-legacy entry without a pinned version are caller
// errors reported before any resolution starts.
func FromNames(names []string, opts Options) ([]resolver.Strategy, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no strategies named")
	}

	strategies := make([]resolver.Strategy, 0, len(names))
	for _, name := range names {
		switch name {
		case IDPrebuiltWheel:
			strategies = append(strategies, &PipWheel{Runner: opts.Runner, Pip: opts.Pip})
		case IDSourceBuild:
			strategies = append(strategies, &PipSource{Runner: opts.Runner, Pip: opts.Pip})
		case IDSystemPackage:
			strategies = append(strategies, &SystemPackage{Runner: opts.Runner, Pkg: opts.Pkg, Package: opts.SystemName})
		case IDPinnedLegacy:
			if opts.Pinned == "" {
				return nil, fmt.Errorf("strategy %q requires a pinned version", name)
			}
			strategies = append(strategies, &PinnedVersion{Runner: opts.Runner, Pip: opts.Pip, Version: opts.Pinned})
		default:
			return nil, fmt.Errorf("unknown strategy %q", name)
		}
	}
	return strategies, nil
}

// opGapRe matches whitespace between a comparison operator and its version,
// which semver constraints allow (">= 41.0.0") but pip specifiers reject.
var opGapRe = regexp.MustCompile(`([=!<>~^]+)\s+`)

// pipSpec renders a target as a pip requirement specifier.
// "cryptography" + ">=41.0.0 <42.0.0" → "cryptography>=41.0.0,<42.0.0".
// An exact version becomes a pin: "cryptography" + "41.0.7" → "cryptography==41.0.7".
func pipSpec(target resolver.Target) (string, error) {
	constraint := strings.TrimSpace(target.Constraint)
	if constraint == "" {
		return target.Name, nil
	}

	if v, err := semver.StrictNewVersion(strings.TrimPrefix(constraint, "v")); err == nil {
		return fmt.Sprintf("%s==%s", target.Name, v.String()), nil
	}

	if _, err := semver.NewConstraint(constraint); err != nil {
		return "", fmt.Errorf("invalid constraint %q for %s: %w", constraint, target.Name, err)
	}

	// pip wants comma-separated specifiers with no gap inside a specifier,
	// so collapse operator/version whitespace before splitting.
	constraint = opGapRe.ReplaceAllString(constraint, "$1")
	parts := strings.Fields(strings.ReplaceAll(constraint, ",", " "))
	for i, p := range parts {
		// Single-= equality is valid semver but not valid pip.
		if strings.HasPrefix(p, "=") && !strings.HasPrefix(p, "==") {
			parts[i] = "=" + p
		}
	}
	return target.Name + strings.Join(parts, ","), nil
}

func pipBin(pip string) string {
	if pip == "" {
		return "pip"
	}
	return pip
}
