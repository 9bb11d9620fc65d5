// Package setup orchestrates a full environment setup run: bootstrap the
// Termux system packages, then resolve every plan package through its
// fallback strategy chain, collecting an inspectable report. The package
// decides nothing about whether failures are fatal; that policy stays with
// the CLI.
package setup

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/termbot-labs/termbot/internal/logging"
	"github.com/termbot-labs/termbot/internal/manifest"
	"github.com/termbot-labs/termbot/internal/platform"
	"github.com/termbot-labs/termbot/internal/resolver"
	"github.com/termbot-labs/termbot/internal/strategy"
)

// DefaultTimeout bounds a single strategy attempt unless the plan overrides
// it per package.
const DefaultTimeout = 10 * time.Minute

// Options configures a setup run.
type Options struct {
	Runner     strategy.Runner // nil means os/exec
	Timeout    time.Duration   // per-attempt default, DefaultTimeout when zero
	SkipSystem bool            // skip the pkg bootstrap step
	Logger     *zap.Logger     // nil means no run log

	// OnPackage and OnAttempt, when set, receive progress callbacks so the
	// CLI can print as the run advances.
	OnPackage func(pkg manifest.Package)
	OnAttempt func(pkg string, attempt resolver.Attempt)
}

// PackageResult pairs a plan package with its resolution outcome. Err is set
// only for configuration errors (bad strategy list) that prevented a
// resolution run from starting.
type PackageResult struct {
	Package manifest.Package
	Outcome *resolver.Outcome
	Err     error
}

// Failed reports whether this package ended without an install.
func (r PackageResult) Failed() bool {
	return r.Err != nil || (r.Outcome != nil && r.Outcome.Exhausted)
}

// Report is the complete record of one setup run.
type Report struct {
	Plan         *manifest.Plan
	Platform     platform.Info
	SystemOK     bool
	SystemDetail string
	Results      []PackageResult
}

// FailedRequired returns the non-optional packages that ended unresolved.
// The caller treats these as the run's failures; optional packages degrade
// silently.
func (r *Report) FailedRequired() []PackageResult {
	var failed []PackageResult
	for _, res := range r.Results {
		if res.Failed() && !res.Package.Optional {
			failed = append(failed, res)
		}
	}
	return failed
}

// Run executes the plan. Packages resolve strictly one at a time; parallel
// package-manager invocations race on shared lock files.
func Run(ctx context.Context, plan *manifest.Plan, opts Options) *Report {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	report := &Report{
		Plan:     plan,
		Platform: platform.Detect(),
		SystemOK: true,
	}

	logger.Info("setup run starting",
		zap.String("plan", plan.Name),
		zap.Bool("termux", report.Platform.Termux),
		zap.Int("packages", len(plan.Packages)))

	if !opts.SkipSystem {
		if len(plan.SystemPackages) > 0 {
			report.SystemOK, report.SystemDetail = bootstrapSystem(ctx, plan.SystemPackages, opts.Runner, logger)
		}
		upgradePip(ctx, opts.Runner, logger)
	}

	for _, pkg := range plan.Packages {
		if opts.OnPackage != nil {
			opts.OnPackage(pkg)
		}
		report.Results = append(report.Results, resolvePackage(ctx, pkg, timeout, opts, logger))
	}

	logger.Info("setup run finished",
		zap.String("plan", plan.Name),
		zap.Int("failed_required", len(report.FailedRequired())))
	return report
}

// bootstrapSystem refreshes the package index and installs the toolchain
// set. Failures here are recorded and setup continues; the per-package
// strategy chains are what decide success.
func bootstrapSystem(ctx context.Context, packages []string, r strategy.Runner, logger *zap.Logger) (bool, string) {
	if r == nil {
		r = strategy.ExecRunner{}
	}

	if out, err := r.Run(ctx, "pkg", "update", "-y"); err != nil {
		logger.Warn("pkg update failed", zap.Error(err))
		return false, strings.TrimSpace(out + "\n" + err.Error())
	}

	args := append([]string{"install", "-y"}, packages...)
	if out, err := r.Run(ctx, "pkg", args...); err != nil {
		logger.Warn("pkg install failed", zap.Error(err))
		return false, strings.TrimSpace(out + "\n" + err.Error())
	}

	logger.Info("system packages installed", zap.Int("count", len(packages)))
	return true, ""
}

// upgradePip refreshes pip, setuptools, and wheel before any package
// resolves. Failures here are warnings; the strategy chains still decide
// each install.
func upgradePip(ctx context.Context, r strategy.Runner, logger *zap.Logger) {
	if r == nil {
		r = strategy.ExecRunner{}
	}

	upgrades := [][]string{
		{"python", "-m", "pip", "install", "--upgrade", "pip"},
		{"pip", "install", "--upgrade", "setuptools", "wheel"},
	}
	for _, argv := range upgrades {
		if _, err := r.Run(ctx, argv[0], argv[1:]...); err != nil {
			logger.Warn("pip tooling upgrade failed",
				zap.String("cmd", strings.Join(argv, " ")),
				zap.Error(err))
		}
	}
}

func resolvePackage(ctx context.Context, pkg manifest.Package, timeout time.Duration, opts Options, logger *zap.Logger) PackageResult {
	strategies, err := strategy.FromNames(pkg.Strategies, strategy.Options{
		Runner:     opts.Runner,
		SystemName: pkg.SystemName,
		Pinned:     pkg.Pinned,
	})
	if err != nil {
		logger.Error("invalid strategy chain", zap.String("package", pkg.Name), zap.Error(err))
		return PackageResult{Package: pkg, Err: err}
	}

	if pkg.TimeoutSeconds > 0 {
		timeout = time.Duration(pkg.TimeoutSeconds) * time.Second
	}

	target := resolver.Target{Name: pkg.Name, Constraint: pkg.Constraint}
	outcome, err := resolver.Resolve(ctx, target, strategies, timeout)
	if err != nil {
		return PackageResult{Package: pkg, Err: err}
	}

	for _, attempt := range outcome.Attempts {
		if opts.OnAttempt != nil {
			opts.OnAttempt(pkg.Name, attempt)
		}
		logger.Info("attempt",
			zap.String("run_id", outcome.RunID),
			zap.String("package", pkg.Name),
			zap.String("strategy", attempt.Strategy),
			zap.String("status", string(attempt.Status)),
			zap.Duration("duration", attempt.Duration))
	}

	return PackageResult{Package: pkg, Outcome: outcome}
}
