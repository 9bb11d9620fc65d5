package resolver

import (
	"context"
	"time"
)

// Target identifies a package a resolution run is trying to satisfy.
type Target struct {
	Name       string // e.g., "cryptography"
	Constraint string // optional semver range or exact pin, e.g., ">=41.0.0 <42.0.0"
}

// Strategy is one concrete method of attempting an installation. Strategies
// may mutate external system state even on failure (partial installs); the
// resolver never rolls that back. Implementations should honor ctx, but a
// strategy that ignores it is still bounded by the per-attempt timeout and
// abandoned once it expires.
type Strategy interface {
	// Name returns the stable identifier recorded in attempts, e.g.,
	// "prebuilt-wheel".
	Name() string

	// Install attempts to satisfy the target. The returned detail is
	// diagnostic text (typically captured command output) recorded whether
	// or not err is nil.
	Install(ctx context.Context, target Target) (detail string, err error)
}

// Status classifies a single strategy attempt.
type Status string

const (
	// StatusSucceeded means the strategy satisfied the target.
	StatusSucceeded Status = "succeeded"
	// StatusFailed means the strategy ran to completion without satisfying
	// the target (non-zero exit, missing artifact).
	StatusFailed Status = "failed"
	// StatusTimedOut means the strategy produced no result within the
	// per-attempt timeout. Treated as a failure for resolution purposes,
	// tagged distinctly for diagnostics.
	StatusTimedOut Status = "timed-out"
	// StatusFaulted means the strategy panicked. The recovered value is
	// captured in the attempt detail.
	StatusFaulted Status = "faulted"
)

// Attempt records one strategy execution. Attempts accumulate oldest-first
// and are never discarded during a run.
type Attempt struct {
	Strategy string
	Status   Status
	Detail   string
	Duration time.Duration
}

// Failed reports whether the attempt did not satisfy the target, regardless
// of how it failed.
func (a Attempt) Failed() bool {
	return a.Status != StatusSucceeded
}

// Outcome is the complete, immutable record of one resolution run. It is a
// report, not a live object: whether an exhausted run is fatal is the
// caller's policy decision.
type Outcome struct {
	RunID    string
	Target   Target
	Attempts []Attempt

	// Winner is the name of the succeeding strategy, empty when the run
	// exhausted every strategy.
	Winner string

	// Exhausted is true when no strategy succeeded. This is a normal
	// terminal state, not an error.
	Exhausted bool
}

// Succeeded reports whether any strategy satisfied the target.
func (o *Outcome) Succeeded() bool {
	return o.Winner != ""
}
