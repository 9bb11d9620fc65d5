package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
)

// Contract violations reported by Resolve before any strategy runs. These
// indicate caller bugs, not resolution failures.
var (
	ErrEmptyTarget    = errors.New("resolver: target name is empty")
	ErrNoStrategies   = errors.New("resolver: strategy list is empty")
	ErrInvalidTimeout = errors.New("resolver: per-attempt timeout must be positive")
)

// Resolve tries strategies strictly in slice order until one succeeds or the
// list is exhausted. Each attempt is bounded by perAttemptTimeout. The
// returned Outcome always carries the full attempt sequence; exhaustion is
// reported in the Outcome, never as an error.
//
// Strategies run one at a time. Concurrent package-manager invocations race
// on shared lock files, so callers running multiple resolutions must
// serialize them.
func Resolve(ctx context.Context, target Target, strategies []Strategy, perAttemptTimeout time.Duration) (*Outcome, error) {
	if strings.TrimSpace(target.Name) == "" {
		return nil, ErrEmptyTarget
	}
	if len(strategies) == 0 {
		return nil, ErrNoStrategies
	}
	if perAttemptTimeout <= 0 {
		return nil, ErrInvalidTimeout
	}
	if target.Constraint != "" {
		if _, err := semver.NewConstraint(target.Constraint); err != nil {
			return nil, fmt.Errorf("resolver: invalid version constraint %q for %s: %w", target.Constraint, target.Name, err)
		}
	}

	out := &Outcome{
		RunID:  uuid.NewString(),
		Target: target,
	}

	for _, s := range strategies {
		attempt := runAttempt(ctx, s, target, perAttemptTimeout)
		out.Attempts = append(out.Attempts, attempt)

		if attempt.Status == StatusSucceeded {
			out.Winner = s.Name()
			return out, nil
		}
	}

	out.Exhausted = true
	return out, nil
}

type attemptResult struct {
	detail   string
	err      error
	panicked bool
	panicVal string
}

// runAttempt executes one strategy bounded by the timeout. The strategy runs
// in its own goroutine so a strategy that ignores ctx is still abandoned at
// the timeout boundary; its eventual result is dropped.
func runAttempt(ctx context.Context, s Strategy, target Target, timeout time.Duration) Attempt {
	start := time.Now()

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan attemptResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- attemptResult{panicked: true, panicVal: fmt.Sprint(r)}
			}
		}()
		detail, err := s.Install(attemptCtx, target)
		done <- attemptResult{detail: detail, err: err}
	}()

	select {
	case res := <-done:
		return classify(s.Name(), res, time.Since(start))
	case <-attemptCtx.Done():
		return Attempt{
			Strategy: s.Name(),
			Status:   StatusTimedOut,
			Detail:   fmt.Sprintf("no result within %s", timeout),
			Duration: time.Since(start),
		}
	}
}

func classify(name string, res attemptResult, elapsed time.Duration) Attempt {
	attempt := Attempt{
		Strategy: name,
		Detail:   res.detail,
		Duration: elapsed,
	}

	switch {
	case res.panicked:
		attempt.Status = StatusFaulted
		attempt.Detail = joinDetail(res.detail, "strategy panicked: "+res.panicVal)
	case res.err == nil:
		attempt.Status = StatusSucceeded
	case errors.Is(res.err, context.DeadlineExceeded):
		attempt.Status = StatusTimedOut
		attempt.Detail = joinDetail(res.detail, res.err.Error())
	default:
		attempt.Status = StatusFailed
		attempt.Detail = joinDetail(res.detail, res.err.Error())
	}

	return attempt
}

// joinDetail appends the error text to captured output, keeping both when a
// strategy returned partial output before failing.
func joinDetail(detail, errText string) string {
	detail = strings.TrimSpace(detail)
	if detail == "" {
		return errText
	}
	return detail + "\n" + errText
}
