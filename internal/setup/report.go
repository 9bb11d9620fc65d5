package setup

import (
	"fmt"
	"io"
	"time"

	"github.com/termbot-labs/termbot/internal/resolver"
)

// statusMark maps attempt statuses to the single-character progress marks
// used in console output.
func statusMark(s resolver.Status) string {
	switch s {
	case resolver.StatusSucceeded:
		return "✓"
	case resolver.StatusTimedOut:
		return "⏱"
	default:
		return "✗"
	}
}

// PrintAttempt writes one attempt progress line.
func PrintAttempt(w io.Writer, pkg string, a resolver.Attempt) {
	fmt.Fprintf(w, "    %s %s via %s (%s)\n", statusMark(a.Status), pkg, a.Strategy, a.Duration.Round(10*time.Millisecond))
}

// PrintReport writes the run summary: platform, bootstrap result, and the
// final state of every package with its attempt trail.
func PrintReport(w io.Writer, report *Report) {
	fmt.Fprintf(w, "\nSetup report — %s on %s\n", report.Plan.Name, report.Platform.Label())

	if len(report.Plan.SystemPackages) > 0 {
		if report.SystemOK {
			fmt.Fprintf(w, "  ✓ system packages (%d)\n", len(report.Plan.SystemPackages))
		} else {
			fmt.Fprintf(w, "  ✗ system packages: %s\n", firstLine(report.SystemDetail))
		}
	}

	for _, res := range report.Results {
		printPackage(w, res)
	}

	failed := report.FailedRequired()
	if len(failed) == 0 {
		fmt.Fprintln(w, "\n✓ All required packages installed.")
		return
	}
	fmt.Fprintf(w, "\n✗ %d required package(s) could not be installed:\n", len(failed))
	for _, res := range failed {
		fmt.Fprintf(w, "    %s\n", res.Package.Name)
	}
}

func printPackage(w io.Writer, res PackageResult) {
	name := res.Package.Name
	if res.Package.Constraint != "" {
		name += " (" + res.Package.Constraint + ")"
	}

	switch {
	case res.Err != nil:
		fmt.Fprintf(w, "  ✗ %s: %v\n", name, res.Err)
	case res.Outcome.Succeeded():
		fmt.Fprintf(w, "  ✓ %s via %s after %d attempt(s)\n", name, res.Outcome.Winner, len(res.Outcome.Attempts))
	case res.Package.Optional:
		fmt.Fprintf(w, "  ⚠ %s: all %d strategies failed (optional, continuing)\n", name, len(res.Outcome.Attempts))
	default:
		fmt.Fprintf(w, "  ✗ %s: all %d strategies failed\n", name, len(res.Outcome.Attempts))
	}

	// The full attempt trail stays visible for diagnostics, success or not.
	if res.Outcome != nil && !res.Outcome.Succeeded() {
		for _, a := range res.Outcome.Attempts {
			fmt.Fprintf(w, "      %s %s: %s\n", statusMark(a.Status), a.Strategy, firstLine(a.Detail))
		}
	}
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
