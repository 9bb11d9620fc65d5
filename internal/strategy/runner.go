package strategy

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Runner executes an external command and returns its combined output.
// The production implementation wraps os/exec; tests inject fakes.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec, honoring ctx cancellation.
type ExecRunner struct{}

// Run executes the command and returns combined stdout/stderr. When the
// context deadline expires the context error is returned so the resolver can
// tag the attempt as timed out rather than generically failed.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return buf.String(), ctxErr
	}
	if err != nil {
		return buf.String(), fmt.Errorf("%s: %w", name, err)
	}
	return buf.String(), nil
}

func runnerOrDefault(r Runner) Runner {
	if r != nil {
		return r
	}
	return ExecRunner{}
}
