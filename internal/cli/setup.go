package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/termbot-labs/termbot/internal/config"
	"github.com/termbot-labs/termbot/internal/doctor"
	"github.com/termbot-labs/termbot/internal/logging"
	"github.com/termbot-labs/termbot/internal/manifest"
	"github.com/termbot-labs/termbot/internal/platform"
	"github.com/termbot-labs/termbot/internal/resolver"
	"github.com/termbot-labs/termbot/internal/setup"
)

var (
	setupPlanPath     string
	setupSkipPackages bool
	setupYes          bool
	setupDebug        bool
)

func init() {
	setupCmd.Flags().StringVar(&setupPlanPath, "plan", "", "Setup plan file (default: built-in plan)")
	setupCmd.Flags().BoolVar(&setupSkipPackages, "skip-packages", false, "Skip Termux system package installation")
	setupCmd.Flags().BoolVarP(&setupYes, "yes", "y", false, "Skip confirmation prompt")
	setupCmd.Flags().BoolVar(&setupDebug, "debug", false, "Verbose run log")
	rootCmd.AddCommand(setupCmd)
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set up the full bot environment",
	Long: `Install system packages and Python dependencies per the setup plan.
Each dependency is resolved through its ordered fallback strategy chain
(prebuilt wheel, source build, system package, pinned legacy version);
every attempt is recorded and reported.`,
	RunE: runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	plan, err := loadPlan(setupPlanPath)
	if err != nil {
		return err
	}

	env := platform.Detect()
	fmt.Fprintf(out, "Environment: %s\n", env.Label())
	if !env.Termux {
		fmt.Fprintln(out, "Warning: not running in Termux. Some steps may not work properly.")
	}

	fmt.Fprintf(out, "Plan: %s (%d system packages, %d packages)\n",
		plan.Name, len(plan.SystemPackages), len(plan.Packages))

	if !setupYes && !confirm(cmd, "Proceed with setup?") {
		fmt.Fprintln(out, "Setup cancelled.")
		return nil
	}

	if err := config.EnsureDir(); err != nil {
		return err
	}
	if err := os.MkdirAll(config.LogsDir(), 0755); err != nil {
		return fmt.Errorf("creating logs directory: %w", err)
	}
	logger := logging.New(logging.Options{Dir: config.LogsDir(), Debug: setupDebug})
	defer logger.Sync()

	fmt.Fprintln(out, "Installing...")
	report := setup.Run(cmd.Context(), plan, setup.Options{
		SkipSystem: setupSkipPackages,
		Logger:     logger,
		OnPackage: func(pkg manifest.Package) {
			fmt.Fprintf(out, "  %s\n", pkg.Name)
		},
		OnAttempt: func(pkg string, a resolver.Attempt) {
			setup.PrintAttempt(out, pkg, a)
		},
	})

	setup.PrintReport(out, report)

	if len(plan.Tools) > 0 {
		fmt.Fprintln(out, "\nSmoke tests:")
		printCheckResults(out, doctor.CheckTools(cmd.Context(), plan.Tools, nil))
	}

	// Exhaustion of a required package fails the command; optional packages
	// already degraded gracefully in the report.
	if failed := report.FailedRequired(); len(failed) > 0 {
		names := make([]string, len(failed))
		for i, res := range failed {
			names[i] = res.Package.Name
		}
		return fmt.Errorf("setup incomplete: could not install %s", strings.Join(names, ", "))
	}
	return nil
}

// loadPlan reads and validates a plan file, or falls back to the built-in
// plan when no path is given.
func loadPlan(path string) (*manifest.Plan, error) {
	if path == "" {
		return manifest.Default(), nil
	}

	result, err := manifest.ValidateFile(path)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", issue.Path, issue.Message)
		}
		return nil, fmt.Errorf("plan %s failed validation", path)
	}

	return manifest.ParseFile(path)
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "? %s (Y/n) ", prompt)
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return true
	}
	answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return answer == "" || answer == "y" || answer == "yes"
}
