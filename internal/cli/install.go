package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/termbot-labs/termbot/internal/manifest"
	"github.com/termbot-labs/termbot/internal/resolver"
	"github.com/termbot-labs/termbot/internal/setup"
	"github.com/termbot-labs/termbot/internal/strategy"
)

var (
	installPlanPath   string
	installConstraint string
	installTimeout    time.Duration
	installStrategies []string
	installPinned     string
	installSystemName string
)

func init() {
	installCmd.Flags().StringVar(&installPlanPath, "plan", "", "Setup plan file to look the package up in (default: built-in plan)")
	installCmd.Flags().StringVar(&installConstraint, "constraint", "", "Version constraint, e.g. '>=41.0.0 <42.0.0'")
	installCmd.Flags().DurationVar(&installTimeout, "timeout", setup.DefaultTimeout, "Per-attempt timeout")
	installCmd.Flags().StringSliceVar(&installStrategies, "strategies", nil, "Ordered strategy chain override")
	installCmd.Flags().StringVar(&installPinned, "pinned", "", "Exact version for the pinned-legacy strategy")
	installCmd.Flags().StringVar(&installSystemName, "system-name", "", "Termux package name for the system-package strategy")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <package>",
	Short: "Install a single package through its fallback chain",
	Long: `Resolve one package using its ordered strategy chain. The chain comes
from the setup plan when the package is declared there, or from flags.
All attempts are reported; the command fails only when every strategy
is exhausted.`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	name := args[0]
	out := cmd.OutOrStdout()

	pkg, err := lookupPackage(name)
	if err != nil {
		return err
	}

	timeout := installTimeout
	if pkg.TimeoutSeconds > 0 && !cmd.Flags().Changed("timeout") {
		timeout = time.Duration(pkg.TimeoutSeconds) * time.Second
	}

	strategies, err := strategy.FromNames(pkg.Strategies, strategy.Options{
		SystemName: pkg.SystemName,
		Pinned:     pkg.Pinned,
	})
	if err != nil {
		return err
	}

	target := resolver.Target{Name: pkg.Name, Constraint: pkg.Constraint}
	fmt.Fprintf(out, "Resolving %s...\n", pkg.Name)

	outcome, err := resolver.Resolve(cmd.Context(), target, strategies, timeout)
	if err != nil {
		return err
	}

	for _, a := range outcome.Attempts {
		setup.PrintAttempt(out, pkg.Name, a)
	}

	if outcome.Succeeded() {
		fmt.Fprintf(out, "✓ %s installed via %s\n", pkg.Name, outcome.Winner)
		return nil
	}
	return fmt.Errorf("all %d strategies exhausted for %s", len(outcome.Attempts), pkg.Name)
}

// lookupPackage finds the package in the plan, or builds one from flags for
// packages the plan does not declare.
func lookupPackage(name string) (*manifest.Package, error) {
	plan, err := loadPlan(installPlanPath)
	if err != nil {
		return nil, err
	}

	var pkg *manifest.Package
	for i := range plan.Packages {
		if plan.Packages[i].Name == name {
			pkg = &plan.Packages[i]
			break
		}
	}
	if pkg == nil {
		pkg = &manifest.Package{
			Name:       name,
			Strategies: []string{strategy.IDPrebuiltWheel, strategy.IDSourceBuild},
		}
	}

	// Flags override the plan entry.
	if installConstraint != "" {
		pkg.Constraint = installConstraint
	}
	if len(installStrategies) > 0 {
		pkg.Strategies = installStrategies
	}
	if installPinned != "" {
		pkg.Pinned = installPinned
	}
	if installSystemName != "" {
		pkg.SystemName = installSystemName
	}
	return pkg, nil
}
