package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/termbot-labs/termbot/internal/doctor"
	"github.com/termbot-labs/termbot/internal/instance"
	"github.com/termbot-labs/termbot/internal/platform"
)

var (
	doctorPlanPath string
	doctorFix      bool
)

func init() {
	doctorCmd.Flags().StringVar(&doctorPlanPath, "plan", "", "Setup plan file (default: built-in plan)")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Repair instance directories and permissions")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the bot environment",
	Long:  `Verify required tools are installed and new enough, and that instance directories are intact.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		env := platform.Detect()
		fmt.Fprintf(out, "Environment: %s\n", env.Label())
		if !env.Termux {
			fmt.Fprintln(out, "  [WARN] not running in Termux")
		}

		plan, err := loadPlan(doctorPlanPath)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "\nTool check:")
		results := doctor.CheckTools(cmd.Context(), plan.Tools, nil)
		printCheckResults(out, results)

		root, err := instance.DefaultRoot()
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		return doctor.CheckInstances(out, root, doctorFix)
	},
}

func printCheckResults(w io.Writer, results []doctor.CheckResult) {
	for _, res := range results {
		switch res.Status {
		case doctor.StatusOK:
			fmt.Fprintf(w, "  [ OK ] %s %s\n", res.Name, res.Version)
		case doctor.StatusMissing:
			fmt.Fprintf(w, "  [MISS] %s: %s\n", res.Name, res.Detail)
		case doctor.StatusOutdated:
			fmt.Fprintf(w, "  [WARN] %s: %s\n", res.Name, res.Detail)
		default:
			fmt.Fprintf(w, "  [WARN] %s: %s\n", res.Name, res.Detail)
		}
	}
}
