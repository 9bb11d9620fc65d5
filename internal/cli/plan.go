package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var planPath string

func init() {
	planCmd.Flags().StringVar(&planPath, "plan", "", "Setup plan file (default: built-in plan)")
	rootCmd.AddCommand(planCmd)
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Validate and print the setup plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		plan, err := loadPlan(planPath)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s", plan.Name)
		if plan.Description != "" {
			fmt.Fprintf(out, " — %s", plan.Description)
		}
		fmt.Fprintln(out)

		if len(plan.SystemPackages) > 0 {
			fmt.Fprintf(out, "\nSystem packages (%d):\n  %s\n",
				len(plan.SystemPackages), strings.Join(plan.SystemPackages, " "))
		}

		fmt.Fprintf(out, "\nPackages (%d):\n", len(plan.Packages))
		for _, pkg := range plan.Packages {
			line := "  " + pkg.Name
			if pkg.Constraint != "" {
				line += " (" + pkg.Constraint + ")"
			}
			if pkg.Optional {
				line += " [optional]"
			}
			fmt.Fprintln(out, line)
			fmt.Fprintf(out, "    %s\n", strings.Join(pkg.Strategies, " → "))
		}

		if len(plan.Tools) > 0 {
			fmt.Fprintf(out, "\nTool checks (%d):\n", len(plan.Tools))
			for _, tool := range plan.Tools {
				if tool.MinVersion != "" {
					fmt.Fprintf(out, "  %s >= %s\n", tool.Name, tool.MinVersion)
				} else {
					fmt.Fprintf(out, "  %s\n", tool.Name)
				}
			}
		}
		return nil
	},
}
