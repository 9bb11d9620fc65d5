package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/termbot-labs/termbot/internal/branding"
	"github.com/termbot-labs/termbot/internal/config"
	"github.com/termbot-labs/termbot/internal/updater"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` prepares a Termux/Android environment for running
Telegram bot instances: system packages, Python dependencies resolved through
ordered fallback strategies, instance scaffolding, and post-setup smoke tests.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Skip the banner for commands that manage their own output.
		name := cmd.Name()
		if name == "version" || name == "plan" {
			return
		}

		// Non-blocking banner from cached version check.
		u := updater.New(buildVersion)
		u.CheckAndPrintBanner(os.Stderr, config.Dir())
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
