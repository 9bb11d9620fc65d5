package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/termbot-labs/termbot/internal/instance"
)

var (
	instanceAdminIDs    []int64
	instanceInterval    int
	instanceDescription string
	instanceAutoStart   bool
	instanceDeleteYes   bool
)

func init() {
	instanceCreateCmd.Flags().Int64SliceVar(&instanceAdminIDs, "admin", nil, "Telegram admin user ID (repeatable)")
	instanceCreateCmd.Flags().IntVar(&instanceInterval, "interval", 5, "Message interval in minutes")
	instanceCreateCmd.Flags().StringVar(&instanceDescription, "description", "", "Instance description")
	instanceCreateCmd.Flags().BoolVar(&instanceAutoStart, "auto-start", false, "Start the instance automatically")
	instanceDeleteCmd.Flags().BoolVarP(&instanceDeleteYes, "yes", "y", false, "Skip confirmation prompt")

	instanceCmd.AddCommand(instanceCreateCmd)
	instanceCmd.AddCommand(instanceListCmd)
	instanceCmd.AddCommand(instanceDeleteCmd)
	instanceCmd.AddCommand(instanceSetTokenCmd)
	rootCmd.AddCommand(instanceCmd)
}

var instanceCmd = &cobra.Command{
	Use:   "instance",
	Short: "Manage bot instances",
	Long:  `Create, list, and delete bot instance directories under ~/.termbot/instances/.`,
}

var instanceCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a bot instance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := instance.DefaultRoot()
		if err != nil {
			return err
		}

		rec, err := instance.Create(root, args[0], instance.Settings{
			Description:     instanceDescription,
			IntervalMinutes: instanceInterval,
			AdminIDs:        instanceAdminIDs,
			AutoStart:       instanceAutoStart,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Instance %q created\n", rec.Name)
		fmt.Fprintf(out, "  Add target groups to %s\n", instance.ConfigPath(root, rec.Name))
		fmt.Fprintf(out, "  Set the bot token with `termbot instance set-token %s`\n", rec.Name)
		return nil
	},
}

var instanceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bot instances",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := instance.DefaultRoot()
		if err != nil {
			return err
		}

		records, err := instance.List(root)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No instances. Create one with `termbot instance create <name>`.")
			return nil
		}
		for _, rec := range records {
			fmt.Fprintf(out, "%s\t%dm\t%s\n", rec.Name, rec.IntervalMinutes, rec.Description)
		}
		return nil
	},
}

var instanceDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a bot instance and its files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := instance.DefaultRoot()
		if err != nil {
			return err
		}
		name := args[0]

		if !instanceDeleteYes && !confirm(cmd, fmt.Sprintf("Delete instance %q and all its files?", name)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}

		if err := instance.Delete(root, name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Instance %q deleted\n", name)
		return nil
	},
}

var instanceSetTokenCmd = &cobra.Command{
	Use:   "set-token <name> [token]",
	Short: "Store the bot token for an instance",
	Long: `Save the BotFather token for an instance. The token is written with
private permissions and encrypted by the bot on its first run. When no
token argument is given, it is read from stdin so it stays out of the
shell history.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := instance.DefaultRoot()
		if err != nil {
			return err
		}
		name := args[0]

		var token string
		if len(args) == 2 {
			token = args[1]
		} else {
			fmt.Fprint(cmd.OutOrStdout(), "Enter bot token: ")
			scanner := bufio.NewScanner(cmd.InOrStdin())
			if scanner.Scan() {
				token = strings.TrimSpace(scanner.Text())
			}
		}

		if err := instance.SaveToken(root, name, token); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Token saved for %q\n", name)
		return nil
	},
}
