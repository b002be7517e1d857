package commands

import (
	"github.com/spf13/cobra"

	"github.com/scanlog/scanlog/internal/cli"
)

// AddGlobalFlags registers the flags every subcommand understands.
func AddGlobalFlags(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.String("api-url", "", "Scan API base URL (overrides config and SCANLOG_API_URL)")
	pf.String("config", "", "Path to a scanlog.yaml config file")
	pf.StringP("output", "o", "text", "Output format: text, json or yaml")
	pf.BoolP("quiet", "q", false, "Suppress informational output")
	pf.Bool("no-color", false, "Disable colored output")
	pf.BoolP("yes", "y", false, "Answer yes to confirmation prompts")
}

// ApplyGlobalFlags pushes the parsed global flags into the cli helpers.
// It is meant to run as the root's PersistentPreRunE.
func ApplyGlobalFlags(cmd *cobra.Command, _ []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	noColor, _ := cmd.Flags().GetBool("no-color")
	yes, _ := cmd.Flags().GetBool("yes")
	cli.SetGlobalFlags(quiet, noColor, yes)
	cli.SetIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())

	output, _ := cmd.Flags().GetString("output")
	return cli.ValidateOutputFormat(output)
}

// commandContext builds the settings/client resolver from global flags.
func commandContext(cmd *cobra.Command) *cli.CommandContext {
	configPath, _ := cmd.Flags().GetString("config")
	apiURL, _ := cmd.Flags().GetString("api-url")
	return cli.NewCommandContext(configPath, apiURL)
}
