package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/scanlog/scanlog/cmd/commands"
	"github.com/scanlog/scanlog/internal/cli"
	"github.com/scanlog/scanlog/internal/logging"
	"github.com/scanlog/scanlog/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "scanlog",
	Short: "Record barcode scans from a terminal",
	Long: `Scanlog records barcode scans against the scan API. Run without a
subcommand to open the scanner UI; point a USB scanner at the terminal
and each code is recorded once.`,
	PersistentPreRunE: commands.ApplyGlobalFlags,
	SilenceUsage:      true,
	SilenceErrors:     true,
	RunE:              runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Scanlog",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Scanlog version %s\n", version)
	},
}

func runTUI(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	apiURL, _ := cmd.Flags().GetString("api-url")
	cc := cli.NewCommandContext(configPath, apiURL)

	settings, err := cc.LoadSettings()
	if err != nil {
		return err
	}
	api, err := cc.Client()
	if err != nil {
		return err
	}

	// stdout belongs to the UI, so logs only go to a file when configured.
	log, closeLog, err := logging.NewFile(settings.LogFile, settings.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	log.Info(cmd.Context(), "scanner UI starting", "api_url", settings.APIURL)

	tui.Version = version
	p := tea.NewProgram(tui.NewApp(api, settings, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

func init() {
	commands.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewAddCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewClearCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
