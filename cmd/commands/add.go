package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scanlog/scanlog/internal/cli"
	"github.com/scanlog/scanlog/pkg/client"
)

// NewAddCommand creates the add command
func NewAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <barcode>",
		Short: "Record a single scan",
		Long: `Record a scan through the API.

Unlike the interactive scanner, add does not check for duplicates:
repeated scans of the same barcode are stored.

Examples:
  scanlog add 4006381333931
  scanlog add 4006381333931 -o json`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateBarcode(args[0])
		},
		RunE: runAdd,
	}

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	api, err := commandContext(cmd).Client()
	if err != nil {
		return err
	}

	scan, err := api.CreateScan(cmd.Context(), strings.TrimSpace(args[0]))
	if err != nil {
		return fmt.Errorf("failed to record scan: %s", client.Detail(err, err.Error()))
	}

	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat == "json" || outputFormat == "yaml" {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, scan)
	}

	cli.PrintSuccess("Recorded %s (id %d) at %s", scan.Barcode, scan.ID, scan.ScannedAt.Local().Format(timeLayout))
	return nil
}
