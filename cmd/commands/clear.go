package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scanlog/scanlog/internal/cli"
	"github.com/scanlog/scanlog/pkg/client"
)

// NewClearCommand creates the clear command
func NewClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded scans",
		Long: `Delete every scan record through the API.

You are asked to confirm unless --yes is given.

Examples:
  scanlog clear
  scanlog clear --yes`,
		Args: cobra.NoArgs,
		RunE: runClear,
	}

	return cmd
}

func runClear(cmd *cobra.Command, args []string) error {
	api, err := commandContext(cmd).Client()
	if err != nil {
		return err
	}

	confirmed, err := cli.Confirm(fmt.Sprintf("Delete ALL scan records at %s?", api.BaseURL()), false)
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !confirmed {
		cli.PrintInfo("Clear cancelled")
		return nil
	}

	message, err := api.DeleteAllScans(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to clear scans: %s", client.Detail(err, err.Error()))
	}

	cli.PrintSuccess("%s", message)
	return nil
}
