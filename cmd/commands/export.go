package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/scanlog/scanlog/internal/cli"
	"github.com/scanlog/scanlog/pkg/client"
	"github.com/scanlog/scanlog/pkg/export"
	"github.com/scanlog/scanlog/pkg/models"
)

var (
	exportStart   string
	exportEnd     string
	exportBarcode string
	exportToFile  string
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export scans to an xlsx spreadsheet",
		Long: `Fetch scans from the API and write them to a spreadsheet with the
columns ID, Barcode and Scanned At (local time).

Up to 1000 scans matching the filters are exported. Nothing is written
when no scans match.

Examples:
  # Everything into ./scans_export.xlsx
  scanlog export

  # One day into a custom file
  scanlog export --start 2024-03-01 --end 2024-03-02 --file march-1.xlsx`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateDirectoryPath(filepath.Dir(exportToFile))
		},
		RunE: runExport,
	}

	addFilterFlags(cmd, &exportStart, &exportEnd, &exportBarcode)
	cmd.Flags().StringVarP(&exportToFile, "file", "f", models.ExportFilename, "Destination file")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	filter, err := buildFilter(exportStart, exportEnd, exportBarcode, cli.MaxListLimit)
	if err != nil {
		return err
	}

	api, err := commandContext(cmd).Client()
	if err != nil {
		return err
	}

	scans, err := api.ListScans(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to fetch scans: %s", client.Detail(err, err.Error()))
	}

	path, err := export.SaveXLSXAs(exportToFile, scans, time.Local)
	if errors.Is(err, export.ErrNoScans) {
		return fmt.Errorf("no scans found for the given criteria")
	}
	if err != nil {
		return fmt.Errorf("failed to export scans: %w", err)
	}

	size := int64(0)
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}
	cli.PrintSuccess("Exported %d scan(s) to %s (%s)", len(scans), path, cli.FormatBytes(size))
	if len(scans) == cli.MaxListLimit {
		cli.PrintWarning("Export stopped at %d scans; narrow the filters to export the rest", cli.MaxListLimit)
	}
	return nil
}
