package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/scanlog/scanlog/internal/cli"
	"github.com/scanlog/scanlog/pkg/client"
	"github.com/scanlog/scanlog/pkg/models"
)

const timeLayout = "2006-01-02 15:04:05"

// ListResult represents the output structure for list command
type ListResult struct {
	Scans []models.Scan `json:"scans" yaml:"scans"`
	Count int           `json:"count" yaml:"count"`
}

var (
	listStart   string
	listEnd     string
	listBarcode string
	listLimit   int
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded scans, newest first",
		Long: `List scans from the API.

Dates accept YYYY-MM-DD, YYYY-MM-DD HH:MM, YYYY-MM-DDTHH:MM[:SS] or RFC3339.
Dates without a zone are in local time. --start is inclusive, --end is
exclusive.

Examples:
  # Latest 100 scans
  scanlog list

  # Scans from one day containing "400"
  scanlog list --start 2024-03-01 --end 2024-03-02 --barcode 400

  # As JSON
  scanlog list -o json`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateLimit(listLimit)
		},
		RunE: runList,
	}

	addFilterFlags(cmd, &listStart, &listEnd, &listBarcode)
	cmd.Flags().IntVar(&listLimit, "limit", models.DefaultPageSize, "Maximum number of scans to return")

	return cmd
}

func addFilterFlags(cmd *cobra.Command, start, end, barcode *string) {
	cmd.Flags().StringVar(start, "start", "", "Only scans at or after this time")
	cmd.Flags().StringVar(end, "end", "", "Only scans before this time")
	cmd.Flags().StringVar(barcode, "barcode", "", "Only barcodes containing this text")
}

// buildFilter parses the shared filter flags in the local time zone.
func buildFilter(start, end, barcode string, limit int) (models.QueryFilter, error) {
	filter := models.QueryFilter{Barcode: barcode, Limit: limit}

	var err error
	if filter.Start, err = models.ParseFilterTime(start, time.Local); err != nil {
		return filter, fmt.Errorf("invalid --start: %w", err)
	}
	if filter.End, err = models.ParseFilterTime(end, time.Local); err != nil {
		return filter, fmt.Errorf("invalid --end: %w", err)
	}
	if filter.Start != nil && filter.End != nil && !filter.End.After(*filter.Start) {
		return filter, fmt.Errorf("--end must be after --start")
	}
	return filter, nil
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := buildFilter(listStart, listEnd, listBarcode, listLimit)
	if err != nil {
		return err
	}

	api, err := commandContext(cmd).Client()
	if err != nil {
		return err
	}

	scans, err := api.ListScans(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to list scans: %s", client.Detail(err, err.Error()))
	}

	result := ListResult{Scans: scans, Count: len(scans)}

	outputFormat, _ := cmd.Flags().GetString("output")
	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	default:
		return outputListText(cmd, result)
	}
}

func outputListText(cmd *cobra.Command, result ListResult) error {
	if result.Count == 0 {
		cli.PrintInfo("No scans found")
		return nil
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("ID", "BARCODE", "SCANNED AT")
	for _, s := range result.Scans {
		table.Row(
			strconv.FormatInt(s.ID, 10),
			cli.TruncateString(s.Barcode, 48),
			s.ScannedAt.Local().Format(timeLayout),
		)
	}
	if err := table.Flush(); err != nil {
		return err
	}

	cli.PrintInfo("%d scan(s)", result.Count)
	return nil
}
