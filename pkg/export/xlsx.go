// Package export renders scan lists as spreadsheets.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/scanlog/scanlog/pkg/models"
)

// ErrNoScans is returned when there is nothing to export.
var ErrNoScans = errors.New("no scans to export")

const (
	// SheetName is the single worksheet in every export.
	SheetName = "Scans"

	// TimeLayout formats scan times in the Scanned At column.
	TimeLayout = "2006-01-02 15:04:05"
)

// Columns is the fixed header row.
var Columns = []string{"ID", "Barcode", "Scanned At"}

// WriteXLSX writes scans as an xlsx workbook: one header row and one row
// per scan. Times are rendered in loc (time.Local when nil).
func WriteXLSX(w io.Writer, scans []models.Scan, loc *time.Location) error {
	if len(scans) == 0 {
		return ErrNoScans
	}
	if loc == nil {
		loc = time.Local
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, s := range scans {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{s.ID, s.Barcode, s.ScannedAt.In(loc).Format(TimeLayout)}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(SheetName, "B", "C", 24); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the export to dir/models.ExportFilename and returns the
// full path. Nothing is created when scans is empty.
func SaveXLSX(dir string, scans []models.Scan, loc *time.Location) (string, error) {
	if len(scans) == 0 {
		return "", ErrNoScans
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	return SaveXLSXAs(filepath.Join(dir, models.ExportFilename), scans, loc)
}

// SaveXLSXAs writes the export to an explicit path.
func SaveXLSXAs(path string, scans []models.Scan, loc *time.Location) (string, error) {
	if len(scans) == 0 {
		return "", ErrNoScans
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".scans-export-*")
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteXLSX(tmp, scans, loc); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to flush export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to move export into place: %w", err)
	}
	return path, nil
}
