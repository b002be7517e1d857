package testhelpers

import (
	"fmt"
	"time"

	"github.com/scanlog/scanlog/pkg/models"
)

// BaseTime is the timestamp fixtures count from.
var BaseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// ScanBuilder provides a fluent interface for building test scans
type ScanBuilder struct {
	scan models.Scan
}

// NewScanBuilder creates a scan for barcode with ID 1 at BaseTime
func NewScanBuilder(barcode string) *ScanBuilder {
	return &ScanBuilder{
		scan: models.Scan{
			ID:        1,
			Barcode:   barcode,
			ScannedAt: BaseTime,
		},
	}
}

// WithID sets the record ID
func (b *ScanBuilder) WithID(id int64) *ScanBuilder {
	b.scan.ID = id
	return b
}

// At sets the scan time
func (b *ScanBuilder) At(t time.Time) *ScanBuilder {
	b.scan.ScannedAt = t
	return b
}

// Build returns the scan
func (b *ScanBuilder) Build() models.Scan {
	return b.scan
}

// MakeScans returns n scans newest first, the order the API lists them in.
// Barcodes are CODE-001..CODE-n, one minute apart.
func MakeScans(n int) []models.Scan {
	scans := make([]models.Scan, 0, n)
	for i := n; i >= 1; i-- {
		scans = append(scans, NewScanBuilder(fmt.Sprintf("CODE-%03d", i)).
			WithID(int64(i)).
			At(BaseTime.Add(time.Duration(i)*time.Minute)).
			Build())
	}
	return scans
}

// Barcodes extracts the barcodes in order.
func Barcodes(scans []models.Scan) []string {
	out := make([]string, len(scans))
	for i, s := range scans {
		out[i] = s.Barcode
	}
	return out
}
