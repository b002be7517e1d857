package models

import "time"

// Scan is a single recorded barcode read. Records are immutable once
// created; the server assigns ID and ScannedAt.
type Scan struct {
	ID        int64     `json:"id" yaml:"id"`
	Barcode   string    `json:"barcode" yaml:"barcode"`
	ScannedAt time.Time `json:"scanned_at" yaml:"scanned_at"`
}

// CreateScanRequest is the body of POST /scans/.
type CreateScanRequest struct {
	Barcode string `json:"barcode"`
}

// MessageResponse carries a human-readable outcome, e.g. from DELETE /scans/.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the JSON error body returned by the API.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ExportFilename is the fixed name of the spreadsheet export.
const ExportFilename = "scans_export.xlsx"

// DefaultPageSize is the fixed result limit used by the scanning UI.
const DefaultPageSize = 100
