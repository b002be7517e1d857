package cli

import (
	"fmt"
	"os"
	"strings"
)

// MaxListLimit mirrors the largest page the API accepts.
const MaxListLimit = 1000

// ValidateBarcode rejects blank barcodes
func ValidateBarcode(barcode string) error {
	if strings.TrimSpace(barcode) == "" {
		return fmt.Errorf("barcode cannot be empty")
	}
	return nil
}

// ValidateLimit checks a page size against the API bounds
func ValidateLimit(limit int) error {
	if limit < 1 || limit > MaxListLimit {
		return fmt.Errorf("invalid limit %d (must be between 1 and %d)", limit, MaxListLimit)
	}
	return nil
}

// ValidateDirectoryPath validates that a directory path exists
func ValidateDirectoryPath(path string) error {
	if path == "" {
		return fmt.Errorf("directory path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory not found: %s", path)
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{string(FormatText), string(FormatJSON), string(FormatYAML)}
	if Contains(validFormats, format) {
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// Contains checks if a string is in a slice
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
