// Package store persists scan records.
package store

import (
	"context"
	"errors"

	"github.com/scanlog/scanlog/pkg/models"
)

// ErrInvalidFilter is returned for filters the store cannot execute, such
// as a negative limit.
var ErrInvalidFilter = errors.New("invalid filter")

// Repository is the persistence contract used by the HTTP server.
type Repository interface {
	// Create stores barcode with a server-assigned id and timestamp.
	Create(ctx context.Context, barcode string) (*models.Scan, error)

	// List returns matching scans, newest first. A non-positive Limit means
	// no limit.
	List(ctx context.Context, filter models.QueryFilter) ([]models.Scan, error)

	// DeleteAll removes every scan and reports how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}
