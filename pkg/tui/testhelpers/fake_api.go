package testhelpers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/scanlog/scanlog/pkg/models"
)

// FakeAPI is an in-memory scan backend that records every call.
type FakeAPI struct {
	mu sync.Mutex

	scans  []models.Scan
	nextID int64

	Creates []string
	Lists   []models.QueryFilter
	Deletes int

	CreateErr error
	ListErr   error
	DeleteErr error
}

// NewFakeAPI creates a backend preloaded with scans (newest first).
func NewFakeAPI(scans ...models.Scan) *FakeAPI {
	f := &FakeAPI{nextID: 1}
	for _, s := range scans {
		if s.ID >= f.nextID {
			f.nextID = s.ID + 1
		}
	}
	f.scans = append(f.scans, scans...)
	return f
}

// CreateScan records barcode unless CreateErr is set.
func (f *FakeAPI) CreateScan(_ context.Context, barcode string) (*models.Scan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Creates = append(f.Creates, barcode)
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}

	scan := models.Scan{
		ID:        f.nextID,
		Barcode:   barcode,
		ScannedAt: BaseTime.Add(time.Duration(f.nextID) * time.Hour),
	}
	f.nextID++
	f.scans = append([]models.Scan{scan}, f.scans...)
	return &scan, nil
}

// ListScans applies filter to the stored scans.
func (f *FakeAPI) ListScans(_ context.Context, filter models.QueryFilter) ([]models.Scan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Lists = append(f.Lists, filter)
	if f.ListErr != nil {
		return nil, f.ListErr
	}

	out := []models.Scan{}
	for _, s := range f.scans {
		if !filter.Matches(s) {
			continue
		}
		out = append(out, s)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

// DeleteAllScans empties the store unless DeleteErr is set.
func (f *FakeAPI) DeleteAllScans(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Deletes++
	if f.DeleteErr != nil {
		return "", f.DeleteErr
	}
	n := len(f.scans)
	f.scans = nil
	return fmt.Sprintf("Successfully deleted %d scan records.", n), nil
}

// CreateCount returns how many create requests were made.
func (f *FakeAPI) CreateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Creates)
}

// ListCount returns how many list requests were made.
func (f *FakeAPI) ListCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Lists)
}
