package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanlog/scanlog/pkg/models"
)

// newTestRepo returns a repository on a fresh in-memory database whose
// clock advances one minute per Create, starting at base.
func newTestRepo(t *testing.T, base time.Time) *SQLiteRepository {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewSQLiteRepository(db)
	next := base
	repo.now = func() time.Time {
		cur := next
		next = next.Add(time.Minute)
		return cur
	}
	return repo
}

func seed(t *testing.T, repo *SQLiteRepository, barcodes ...string) []*models.Scan {
	t.Helper()
	var out []*models.Scan
	for _, b := range barcodes {
		s, err := repo.Create(context.Background(), b)
		require.NoError(t, err)
		out = append(out, s)
	}
	return out
}

func TestCreate_AssignsIDAndTime(t *testing.T) {
	base := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	repo := newTestRepo(t, base)

	created := seed(t, repo, "A1", "B2")

	assert.Equal(t, int64(1), created[0].ID)
	assert.Equal(t, int64(2), created[1].ID)
	assert.True(t, base.Equal(created[0].ScannedAt))
	assert.True(t, created[1].ScannedAt.After(created[0].ScannedAt))
}

func TestList_NewestFirst(t *testing.T) {
	repo := newTestRepo(t, time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC))
	seed(t, repo, "A1", "B2", "C3")

	scans, err := repo.List(context.Background(), models.QueryFilter{})
	require.NoError(t, err)
	require.Len(t, scans, 3)
	assert.Equal(t, []string{"C3", "B2", "A1"}, []string{scans[0].Barcode, scans[1].Barcode, scans[2].Barcode})
	assert.Equal(t, time.UTC, scans[0].ScannedAt.Location())
}

func TestList_Filters(t *testing.T) {
	base := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	repo := newTestRepo(t, base)
	// 09:00 A100, 09:01 B200, 09:02 A300, 09:03 x_y
	seed(t, repo, "A100", "B200", "A300", "x_y")

	at := func(min int) *time.Time {
		v := base.Add(time.Duration(min) * time.Minute)
		return &v
	}

	tests := []struct {
		name   string
		filter models.QueryFilter
		want   []string
	}{
		{"start inclusive", models.QueryFilter{Start: at(1)}, []string{"x_y", "A300", "B200"}},
		{"end exclusive", models.QueryFilter{End: at(2)}, []string{"B200", "A100"}},
		{"window", models.QueryFilter{Start: at(1), End: at(3)}, []string{"A300", "B200"}},
		{"substring", models.QueryFilter{Barcode: "00"}, []string{"A300", "B200", "A100"}},
		{"case insensitive", models.QueryFilter{Barcode: "a3"}, []string{"A300"}},
		{"underscore is literal", models.QueryFilter{Barcode: "_"}, []string{"x_y"}},
		{"percent is literal", models.QueryFilter{Barcode: "%"}, []string{}},
		{"limit", models.QueryFilter{Limit: 2}, []string{"x_y", "A300"}},
		{"offset", models.QueryFilter{Limit: 2, Offset: 2}, []string{"B200", "A100"}},
		{"offset without limit", models.QueryFilter{Offset: 3}, []string{"A100"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scans, err := repo.List(context.Background(), tt.filter)
			require.NoError(t, err)

			got := []string{}
			for _, s := range scans {
				got = append(got, s.Barcode)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestList_NonUTCBounds(t *testing.T) {
	base := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	repo := newTestRepo(t, base)
	seed(t, repo, "A1", "B2")

	// 11:01 at +02:00 is 09:01 UTC.
	loc := time.FixedZone("plus2", 2*60*60)
	start := time.Date(2024, 2, 1, 11, 1, 0, 0, loc)

	scans, err := repo.List(context.Background(), models.QueryFilter{Start: &start})
	require.NoError(t, err)
	require.Len(t, scans, 1)
	assert.Equal(t, "B2", scans[0].Barcode)
}

func TestList_RejectsNegativeLimit(t *testing.T) {
	repo := newTestRepo(t, time.Now())

	_, err := repo.List(context.Background(), models.QueryFilter{Limit: -1})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestDeleteAll(t *testing.T) {
	repo := newTestRepo(t, time.Now())
	seed(t, repo, "A1", "B2", "C3")

	n, err := repo.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	scans, err := repo.List(context.Background(), models.QueryFilter{})
	require.NoError(t, err)
	assert.Empty(t, scans)

	n, err = repo.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpen_FileIsReopenable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scans.db")
	ctx := context.Background()

	db, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = NewSQLiteRepository(db).Create(ctx, "persisted")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	scans, err := NewSQLiteRepository(db).List(ctx, models.QueryFilter{})
	require.NoError(t, err)
	require.Len(t, scans, 1)
	assert.Equal(t, "persisted", scans[0].Barcode)
}
