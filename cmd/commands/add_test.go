package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanlog/scanlog/pkg/models"
)

func TestAddCommand(t *testing.T) {
	srv, repo := newBackend(t)

	res := execute(t, NewAddCommand(), "", "--api-url", srv.URL, " 4006381333931 ")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "OK: Recorded 4006381333931 (id 1)")

	scans, err := repo.List(context.Background(), models.QueryFilter{})
	require.NoError(t, err)
	require.Len(t, scans, 1)
	assert.Equal(t, "4006381333931", scans[0].Barcode)
}

func TestAddCommandAllowsRepeats(t *testing.T) {
	srv, repo := newBackend(t)

	require.NoError(t, execute(t, NewAddCommand(), "", "--api-url", srv.URL, "A1").err)
	require.NoError(t, execute(t, NewAddCommand(), "", "--api-url", srv.URL, "A1").err)

	scans, err := repo.List(context.Background(), models.QueryFilter{})
	require.NoError(t, err)
	assert.Len(t, scans, 2)
}

func TestAddCommandJSON(t *testing.T) {
	srv, _ := newBackend(t)

	res := execute(t, NewAddCommand(), "", "--api-url", srv.URL, "-o", "json", "A1")
	require.NoError(t, res.err)

	var scan models.Scan
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &scan))
	assert.Equal(t, "A1", scan.Barcode)
	assert.Equal(t, int64(1), scan.ID)
}

func TestAddCommandErrors(t *testing.T) {
	t.Run("blank barcode", func(t *testing.T) {
		res := execute(t, NewAddCommand(), "", "--api-url", "http://127.0.0.1:1", "  ")
		assert.ErrorContains(t, res.err, "barcode cannot be empty")
	})

	t.Run("server detail", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail":"database is locked"}`))
		}))
		defer srv.Close()

		res := execute(t, NewAddCommand(), "", "--api-url", srv.URL, "A1")
		assert.EqualError(t, res.err, "failed to record scan: database is locked")
	})

	t.Run("invalid output format", func(t *testing.T) {
		res := execute(t, NewAddCommand(), "", "--api-url", "http://127.0.0.1:1", "-o", "xml", "A1")
		assert.ErrorContains(t, res.err, "invalid output format")
	})
}
