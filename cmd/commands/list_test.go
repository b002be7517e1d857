package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestListCommandText(t *testing.T) {
	srv, repo := newBackend(t)
	seed(t, repo, "A1", "B2", "A3")

	res := execute(t, NewListCommand(), "", "--api-url", srv.URL)
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Contains(t, lines[0], "BARCODE")
	// Newest first.
	assert.Contains(t, lines[2], "A3")
	assert.Contains(t, lines[3], "B2")
	assert.Contains(t, lines[4], "A1")
	assert.Contains(t, res.stdout, "INFO: 3 scan(s)")
}

func TestListCommandFilters(t *testing.T) {
	srv, repo := newBackend(t)
	seed(t, repo, "A1", "B2", "A3")

	res := execute(t, NewListCommand(), "", "--api-url", srv.URL, "--barcode", "a", "--limit", "1", "-o", "json")
	require.NoError(t, res.err)

	var out ListResult
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "A3", out.Scans[0].Barcode)
}

func TestListCommandYAML(t *testing.T) {
	srv, repo := newBackend(t)
	seed(t, repo, "A1")

	res := execute(t, NewListCommand(), "", "--api-url", srv.URL, "-o", "yaml")
	require.NoError(t, res.err)

	var out map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, 1, out["count"])
}

func TestListCommandEmpty(t *testing.T) {
	srv, _ := newBackend(t)

	res := execute(t, NewListCommand(), "", "--api-url", srv.URL)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "INFO: No scans found")
}

func TestListCommandValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"zero limit", []string{"--limit", "0"}, "invalid limit 0"},
		{"limit too large", []string{"--limit", "1001"}, "invalid limit 1001"},
		{"bad start", []string{"--start", "yesterday"}, "invalid --start"},
		{"bad end", []string{"--end", "31/12/2024"}, "invalid --end"},
		{"end before start", []string{"--start", "2024-03-02", "--end", "2024-03-01"}, "--end must be after --start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--api-url", "http://127.0.0.1:1"}, tt.args...)
			res := execute(t, NewListCommand(), "", args...)
			assert.ErrorContains(t, res.err, tt.wantErr)
		})
	}
}

func TestListCommandUnreachableAPI(t *testing.T) {
	res := execute(t, NewListCommand(), "", "--api-url", "http://127.0.0.1:1")
	assert.ErrorContains(t, res.err, "failed to list scans")
}
