package commands

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/scanlog/scanlog/internal/logging"
	"github.com/scanlog/scanlog/pkg/server"
	"github.com/scanlog/scanlog/pkg/store"
)

// newBackend runs the real API over an in-memory database.
func newBackend(t *testing.T) (*httptest.Server, *store.SQLiteRepository) {
	t.Helper()
	db, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := store.NewSQLiteRepository(db)
	srv := httptest.NewServer(server.New(repo, logging.Discard()).Handler())
	t.Cleanup(srv.Close)
	return srv, repo
}

func seed(t *testing.T, repo *store.SQLiteRepository, barcodes ...string) {
	t.Helper()
	for _, b := range barcodes {
		_, err := repo.Create(context.Background(), b)
		require.NoError(t, err)
	}
}

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs sub under a root carrying the global flags, isolated from
// any scanlog.yaml in the working directory.
func execute(t *testing.T, sub *cobra.Command, stdin string, args ...string) result {
	t.Helper()
	oldDir, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(oldDir) })

	root := &cobra.Command{
		Use:               "scanlog",
		PersistentPreRunE: ApplyGlobalFlags,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	AddGlobalFlags(root)
	root.AddCommand(sub)

	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{sub.Name(), "--no-color"}, args...))

	err := root.ExecuteContext(context.Background())
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}
