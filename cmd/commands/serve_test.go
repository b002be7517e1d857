package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCommandStopsOnCancel(t *testing.T) {
	oldDir, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(oldDir) })
	dbPath := filepath.Join(t.TempDir(), "scans.db")

	root := &cobra.Command{Use: "scanlog", PersistentPreRunE: ApplyGlobalFlags, SilenceUsage: true, SilenceErrors: true}
	AddGlobalFlags(root)
	root.AddCommand(NewServeCommand())
	root.SetArgs([]string{"serve", "--addr", "127.0.0.1:0", "--db", dbPath})
	root.SetOut(new(nopWriter))
	root.SetErr(new(nopWriter))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}

	_, err := os.Stat(dbPath)
	assert.NoError(t, err, "database file created and migrated")
}

func TestServeCommandBadDatabasePath(t *testing.T) {
	res := execute(t, NewServeCommand(), "", "--addr", "127.0.0.1:0", "--db", filepath.Join(t.TempDir(), "missing", "dir", "scans.db"))
	assert.ErrorContains(t, res.err, "failed to open database")
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
