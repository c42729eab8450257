package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/mccanne/charm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStem(t *testing.T) {
	cases := []struct {
		path, want string
	}{
		{"dump.bson", "dump"},
		{"/var/backups/dump.bson", "dump"},
		{"x.tar.gz", "x.tar"},
		{"noext", "noext"},
		{".bson", ".bson"},
	}
	for _, c := range cases {
		got, err := stem(c.path)
		require.NoError(t, err, c.path)
		assert.Equal(t, c.want, got, c.path)
	}
}

func TestStemError(t *testing.T) {
	for _, path := range []string{"", ".", "/"} {
		_, err := stem(path)
		require.Error(t, err, path)
	}
}

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	fs := flag.NewFlagSet("bsplit", flag.ContinueOnError)
	cmd, err := New(nil, fs)
	require.NoError(t, err)
	require.NoError(t, fs.Parse(args))
	return cmd.(*Command).Run(fs.Args())
}

func writeDocs(t *testing.T, path string, n int) {
	t.Helper()
	var buf bytes.Buffer
	for i := 1; i <= n; i++ {
		b, err := bson.Marshal(bson.D{{Key: "seq", Value: int32(i)}})
		require.NoError(t, err)
		buf.Write(b)
	}
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func TestRunLogsSummary(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "dump.bson")
	writeDocs(t, input, 3)
	logPath := filepath.Join(dir, "run.log")
	require.NoError(t, runCommand(t, "-s", "2", "-d", dir, "-log.path", logPath, input))
	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "split complete")
	assert.Contains(t, string(b), `"documents":3`)
}

func TestRunQuietSuppressesSummaryLog(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "dump.bson")
	writeDocs(t, input, 3)
	logPath := filepath.Join(dir, "run.log")
	require.NoError(t, runCommand(t, "-s", "2", "-d", dir, "-log.path", logPath, "-q", input))
	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestRunNoArgsShowsHelp(t *testing.T) {
	Bsplit.Add(charm.Help)
	// Without arguments the command falls back to help rather than
	// complaining about a missing split count.
	require.NoError(t, runCommand(t))
}
