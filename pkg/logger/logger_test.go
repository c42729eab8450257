package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileModeSet(t *testing.T) {
	var m FileMode
	require.NoError(t, m.Set(""))
	assert.Equal(t, FileModeAppend, m)
	require.NoError(t, m.Set("rotate"))
	assert.Equal(t, FileModeRotate, m)
	require.Error(t, m.Set("sideways"))
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	logger, err := New(Config{Path: path, Mode: FileModeTruncate, Level: zap.InfoLevel})
	require.NoError(t, err)
	logger.Info("hello", zap.Int("n", 1))
	require.NoError(t, logger.Sync())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"n":1`)
}

func TestNewLevelFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	logger, err := New(Config{Path: path, Mode: FileModeTruncate, Level: zap.WarnLevel})
	require.NoError(t, err)
	logger.Info("quiet")
	require.NoError(t, logger.Sync())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, b)
}
