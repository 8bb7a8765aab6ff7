package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) error {
	t.Helper()
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level}))

	v := viper.New()
	v.Set("env_file", filepath.Join(t.TempDir(), "missing.env"))

	root := newRootCommand(v, logger, level)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.Execute()
}

func TestRoot_MissingCommand(t *testing.T) {
	err := executeRoot(t)
	assert.ErrorIs(t, err, errMissingCommand)
}

func TestRoot_UnknownCommand(t *testing.T) {
	for _, name := range []string{"bogus", "donor", "medical"} {
		err := executeRoot(t, name)
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "unknown command", name)
	}
}

func TestRoot_KnownCommandWithMemoryBackend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.json"), []byte(`[{"id":"a"},{"name":"b"}]`), 0o600))

	err := executeRoot(t, "categories", "--backend", "memory", "--data-dir", dir)
	assert.NoError(t, err)
}

func TestRoot_FailedUploadsStillSucceed(t *testing.T) {
	dir := t.TempDir()

	// Nothing exists: three uploads fail softly and the donors template is written.
	err := executeRoot(t, "all", "--backend", "memory", "--data-dir", dir, "--sync-log")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "donors.json"))
}

func TestRoot_MissingCredentialsIsFatal(t *testing.T) {
	t.Setenv("CREDENTIALS_FILE", filepath.Join(t.TempDir(), "serviceAccountKey.json"))

	err := executeRoot(t, "categories", "--backend", "firestore", "--data-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelInfo, parseLevel("nonsense"))
}
