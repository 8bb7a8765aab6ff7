package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"firstaid/dataloader/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serviceAccountJSON = `{"type":"service_account","project_id":"firstaid-dev","client_email":"seed@firstaid-dev.iam.gserviceaccount.com"}`

func TestLoadCredentials_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serviceAccountKey.json")
	require.NoError(t, os.WriteFile(path, []byte(serviceAccountJSON), 0o600))

	creds, err := storage.LoadCredentials(context.Background(), path, "")
	require.NoError(t, err)
	assert.Equal(t, "firstaid-dev", creds.ProjectID)
	assert.Equal(t, path, creds.Source)
	assert.Len(t, creds.ClientOptions(), 1)
}

func TestLoadCredentials_MissingFile(t *testing.T) {
	_, err := storage.LoadCredentials(context.Background(), filepath.Join(t.TempDir(), "nope.json"), "")
	assert.ErrorIs(t, err, storage.ErrMissingCredentials)
}

func TestLoadCredentials_EmptyPath(t *testing.T) {
	_, err := storage.LoadCredentials(context.Background(), " ", "")
	assert.ErrorIs(t, err, storage.ErrMissingCredentials)
}

func TestLoadCredentials_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := storage.LoadCredentials(context.Background(), path, "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrMissingCredentials)
}

func TestLoadCredentials_Secret(t *testing.T) {
	original := storage.AccessSecretFunc
	t.Cleanup(func() { storage.AccessSecretFunc = original })

	const name = "projects/firstaid-dev/secrets/seed-key/versions/latest"
	storage.AccessSecretFunc = func(_ context.Context, got string) ([]byte, error) {
		assert.Equal(t, name, got)
		return []byte(serviceAccountJSON), nil
	}

	// The secret takes precedence over a file that does not exist.
	creds, err := storage.LoadCredentials(context.Background(), "missing.json", name)
	require.NoError(t, err)
	assert.Equal(t, "firstaid-dev", creds.ProjectID)
	assert.Equal(t, name, creds.Source)
}

func TestLoadCredentials_SecretError(t *testing.T) {
	original := storage.AccessSecretFunc
	t.Cleanup(func() { storage.AccessSecretFunc = original })

	expected := errors.New("permission denied")
	storage.AccessSecretFunc = func(context.Context, string) ([]byte, error) {
		return nil, expected
	}

	_, err := storage.LoadCredentials(context.Background(), "", "projects/p/secrets/s/versions/1")
	assert.ErrorIs(t, err, expected)
}

func TestCredentials_ClientOptionsNil(t *testing.T) {
	var creds *storage.Credentials
	assert.Empty(t, creds.ClientOptions())
}
