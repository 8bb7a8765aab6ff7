package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"firstaid/dataloader/appcontext"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// ErrMissingCredentials is returned when no service-account key can be found.
var ErrMissingCredentials = errors.New("service account credentials not found")

// Credentials is a service-account key shared by the GCP clients.
type Credentials struct {
	JSON      []byte
	ProjectID string
	// Source is the file path or secret version the key was read from.
	Source string
}

// ClientOptions returns the options that authenticate a GCP client with c.
// A nil c yields no options, leaving the clients on Application Default Credentials.
func (c *Credentials) ClientOptions() []option.ClientOption {
	if c == nil || len(c.JSON) == 0 {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsJSON(c.JSON)}
}

// AccessSecretFunc reads a Secret Manager secret version. Swapped out in tests.
var AccessSecretFunc = accessSecret

// LoadCredentials reads the service-account key from secretName when it is set,
// otherwise from file.
func LoadCredentials(ctx context.Context, file, secretName string) (*Credentials, error) {
	logger := appcontext.LoggerFromContext(ctx)

	var (
		data   []byte
		source string
		err    error
	)
	if name := strings.TrimSpace(secretName); name != "" {
		data, err = AccessSecretFunc(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("read credentials secret %s: %w", name, err)
		}
		source = name
	} else {
		path := strings.TrimSpace(file)
		if path == "" {
			return nil, ErrMissingCredentials
		}
		data, err = os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingCredentials, path)
		}
		if err != nil {
			return nil, fmt.Errorf("read credentials file %s: %w", path, err)
		}
		source = path
	}

	var key struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("parse credentials from %s: %w", source, err)
	}

	logger.DebugContext(ctx, "Loaded service account credentials", "source", source, "project", key.ProjectID)
	return &Credentials{JSON: data, ProjectID: key.ProjectID, Source: source}, nil
}

func accessSecret(ctx context.Context, name string) ([]byte, error) {
	sm, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("secretmanager.NewClient failed: %w", err)
	}
	defer sm.Close()

	resp, err := sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("AccessSecretVersion failed (%s): %w", name, err)
	}
	if resp == nil || resp.Payload == nil {
		return nil, fmt.Errorf("empty payload (%s)", name)
	}
	return resp.Payload.Data, nil
}
