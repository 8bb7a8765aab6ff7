// Package storage holds the document-store backends records are written to.
package storage

import (
	"context"
	"errors"
	"fmt"

	"firstaid/dataloader/appcontext"
	"firstaid/dataloader/config"
	"firstaid/dataloader/model"
)

var (
	// ErrBatchTooLarge is returned when a batch exceeds the backend's per-commit limit.
	ErrBatchTooLarge = errors.New("batch exceeds the per-commit write limit")
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown store backend")
	// ErrInvalidDocumentID is returned when an id cannot be used as a document key.
	ErrInvalidDocumentID = errors.New("invalid document id")
)

// Store writes batches of documents into named collections.
//
// BatchUpsert commits docs in a single call. A document whose ID already exists
// in the collection is replaced.
type Store interface {
	BatchUpsert(ctx context.Context, collection string, docs []model.Document) error
	Close(ctx context.Context) error
}

// Open builds the store selected by cfg.Backend. creds is required for the
// firestore backend and ignored by the others.
func Open(ctx context.Context, cfg *config.Config, creds *Credentials) (Store, error) {
	logger := appcontext.LoggerFromContext(ctx)

	switch cfg.Backend {
	case config.BackendFirestore:
		if creds == nil {
			return nil, ErrMissingCredentials
		}
		projectID := cfg.ProjectID
		if projectID == "" {
			projectID = creds.ProjectID
		}
		store, err := NewFirestoreStore(ctx, projectID, creds.ClientOptions()...)
		if err != nil {
			return nil, fmt.Errorf("connection to Firestore failed: %w", err)
		}
		return store, nil
	case config.BackendMongo:
		client, err := ConnectToMongoDBFunc(ctx, cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("connection to MongoDB failed: %w", err)
		}
		return NewMongoStore(NewMongoProvider(NewMongoClient(client), cfg.MongoDatabase)), nil
	case config.BackendMemory:
		logger.InfoContext(ctx, "Using in-memory store, nothing will be persisted")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}
