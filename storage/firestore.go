package storage

import (
	"context"
	"errors"
	"fmt"

	"firstaid/dataloader/appcontext"
	"firstaid/dataloader/model"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// MaxFirestoreBatchWrites is the number of writes Firestore accepts in one commit.
const MaxFirestoreBatchWrites = 500

// FirestoreStore commits each batch through a Firestore WriteBatch.
type FirestoreStore struct {
	client    *firestore.Client
	projectID string
}

// NewFirestoreStore initializes a Firebase app for projectID and returns its Firestore client.
// An empty projectID lets the SDK take it from the credentials.
func NewFirestoreStore(ctx context.Context, projectID string, opts ...option.ClientOption) (*FirestoreStore, error) {
	logger := appcontext.LoggerFromContext(ctx)

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	logger.InfoContext(ctx, "Firestore connected", "project", projectID)
	return &FirestoreStore{client: client, projectID: projectID}, nil
}

// BatchUpsert sets every document of docs (full overwrite) in one atomic commit.
func (s *FirestoreStore) BatchUpsert(ctx context.Context, collection string, docs []model.Document) error {
	if len(docs) == 0 {
		return nil
	}
	if len(docs) > MaxFirestoreBatchWrites {
		return fmt.Errorf("%w: %d writes for collection %s (max %d)",
			ErrBatchTooLarge, len(docs), collection, MaxFirestoreBatchWrites)
	}
	if s.client == nil {
		return errors.New("firestore client is nil")
	}

	col := s.client.Collection(collection)
	if col == nil {
		return fmt.Errorf("invalid collection name %q", collection)
	}

	batch := s.client.Batch()
	for _, doc := range docs {
		ref := col.Doc(doc.ID)
		if ref == nil {
			return fmt.Errorf("%w: %q", ErrInvalidDocumentID, doc.ID)
		}
		batch.Set(ref, doc.Data)
	}

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("batch commit for collection %s failed: %w", collection, err)
	}
	return nil
}

// Close closes the Firestore client.
func (s *FirestoreStore) Close(_ context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
