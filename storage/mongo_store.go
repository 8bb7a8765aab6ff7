package storage

import (
	"context"
	"fmt"

	"firstaid/dataloader/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore writes batches as unordered bulk replace-upserts keyed by _id.
// Unlike Firestore, MongoDB does not apply a bulk write atomically.
type MongoStore struct {
	provider CollectionProvider
}

// NewMongoStore creates a new MongoStore.
func NewMongoStore(provider CollectionProvider) *MongoStore {
	return &MongoStore{
		provider: provider,
	}
}

// BatchUpsert replaces or inserts every document of docs in the named collection.
func (s *MongoStore) BatchUpsert(ctx context.Context, collection string, docs []model.Document) error {
	if len(docs) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(docs))
	for _, doc := range docs {
		if doc.ID == "" {
			return fmt.Errorf("%w: empty id", ErrInvalidDocumentID)
		}
		replacement := make(bson.M, len(doc.Data)+1)
		for k, v := range doc.Data {
			replacement[k] = v
		}
		replacement["_id"] = doc.ID

		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": doc.ID}).
			SetReplacement(replacement).
			SetUpsert(true))
	}

	_, err := s.provider.Collection(collection).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("failed to perform bulk write for collection %s: %w", collection, err)
	}

	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.provider.Disconnect(ctx); err != nil {
		return fmt.Errorf("error disconnecting from MongoDB: %w", err)
	}
	return nil
}
