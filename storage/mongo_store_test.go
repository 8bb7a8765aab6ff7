package storage_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"firstaid/dataloader/model"
	"firstaid/dataloader/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mock for DataStore interface.
type mockDataStore struct {
	bulkWriteFunc func(ctx context.Context, models []mongo.WriteModel, opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error)
}

func (m *mockDataStore) BulkWrite(ctx context.Context, models []mongo.WriteModel, opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error) {
	if m.bulkWriteFunc != nil {
		return m.bulkWriteFunc(ctx, models, opts...)
	}
	return &mongo.BulkWriteResult{}, nil
}

// Mock for CollectionProvider interface.
type mockCollectionProvider struct {
	collectionFunc func(name string) storage.DataStore
	disconnectErr  error
	disconnected   bool
}

func (m *mockCollectionProvider) Collection(name string) storage.DataStore {
	if m.collectionFunc != nil {
		return m.collectionFunc(name)
	}
	return &mockDataStore{}
}

func (m *mockCollectionProvider) Disconnect(context.Context) error {
	m.disconnected = true
	return m.disconnectErr
}

func TestMongoStore_BatchUpsert(t *testing.T) {
	docs := []model.Document{
		{ID: "a", Data: map[string]any{"id": "a", "name": "X"}},
		{ID: "b", Data: map[string]any{"id": "b", "name": "Y"}},
	}

	var gotCollection string
	mockDS := &mockDataStore{
		bulkWriteFunc: func(_ context.Context, models []mongo.WriteModel, opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error) {
			require.Len(t, models, 2)

			replace, ok := models[0].(*mongo.ReplaceOneModel)
			require.True(t, ok, "expected ReplaceOneModel, got %T", models[0])
			assert.Equal(t, bson.M{"_id": "a"}, replace.Filter)
			require.NotNil(t, replace.Upsert)
			assert.True(t, *replace.Upsert)

			replacement, ok := replace.Replacement.(bson.M)
			require.True(t, ok)
			assert.Equal(t, "a", replacement["_id"])
			assert.Equal(t, "X", replacement["name"])

			require.Len(t, opts, 1)
			require.NotNil(t, opts[0].Ordered)
			assert.False(t, *opts[0].Ordered)
			return &mongo.BulkWriteResult{UpsertedCount: 2}, nil
		},
	}
	provider := &mockCollectionProvider{
		collectionFunc: func(name string) storage.DataStore {
			gotCollection = name
			return mockDS
		},
	}

	err := storage.NewMongoStore(provider).BatchUpsert(context.Background(), "categories", docs)
	require.NoError(t, err)
	assert.Equal(t, "categories", gotCollection)
	_, hasID := docs[0].Data["_id"]
	assert.False(t, hasID, "input documents must not be mutated")
}

func TestMongoStore_BatchUpsert_Empty(t *testing.T) {
	provider := &mockCollectionProvider{
		collectionFunc: func(string) storage.DataStore {
			t.Fatal("no collection expected for an empty batch")
			return nil
		},
	}
	require.NoError(t, storage.NewMongoStore(provider).BatchUpsert(context.Background(), "x", nil))
}

func TestMongoStore_BatchUpsert_EmptyID(t *testing.T) {
	store := storage.NewMongoStore(&mockCollectionProvider{})
	err := store.BatchUpsert(context.Background(), "x", []model.Document{{ID: ""}})
	assert.ErrorIs(t, err, storage.ErrInvalidDocumentID)
}

func TestMongoStore_BatchUpsert_BulkWriteError(t *testing.T) {
	expectedErr := errors.New("bulk write error")
	provider := &mockCollectionProvider{
		collectionFunc: func(string) storage.DataStore {
			return &mockDataStore{
				bulkWriteFunc: func(context.Context, []mongo.WriteModel, ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error) {
					return nil, expectedErr
				},
			}
		},
	}

	err := storage.NewMongoStore(provider).BatchUpsert(context.Background(), "donors",
		[]model.Document{{ID: "a", Data: map[string]any{}}})
	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.True(t, strings.Contains(err.Error(), "donors"))
}

func TestMongoStore_Close(t *testing.T) {
	provider := &mockCollectionProvider{}
	require.NoError(t, storage.NewMongoStore(provider).Close(context.Background()))
	assert.True(t, provider.disconnected)

	provider = &mockCollectionProvider{disconnectErr: errors.New("boom")}
	assert.Error(t, storage.NewMongoStore(provider).Close(context.Background()))
}
