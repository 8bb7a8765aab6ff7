package storage

import (
	"context"
	"fmt"

	"firstaid/dataloader/model"
)

// SyncCollection receives one entry per successful upload when the sync log is on.
const SyncCollection = "dataSync"

// SyncLogger records upload runs in the SyncCollection of a Store.
type SyncLogger struct {
	store Store
}

// NewSyncLogger creates a SyncLogger writing through store.
func NewSyncLogger(store Store) *SyncLogger {
	return &SyncLogger{store: store}
}

// Record writes entry keyed by its run id and collection.
func (l *SyncLogger) Record(ctx context.Context, entry model.SyncLog) error {
	if err := l.store.BatchUpsert(ctx, SyncCollection, []model.Document{entry.Document()}); err != nil {
		return fmt.Errorf("failed to insert into %s collection: %w", SyncCollection, err)
	}
	return nil
}
