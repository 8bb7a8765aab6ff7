package model

import "time"

// SyncLog represents a record in the dataSync collection.
type SyncLog struct {
	RunID           string
	CollectionName  string
	FileName        string
	SyncTimestamp   time.Time
	RecordsUploaded int64
	RecordsSkipped  int64
}

// Document converts the log entry into a store write keyed by run and collection.
func (s SyncLog) Document() Document {
	return Document{
		ID: s.RunID + "_" + s.CollectionName,
		Data: map[string]any{
			"run_id":           s.RunID,
			"collection_name":  s.CollectionName,
			"file_name":        s.FileName,
			"sync_timestamp":   s.SyncTimestamp,
			"records_uploaded": s.RecordsUploaded,
			"records_skipped":  s.RecordsSkipped,
		},
	}
}
