// Package loader uploads JSON seed files into a document store.
package loader

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"firstaid/dataloader/appcontext"
	"firstaid/dataloader/model"
	"firstaid/dataloader/source"
	"firstaid/dataloader/storage"
	"firstaid/dataloader/synthetic"
)

var (
	// ErrFileNotFound is returned when the seed file does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrMalformedJSON is returned when the seed file is not a JSON array.
	ErrMalformedJSON = errors.New("malformed JSON")
)

// SyncRecorder records a successful upload.
type SyncRecorder interface {
	Record(ctx context.Context, entry model.SyncLog) error
}

// Result describes the outcome of one upload.
type Result struct {
	Uploaded        int
	Skipped         int
	TemplateCreated bool
}

// Loader reads seed files from a Source and writes them to a Store.
type Loader struct {
	store     storage.Store
	source    source.Source
	validator *RecordValidator
	syncLog   SyncRecorder
	now       func() time.Time
}

// Option configures a Loader.
type Option func(*Loader)

// WithStrict also requires a name on every record.
func WithStrict(strict bool) Option {
	return func(l *Loader) { l.validator = NewRecordValidator(strict) }
}

// WithSyncLog records every successful upload through rec.
func WithSyncLog(rec SyncRecorder) Option {
	return func(l *Loader) { l.syncLog = rec }
}

// WithClock overrides the time source of the injected timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

// New creates a Loader writing to store and reading from src.
func New(store storage.Store, src source.Source, opts ...Option) *Loader {
	l := &Loader{
		store:     store,
		source:    src,
		validator: NewRecordValidator(false),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Upload writes the records of target.File into target.Collection and returns
// how many were written.
func (l *Loader) Upload(ctx context.Context, target model.Target) (int, error) {
	res, err := l.Load(ctx, target)
	if err != nil || res == nil {
		return 0, err
	}
	return res.Uploaded, nil
}

// Load is Upload with the skipped-record count and template outcome.
// The returned Result is non-nil whenever the file could be read.
func (l *Loader) Load(ctx context.Context, target model.Target) (*Result, error) {
	logger := appcontext.LoggerFromContext(ctx).With("file", target.File, "collection", target.Collection)

	exists, err := l.source.Exists(ctx, target.File)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", target.File, err)
	}
	if !exists {
		if target.Template != nil {
			return l.writeTemplate(ctx, target)
		}
		logger.ErrorContext(ctx, "File not found")
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, target.File)
	}

	logger.InfoContext(ctx, "Reading file")
	data, err := l.source.ReadFile(ctx, target.File)
	if err != nil {
		return nil, err
	}

	elems, err := source.ParseJSONArray(data)
	if err != nil {
		return nil, fmt.Errorf("%w in %s: %w", ErrMalformedJSON, target.File, err)
	}

	res := &Result{}
	now := l.now()
	docs := make([]model.Document, 0, len(elems))
	for i, elem := range elems {
		obj, ok := elem.(map[string]any)
		if !ok {
			logger.WarnContext(ctx, "Skipping item that is not an object", "index", i)
			res.Skipped++
			continue
		}
		record := model.Record(obj)
		if err := l.validator.Validate(record); err != nil {
			logger.WarnContext(ctx, "Skipping item", "index", i, "reason", err.Error())
			res.Skipped++
			continue
		}
		docs = append(docs, toDocument(record, target.AddTimestamps, now))
	}

	if len(docs) == 0 {
		logger.WarnContext(ctx, "No valid items to upload", "skipped", res.Skipped)
		return res, nil
	}

	if err := l.store.BatchUpsert(ctx, target.Collection, docs); err != nil {
		return res, fmt.Errorf("error uploading data into '%s': %w", target.Collection, err)
	}
	res.Uploaded = len(docs)
	logger.InfoContext(ctx, fmt.Sprintf("Uploaded %d items into '%s'", res.Uploaded, target.Collection),
		"skipped", res.Skipped)

	if l.syncLog != nil {
		entry := model.SyncLog{
			RunID:           appcontext.RunIDFromContext(ctx),
			CollectionName:  target.Collection,
			FileName:        target.File,
			SyncTimestamp:   now,
			RecordsUploaded: int64(res.Uploaded),
			RecordsSkipped:  int64(res.Skipped),
		}
		if err := l.syncLog.Record(ctx, entry); err != nil {
			logger.WarnContext(ctx, "Failed to record sync log", "error", err)
		}
	}

	return res, nil
}

func (l *Loader) writeTemplate(ctx context.Context, target model.Target) (*Result, error) {
	logger := appcontext.LoggerFromContext(ctx)
	logger.WarnContext(ctx, "File not found, creating template", "file", target.File)

	data, err := synthetic.Marshal(target.Template)
	if err != nil {
		return nil, err
	}
	if err := l.source.WriteFile(ctx, target.File, data); err != nil {
		return nil, fmt.Errorf("failed to create template %s: %w", target.File, err)
	}

	logger.InfoContext(ctx, "Created template, edit it and re-run", "file", target.File)
	return &Result{TemplateCreated: true}, nil
}

// toDocument keys a record by its id. Timestamps overwrite fields of the same name.
func toDocument(record model.Record, addTimestamps bool, now time.Time) model.Document {
	id, _ := record.ID()
	data := maps.Clone(map[string]any(record))
	if addTimestamps {
		data[model.CreatedAtField] = now
		data[model.UpdatedAtField] = now
	}
	return model.Document{ID: id, Data: data}
}
