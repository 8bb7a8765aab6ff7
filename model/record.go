package model

// IDField is the record field used as the document key in the store.
const IDField = "id"

// NameField is the display-name field required in strict mode.
const NameField = "name"

const (
	CreatedAtField = "createdAt"
	UpdatedAtField = "updatedAt"
)

// Record is one object read from an input file. Fields other than the
// identifier and the injected timestamps are passed through untouched.
type Record map[string]any

// ID returns the record identifier and whether it is a non-empty string.
func (r Record) ID() (string, bool) {
	id, ok := r[IDField].(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Document is a single pending write keyed by ID.
type Document struct {
	ID   string
	Data map[string]any
}

// Target describes one upload: which file goes into which collection.
type Target struct {
	File          string
	Collection    string
	AddTimestamps bool
	// Template is written to File when the file is missing; nil disables it.
	Template any
}
