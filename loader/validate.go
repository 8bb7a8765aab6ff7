package loader

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"firstaid/dataloader/model"

	"github.com/go-playground/validator/v10"
)

var errInvalidID = errors.New("id must be a non-empty string")

// RecordValidator checks the required fields of a record.
type RecordValidator struct {
	validate *validator.Validate
	rules    map[string]any
}

// NewRecordValidator requires an id; strict mode also requires a name.
func NewRecordValidator(strict bool) *RecordValidator {
	rules := map[string]any{model.IDField: "required"}
	if strict {
		rules[model.NameField] = "required"
	}
	return &RecordValidator{validate: validator.New(), rules: rules}
}

// Validate returns an error naming the fields the record is missing.
func (rv *RecordValidator) Validate(record model.Record) error {
	if errs := rv.validate.ValidateMap(record, rv.rules); len(errs) > 0 {
		fields := make([]string, 0, len(errs))
		for field := range errs {
			fields = append(fields, field)
		}
		slices.Sort(fields)
		return fmt.Errorf("missing required field(s): %s", strings.Join(fields, ", "))
	}
	if _, ok := record.ID(); !ok {
		return errInvalidID
	}
	return nil
}
