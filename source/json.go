package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotArray is returned when the top-level JSON value is not an array.
var ErrNotArray = errors.New("top-level JSON value is not an array")

// ParseJSONArray decodes a JSON array. Integral numbers become int64 and the
// rest float64, so the store keeps integer fields as integers.
func ParseJSONArray(data []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode JSON: unexpected data after top-level value")
	}

	elems, ok := raw.([]any)
	if !ok {
		return nil, ErrNotArray
	}
	for i := range elems {
		elems[i] = normalizeNumbers(elems[i])
	}
	return elems, nil
}

func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
		return val
	default:
		return v
	}
}
