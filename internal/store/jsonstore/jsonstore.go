package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store/kv"
)

// Snapshots are a flat JSON array of items, rewritten in full on every save.
// There is no schema version; anything that does not validate is discarded.

// ErrMalformed wraps every decode failure.
var ErrMalformed = errors.New("malformed snapshot")

const snapshotSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": ["array", "null"],
  "items": {
    "type": "object",
    "required": ["id", "text", "complete"],
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "text": {"type": "string"},
      "complete": {"type": "boolean"}
    }
  }
}`

var schema = jsonschema.MustCompileString("snapshot.schema.json", snapshotSchema)

// Encode serializes items as an indented JSON array.
func Encode(items []model.Item) (string, error) {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return string(b), nil
}

// Decode parses a snapshot. A JSON null decodes to an empty list.
func Decode(raw string) ([]model.Item, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformed)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	items := []model.Item{}
	if doc == nil {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	seen := make(map[int]bool, len(items))
	for _, it := range items {
		if seen[it.ID] {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrMalformed, it.ID)
		}
		seen[it.ID] = true
	}
	return items, nil
}

// Load reads the list stored under key. An absent slot is an empty list.
// A malformed slot is also an empty list; the error is returned alongside
// so callers can log it.
func Load(s kv.Storage, key string) ([]model.Item, error) {
	raw, ok, err := s.GetItem(key)
	if err != nil {
		return []model.Item{}, err
	}
	if !ok {
		return []model.Item{}, nil
	}
	items, err := Decode(raw)
	if err != nil {
		return []model.Item{}, err
	}
	return items, nil
}

// Save overwrites the slot under key with the full list.
func Save(s kv.Storage, key string, items []model.Item) error {
	raw, err := Encode(items)
	if err != nil {
		return err
	}
	if err := s.SetItem(key, raw); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}
