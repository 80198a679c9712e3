package sqlitestore

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// marshalColumn serializes a Go value into a JSON column, mapping nil to
// the given empty literal ("[]" or "{}").
func marshalColumn(v any, empty string) (string, error) {
	if v == nil {
		return empty, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, "encoding json column")
	}
	if string(raw) == "null" {
		return empty, nil
	}
	return string(raw), nil
}

// unmarshalColumn hydrates a JSON column into dest, treating the empty
// string as the given empty literal.
func unmarshalColumn(raw string, dest any, empty string) error {
	if raw == "" {
		raw = empty
	}
	return errors.Wrap(json.Unmarshal([]byte(raw), dest), "decoding json column")
}
