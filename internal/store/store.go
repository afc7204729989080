package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by GetParam when no value is stored under a key.
var ErrNotFound = errors.New("config key not found")

// Store reads and writes JSON-shaped values under string keys.
//
// Values returned by GetParam use the encoding/json generic shapes:
// map[string]any, []any, string, float64, bool and nil. Each call is atomic on
// its own; callers that read, modify and write back get no isolation from
// other writers.
type Store interface {
	GetParam(key string) (any, error)
	SetParam(key string, value any) error
}

// toJSONValue round-trips v through encoding/json so that every backend hands
// out the same generic shapes regardless of how the value was produced.
func toJSONValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding value: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding value: %w", err)
	}
	return out, nil
}

func notFound(key string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, key)
}
