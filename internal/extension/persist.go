package extension

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/alexeyre/goose/internal/store"
)

// loadObject reads key from the store as a JSON object. Read failures and
// non-object values are logged and yield an empty object.
func loadObject(st store.Store, logger *slog.Logger, key string) map[string]any {
	raw, err := st.GetParam(key)
	if err != nil {
		logger.Warn("failed to load config, falling back to empty object", "key", key, "error", err)
		return map[string]any{}
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		logger.Warn("expected object in config, using empty map", "key", key, "got", describeJSON(raw))
		return map[string]any{}
	}
	return obj
}

// saveValue writes v under key. Failures are logged at debug level and
// passed to the save observer only.
func saveValue(st store.Store, o *options, key string, v any) {
	err := writeValue(st, key, v)
	if err != nil {
		o.logger.Debug("failed to save config", "key", key, "error", err)
	}
	if o.onSave != nil {
		o.onSave(SaveEvent{Key: key, Err: err})
	}
}

func writeValue(st store.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("serializing %s: %w", key, err)
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("serializing %s: %w", key, err)
	}
	if err := st.SetParam(key, value); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// badJSON renders a skipped record for the log.
func badJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("<failed to serialize malformed value: %v>", err)
	}
	return string(data)
}

func describeJSON(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
