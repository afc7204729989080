package extension

import "encoding/json"

// Entry is one extension as stored: its enabled flag plus its Config. The
// JSON form places the config fields next to "enabled" in a single object.
type Entry struct {
	Enabled bool
	Config  Config
}

type flatEntry struct {
	Enabled bool `json:"enabled"`
	Config
}

// MarshalJSON flattens the config into the entry object.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(flatEntry{Enabled: e.Enabled, Config: e.Config})
}

// UnmarshalJSON reads the flattened form written by MarshalJSON.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var flat flatEntry
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	e.Enabled = flat.Enabled
	e.Config = flat.Config
	return nil
}
