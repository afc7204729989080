package extension

import (
	"maps"
	"slices"

	"github.com/alexeyre/goose/internal/store"
)

// Registry reads and writes the extensions map under ExtensionsConfigKey.
type Registry struct {
	store store.Store
	opts  *options
}

// NewRegistry returns a Registry over st.
func NewRegistry(st store.Store, opts ...Option) *Registry {
	return &Registry{store: st, opts: buildOptions(opts)}
}

// Load returns the stored extensions keyed by storage key. It never fails:
// an unreadable store yields an empty map and a malformed entry is skipped.
//
// When at least one entry loaded, every platform extension missing from the
// map is added as enabled. An empty map gets no platform extensions.
func (r *Registry) Load() map[string]Entry {
	logger := r.opts.logger
	obj := loadObject(r.store, logger, ExtensionsConfigKey)

	extensions := make(map[string]Entry, len(obj))
	for key, value := range obj {
		if inner, ok := value.(map[string]any); ok {
			// Entries written before descriptions existed lack the field.
			if d, present := inner["description"]; !present || d == nil {
				patched := maps.Clone(inner)
				patched["description"] = DefaultExtensionDescription
				value = patched
			}
		}

		var entry Entry
		if err := decodeValue(entrySchema, value, &entry); err != nil {
			logger.Warn("skipping malformed extension",
				"extension", key,
				"error", err,
				"bad_json", badJSON(value),
			)
			continue
		}
		extensions[key] = entry
	}

	if len(extensions) > 0 {
		for _, p := range r.opts.platform {
			key := p.storageKey()
			if _, ok := extensions[key]; ok {
				continue
			}
			extensions[key] = Entry{
				Enabled: true,
				Config:  PlatformConfig(p.Name, p.Description),
			}
		}
	}
	return extensions
}

// Save writes the whole map back to the store, best effort.
func (r *Registry) Save(extensions map[string]Entry) {
	saveValue(r.store, r.opts, ExtensionsConfigKey, extensions)
}

// GetByName returns the config of the first entry, in key order, whose name
// equals name.
func (r *Registry) GetByName(name string) (Config, bool) {
	for _, entry := range r.ListAll() {
		if entry.Config.Name == name {
			return entry.Config, true
		}
	}
	return Config{}, false
}

// Set inserts or replaces entry under its config's key.
func (r *Registry) Set(entry Entry) {
	extensions := r.Load()
	extensions[entry.Config.Key()] = entry
	r.Save(extensions)
}

// Remove deletes key. The map is saved even if key was absent.
func (r *Registry) Remove(key string) {
	extensions := r.Load()
	delete(extensions, key)
	r.Save(extensions)
}

// SetEnabled sets the enabled flag of key. An absent key is a no-op and
// nothing is saved.
func (r *Registry) SetEnabled(key string, enabled bool) {
	extensions := r.Load()
	entry, ok := extensions[key]
	if !ok {
		return
	}
	entry.Enabled = enabled
	extensions[key] = entry
	r.Save(extensions)
}

// ListAll returns every entry, ordered by key.
func (r *Registry) ListAll() []Entry {
	extensions := r.Load()
	entries := make([]Entry, 0, len(extensions))
	for _, key := range slices.Sorted(maps.Keys(extensions)) {
		entries = append(entries, extensions[key])
	}
	return entries
}

// ListAllKeys returns every storage key in sorted order.
func (r *Registry) ListAllKeys() []string {
	return slices.Sorted(maps.Keys(r.Load()))
}

// IsEnabled reports whether key exists and is enabled.
func (r *Registry) IsEnabled(key string) bool {
	return r.Load()[key].Enabled
}

// ListEnabledConfigs returns the configs of every enabled entry, ordered by key.
func (r *Registry) ListEnabledConfigs() []Config {
	var configs []Config
	for _, entry := range r.ListAll() {
		if entry.Enabled {
			configs = append(configs, entry.Config)
		}
	}
	return configs
}
