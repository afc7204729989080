package extension

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/alexeyre/goose/internal/store"
)

// Group is a named, ordered set of extension keys toggled together. Keys
// that name no stored extension are ignored by every group operation.
type Group struct {
	Name          string   `json:"name"`
	ExtensionKeys []string `json:"extension_keys"`
}

// Key returns the storage key derived from the group name.
func (g Group) Key() string {
	return NameToKey(g.Name)
}

// MarshalJSON writes a nil key list as [] so the group loads back.
func (g Group) MarshalJSON() ([]byte, error) {
	type plain Group
	p := plain(g)
	if p.ExtensionKeys == nil {
		p.ExtensionKeys = []string{}
	}
	return json.Marshal(p)
}

// GroupState is the aggregate enabled state of a group's members.
type GroupState int

const (
	GroupDisabled GroupState = iota
	GroupEnabled
	GroupMixed
)

func (s GroupState) String() string {
	switch s {
	case GroupEnabled:
		return "Enabled"
	case GroupDisabled:
		return "Disabled"
	case GroupMixed:
		return "Mixed"
	default:
		return fmt.Sprintf("GroupState(%d)", int(s))
	}
}

// MarshalText encodes the state by name.
func (s GroupState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// GroupRegistry reads and writes the groups map under
// ExtensionGroupsConfigKey.
type GroupRegistry struct {
	store store.Store
	opts  *options
}

// NewGroupRegistry returns a GroupRegistry over st.
func NewGroupRegistry(st store.Store, opts ...Option) *GroupRegistry {
	return &GroupRegistry{store: st, opts: buildOptions(opts)}
}

// Load returns the stored groups keyed by storage key. Like Registry.Load it
// never fails and skips malformed groups.
func (r *GroupRegistry) Load() map[string]Group {
	logger := r.opts.logger
	obj := loadObject(r.store, logger, ExtensionGroupsConfigKey)

	groups := make(map[string]Group, len(obj))
	for key, value := range obj {
		var group Group
		if err := decodeValue(groupSchema, value, &group); err != nil {
			logger.Warn("skipping malformed extension group",
				"group", key,
				"error", err,
				"bad_json", badJSON(value),
			)
			continue
		}
		groups[key] = group
	}
	return groups
}

// Save writes the whole map back to the store, best effort.
func (r *GroupRegistry) Save(groups map[string]Group) {
	saveValue(r.store, r.opts, ExtensionGroupsConfigKey, groups)
}

// GetByName looks up the group stored under NameToKey(name).
func (r *GroupRegistry) GetByName(name string) (Group, bool) {
	group, ok := r.Load()[NameToKey(name)]
	return group, ok
}

// Set inserts or replaces group under its key.
func (r *GroupRegistry) Set(group Group) {
	groups := r.Load()
	groups[group.Key()] = group
	r.Save(groups)
}

// Remove deletes key. The map is saved even if key was absent.
func (r *GroupRegistry) Remove(key string) {
	groups := r.Load()
	delete(groups, key)
	r.Save(groups)
}

// ListAll returns every group, ordered by key.
func (r *GroupRegistry) ListAll() []Group {
	groups := r.Load()
	out := make([]Group, 0, len(groups))
	for _, key := range slices.Sorted(maps.Keys(groups)) {
		out = append(out, groups[key])
	}
	return out
}

// ListAllKeys returns every group key in sorted order.
func (r *GroupRegistry) ListAllKeys() []string {
	return slices.Sorted(maps.Keys(r.Load()))
}
