package extension

import (
	"errors"
	"fmt"

	"github.com/alexeyre/goose/internal/store"
)

// ErrGroupNotFound matches the error returned when a group name resolves to
// nothing.
var ErrGroupNotFound = errors.New("extension group not found")

// GroupNotFoundError names the group that could not be resolved.
type GroupNotFoundError struct {
	Name string
}

func (e *GroupNotFoundError) Error() string {
	return fmt.Sprintf("Extension group '%s' not found", e.Name)
}

// Is makes errors.Is(err, ErrGroupNotFound) hold.
func (e *GroupNotFoundError) Is(target error) bool {
	return target == ErrGroupNotFound
}

// Manager combines the extension and group registries over one store and
// implements the operations that span both.
type Manager struct {
	extensions *Registry
	groups     *GroupRegistry
}

// NewManager returns a Manager over st. The options apply to both registries.
func NewManager(st store.Store, opts ...Option) *Manager {
	return &Manager{
		extensions: NewRegistry(st, opts...),
		groups:     NewGroupRegistry(st, opts...),
	}
}

// Extensions returns the extension registry.
func (m *Manager) Extensions() *Registry {
	return m.extensions
}

// Groups returns the group registry.
func (m *Manager) Groups() *GroupRegistry {
	return m.groups
}

// GroupState resolves the group by name and aggregates its members. A group
// without members is disabled. A member key missing from the extensions map
// counts as not enabled. The second result is false when no group matches.
func (m *Manager) GroupState(name string) (GroupState, bool) {
	group, ok := m.groups.GetByName(name)
	if !ok {
		return GroupDisabled, false
	}
	if len(group.ExtensionKeys) == 0 {
		return GroupDisabled, true
	}

	extensions := m.extensions.Load()
	enabled := 0
	for _, key := range group.ExtensionKeys {
		if extensions[key].Enabled {
			enabled++
		}
	}

	switch {
	case enabled == 0:
		return GroupDisabled, true
	case enabled == len(group.ExtensionKeys):
		return GroupEnabled, true
	default:
		return GroupMixed, true
	}
}

// EnableGroup enables every stored member of the named group.
func (m *Manager) EnableGroup(name string) error {
	return m.toggleGroup(name, true)
}

// DisableGroup disables every stored member of the named group.
func (m *Manager) DisableGroup(name string) error {
	return m.toggleGroup(name, false)
}

func (m *Manager) toggleGroup(name string, enabled bool) error {
	group, ok := m.groups.GetByName(name)
	if !ok {
		return &GroupNotFoundError{Name: name}
	}
	m.applyToMembers(group, enabled)
	return nil
}

// SetGroupEnabled looks the group up by key rather than by name. An unknown
// key is a no-op.
func (m *Manager) SetGroupEnabled(key string, enabled bool) {
	group, ok := m.groups.Load()[key]
	if !ok {
		return
	}
	m.applyToMembers(group, enabled)
}

// IsGroupEnabled reports whether every member of the group stored under key
// exists and is enabled. Unlike GroupState, a missing member makes the whole
// group not enabled. An empty group is vacuously enabled.
func (m *Manager) IsGroupEnabled(key string) bool {
	group, ok := m.groups.Load()[key]
	if !ok {
		return false
	}
	extensions := m.extensions.Load()
	for _, ext := range group.ExtensionKeys {
		entry, ok := extensions[ext]
		if !ok || !entry.Enabled {
			return false
		}
	}
	return true
}

// applyToMembers sets the enabled flag of every stored member and saves only
// if at least one flag changed.
func (m *Manager) applyToMembers(group Group, enabled bool) {
	extensions := m.extensions.Load()
	modified := false
	for _, key := range group.ExtensionKeys {
		entry, ok := extensions[key]
		if !ok || entry.Enabled == enabled {
			continue
		}
		entry.Enabled = enabled
		extensions[key] = entry
		modified = true
	}
	if modified {
		m.extensions.Save(extensions)
	}
}
