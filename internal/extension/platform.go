package extension

// PlatformExtension describes a built-in extension that ships with the agent
// rather than being configured by the user.
type PlatformExtension struct {
	// Key is the storage key. Empty means NameToKey(Name).
	Key         string
	Name        string
	Description string
}

func (p PlatformExtension) storageKey() string {
	if p.Key != "" {
		return p.Key
	}
	return NameToKey(p.Name)
}

// DefaultPlatformExtensions returns the built-in extension set.
func DefaultPlatformExtensions() []PlatformExtension {
	return []PlatformExtension{
		{
			Key:         "todo",
			Name:        "todo",
			Description: "Enable a todo list for the agent so it can keep track of what it is doing",
		},
		{
			Key:         "chatrecall",
			Name:        "chatrecall",
			Description: "Search past conversations and load session summaries for contextual memory",
		},
		{
			Key:         "extensionmanager",
			Name:        "extensionmanager",
			Description: "Discover, enable and disable extensions while a session is running",
		},
		{
			Key:         "skills",
			Name:        "skills",
			Description: "Load and use skills from the configured skill directories",
		},
	}
}
