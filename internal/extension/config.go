package extension

// Storage keys in the configuration store.
const (
	ExtensionsConfigKey      = "extensions"
	ExtensionGroupsConfigKey = "extension_groups"
)

// Defaults for newly configured extensions.
const (
	DefaultExtension            = "developer"
	DefaultDisplayName          = "Developer"
	DefaultExtensionTimeout     = 300
	DefaultExtensionDescription = ""
)

// Type discriminates the Config variants. It is stored as "type".
type Type string

const (
	TypeBuiltin        Type = "builtin"
	TypePlatform       Type = "platform"
	TypeStdio          Type = "stdio"
	TypeSSE            Type = "sse"
	TypeStreamableHTTP Type = "streamable_http"
	TypeFrontend       Type = "frontend"
	TypeInlinePython   Type = "inline_python"
)

// ValidTypes lists every Config variant.
var ValidTypes = []Type{
	TypeBuiltin,
	TypePlatform,
	TypeStdio,
	TypeSSE,
	TypeStreamableHTTP,
	TypeFrontend,
	TypeInlinePython,
}

// Config is the configuration payload of one extension. Type selects which
// of the variant fields are meaningful; the rest stay empty.
type Config struct {
	Type        Type   `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DisplayName string `json:"display_name,omitempty"`
	Timeout     *int   `json:"timeout,omitempty"`
	Bundled     *bool  `json:"bundled,omitempty"`
	// AvailableTools restricts which tools are exposed; empty means all.
	AvailableTools []string `json:"available_tools"`

	// stdio
	Cmd     string            `json:"cmd,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Envs    map[string]string `json:"envs,omitempty"`
	EnvKeys []string          `json:"env_keys,omitempty"`

	// sse, streamable_http
	URI     string            `json:"uri,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`

	// frontend
	Tools        []map[string]any `json:"tools,omitempty"`
	Instructions string           `json:"instructions,omitempty"`

	// inline_python
	Code         string   `json:"code,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// Key returns the storage key derived from the name.
func (c Config) Key() string {
	return NameToKey(c.Name)
}

// PlatformConfig builds the payload of a bundled platform extension.
func PlatformConfig(name, description string) Config {
	bundled := true
	return Config{
		Type:           TypePlatform,
		Name:           name,
		Description:    description,
		Bundled:        &bundled,
		AvailableTools: []string{},
	}
}
