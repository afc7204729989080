package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

// FileStore keeps every param as a top-level key of a single YAML document.
//
// When an env prefix is configured, an environment variable named
// <PREFIX>_<KEY> overrides the file value for reads. Its content is parsed as
// JSON and used as a plain string when that fails.
type FileStore struct {
	path      string
	envPrefix string

	mu sync.Mutex
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithEnvPrefix enables environment overrides under the given prefix.
func WithEnvPrefix(prefix string) FileOption {
	return func(s *FileStore) { s.envPrefix = prefix }
}

// NewFileStore returns a store backed by the YAML file at path. The file is
// created on first write.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	s := &FileStore{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file path used by this store.
func (s *FileStore) Path() string {
	return s.path
}

// GetParam returns the value under key, preferring an environment override.
func (s *FileStore) GetParam(key string) (any, error) {
	if s.envPrefix != "" {
		if raw, ok := os.LookupEnv(s.envName(key)); ok {
			return parseEnvValue(raw), nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDoc()
	if err != nil {
		return nil, err
	}
	v, ok := doc[key]
	if !ok {
		return nil, notFound(key)
	}
	return toJSONValue(normalizeYAML(v))
}

// SetParam replaces the value under key and rewrites the file atomically.
// Other top-level keys are preserved.
func (s *FileStore) SetParam(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDoc()
	if err != nil {
		return err
	}
	v, err := toJSONValue(value)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	doc[key] = v

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return writeFileAtomic(s.path, data)
}

func (s *FileStore) envName(key string) string {
	return s.envPrefix + "_" + strings.ToUpper(key)
}

// readDoc loads the YAML document. A missing or empty file is an empty doc.
func (s *FileStore) readDoc() (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", s.path, err)
	}

	doc := map[string]any{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", s.path, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing config %s: %w", path, err)
	}
	return nil
}

func parseEnvValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

// normalizeYAML converts YAML-decoded values to shapes encoding/json can
// marshal. Mappings with non-string keys come back as map[any]any.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = normalizeYAML(item)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, item := range val {
			a[i] = normalizeYAML(item)
		}
		return a
	default:
		return val
	}
}
