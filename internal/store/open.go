package store

import "fmt"

// Backend names accepted by Open.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and addresses a backend.
type Options struct {
	Backend   string
	Path      string
	EnvPrefix string
	Redis     RedisOptions
}

// Open builds the backend named by opts.Backend. The returned close function
// is always non-nil.
func Open(opts Options) (Store, func() error, error) {
	noop := func() error { return nil }

	switch opts.Backend {
	case "", BackendYAML:
		if opts.Path == "" {
			return nil, noop, fmt.Errorf("yaml store requires a path")
		}
		return NewFileStore(opts.Path, WithEnvPrefix(opts.EnvPrefix)), noop, nil

	case BackendSQLite:
		if opts.Path == "" {
			return nil, noop, fmt.Errorf("sqlite store requires a path")
		}
		s, err := OpenSQLite(opts.Path)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil

	case BackendRedis:
		if opts.Redis.Addr == "" {
			return nil, noop, fmt.Errorf("redis store requires an address")
		}
		s := NewRedisStore(opts.Redis)
		return s, s.Close, nil

	case BackendMemory:
		return NewMemoryStore(), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown store backend %q (valid: %s, %s, %s, %s)",
			opts.Backend, BackendYAML, BackendSQLite, BackendRedis, BackendMemory)
	}
}
