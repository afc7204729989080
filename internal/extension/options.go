package extension

import "log/slog"

// SaveEvent reports the outcome of one best-effort write to the store.
// Err is nil when the write succeeded.
type SaveEvent struct {
	Key string
	Err error
}

type options struct {
	logger   *slog.Logger
	platform []PlatformExtension
	onSave   func(SaveEvent)
}

// Option configures a Registry, GroupRegistry or Manager.
type Option func(*options)

// WithLogger sets the logger used for load and save diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithPlatformExtensions replaces the built-in extension set merged on load.
func WithPlatformExtensions(platform []PlatformExtension) Option {
	return func(o *options) { o.platform = platform }
}

// WithSaveObserver registers fn to be called after every save attempt.
// Saves never report failure to their callers, so this is the only way to
// see one besides the debug log.
func WithSaveObserver(fn func(SaveEvent)) Option {
	return func(o *options) { o.onSave = fn }
}

func buildOptions(opts []Option) *options {
	o := &options{
		logger:   slog.Default(),
		platform: DefaultPlatformExtensions(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
