package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexeyre/goose/internal/branding"
	"github.com/alexeyre/goose/internal/config"
	"github.com/alexeyre/goose/internal/extension"
	"github.com/alexeyre/goose/internal/logging"
	"github.com/alexeyre/goose/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	logger = slog.Default()

	// openStore is replaced in tests.
	openStore = store.Open
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` keeps track of which extensions are enabled and lets you
toggle them one at a time or in bulk through extension groups.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		bindFlags(cmd)
		s := config.Current()
		logger = logging.New(s.LogLevel, s.LogFormat, cmd.ErrOrStderr())
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	pf.String("log-format", "", "Log format (text, json)")
	pf.String("store", "", "Store backend (yaml, sqlite, redis, memory)")
	pf.String("store-path", "", "Path of the yaml or sqlite store")
}

// bindFlags lets explicitly set persistent flags win over settings and env.
func bindFlags(cmd *cobra.Command) {
	for flag, key := range map[string]string{
		"log-level":  config.KeyLogLevel,
		"log-format": config.KeyLogFormat,
		"store":      config.KeyStore,
		"store-path": config.KeyStorePath,
	} {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		viper.Set(key, f.Value.String())
	}
}

// session is one command's view of the extension state. Save failures are
// collected through the manager's save observer so commands can report them.
type session struct {
	*extension.Manager
	close    func() error
	saveErrs []error
}

func openSession() (*session, error) {
	s := config.Current()
	if s.Store == "" || s.Store == store.BackendYAML {
		if err := config.EnsureDir(); err != nil {
			return nil, err
		}
	}

	st, closeFn, err := openStore(store.Options{
		Backend:   s.Store,
		Path:      s.StorePath,
		EnvPrefix: branding.EnvPrefix(),
		Redis: store.RedisOptions{
			Addr:     s.RedisAddr,
			Password: s.RedisPassword,
			DB:       s.RedisDB,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", s.Store, err)
	}

	sess := &session{close: closeFn}
	sess.Manager = extension.NewManager(st,
		extension.WithLogger(logger),
		extension.WithSaveObserver(func(e extension.SaveEvent) {
			if e.Err != nil {
				sess.saveErrs = append(sess.saveErrs, e.Err)
			}
		}),
	)
	return sess, nil
}

// finish closes the store and reports any failed save.
func (s *session) finish() error {
	err := errors.Join(s.saveErrs...)
	if cerr := s.close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("closing store: %w", cerr))
	}
	if err != nil {
		return fmt.Errorf("saving changes: %w", err)
	}
	return nil
}

// withSession runs fn against a freshly opened session.
func withSession(fn func(*session) error) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	if err := fn(sess); err != nil {
		_ = sess.close()
		return err
	}
	return sess.finish()
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}
