// Package config manages user-level settings stored at
// ~/.config/goose/settings.yaml. Settings pick the extension store backend
// and its location and tune logging. Every key can be overridden with a
// GOOSE_-prefixed environment variable.
package config
