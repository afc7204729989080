// Package cli defines the Cobra command tree for the goose CLI. Each file in
// this package registers one top-level command (extension, group, config,
// version) with the root command. Commands open the configured store, delegate
// to internal/extension for the state model, and only handle flag parsing and
// output formatting.
package cli
