// Package extension manages the enabled state of extensions and extension
// groups persisted in the configuration store. Every operation loads the
// whole map from the store, changes it in memory and writes the whole map
// back; nothing is cached between calls.
package extension
