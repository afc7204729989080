// Package store implements the key-value configuration store that extension
// and group state is persisted through. A Store holds one JSON-shaped value
// per key; backends are a YAML file, SQLite, Redis, and an in-memory store
// used by tests.
package store
