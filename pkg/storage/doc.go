// Package storage mirrors profiles into a best-effort key-value cache. All
// adapters store a single entry under DefaultKey, encoded as JSON or YAML, and
// guarantee that Load after Save reconstructs an equal profile.
package storage
