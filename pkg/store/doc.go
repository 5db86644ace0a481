// Package store owns the in-memory profile and project draft. Every effective
// mutation is written through the configured storage adapter and announced to
// subscribers so previews can re-render.
package store
