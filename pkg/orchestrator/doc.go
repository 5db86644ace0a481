// Package orchestrator wires profile loading, optional transformers, theme
// resolution and a renderer registry into a single Generate/Export call.
package orchestrator
