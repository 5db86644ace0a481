// Package template defines the renderer-agnostic template contract used by the
// portfolio page renderers. Implementations live in subpackages.
package template
