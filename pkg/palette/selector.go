package palette

import (
	"fmt"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// Selector serves manifests by name and satisfies theme.ThemeSelector so it
// can be handed to the orchestrator like any go-theme selector.
type Selector struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector returns a selector preloaded with the built-in manifest.
func NewSelector() *Selector {
	s := &Selector{
		manifests:      make(map[string]*theme.Manifest),
		defaultTheme:   ThemeName,
		defaultVariant: string(AppearanceLight),
	}
	s.manifests[ThemeName] = Manifest()
	return s
}

// Register adds or replaces a manifest.
func (s *Selector) Register(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return fmt.Errorf("palette: manifest name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manifests[manifest.Name] = manifest
	return nil
}

// Select implements theme.ThemeSelector. Blank arguments fall back to the
// built-in theme and the light variant.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if strings.TrimSpace(name) == "" {
		name = s.defaultTheme
	}
	if strings.TrimSpace(variant) == "" {
		variant = s.defaultVariant
	}

	s.mu.RLock()
	manifest, ok := s.manifests[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("palette: theme %q not registered", name)
	}
	if variant != string(AppearanceLight) {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("palette: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}
