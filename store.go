package portfolio

import (
	"context"

	"github.com/goliatone/go-portfolio/pkg/storage"
	"github.com/goliatone/go-portfolio/pkg/store"
)

// OpenStorage builds a cache adapter from cfg using the default drivers
// (file, redis, memory).
func OpenStorage(cfg storage.Config) (storage.Adapter, error) {
	return storage.NewDefaultRegistry().Open(cfg)
}

// OpenStore hydrates a store from adapter. A missing or unreadable cache
// yields the empty default profile.
func OpenStore(ctx context.Context, adapter storage.Adapter, options ...store.Option) (*store.Store, error) {
	return store.Open(ctx, adapter, options...)
}
