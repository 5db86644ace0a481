package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-portfolio/pkg/profile"
)

// DefaultKey is the fixed cache key profiles are stored under.
const DefaultKey = "portfolioData"

var (
	// ErrMalformed marks cached data that could not be decoded.
	ErrMalformed = errors.New("storage: malformed profile data")
	// ErrUnavailable marks a backend that could not be reached.
	ErrUnavailable = errors.New("storage: backend unavailable")
)

// Adapter mirrors a profile into a key-value cache. Load reports false when
// no entry exists. Save failures are returned as *StorageError.
type Adapter interface {
	Load(ctx context.Context) (profile.Profile, bool, error)
	Save(ctx context.Context, p profile.Profile) error
}

// StorageError describes a failed cache operation.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("storage: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrapErr(op, key string, err error) error {
	if err == nil {
		return nil
	}
	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return err
	}
	return &StorageError{Op: op, Key: key, Err: err}
}
