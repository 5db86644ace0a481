package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/storage"
)

// ErrPersist marks a mutation that was applied in memory but could not be
// written to the cache. The underlying *storage.StorageError is wrapped too.
var ErrPersist = errors.New("store: persist profile")

// Observer receives the profile after every effective mutation.
type Observer func(profile.Profile)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDSource overrides the project id source.
func WithIDSource(ids profile.IDSource) Option {
	return func(s *Store) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithObserver subscribes fn at construction time.
func WithObserver(fn Observer) Option {
	return func(s *Store) {
		if fn != nil {
			s.observers = append(s.observers, fn)
		}
	}
}

// maxIDAttempts bounds how many ids AddProject draws before giving up on a
// source that keeps returning ids already in use.
const maxIDAttempts = 8

// Store holds the current profile and draft.
type Store struct {
	// persistMu orders swap+save pairs so saves land in mutation order.
	persistMu sync.Mutex
	mu        sync.Mutex
	adapter   storage.Adapter
	logger    logging.Logger
	ids       profile.IDSource
	observers []Observer

	profile profile.Profile
	draft   profile.ProjectDraft
}

// New returns a store holding the default profile. Nothing is loaded.
func New(adapter storage.Adapter, options ...Option) *Store {
	s := &Store{
		adapter: adapter,
		logger:  logging.Nop(),
		profile: profile.New(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.ids == nil {
		s.ids = profile.NewClockIDSource(nil)
	}
	return s
}

// Open builds a store and hydrates it from adapter. A missing entry keeps the
// default profile. A malformed or unreachable cache is logged and also falls
// back to the default.
func Open(ctx context.Context, adapter storage.Adapter, options ...Option) (*Store, error) {
	if adapter == nil {
		return nil, errors.New("store: storage adapter is required")
	}
	s := New(adapter, options...)

	loaded, ok, err := adapter.Load(ctx)
	switch {
	case err != nil && ctx.Err() != nil:
		return nil, fmt.Errorf("store: load profile: %w", err)
	case err != nil:
		s.logger.Warn("cached profile ignored", zap.Error(err), zap.Bool("malformed", errors.Is(err, storage.ErrMalformed)))
	case ok:
		s.profile = loaded.Normalize()
		s.logger.Debug("profile loaded", zap.Int("skills", len(loaded.Skills)), zap.Int("projects", len(loaded.Projects)))
	}

	s.seedIDs(s.profile.Projects)
	return s, nil
}

func (s *Store) seedIDs(projects []profile.Project) {
	if seeder, ok := s.ids.(interface{ Seed([]profile.Project) }); ok {
		seeder.Seed(projects)
	}
}

// Profile returns a copy of the current profile.
func (s *Store) Profile() profile.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// Draft returns the staged project.
func (s *Store) Draft() profile.ProjectDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Observer) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observers = append(s.observers, fn)
	idx := len(s.observers) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < len(s.observers) {
			s.observers[idx] = nil
		}
	}
}

// UpdateField sets a scalar profile field.
func (s *Store) UpdateField(ctx context.Context, field, value string) (bool, error) {
	return s.mutate(ctx, func(current profile.Profile) (profile.Profile, bool, error) {
		next, err := current.WithField(field, value)
		if err != nil {
			return current, false, err
		}
		return next, !next.Equal(current), nil
	})
}

// UpdateContact sets a contact field.
func (s *Store) UpdateContact(ctx context.Context, field, value string) (bool, error) {
	return s.mutate(ctx, func(current profile.Profile) (profile.Profile, bool, error) {
		next, err := current.WithContactField(field, value)
		if err != nil {
			return current, false, err
		}
		return next, !next.Equal(current), nil
	})
}

// AddSkill appends skill unless it is blank or already present.
func (s *Store) AddSkill(ctx context.Context, skill string) (bool, error) {
	return s.mutate(ctx, func(current profile.Profile) (profile.Profile, bool, error) {
		next, changed := current.AddSkill(skill)
		return next, changed, nil
	})
}

// RemoveSkill drops the first exact match of skill.
func (s *Store) RemoveSkill(ctx context.Context, skill string) (bool, error) {
	return s.mutate(ctx, func(current profile.Profile) (profile.Profile, bool, error) {
		next, changed := current.RemoveSkill(skill)
		return next, changed, nil
	})
}

// UpdateDraft sets a field of the staged project. The draft is session state
// and is not persisted.
func (s *Store) UpdateDraft(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.draft.WithField(field, value)
	if err != nil {
		return err
	}
	s.draft = next
	return nil
}

// AddProject commits the draft as a new project with a fresh id and clears
// the draft. A draft with a blank title is left untouched and nothing is
// added.
func (s *Store) AddProject(ctx context.Context) (profile.Project, bool, error) {
	var added profile.Project
	changed, err := s.mutate(ctx, func(current profile.Profile) (profile.Profile, bool, error) {
		if s.draft.Empty() {
			return current, false, nil
		}
		var id int64
		for attempt := 0; attempt < maxIDAttempts; attempt++ {
			id = s.ids.NextID()
			next, ok := current.AddProject(s.draft, id)
			if !ok {
				continue
			}
			added, _ = next.Project(id)
			s.draft = profile.ProjectDraft{}
			return next, true, nil
		}
		return current, false, fmt.Errorf("store: project id %d already in use", id)
	})
	return added, changed, err
}

// AddProjectFrom replaces the draft with draft and commits it.
func (s *Store) AddProjectFrom(ctx context.Context, draft profile.ProjectDraft) (profile.Project, bool, error) {
	s.mu.Lock()
	s.draft = draft
	s.mu.Unlock()
	return s.AddProject(ctx)
}

// RemoveProject drops the project with id.
func (s *Store) RemoveProject(ctx context.Context, id int64) (bool, error) {
	return s.mutate(ctx, func(current profile.Profile) (profile.Profile, bool, error) {
		next, changed := current.RemoveProject(id)
		return next, changed, nil
	})
}

// Replace swaps in p wholesale, e.g. after the cache changed on disk. The id
// source is re-seeded so later projects never reuse an id from p.
func (s *Store) Replace(ctx context.Context, p profile.Profile) (bool, error) {
	return s.mutate(ctx, func(current profile.Profile) (profile.Profile, bool, error) {
		next := p.Normalize()
		if next.Equal(current) {
			return current, false, nil
		}
		s.seedIDs(next.Projects)
		return next, true, nil
	})
}

// Reset restores the empty default profile and clears the draft.
func (s *Store) Reset(ctx context.Context) (bool, error) {
	s.mu.Lock()
	s.draft = profile.ProjectDraft{}
	s.mu.Unlock()
	return s.Replace(ctx, profile.New())
}

// mutate applies fn under the lock. Effective changes are stored, persisted
// and broadcast. A persistence failure leaves the change applied. persistMu
// is held from the swap until the save returns, so the cache always ends up
// holding the latest profile. Observers run after it is released and may
// mutate the store again.
func (s *Store) mutate(ctx context.Context, fn func(profile.Profile) (profile.Profile, bool, error)) (bool, error) {
	s.persistMu.Lock()
	s.mu.Lock()
	next, changed, err := fn(s.profile)
	if err != nil || !changed {
		s.mu.Unlock()
		s.persistMu.Unlock()
		return false, err
	}
	s.profile = next
	observers := make([]Observer, 0, len(s.observers))
	for _, obs := range s.observers {
		if obs != nil {
			observers = append(observers, obs)
		}
	}
	snapshot := next.Clone()
	s.mu.Unlock()

	persistErr := s.persist(ctx, snapshot)
	s.persistMu.Unlock()

	for _, obs := range observers {
		obs(snapshot.Clone())
	}
	return true, persistErr
}

func (s *Store) persist(ctx context.Context, p profile.Profile) error {
	if s.adapter == nil {
		return nil
	}
	if err := s.adapter.Save(ctx, p); err != nil {
		s.logger.Warn("profile not persisted", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
