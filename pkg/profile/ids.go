package profile

import (
	"sync"
	"time"
)

// IDSource hands out project identifiers.
type IDSource interface {
	NextID() int64
}

// IDSourceFunc adapts a function into an IDSource.
type IDSourceFunc func() int64

// NextID calls the underlying function.
func (fn IDSourceFunc) NextID() int64 {
	return fn()
}

// ClockIDSource issues millisecond timestamps, bumped so every id is strictly
// greater than the previous one even when the clock stalls or steps back.
type ClockIDSource struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewClockIDSource returns a clock-backed source. A nil now uses time.Now.
func NewClockIDSource(now func() time.Time) *ClockIDSource {
	if now == nil {
		now = time.Now
	}
	return &ClockIDSource{now: now}
}

// Seed raises the floor so ids issued afterwards never collide with existing
// projects hydrated from storage.
func (s *ClockIDSource) Seed(projects []Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, project := range projects {
		if project.ID > s.last {
			s.last = project.ID
		}
	}
}

// NextID implements IDSource.
func (s *ClockIDSource) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}
