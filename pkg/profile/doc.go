// Package profile defines the portfolio data model: Profile, Project, Contact
// and the ProjectDraft used to stage new projects. Profile values are treated
// as immutable; every mutation method returns an updated copy together with a
// flag reporting whether anything changed, so owners (see package store) can
// skip persistence and preview work for no-op edits. Skills are unique under
// exact, case-sensitive comparison and project ids are unique within a
// profile.
package profile
