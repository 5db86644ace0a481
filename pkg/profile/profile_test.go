package profile

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNew_Defaults(t *testing.T) {
	p := New()
	if p.ThemeColor != DefaultThemeColor {
		t.Fatalf("theme color: want %s, got %s", DefaultThemeColor, p.ThemeColor)
	}
	if len(p.Skills) != 0 || len(p.Projects) != 0 {
		t.Fatalf("expected empty collections, got %+v", p)
	}
	if !p.Contact.Empty() {
		t.Fatalf("expected empty contact")
	}
}

func TestAddSkill_IdempotentAndTrimmed(t *testing.T) {
	p := New()

	p, changed := p.AddSkill("  Go ")
	if !changed {
		t.Fatalf("expected first add to change the profile")
	}
	p, changed = p.AddSkill("Go")
	if changed {
		t.Fatalf("expected duplicate add to be a no-op")
	}
	p, _ = p.AddSkill("go")

	if diff := cmp.Diff([]string{"Go", "go"}, p.Skills); diff != "" {
		t.Fatalf("skills mismatch (-want +got):\n%s", diff)
	}
}

func TestAddSkill_IgnoresBlank(t *testing.T) {
	p, changed := New().AddSkill("   ")
	if changed || len(p.Skills) != 0 {
		t.Fatalf("blank skill should be ignored, got %v", p.Skills)
	}
}

func TestRemoveSkill(t *testing.T) {
	p := New()
	p, _ = p.AddSkill("Go")
	p, _ = p.AddSkill("Rust")

	same, changed := p.RemoveSkill("Zig")
	if changed {
		t.Fatalf("removing an absent skill must be a no-op")
	}
	if diff := cmp.Diff(p.Skills, same.Skills); diff != "" {
		t.Fatalf("skills changed (-want +got):\n%s", diff)
	}

	out, changed := p.RemoveSkill("Go")
	if !changed {
		t.Fatalf("expected removal")
	}
	if diff := cmp.Diff([]string{"Rust"}, out.Skills); diff != "" {
		t.Fatalf("skills mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Go", "Rust"}, p.Skills); diff != "" {
		t.Fatalf("original profile mutated (-want +got):\n%s", diff)
	}
}

func TestAddProject_AssignsIDAndRejectsBlankTitle(t *testing.T) {
	p := New()

	same, changed := p.AddProject(ProjectDraft{Title: "  ", Description: "ignored"}, 1)
	if changed || len(same.Projects) != 0 {
		t.Fatalf("blank title must be ignored")
	}

	p, changed = p.AddProject(ProjectDraft{Title: "CLI", GitHubURL: "https://github.com/x/cli"}, 42)
	if !changed {
		t.Fatalf("expected project to be added")
	}
	want := []Project{{ID: 42, Title: "CLI", GitHubURL: "https://github.com/x/cli"}}
	if diff := cmp.Diff(want, p.Projects); diff != "" {
		t.Fatalf("projects mismatch (-want +got):\n%s", diff)
	}

	if _, changed := p.AddProject(ProjectDraft{Title: "Dup"}, 42); changed {
		t.Fatalf("duplicate id must be rejected")
	}
}

func TestRemoveProject(t *testing.T) {
	p := New()
	p, _ = p.AddProject(ProjectDraft{Title: "A"}, 1)
	p, _ = p.AddProject(ProjectDraft{Title: "B"}, 2)

	if _, changed := p.RemoveProject(3); changed {
		t.Fatalf("absent id must be a no-op")
	}
	out, changed := p.RemoveProject(1)
	if !changed {
		t.Fatalf("expected removal")
	}
	if len(out.Projects) != 1 || out.Projects[0].ID != 2 {
		t.Fatalf("unexpected projects: %+v", out.Projects)
	}
}

func TestWithField(t *testing.T) {
	p, err := New().WithField(FieldName, "Jane Doe")
	if err != nil {
		t.Fatalf("with field: %v", err)
	}
	if p.Name != "Jane Doe" {
		t.Fatalf("name not set")
	}

	p, err = p.WithField(FieldThemeColor, "")
	if err != nil {
		t.Fatalf("with field: %v", err)
	}
	if p.ThemeColor != DefaultThemeColor {
		t.Fatalf("blank theme color should reset to default, got %q", p.ThemeColor)
	}

	if _, err := p.WithField("age", "3"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestWithContactField(t *testing.T) {
	p, err := New().WithContactField(ContactEmail, "jane@example.com")
	if err != nil {
		t.Fatalf("with contact field: %v", err)
	}
	if p.Contact.Email != "jane@example.com" {
		t.Fatalf("email not set")
	}
	if _, err := p.WithContactField("fax", "1"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestEqual_TreatsNilAndEmptyAlike(t *testing.T) {
	a := New()
	b := Profile{ThemeColor: DefaultThemeColor}
	if !a.Equal(b) {
		t.Fatalf("expected nil and empty collections to compare equal")
	}
	b.Skills = []string{"Go"}
	if a.Equal(b) {
		t.Fatalf("expected skills difference to be detected")
	}
}

func TestClockIDSource_Monotonic(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	src := NewClockIDSource(func() time.Time { return fixed })

	first := src.NextID()
	second := src.NextID()
	if first != fixed.UnixMilli() {
		t.Fatalf("first id: want %d, got %d", fixed.UnixMilli(), first)
	}
	if second <= first {
		t.Fatalf("ids must increase: %d then %d", first, second)
	}

	src.Seed([]Project{{ID: second + 100}})
	if next := src.NextID(); next != second+101 {
		t.Fatalf("seeded id: want %d, got %d", second+101, next)
	}
}
