// Package model holds the persisted document model for mlcheck.
//
// The root value is ProjectsState: every project keyed by id, plus a schema
// version stamp and the UI theme preference. The store hands out deep copies
// of these values, so every type here carries a Clone method.
package model

import "time"

// StateVersion is the schema marker written on every save. There is no
// migration path; a document with a different version is discarded on load.
const StateVersion = 1

// Theme is the UI theme preference stored alongside the projects.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid reports whether t is one of the known theme names.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

// ChecklistItem is one checkable task line within a section.
type ChecklistItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// ChecklistSection is a named, ordered group of items plus free-form notes.
// Item order is display order and must survive mutation.
type ChecklistSection struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Items []ChecklistItem `json:"items"`
	Notes string          `json:"notes"`
}

// Project is a single user-owned checklist instance.
// Invariant: UpdatedAt >= CreatedAt, both RFC 3339 strings.
type Project struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	CreatedAt string             `json:"createdAt"`
	UpdatedAt string             `json:"updatedAt"`
	Sections  []ChecklistSection `json:"sections"`
}

// ProjectsState is the root persisted document.
type ProjectsState struct {
	Version  int                 `json:"version"`
	Projects map[string]*Project `json:"projects"`
	Theme    Theme               `json:"theme"`
}

// NewState returns an empty document at the current schema version.
func NewState() *ProjectsState {
	return &ProjectsState{
		Version:  StateVersion,
		Projects: map[string]*Project{},
		Theme:    ThemeSystem,
	}
}

// NowISO returns the current time as an RFC 3339 UTC string, the timestamp
// format used on every project.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Clone returns a structurally independent copy of the section.
func (s ChecklistSection) Clone() ChecklistSection {
	out := s
	out.Items = make([]ChecklistItem, len(s.Items))
	copy(out.Items, s.Items)
	return out
}

// Clone returns a structurally independent copy of the project.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	out := *p
	out.Sections = make([]ChecklistSection, len(p.Sections))
	for i, sec := range p.Sections {
		out.Sections[i] = sec.Clone()
	}
	return &out
}

// Clone returns a structurally independent copy of the whole document.
func (st *ProjectsState) Clone() *ProjectsState {
	if st == nil {
		return nil
	}
	out := &ProjectsState{
		Version:  st.Version,
		Projects: make(map[string]*Project, len(st.Projects)),
		Theme:    st.Theme,
	}
	for id, p := range st.Projects {
		out.Projects[id] = p.Clone()
	}
	return out
}

// Section returns the section with the given id, or nil.
func (p *Project) Section(id string) *ChecklistSection {
	if p == nil {
		return nil
	}
	for i := range p.Sections {
		if p.Sections[i].ID == id {
			return &p.Sections[i]
		}
	}
	return nil
}

// Item returns the item with the given id, or nil.
func (s *ChecklistSection) Item(id string) *ChecklistItem {
	if s == nil {
		return nil
	}
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i]
		}
	}
	return nil
}
