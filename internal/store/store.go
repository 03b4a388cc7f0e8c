// Package store owns the in-memory projects document.
//
// One Store holds one ProjectsState at a time. Every mutation clones the
// current document, applies the change to the clone, and commits it as the
// new state, so a snapshot handed to a subscriber is never written again.
// After each committed mutation the store schedules a coalesced save to its
// backend: rapid mutations within the debounce window produce one write.
package store

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/idilsaglam/mlcheck/internal/model"
	"github.com/idilsaglam/mlcheck/internal/storage"
	"github.com/idilsaglam/mlcheck/internal/template"
)

// DefaultDebounce is the quiet period before a mutated document is written
// to the backend.
const DefaultDebounce = 150 * time.Millisecond

const (
	untitledProjectName = "Untitled Project"
	importedProjectName = "Imported Project"
	copySuffix          = " (Copy)"
)

// Store is the single owner of the projects document.
type Store struct {
	mu      sync.Mutex
	state   *model.ProjectsState
	backend storage.Backend

	logger   *slog.Logger
	debounce time.Duration
	now      func() string
	newID    func() string
	seed     func() []model.ChecklistSection

	timer *time.Timer
	dirty bool

	subs    []subscriber
	nextSub int
}

type subscriber struct {
	id int
	fn func(*model.ProjectsState)
}

// Option tunes a Store at construction time.
type Option func(*Store)

// WithDebounce sets the persistence quiet period. Zero or negative means
// every mutation is written synchronously.
func WithDebounce(d time.Duration) Option { return func(s *Store) { s.debounce = d } }

// WithLogger sets the logger used for soft-failure reporting.
func WithLogger(l *slog.Logger) Option { return func(s *Store) { s.logger = l } }

// WithClock overrides the timestamp source. Test hook.
func WithClock(now func() string) Option { return func(s *Store) { s.now = now } }

// WithIDFunc overrides the id source. Test hook.
func WithIDFunc(fn func() string) Option { return func(s *Store) { s.newID = fn } }

// WithSeeder overrides the section template used by CreateProject.
func WithSeeder(fn func() []model.ChecklistSection) Option {
	return func(s *Store) { s.seed = fn }
}

// Open loads the document from backend, or starts from defaults when the
// slot is absent. The Store owns the document from here on; callers must
// treat every snapshot they receive as read-only.
func Open(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		logger:   slog.Default(),
		debounce: DefaultDebounce,
		now:      model.NowISO,
		newID:    model.NewID,
		seed:     template.DefaultSections,
	}
	for _, opt := range opts {
		opt(s)
	}
	if st, ok := backend.Load(); ok {
		s.state = st
	} else {
		s.state = model.NewState()
	}
	return s
}

// Close flushes a pending debounced write. The store stays usable, but the
// composition root is expected to call Close exactly once on shutdown.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.persistLocked()
}

// State returns the current committed snapshot. Read-only by contract.
func (s *Store) State() *model.ProjectsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Project returns the committed snapshot of one project, or nil.
func (s *Store) Project(id string) *model.Project {
	return s.State().Projects[id]
}

// Subscribe registers fn to receive the current snapshot immediately and
// every committed snapshot after that, in mutation order. The returned
// func removes the subscription.
func (s *Store) Subscribe(fn func(*model.ProjectsState)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	snap := s.state
	s.mu.Unlock()

	fn(snap)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// mutate runs fn against a clone of the current document. When fn reports a
// change the clone becomes the committed state, subscribers are notified,
// and a persist is scheduled. When fn reports no change the clone is
// discarded and the document stays untouched.
func (s *Store) mutate(fn func(st *model.ProjectsState) bool) {
	s.mu.Lock()
	next := s.state.Clone()
	if !fn(next) {
		s.mu.Unlock()
		return
	}
	next.Version = model.StateVersion
	s.state = next
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.schedulePersistLocked()
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(next)
	}
}

func (s *Store) schedulePersistLocked() {
	s.dirty = true
	if s.debounce <= 0 {
		s.persistLocked()
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.persistLocked()
	})
}

func (s *Store) persistLocked() {
	if !s.dirty {
		return
	}
	s.backend.Save(s.state)
	s.dirty = false
}

// CreateProject inserts a new project built from the section template and
// returns its id. A blank name becomes "Untitled Project".
func (s *Store) CreateProject(name string) string {
	id := s.newID()
	now := s.now()
	name = strings.TrimSpace(name)
	if name == "" {
		name = untitledProjectName
	}
	project := &model.Project{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Sections:  s.seed(),
	}
	s.mutate(func(st *model.ProjectsState) bool {
		st.Projects[id] = project
		return true
	})
	return id
}

// DuplicateProject deep-copies an existing project under a new id with
// fresh timestamps and a " (Copy)" name suffix. Section and item ids are
// regenerated too, so no entity id is ever shared between projects.
// Returns the empty string when the source does not exist.
func (s *Store) DuplicateProject(id string) string {
	var newID string
	s.mutate(func(st *model.ProjectsState) bool {
		src, ok := st.Projects[id]
		if !ok {
			return false
		}
		dup := src.Clone()
		newID = s.newID()
		now := s.now()
		dup.ID = newID
		dup.Name = src.Name + copySuffix
		dup.CreatedAt = now
		dup.UpdatedAt = now
		for i := range dup.Sections {
			dup.Sections[i].ID = s.newID()
			for j := range dup.Sections[i].Items {
				dup.Sections[i].Items[j].ID = s.newID()
			}
		}
		st.Projects[newID] = dup
		return true
	})
	return newID
}

// DeleteProject removes a project. No-op when absent.
func (s *Store) DeleteProject(id string) {
	s.mutate(func(st *model.ProjectsState) bool {
		if _, ok := st.Projects[id]; !ok {
			return false
		}
		delete(st.Projects, id)
		return true
	})
}

// RenameProject sets a project's name. A blank name keeps the old one;
// the project's updatedAt is bumped either way.
func (s *Store) RenameProject(id, name string) {
	s.mutate(func(st *model.ProjectsState) bool {
		p, ok := st.Projects[id]
		if !ok {
			return false
		}
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			p.Name = trimmed
		}
		p.UpdatedAt = s.now()
		return true
	})
}

// ToggleItem flips an item's checked flag. Silent no-op when the project,
// section, or item is missing.
func (s *Store) ToggleItem(projectID, sectionID, itemID string) {
	s.mutate(func(st *model.ProjectsState) bool {
		p := st.Projects[projectID]
		it := p.Section(sectionID).Item(itemID)
		if it == nil {
			return false
		}
		it.Checked = !it.Checked
		p.UpdatedAt = s.now()
		return true
	})
}

// AddItem appends a new unchecked item to a section. No-op when the
// project or section is missing.
func (s *Store) AddItem(projectID, sectionID, text string) {
	s.mutate(func(st *model.ProjectsState) bool {
		p := st.Projects[projectID]
		sec := p.Section(sectionID)
		if sec == nil {
			return false
		}
		sec.Items = append(sec.Items, model.ChecklistItem{
			ID:   s.newID(),
			Text: strings.TrimSpace(text),
		})
		p.UpdatedAt = s.now()
		return true
	})
}

// RemoveItem deletes an item from a section. No-op when the project,
// section, or item is missing.
func (s *Store) RemoveItem(projectID, sectionID, itemID string) {
	s.mutate(func(st *model.ProjectsState) bool {
		p := st.Projects[projectID]
		sec := p.Section(sectionID)
		if sec == nil {
			return false
		}
		for i := range sec.Items {
			if sec.Items[i].ID == itemID {
				sec.Items = append(sec.Items[:i], sec.Items[i+1:]...)
				p.UpdatedAt = s.now()
				return true
			}
		}
		return false
	})
}

// UpdateNotes replaces a section's notes verbatim. No-op when the project
// or section is missing.
func (s *Store) UpdateNotes(projectID, sectionID, notes string) {
	s.mutate(func(st *model.ProjectsState) bool {
		p := st.Projects[projectID]
		sec := p.Section(sectionID)
		if sec == nil {
			return false
		}
		sec.Notes = notes
		p.UpdatedAt = s.now()
		return true
	})
}

// SetTheme stores the UI theme preference. Unknown values are ignored.
// Project timestamps are untouched; the theme is not project content.
func (s *Store) SetTheme(theme model.Theme) {
	if !theme.Valid() {
		return
	}
	s.mutate(func(st *model.ProjectsState) bool {
		if st.Theme == theme {
			return false
		}
		st.Theme = theme
		return true
	})
}
