package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/mlcheck/internal/model"
	"github.com/idilsaglam/mlcheck/internal/storage"
)

// recordingBackend counts saves and keeps the last document written.
type recordingBackend struct {
	mu      sync.Mutex
	initial *model.ProjectsState
	saves   int
	last    *model.ProjectsState
	cleared int
}

func (r *recordingBackend) Load() (*model.ProjectsState, bool) {
	if r.initial == nil {
		return nil, false
	}
	return r.initial, true
}

func (r *recordingBackend) Save(st *model.ProjectsState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	r.last = st
}

func (r *recordingBackend) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleared++
}

func (r *recordingBackend) snapshot() (int, *model.ProjectsState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves, r.last
}

// fakeClock returns strictly increasing RFC 3339 timestamps.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t.UTC().Format(time.RFC3339)
}

func newTestStore(t *testing.T, opts ...Option) (*Store, *recordingBackend) {
	t.Helper()
	backend := &recordingBackend{}
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	base := []Option{WithDebounce(0), WithClock(clock.now)}
	s := Open(backend, append(base, opts...)...)
	t.Cleanup(s.Close)
	return s, backend
}

func smallSeed() []model.ChecklistSection {
	return []model.ChecklistSection{{
		ID:    model.NewID(),
		Title: "Get the data",
		Items: []model.ChecklistItem{
			{ID: model.NewID(), Text: "List the data you need"},
			{ID: model.NewID(), Text: "Get the data"},
		},
	}}
}

func TestOpenDefaultsWhenSlotAbsent(t *testing.T) {
	s, _ := newTestStore(t)
	st := s.State()
	assert.Equal(t, model.StateVersion, st.Version)
	assert.Empty(t, st.Projects)
	assert.Equal(t, model.ThemeSystem, st.Theme)
}

func TestOpenUsesLoadedState(t *testing.T) {
	loaded := model.NewState()
	loaded.Theme = model.ThemeDark
	loaded.Projects["p1"] = &model.Project{ID: "p1", Name: "Housing"}
	backend := &recordingBackend{initial: loaded}

	s := Open(backend, WithDebounce(0))
	defer s.Close()

	assert.Equal(t, model.ThemeDark, s.State().Theme)
	require.NotNil(t, s.Project("p1"))
	assert.Equal(t, "Housing", s.Project("p1").Name)
}

func TestCreateProjectSeedsTemplate(t *testing.T) {
	s, _ := newTestStore(t, WithSeeder(smallSeed))

	id := s.CreateProject("  ")
	require.NotEmpty(t, id)

	p := s.Project(id)
	require.NotNil(t, p)
	assert.Equal(t, "Untitled Project", p.Name)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	want := smallSeed()
	require.Len(t, p.Sections, len(want))
	for i, sec := range p.Sections {
		assert.Equal(t, want[i].Title, sec.Title)
		require.Len(t, sec.Items, len(want[i].Items))
		for j, it := range sec.Items {
			assert.Equal(t, want[i].Items[j].Text, it.Text)
			assert.False(t, it.Checked)
		}
	}

	other := s.CreateProject("Churn model")
	assert.Equal(t, "Churn model", s.Project(other).Name)
	assert.NotEqual(t, s.Project(id).Sections[0].ID, s.Project(other).Sections[0].ID,
		"each project gets freshly seeded ids")
}

func TestUpdatedAtMonotonicAcrossMutations(t *testing.T) {
	s, _ := newTestStore(t, WithSeeder(smallSeed))
	id := s.CreateProject("Housing")
	p := s.Project(id)
	secID := p.Sections[0].ID
	itemID := p.Sections[0].Items[0].ID

	prev := p.UpdatedAt
	steps := []func(){
		func() { s.ToggleItem(id, secID, itemID) },
		func() { s.AddItem(id, secID, "new line") },
		func() { s.UpdateNotes(id, secID, "notes") },
		func() { s.RenameProject(id, "Housing v2") },
		func() { s.ToggleItem(id, secID, itemID) },
	}
	for _, step := range steps {
		step()
		cur := s.Project(id)
		assert.GreaterOrEqual(t, cur.UpdatedAt, prev)
		assert.GreaterOrEqual(t, cur.UpdatedAt, cur.CreatedAt)
		prev = cur.UpdatedAt
	}
}

func TestToggleAddRemoveNotes(t *testing.T) {
	s, _ := newTestStore(t, WithSeeder(smallSeed))
	id := s.CreateProject("Housing")
	secID := s.Project(id).Sections[0].ID
	itemID := s.Project(id).Sections[0].Items[0].ID

	s.ToggleItem(id, secID, itemID)
	assert.True(t, s.Project(id).Sections[0].Items[0].Checked)
	s.ToggleItem(id, secID, itemID)
	assert.False(t, s.Project(id).Sections[0].Items[0].Checked)

	s.AddItem(id, secID, "  trailing spaces  ")
	items := s.Project(id).Sections[0].Items
	require.Len(t, items, 3)
	assert.Equal(t, "trailing spaces", items[2].Text)
	assert.False(t, items[2].Checked)

	s.RemoveItem(id, secID, items[0].ID)
	items = s.Project(id).Sections[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, "Get the data", items[0].Text, "order preserved after removal")

	s.UpdateNotes(id, secID, "  kept verbatim  ")
	assert.Equal(t, "  kept verbatim  ", s.Project(id).Sections[0].Notes)
}

func TestLookupMissesLeaveStateUnchanged(t *testing.T) {
	s, _ := newTestStore(t, WithSeeder(smallSeed))
	id := s.CreateProject("Housing")
	secID := s.Project(id).Sections[0].ID

	before := s.State()

	s.ToggleItem("nope", secID, "x")
	s.ToggleItem(id, "nope", "x")
	s.ToggleItem(id, secID, "nope")
	s.AddItem("nope", secID, "text")
	s.AddItem(id, "nope", "text")
	s.RemoveItem(id, secID, "nope")
	s.RemoveItem(id, "nope", "x")
	s.UpdateNotes("nope", secID, "n")
	s.UpdateNotes(id, "nope", "n")
	s.RenameProject("nope", "name")
	s.DeleteProject("nope")

	after := s.State()
	assert.Same(t, before, after, "misses must not commit a new snapshot")
	assert.Equal(t, before, after)
}

func TestRenameProject(t *testing.T) {
	s, _ := newTestStore(t, WithSeeder(smallSeed))
	id := s.CreateProject("Housing")

	s.RenameProject(id, "  Housing Prices  ")
	assert.Equal(t, "Housing Prices", s.Project(id).Name)

	prev := s.Project(id).UpdatedAt
	s.RenameProject(id, "   ")
	assert.Equal(t, "Housing Prices", s.Project(id).Name, "blank rename keeps the old name")
	assert.GreaterOrEqual(t, s.Project(id).UpdatedAt, prev)
}

func TestDeleteProject(t *testing.T) {
	s, _ := newTestStore(t, WithSeeder(smallSeed))
	id := s.CreateProject("Housing")
	require.NotNil(t, s.Project(id))

	s.DeleteProject(id)
	assert.Nil(t, s.Project(id))
	assert.Empty(t, s.State().Projects)
}

func TestDuplicateProject(t *testing.T) {
	s, _ := newTestStore(t, WithSeeder(smallSeed))
	id := s.CreateProject("Housing")
	secID := s.Project(id).Sections[0].ID
	itemID := s.Project(id).Sections[0].Items[1].ID
	s.ToggleItem(id, secID, itemID)
	s.UpdateNotes(id, secID, "census notes")

	dupID := s.DuplicateProject(id)
	require.NotEmpty(t, dupID)
	assert.NotEqual(t, id, dupID)

	src, dup := s.Project(id), s.Project(dupID)
	assert.Equal(t, "Housing (Copy)", dup.Name)
	assert.Equal(t, dup.CreatedAt, dup.UpdatedAt)
	assert.GreaterOrEqual(t, dup.CreatedAt, src.UpdatedAt)

	require.Len(t, dup.Sections, len(src.Sections))
	for i := range src.Sections {
		assert.NotEqual(t, src.Sections[i].ID, dup.Sections[i].ID, "section ids regenerated")
		assert.Equal(t, src.Sections[i].Title, dup.Sections[i].Title)
		assert.Equal(t, src.Sections[i].Notes, dup.Sections[i].Notes)
		require.Len(t, dup.Sections[i].Items, len(src.Sections[i].Items))
		for j := range src.Sections[i].Items {
			assert.NotEqual(t, src.Sections[i].Items[j].ID, dup.Sections[i].Items[j].ID,
				"item ids regenerated")
			assert.Equal(t, src.Sections[i].Items[j].Text, dup.Sections[i].Items[j].Text)
			assert.Equal(t, src.Sections[i].Items[j].Checked, dup.Sections[i].Items[j].Checked)
		}
	}
}

func TestDuplicateMissingProject(t *testing.T) {
	s, _ := newTestStore(t, WithSeeder(smallSeed))
	s.CreateProject("Housing")
	before := s.State()

	got := s.DuplicateProject("nope")
	assert.Empty(t, got)
	assert.Same(t, before, s.State())
}

func TestSetTheme(t *testing.T) {
	s, _ := newTestStore(t, WithSeeder(smallSeed))
	id := s.CreateProject("Housing")
	prev := s.Project(id).UpdatedAt

	s.SetTheme(model.ThemeDark)
	assert.Equal(t, model.ThemeDark, s.State().Theme)
	assert.Equal(t, prev, s.Project(id).UpdatedAt, "theme change is not project content")

	s.SetTheme(model.Theme("sepia"))
	assert.Equal(t, model.ThemeDark, s.State().Theme, "unknown theme ignored")

	before := s.State()
	s.SetTheme(model.ThemeDark)
	assert.Same(t, before, s.State(), "same theme is a no-op")
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	s, _ := newTestStore(t, WithSeeder(smallSeed))

	var got []*model.ProjectsState
	unsubscribe := s.Subscribe(func(st *model.ProjectsState) {
		got = append(got, st)
	})

	require.Len(t, got, 1, "subscriber sees the current snapshot immediately")
	assert.Empty(t, got[0].Projects)

	id := s.CreateProject("Housing")
	require.Len(t, got, 2)
	assert.Contains(t, got[1].Projects, id)

	// Earlier snapshots never observe later mutations.
	secID := got[1].Projects[id].Sections[0].ID
	itemID := got[1].Projects[id].Sections[0].Items[0].ID
	s.ToggleItem(id, secID, itemID)
	require.Len(t, got, 3)
	assert.False(t, got[1].Projects[id].Sections[0].Items[0].Checked)
	assert.True(t, got[2].Projects[id].Sections[0].Items[0].Checked)

	unsubscribe()
	s.CreateProject("Another")
	assert.Len(t, got, 3, "unsubscribed observers stop receiving snapshots")
}

func TestSynchronousPersistWritesEveryMutation(t *testing.T) {
	s, backend := newTestStore(t, WithSeeder(smallSeed))

	id := s.CreateProject("Housing")
	saves, last := backend.snapshot()
	assert.Equal(t, 1, saves)
	assert.Contains(t, last.Projects, id)

	s.RenameProject(id, "Housing v2")
	saves, last = backend.snapshot()
	assert.Equal(t, 2, saves)
	assert.Equal(t, "Housing v2", last.Projects[id].Name)
}

func TestDebouncedPersistCoalesces(t *testing.T) {
	backend := &recordingBackend{}
	s := Open(backend, WithDebounce(50*time.Millisecond), WithSeeder(smallSeed))
	defer s.Close()

	id := s.CreateProject("Housing")
	secID := s.Project(id).Sections[0].ID
	s.AddItem(id, secID, "one")
	s.AddItem(id, secID, "two")
	s.RenameProject(id, "Final name")

	saves, _ := backend.snapshot()
	assert.Equal(t, 0, saves, "nothing written inside the debounce window")

	require.Eventually(t, func() bool {
		saves, _ := backend.snapshot()
		return saves == 1
	}, time.Second, 5*time.Millisecond)

	_, last := backend.snapshot()
	assert.Equal(t, "Final name", last.Projects[id].Name)
	assert.Len(t, last.Projects[id].Sections[0].Items, 4)

	// The quiet period elapsed; a new mutation starts a new window.
	s.AddItem(id, secID, "three")
	require.Eventually(t, func() bool {
		saves, _ := backend.snapshot()
		return saves == 2
	}, time.Second, 5*time.Millisecond)
}

func TestCloseFlushesPendingWrite(t *testing.T) {
	backend := &recordingBackend{}
	s := Open(backend, WithDebounce(time.Hour), WithSeeder(smallSeed))

	id := s.CreateProject("Housing")
	saves, _ := backend.snapshot()
	require.Equal(t, 0, saves)

	s.Close()
	saves, last := backend.snapshot()
	assert.Equal(t, 1, saves)
	assert.Contains(t, last.Projects, id)

	s.Close()
	saves, _ = backend.snapshot()
	assert.Equal(t, 1, saves, "second close has nothing to flush")
}

func TestStoreWorksWithNopBackend(t *testing.T) {
	s := Open(storage.Nop{}, WithDebounce(0))
	defer s.Close()

	id := s.CreateProject("Ephemeral")
	assert.NotNil(t, s.Project(id))
}
