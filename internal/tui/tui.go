// Package tui is the interactive checklist browser.
//
// Two screens: the project list and one project's checklist. Every edit
// goes through the store, which persists on its own debounce; quitting
// never loses data because the composition root closes the store.
package tui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/mlcheck/internal/model"
	"github.com/idilsaglam/mlcheck/internal/progress"
	"github.com/idilsaglam/mlcheck/internal/store"
	"github.com/idilsaglam/mlcheck/internal/ui"
)

// Run starts the browser and blocks until the user quits.
func Run(s *store.Store) error {
	p := tea.NewProgram(newModel(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type screen int

const (
	screenProjects screen = iota
	screenChecklist
)

type inputMode int

const (
	inputNone inputMode = iota
	inputNewProject
	inputRenameProject
	inputAddItem
	inputNotes
)

// projectEntry adapts a Project to bubbles/list.Item.
type projectEntry struct {
	id, name string
	totals   progress.Totals
}

func (p projectEntry) Title() string       { return p.name }
func (p projectEntry) Description() string { return "" }
func (p projectEntry) FilterValue() string { return p.name }

// checklistRow is one rendered line: a section header or a checkable item.
type checklistRow struct {
	sectionID string
	itemID    string // empty for a header row
	text      string
	checked   bool
	notes     string // header rows carry the section notes
}

func (r checklistRow) header() bool        { return r.itemID == "" }
func (r checklistRow) Title() string       { return r.text }
func (r checklistRow) Description() string { return "" }
func (r checklistRow) FilterValue() string { return r.text }

type modelTUI struct {
	store  *store.Store
	screen screen

	projects  list.Model
	checklist list.Model
	projectID string

	mode     inputMode
	ti       textinput.Model
	inputErr string
	// target section for add-item / notes input
	sectionID string

	width, height int
}

func newModel(s *store.Store) modelTUI {
	m := modelTUI{store: s, width: 80, height: 24}

	m.projects = list.New(nil, projectDelegate{}, 0, 0)
	m.projects.SetShowStatusBar(true)
	m.projects.SetFilteringEnabled(true)
	m.projects.SetStatusBarItemName("project", "projects")
	m.projects.Styles.Title = ui.Current().Title
	m.projects.Styles.HelpStyle = ui.Current().Help
	m.projects.FilterInput.Prompt = "/ "
	m.projects.AdditionalShortHelpKeys = projectKeys
	m.projects.AdditionalFullHelpKeys = projectKeys

	m.checklist = list.New(nil, rowDelegate{}, 0, 0)
	m.checklist.SetShowStatusBar(false)
	m.checklist.SetFilteringEnabled(true)
	m.checklist.Styles.Title = ui.Current().Title
	m.checklist.Styles.HelpStyle = ui.Current().Help
	m.checklist.FilterInput.Prompt = "/ "
	m.checklist.AdditionalShortHelpKeys = checklistKeys
	m.checklist.AdditionalFullHelpKeys = checklistKeys

	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.CharLimit = 300

	m.reloadProjects()
	return m
}

func projectKeys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "duplicate")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	}
}

func checklistKeys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove item")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "notes")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// ---------------- delegates ----------------

type projectDelegate struct{}

func (d projectDelegate) Height() int                               { return 1 }
func (d projectDelegate) Spacing() int                              { return 0 }
func (d projectDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	p, ok := item.(projectEntry)
	if !ok {
		return
	}
	s := ui.Current()
	line := fmt.Sprintf("%s  %s", p.name,
		s.Muted.Render(progress.LabelFromTotals(p.totals)))
	prefix := "  "
	if index == m.Index() {
		prefix = s.Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type rowDelegate struct{}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(checklistRow)
	if !ok {
		return
	}
	s := ui.Current()
	var line string
	if r.header() {
		line = s.Accent.Render(r.text)
		if r.notes != "" {
			line += s.Muted.Render("  # " + r.notes)
		}
	} else {
		box := s.Muted.Render(s.BoxUnchecked)
		text := r.text
		if r.checked {
			box = s.Success.Render(s.BoxChecked)
			text = s.Done.Render(text)
		}
		line = fmt.Sprintf("  %s %s", box, text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = s.Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

// ---------------- store snapshots -> list items ----------------

func (m *modelTUI) reloadProjects() {
	st := m.store.State()
	items := make([]list.Item, 0, len(st.Projects))
	for _, p := range sortedByUpdated(st) {
		items = append(items, projectEntry{id: p.ID, name: p.Name, totals: progress.ComputeTotals(p)})
	}
	m.projects.SetItems(items)
	m.projects.Title = fmt.Sprintf("%s  %s",
		ui.Current().Title.Render("ML Checklists"),
		ui.Current().Muted.Render(fmt.Sprintf("%d projects", len(items))))
}

func sortedByUpdated(st *model.ProjectsState) []*model.Project {
	out := make([]*model.Project, 0, len(st.Projects))
	for _, p := range st.Projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt != out[j].UpdatedAt {
			return out[i].UpdatedAt > out[j].UpdatedAt
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (m *modelTUI) reloadChecklist() {
	p := m.store.Project(m.projectID)
	if p == nil {
		m.screen = screenProjects
		m.reloadProjects()
		return
	}
	var rows []list.Item
	for _, sec := range p.Sections {
		rows = append(rows, checklistRow{sectionID: sec.ID, text: sec.Title, notes: sec.Notes})
		for _, it := range sec.Items {
			rows = append(rows, checklistRow{sectionID: sec.ID, itemID: it.ID, text: it.Text, checked: it.Checked})
		}
	}
	m.checklist.SetItems(rows)
	t := progress.ComputeTotals(p)
	m.checklist.Title = fmt.Sprintf("%s  %s",
		ui.Current().Title.Render(p.Name),
		ui.Current().Muted.Render(progress.LabelFromTotals(t)))
}

func (m modelTUI) selectedProject() (projectEntry, bool) {
	it, ok := m.projects.SelectedItem().(projectEntry)
	return it, ok
}

func (m modelTUI) selectedRow() (checklistRow, bool) {
	it, ok := m.checklist.SelectedItem().(checklistRow)
	return it, ok
}

// ---------------- Bubble Tea plumbing ----------------

func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		return m, nil
	}

	if m.mode != inputNone {
		return m.updateInput(msg)
	}
	if m.screen == screenProjects {
		return m.updateProjects(msg)
	}
	return m.updateChecklist(msg)
}

func (m modelTUI) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m.commitInput()
		case "esc":
			m.mode = inputNone
			m.inputErr = ""
			m.ti.SetValue("")
			m.ti.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m modelTUI) commitInput() (tea.Model, tea.Cmd) {
	value := m.ti.Value()
	trimmed := strings.TrimSpace(value)

	switch m.mode {
	case inputNewProject:
		m.store.CreateProject(trimmed)
		m.reloadProjects()
	case inputRenameProject:
		if trimmed == "" {
			m.inputErr = "Name cannot be empty"
			return m, nil
		}
		if p, ok := m.selectedProject(); ok {
			m.store.RenameProject(p.id, trimmed)
		}
		m.reloadProjects()
	case inputAddItem:
		if trimmed == "" {
			m.inputErr = "Item text cannot be empty"
			return m, nil
		}
		m.store.AddItem(m.projectID, m.sectionID, trimmed)
		m.reloadChecklist()
	case inputNotes:
		// notes are stored verbatim, blanks included
		m.store.UpdateNotes(m.projectID, m.sectionID, value)
		m.reloadChecklist()
	}

	m.mode = inputNone
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	return m, nil
}

func (m modelTUI) updateProjects(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.projects.SettingFilter() {
		switch keyMsg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "enter":
			if p, ok := m.selectedProject(); ok {
				m.projectID = p.id
				m.screen = screenChecklist
				m.reloadChecklist()
			}
			return m, nil
		case "n":
			return m.startInput(inputNewProject, "Untitled Project", ""), nil
		case "r":
			if p, ok := m.selectedProject(); ok {
				return m.startInput(inputRenameProject, "Project name...", p.name), nil
			}
			return m, nil
		case "c":
			if p, ok := m.selectedProject(); ok {
				m.store.DuplicateProject(p.id)
				m.reloadProjects()
			}
			return m, nil
		case "d":
			if p, ok := m.selectedProject(); ok {
				m.store.DeleteProject(p.id)
				m.reloadProjects()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.projects, cmd = m.projects.Update(msg)
	return m, cmd
}

func (m modelTUI) updateChecklist(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.checklist.SettingFilter() {
		switch keyMsg.String() {
		case "q":
			return m, tea.Quit
		case "esc":
			m.screen = screenProjects
			m.reloadProjects()
			return m, nil
		case " ":
			if r, ok := m.selectedRow(); ok && !r.header() {
				m.store.ToggleItem(m.projectID, r.sectionID, r.itemID)
				m.reloadChecklist()
			}
			return m, nil
		case "a":
			if r, ok := m.selectedRow(); ok {
				m.sectionID = r.sectionID
				return m.startInput(inputAddItem, "New item...", ""), nil
			}
			return m, nil
		case "d":
			if r, ok := m.selectedRow(); ok && !r.header() {
				m.store.RemoveItem(m.projectID, r.sectionID, r.itemID)
				m.reloadChecklist()
			}
			return m, nil
		case "m":
			if r, ok := m.selectedRow(); ok {
				m.sectionID = r.sectionID
				notes := ""
				if sec := m.store.Project(m.projectID).Section(r.sectionID); sec != nil {
					notes = sec.Notes
				}
				return m.startInput(inputNotes, "Section notes...", notes), nil
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.checklist, cmd = m.checklist.Update(msg)
	return m, cmd
}

func (m modelTUI) startInput(mode inputMode, placeholder, value string) modelTUI {
	m.mode = mode
	m.inputErr = ""
	m.ti.Placeholder = placeholder
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Focus()
	return m
}

func (m modelTUI) View() string {
	listHeight := m.height - 4
	if m.mode != inputNone {
		listHeight = m.height - 7
	}
	if listHeight < 3 {
		listHeight = 3
	}

	var content string
	if m.screen == screenProjects {
		m.projects.SetSize(m.width-4, listHeight)
		content = m.projects.View()
	} else {
		m.checklist.SetSize(m.width-4, listHeight)
		content = m.checklist.View()
	}

	if m.mode != inputNone {
		title := inputTitle(m.mode)
		if m.inputErr != "" {
			title += "  " + ui.Current().Error.Render(m.inputErr)
		}
		bar := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return frame.Render(content)
}

func inputTitle(mode inputMode) string {
	switch mode {
	case inputNewProject:
		return "New project"
	case inputRenameProject:
		return "Rename project"
	case inputAddItem:
		return "Add item"
	case inputNotes:
		return "Edit section notes"
	default:
		return ""
	}
}
