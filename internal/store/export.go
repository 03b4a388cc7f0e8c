package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/idilsaglam/mlcheck/internal/model"
)

// Export and import are the only store operations that surface errors;
// everything else degrades silently.
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidImport   = errors.New("invalid import payload")
)

// exportDoc is the wire envelope for a single exported project.
type exportDoc struct {
	Version int            `json:"version"`
	Project *model.Project `json:"project"`
}

// ExportProject returns a pretty-printed JSON document for one project.
func (s *Store) ExportProject(id string) (string, error) {
	p := s.Project(id)
	if p == nil {
		return "", fmt.Errorf("export %q: %w", id, ErrProjectNotFound)
	}
	b, err := json.MarshalIndent(exportDoc{Version: model.StateVersion, Project: p}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export %q: %w", id, err)
	}
	return string(b), nil
}

// ImportProject parses an exported document (or a bare project object),
// assigns a fresh id and timestamps, and inserts it as a new project.
// Unknown fields are ignored; a missing name or section list is defaulted.
func (s *Store) ImportProject(raw string) (string, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || payload == nil {
		return "", fmt.Errorf("import: %w", ErrInvalidImport)
	}

	// Either the export envelope {version, project} or a bare project.
	src := payload
	if wrapped, ok := payload["project"].(map[string]any); ok {
		src = wrapped
	}

	id := s.newID()
	now := s.now()
	project := &model.Project{
		ID:        id,
		Name:      importedProjectName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if name, ok := src["name"].(string); ok && name != "" {
		project.Name = name
	}
	if sections, ok := src["sections"].([]any); ok {
		project.Sections = s.coerceSections(sections)
	} else {
		project.Sections = []model.ChecklistSection{}
	}

	s.mutate(func(st *model.ProjectsState) bool {
		st.Projects[id] = project
		return true
	})
	return id, nil
}

// coerceSections rebuilds a section list from loosely typed JSON. Entries
// that are not objects are dropped. Ids are always regenerated, same policy
// as DuplicateProject: importing your own export must not alias entity ids
// with the project it came from.
func (s *Store) coerceSections(raw []any) []model.ChecklistSection {
	out := make([]model.ChecklistSection, 0, len(raw))
	for _, entry := range raw {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		sec := model.ChecklistSection{ID: s.newID()}
		sec.Title, _ = obj["title"].(string)
		sec.Notes, _ = obj["notes"].(string)
		if items, ok := obj["items"].([]any); ok {
			sec.Items = s.coerceItems(items)
		} else {
			sec.Items = []model.ChecklistItem{}
		}
		out = append(out, sec)
	}
	return out
}

func (s *Store) coerceItems(raw []any) []model.ChecklistItem {
	out := make([]model.ChecklistItem, 0, len(raw))
	for _, entry := range raw {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		it := model.ChecklistItem{ID: s.newID()}
		it.Text, _ = obj["text"].(string)
		it.Checked, _ = obj["checked"].(bool)
		out = append(out, it)
	}
	return out
}
