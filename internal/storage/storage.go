// Package storage persists the projects document in a single local slot.
//
// A Backend holds exactly one serialized ProjectsState. Every failure mode
// (missing slot, corrupt payload, write error) is logged and absorbed; the
// rest of the program never sees a storage error.
package storage

import (
	"encoding/json"
	"log/slog"

	"github.com/idilsaglam/mlcheck/internal/model"
)

// Backend is a single-slot blob store for the state document.
type Backend interface {
	// Load returns the stored document, or ok=false when the slot is
	// absent, unreadable, or from a different schema version.
	Load() (st *model.ProjectsState, ok bool)
	// Save overwrites the slot with the given document.
	Save(st *model.ProjectsState)
	// Clear removes the slot.
	Clear()
}

// Nop is the backend used when no storage subsystem is available.
// Load reports absent; Save and Clear do nothing.
type Nop struct{}

func (Nop) Load() (*model.ProjectsState, bool) { return nil, false }
func (Nop) Save(*model.ProjectsState)          {}
func (Nop) Clear()                             {}

// decodeState deserializes a stored document. A document from another
// schema version is untrusted and discarded; there is no migration path.
func decodeState(b []byte, logger *slog.Logger) (*model.ProjectsState, bool) {
	var st model.ProjectsState
	if err := json.Unmarshal(b, &st); err != nil {
		logger.Warn("discarding corrupt state document", "err", err)
		return nil, false
	}
	if st.Version != model.StateVersion {
		logger.Warn("discarding state document from another schema version",
			"got", st.Version, "want", model.StateVersion)
		return nil, false
	}
	if st.Projects == nil {
		st.Projects = map[string]*model.Project{}
	}
	if !st.Theme.Valid() {
		st.Theme = model.ThemeSystem
	}
	return &st, true
}

func encodeState(st *model.ProjectsState, logger *slog.Logger) ([]byte, bool) {
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		logger.Error("marshal state document", "err", err)
		return nil, false
	}
	return b, true
}
