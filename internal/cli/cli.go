// Package cli is the command surface over the project store.
//
// Commands address projects by id, id prefix, or name; sections and items
// by 1-based index as printed by `show`. Export and import report their
// failures; storage problems never reach the user (the store logs and
// degrades).
package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/mlcheck/internal/model"
	"github.com/idilsaglam/mlcheck/internal/storage"
	"github.com/idilsaglam/mlcheck/internal/store"
	"github.com/idilsaglam/mlcheck/internal/ui"
)

// App wires the store and its backend into the command tree.
type App struct {
	Store   *store.Store
	Backend storage.Backend
	// RunTUI launches the interactive browser; injected so the CLI stays
	// testable without a terminal.
	RunTUI func(*store.Store) error

	out io.Writer
}

// Execute runs the command tree and returns an exit code (0 ok, 1 error,
// 2 usage).
func Execute(app *App, args []string, stdout, stderr io.Writer) int {
	app.out = stdout

	root := app.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		ui.Fail(stderr, err.Error())
		var usage *usageError
		if errors.As(err, &usage) {
			return 2
		}
		return 1
	}
	return 0
}

// usageError marks bad invocations so Execute can exit 2 like a classic CLI.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "mlcheck",
		Short:         "Checklist manager for machine-learning projects",
		Long:          "mlcheck keeps per-project ML checklists on local storage.\nRun without arguments for the interactive browser.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.RunTUI == nil {
				return cmd.Help()
			}
			return a.RunTUI(a.Store)
		},
	}

	root.AddCommand(
		a.newCmd(),
		a.lsCmd(),
		a.showCmd(),
		a.dupCmd(),
		a.renameCmd(),
		a.rmCmd(),
		a.toggleCmd(),
		a.addCmd(),
		a.rmiCmd(),
		a.notesCmd(),
		a.exportCmd(),
		a.importCmd(),
		a.themeCmd(),
		a.clearCmd(),
	)
	return root
}

// ---------------- reference resolution ----------------

// findProject resolves a user-supplied reference: exact id, exact name,
// then unique id prefix, then unique case-insensitive name prefix.
func findProject(st *model.ProjectsState, ref string) (*model.Project, error) {
	if p, ok := st.Projects[ref]; ok {
		return p, nil
	}
	for _, p := range st.Projects {
		if p.Name == ref {
			return p, nil
		}
	}
	var matches []*model.Project
	lower := strings.ToLower(ref)
	for _, p := range st.Projects {
		if strings.HasPrefix(p.ID, ref) || strings.HasPrefix(strings.ToLower(p.Name), lower) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("no project matches %q", ref)
	default:
		return nil, fmt.Errorf("%q is ambiguous (%d matches); use the full id", ref, len(matches))
	}
}

// findSection resolves a 1-based section index.
func findSection(p *model.Project, ref string) (*model.ChecklistSection, error) {
	n, err := strconv.Atoi(ref)
	if err != nil || n < 1 || n > len(p.Sections) {
		return nil, usagef("section index out of range: have %d, got %q", len(p.Sections), ref)
	}
	return &p.Sections[n-1], nil
}

// findItem resolves a 1-based item index within a section.
func findItem(sec *model.ChecklistSection, ref string) (*model.ChecklistItem, error) {
	n, err := strconv.Atoi(ref)
	if err != nil || n < 1 || n > len(sec.Items) {
		return nil, usagef("item index out of range: have %d, got %q", len(sec.Items), ref)
	}
	return &sec.Items[n-1], nil
}

// sortedProjects returns projects most recently touched first.
func sortedProjects(st *model.ProjectsState) []*model.Project {
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

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
