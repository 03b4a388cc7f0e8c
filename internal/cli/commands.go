package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/mlcheck/internal/fileutil"
	"github.com/idilsaglam/mlcheck/internal/model"
	"github.com/idilsaglam/mlcheck/internal/progress"
	"github.com/idilsaglam/mlcheck/internal/ui"
)

func (a *App) newCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new [name...]",
		Short: "Create a project from the checklist template",
		RunE: func(cmd *cobra.Command, args []string) error {
			id := a.Store.CreateProject(strings.Join(args, " "))
			p := a.Store.Project(id)
			ui.OK(a.out, fmt.Sprintf("created %q (%s)", p.Name, shortID(id)))
			return nil
		},
	}
}

func (a *App) lsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List projects with their progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.Store.State()
			s := ui.Current()
			if len(st.Projects) == 0 {
				ui.Panel(a.out, []string{s.Muted.Render("no projects yet, try `mlcheck new`")})
				return nil
			}
			var lines []string
			lines = append(lines, s.Title.Render("Projects"))
			lines = append(lines, "")
			for _, p := range sortedProjects(st) {
				t := progress.ComputeTotals(p)
				lines = append(lines, fmt.Sprintf("%s  %s",
					s.Accent.Render(shortID(p.ID)), p.Name))
				lines = append(lines, "  "+s.Muted.Render(
					ui.ProgressBar(t.Done, t.Total, 28)+"  "+progress.LabelFromTotals(t)))
			}
			ui.Panel(a.out, lines)
			return nil
		},
	}
}

func (a *App) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <project>",
		Short: "Print a project's sections and items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := findProject(a.Store.State(), args[0])
			if err != nil {
				return err
			}
			s := ui.Current()
			t := progress.ComputeTotals(p)

			var lines []string
			lines = append(lines, fmt.Sprintf("%s  %s", s.Title.Render(p.Name), s.Muted.Render(shortID(p.ID))))
			lines = append(lines, s.Muted.Render(ui.ProgressBar(t.Done, t.Total, 28)+"  "+progress.LabelFromTotals(t)))
			for si, sec := range p.Sections {
				lines = append(lines, "")
				lines = append(lines, s.Accent.Render(fmt.Sprintf("%d. %s", si+1, sec.Title)))
				for ii, it := range sec.Items {
					box, style := s.BoxUnchecked, s.Muted
					text := it.Text
					if it.Checked {
						box, style = s.BoxChecked, s.Success
						text = s.Done.Render(text)
					}
					lines = append(lines, fmt.Sprintf("  %2d. %s %s", ii+1, style.Render(box), text))
				}
				if sec.Notes != "" {
					lines = append(lines, s.Muted.Render("   notes: "+sec.Notes))
				}
			}
			ui.Panel(a.out, lines)
			return nil
		},
	}
}

func (a *App) dupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dup <project>",
		Short: "Duplicate a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := findProject(a.Store.State(), args[0])
			if err != nil {
				return err
			}
			id := a.Store.DuplicateProject(p.ID)
			ui.OK(a.out, fmt.Sprintf("duplicated %q as %q (%s)", p.Name, a.Store.Project(id).Name, shortID(id)))
			return nil
		},
	}
}

func (a *App) renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <project> <name...>",
		Short: "Rename a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := findProject(a.Store.State(), args[0])
			if err != nil {
				return err
			}
			a.Store.RenameProject(p.ID, strings.Join(args[1:], " "))
			ui.OK(a.out, fmt.Sprintf("renamed to %q", a.Store.Project(p.ID).Name))
			return nil
		},
	}
}

func (a *App) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <project>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := findProject(a.Store.State(), args[0])
			if err != nil {
				return err
			}
			a.Store.DeleteProject(p.ID)
			ui.OK(a.out, fmt.Sprintf("deleted %q", p.Name))
			return nil
		},
	}
}

func (a *App) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <project> <section#> <item#>",
		Short: "Toggle an item's checkbox",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, sec, it, err := a.resolveItem(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			a.Store.ToggleItem(p.ID, sec.ID, it.ID)
			state := "unchecked"
			if !it.Checked {
				state = "checked"
			}
			ui.OK(a.out, fmt.Sprintf("%s %q", state, it.Text))
			return nil
		},
	}
}

func (a *App) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <project> <section#> <text...>",
		Short: "Append an item to a section",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := findProject(a.Store.State(), args[0])
			if err != nil {
				return err
			}
			sec, err := findSection(p, args[1])
			if err != nil {
				return err
			}
			a.Store.AddItem(p.ID, sec.ID, strings.Join(args[2:], " "))
			ui.OK(a.out, "added")
			return nil
		},
	}
}

func (a *App) rmiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rmi <project> <section#> <item#>",
		Short: "Remove an item from a section",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, sec, it, err := a.resolveItem(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			a.Store.RemoveItem(p.ID, sec.ID, it.ID)
			ui.OK(a.out, fmt.Sprintf("removed %q", it.Text))
			return nil
		},
	}
}

func (a *App) notesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notes <project> <section#> [text...]",
		Short: "Show or replace a section's notes",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := findProject(a.Store.State(), args[0])
			if err != nil {
				return err
			}
			sec, err := findSection(p, args[1])
			if err != nil {
				return err
			}
			if len(args) == 2 {
				s := ui.Current()
				if sec.Notes == "" {
					fmt.Fprintln(a.out, s.Muted.Render("(no notes)"))
				} else {
					fmt.Fprintln(a.out, sec.Notes)
				}
				return nil
			}
			a.Store.UpdateNotes(p.ID, sec.ID, strings.Join(args[2:], " "))
			ui.OK(a.out, "notes updated")
			return nil
		},
	}
}

func (a *App) exportCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "export <project>",
		Short: "Write a project to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := findProject(a.Store.State(), args[0])
			if err != nil {
				return err
			}
			doc, err := a.Store.ExportProject(p.ID)
			if err != nil {
				return err
			}
			path := filepath.Join(outDir, fileutil.SafeFileName(p.Name, "project")+".json")
			if err := fileutil.WriteExport(path, doc); err != nil {
				return err
			}
			ui.OK(a.out, "exported to "+path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write the export into")
	return cmd
}

func (a *App) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a project from an exported JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readImport(args[0])
			if err != nil {
				return err
			}
			id, err := a.Store.ImportProject(raw)
			if err != nil {
				return err
			}
			p := a.Store.Project(id)
			ui.OK(a.out, fmt.Sprintf("imported %q (%s)", p.Name, shortID(id)))
			return nil
		},
	}
}

func (a *App) themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme <light|dark|system>",
		Short:     "Set the stored theme preference",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"light", "dark", "system"},
		RunE: func(cmd *cobra.Command, args []string) error {
			theme := model.Theme(args[0])
			if !theme.Valid() {
				return usagef("unknown theme %q (want light, dark, or system)", args[0])
			}
			a.Store.SetTheme(theme)
			ui.OK(a.out, "theme set to "+args[0])
			return nil
		},
	}
}

func (a *App) clearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the persisted state slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return usagef("refusing to clear without --yes")
			}
			a.Backend.Clear()
			ui.OK(a.out, "storage cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm removing all saved projects")
	return cmd
}

func readImport(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read import file: %w", err)
	}
	return string(b), nil
}

func (a *App) resolveItem(projectRef, sectionRef, itemRef string) (*model.Project, *model.ChecklistSection, *model.ChecklistItem, error) {
	p, err := findProject(a.Store.State(), projectRef)
	if err != nil {
		return nil, nil, nil, err
	}
	sec, err := findSection(p, sectionRef)
	if err != nil {
		return nil, nil, nil, err
	}
	it, err := findItem(sec, itemRef)
	if err != nil {
		return nil, nil, nil, err
	}
	return p, sec, it, nil
}
