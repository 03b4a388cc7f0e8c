// Package progress computes completion counts for display.
package progress

import (
	"fmt"

	"github.com/idilsaglam/mlcheck/internal/model"
)

// Totals is a project's checked count against its item count.
type Totals struct {
	Done  int
	Total int
}

// ComputeTotals counts checked and total items across all sections.
// A nil project yields zero totals.
func ComputeTotals(p *model.Project) Totals {
	var t Totals
	if p == nil {
		return t
	}
	for _, sec := range p.Sections {
		t.Total += len(sec.Items)
		for _, it := range sec.Items {
			if it.Checked {
				t.Done++
			}
		}
	}
	return t
}

// ValueFromTotals is the completion ratio in [0, 1]; 0 for an empty project.
func ValueFromTotals(t Totals) float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Done) / float64(t.Total)
}

// LabelFromTotals formats totals as "3/7 completed".
func LabelFromTotals(t Totals) string {
	return fmt.Sprintf("%d/%d completed", t.Done, t.Total)
}
