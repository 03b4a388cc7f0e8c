package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/mlcheck/internal/model"
)

func section(checked, total int) model.ChecklistSection {
	sec := model.ChecklistSection{}
	for i := 0; i < total; i++ {
		sec.Items = append(sec.Items, model.ChecklistItem{Checked: i < checked})
	}
	return sec
}

func TestComputeTotals(t *testing.T) {
	p := &model.Project{Sections: []model.ChecklistSection{
		section(3, 5),
		section(0, 2),
	}}
	assert.Equal(t, Totals{Done: 3, Total: 7}, ComputeTotals(p))
}

func TestComputeTotalsNilProject(t *testing.T) {
	assert.Equal(t, Totals{}, ComputeTotals(nil))
}

func TestComputeTotalsNoSections(t *testing.T) {
	assert.Equal(t, Totals{}, ComputeTotals(&model.Project{}))
}

func TestValueFromTotals(t *testing.T) {
	assert.Equal(t, 0.0, ValueFromTotals(Totals{}))
	assert.InDelta(t, 3.0/7.0, ValueFromTotals(Totals{Done: 3, Total: 7}), 1e-9)
	assert.Equal(t, 1.0, ValueFromTotals(Totals{Done: 4, Total: 4}))
}

func TestLabelFromTotals(t *testing.T) {
	assert.Equal(t, "0/0 completed", LabelFromTotals(Totals{}))
	assert.Equal(t, "3/7 completed", LabelFromTotals(Totals{Done: 3, Total: 7}))
}
