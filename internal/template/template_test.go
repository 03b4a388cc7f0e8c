package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSectionsShape(t *testing.T) {
	sections := DefaultSections()
	require.Len(t, sections, 8)

	titles := make([]string, len(sections))
	for i, sec := range sections {
		titles[i] = sec.Title
	}
	assert.Equal(t, []string{
		"Frame the Problem; Look at the big picture",
		"Get the data",
		"Discover and visualize the data to gain insights",
		"Prepare the data for ML algorithms",
		"Select a model and train it",
		"Fine-tune your model",
		"Present your solution",
		"Launch, monitor, and maintain your system",
	}, titles)

	for _, sec := range sections {
		assert.NotEmpty(t, sec.ID)
		assert.NotEmpty(t, sec.Items)
		assert.Empty(t, sec.Notes)
		for _, it := range sec.Items {
			assert.NotEmpty(t, it.ID)
			assert.NotEmpty(t, it.Text)
			assert.False(t, it.Checked)
		}
	}
}

func TestDefaultSectionsFreshIDsEachCall(t *testing.T) {
	a := DefaultSections()
	b := DefaultSections()
	require.Len(t, b, len(a))

	for i := range a {
		assert.Equal(t, a[i].Title, b[i].Title)
		assert.NotEqual(t, a[i].ID, b[i].ID)
		require.Len(t, b[i].Items, len(a[i].Items))
		for j := range a[i].Items {
			assert.Equal(t, a[i].Items[j].Text, b[i].Items[j].Text)
			assert.NotEqual(t, a[i].Items[j].ID, b[i].Items[j].ID)
		}
	}
}

func TestSubItemsAreIndented(t *testing.T) {
	sections := DefaultSections()

	// "Prepare the data" interleaves parent steps with indented sub-bullets.
	prepare := sections[3]
	var subCount int
	for _, it := range prepare.Items {
		if strings.HasPrefix(it.Text, "  - ") {
			subCount++
		}
	}
	assert.Greater(t, subCount, 5)
	assert.Equal(t, "Work on copies of the data (keep the original dataset intact)", prepare.Items[0].Text)

	// The model-selection section opens with its NOTE line.
	assert.True(t, strings.HasPrefix(sections[4].Items[0].Text, "NOTE: "))
}
