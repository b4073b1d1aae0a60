package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clustersum/internal/domain"
)

func records() domain.SummaryTable {
	return domain.SummaryTable{
		{ClusterID: domain.IntID(0), Label: "Positive", TopTerms: "good, product", NumReviews: 3,
			VerifiedRatio: domain.RatioOf(0.67), Examples: "good product\n---\nvery good"},
		{ClusterID: domain.IntID(1), Label: "Unknown", TopTerms: "excellent, service", NumReviews: 2,
			VerifiedRatio: domain.NARatio(), Examples: "excellent service"},
		{ClusterID: domain.StringID("x"), Label: "Shipping", TopTerms: "late, delivery", NumReviews: 1,
			VerifiedRatio: domain.RatioOf(1), Examples: "late delivery"},
	}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm
}

func typeText(t *testing.T, m Model, s string) Model {
	for _, r := range s {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestNavigationWraps(t *testing.T) {
	m := New(records(), "docs.csv")
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, domain.IntID(0), sel.ClusterID)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	sel, _ = m.Selected()
	assert.Equal(t, domain.IntID(1), sel.ClusterID)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	sel, _ = m.Selected()
	assert.Equal(t, domain.StringID("x"), sel.ClusterID)
}

func TestFilterOnEnter(t *testing.T) {
	m := New(records(), "docs.csv")
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	m = typeText(t, m, "Excellent")
	require.Len(t, m.visible, 1)
	sel, _ := m.Selected()
	assert.Equal(t, domain.IntID(1), sel.ClusterID)
	assert.Contains(t, m.status, "1 of 3")

	m.input.SetValue("nothing here")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.renderCurrent(), "No clusters")

	m.input.SetValue("")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Len(t, m.visible, 3)
}

func TestViewShowsRecord(t *testing.T) {
	m := New(records(), "docs.csv")
	assert.Equal(t, "Loading...", m.View())

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	view := m.View()
	assert.Contains(t, view, "Cluster Summary")
	assert.Contains(t, view, "Positive")
	assert.Contains(t, view, "0.67")
	assert.Contains(t, view, "very good")
}

func TestQuitKeys(t *testing.T) {
	m := New(records(), "")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHighlightKeepsText(t *testing.T) {
	assert.Equal(t, "good product", highlight("good product", ""))
	out := highlight("good product", "PRODUCT")
	assert.Contains(t, out, "good ")
	assert.Contains(t, out, "product")
}
