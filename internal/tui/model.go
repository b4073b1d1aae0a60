package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"clustersum/internal/domain"
	"clustersum/internal/summary"
)

// Model is the Bubble Tea model for browsing a summary table.
type Model struct {
	records   domain.SummaryTable
	visible   []int
	input     textinput.Model
	viewport  viewport.Model
	source    string
	status    string
	cursor    int
	ready     bool
	lastQuery string
}

// New creates a browser over records. source is shown in the header.
func New(records domain.SummaryTable, source string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Filter by label, term or example and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	m := Model{records: records, input: ti, viewport: vp, source: source}
	m.visible = m.filter("")
	m.status = fmt.Sprintf("%d clusters. Up/Down to browse.", len(records))
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := recordBoxStyle.GetFrameSize()
		_, qh := filterBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header, source, status, spacer
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, max(3, msg.Height-reserved)-rh)
		m.viewport.SetContent(m.renderCurrent())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			m.visible = m.filter(q)
			m.cursor = 0
			m.lastQuery = q
			switch {
			case q == "":
				m.status = fmt.Sprintf("%d clusters.", len(m.records))
			case len(m.visible) == 0:
				m.status = fmt.Sprintf("No clusters match %q", q)
			default:
				m.status = fmt.Sprintf("%d of %d clusters match %q", len(m.visible), len(m.records), q)
			}
			m.viewport.SetContent(m.renderCurrent())
			m.viewport.GotoTop()
			return m, nil
		case "down":
			if len(m.visible) > 0 {
				m.cursor = (m.cursor + 1) % len(m.visible)
				m.viewport.SetContent(m.renderCurrent())
				m.viewport.GotoTop()
				return m, nil
			}
		case "up":
			if len(m.visible) > 0 {
				m.cursor = (m.cursor - 1 + len(m.visible)) % len(m.visible)
				m.viewport.SetContent(m.renderCurrent())
				m.viewport.GotoTop()
				return m, nil
			}
		case "pgdown", "pgup":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and the selected cluster.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Cluster Summary")
	source := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.source)
	input := filterBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	body := recordBoxStyle.Render(m.viewport.View())
	return header + "\n" + source + "\n" + body + "\n" + input + "\n" + status
}

// Selected returns the record under the cursor.
func (m Model) Selected() (domain.SummaryRecord, bool) {
	if len(m.visible) == 0 {
		return domain.SummaryRecord{}, false
	}
	return m.records[m.visible[m.cursor]], true
}

// filter returns the indexes of records whose label, terms or examples
// contain every word of query, case-insensitively.
func (m Model) filter(query string) []int {
	words := wordRe.FindAllString(strings.ToLower(query), -1)
	out := make([]int, 0, len(m.records))
	for i, r := range m.records {
		hay := strings.ToLower(r.ClusterID.String() + " " + r.Label + " " + r.TopTerms + " " + r.Examples)
		match := true
		for _, w := range words {
			if !strings.Contains(hay, w) {
				match = false
				break
			}
		}
		if match {
			out = append(out, i)
		}
	}
	return out
}

func (m Model) renderCurrent() string {
	r, ok := m.Selected()
	if !ok {
		return "No clusters."
	}
	title := fmt.Sprintf("Cluster %s  (%d/%d)", r.ClusterID, m.cursor+1, len(m.visible))
	var b strings.Builder
	b.WriteString(title + "\n\n")
	fmt.Fprintf(&b, "Label:          %s\n", highlight(r.Label, m.lastQuery))
	fmt.Fprintf(&b, "Reviews:        %d\n", r.NumReviews)
	fmt.Fprintf(&b, "Verified ratio: %s\n", r.VerifiedRatio)
	fmt.Fprintf(&b, "Top terms:      %s\n\n", highlight(r.TopTerms, m.lastQuery))
	b.WriteString("Examples:\n")
	for _, ex := range strings.Split(r.Examples, summary.ExampleDelimiter) {
		if ex == "" {
			continue
		}
		b.WriteString("  • " + highlight(ex, m.lastQuery) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

var (
	recordBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	filterBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	wordRe         = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// highlight renders every word of text that occurs in query with
// highlightStyle.
func highlight(text, query string) string {
	q := toTokenSet(query)
	if len(q) == 0 {
		return text
	}
	return wordRe.ReplaceAllStringFunc(text, func(w string) string {
		if _, ok := q[strings.ToLower(w)]; ok {
			return highlightStyle.Render(w)
		}
		return w
	})
}

func toTokenSet(s string) map[string]struct{} {
	tokens := wordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}
