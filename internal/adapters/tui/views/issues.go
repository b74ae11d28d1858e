package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/sahilm/fuzzy"

	"storyaudit/internal/adapters/tui/styles"
	"storyaudit/internal/domain"
)

// IssuesKeyMap defines key bindings for the issue browser
type IssuesKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Filter   key.Binding
	Search   key.Binding
	Copy     key.Binding
	Edit     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var IssuesKeys = IssuesKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	Filter: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "filter type"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search files"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "edit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// SearchKeyMap defines key bindings while typing a file search
type SearchKeyMap struct {
	Accept key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "keep"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
}

// chromeLines is the height taken by everything but the issue list
const chromeLines = 14

// IssuesModel browses the issues of a validation report
type IssuesModel struct {
	ViewState

	acc   *domain.Accumulator
	rules *domain.Rules

	types     []domain.IssueCount
	filterIdx int // -1 shows every type
	filtered  []domain.Issue
	cursor    int // index into the current page

	pager     paginator.Model
	detail    viewport.Model
	search    textinput.Model
	searching bool

	writeClipboard func(string) error
}

// NewIssuesModel creates an issue browser over a finalized accumulator
func NewIssuesModel(acc *domain.Accumulator, rules *domain.Rules) *IssuesModel {
	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.PerPage = 10
	pager.ActiveDot = styles.HelpKey.Render("•")
	pager.InactiveDot = styles.MutedText.Render("•")

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "file name"
	search.CharLimit = 128

	m := &IssuesModel{
		acc:            acc,
		rules:          rules,
		types:          domain.CountByType(acc.IssuesFound),
		filterIdx:      -1,
		pager:          pager,
		detail:         viewport.New(80, 4),
		search:         search,
		writeClipboard: clipboard.WriteAll,
	}
	m.applyFilter()
	return m
}

// SetClipboard replaces the clipboard writer
func (m *IssuesModel) SetClipboard(write func(string) error) {
	m.writeClipboard = write
}

// Init initializes the issue browser
func (m *IssuesModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the view dimensions and page size
func (m *IssuesModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.PerPage = max(3, height-chromeLines)
	m.detail.Width = max(20, width-8)
	m.applyFilter()
}

// Filter returns the issue type currently shown, empty for all
func (m *IssuesModel) Filter() domain.IssueType {
	if m.filterIdx < 0 {
		return ""
	}
	return m.types[m.filterIdx].Type
}

// Query returns the file search query, empty when not searching
func (m *IssuesModel) Query() string {
	return m.search.Value()
}

// Searching reports whether the file search input has focus
func (m *IssuesModel) Searching() bool {
	return m.searching
}

// Visible returns the issues of the current page
func (m *IssuesModel) Visible() []domain.Issue {
	start, end := m.pager.GetSliceBounds(len(m.filtered))
	return m.filtered[start:end]
}

// Selected returns the issue under the cursor
func (m *IssuesModel) Selected() (domain.Issue, bool) {
	visible := m.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return domain.Issue{}, false
	}
	return visible[m.cursor], true
}

// Update handles messages for the issue browser
func (m *IssuesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	m.ClearMessage()

	if m.searching {
		return m, m.updateSearch(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, IssuesKeys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, IssuesKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		} else if !m.pager.OnFirstPage() {
			m.pager.PrevPage()
			m.cursor = len(m.Visible()) - 1
		}

	case key.Matches(keyMsg, IssuesKeys.Down):
		if m.cursor < len(m.Visible())-1 {
			m.cursor++
		} else if !m.pager.OnLastPage() {
			m.pager.NextPage()
			m.cursor = 0
		}

	case key.Matches(keyMsg, IssuesKeys.PrevPage):
		m.pager.PrevPage()
		m.cursor = 0

	case key.Matches(keyMsg, IssuesKeys.NextPage):
		m.pager.NextPage()
		m.cursor = 0

	case key.Matches(keyMsg, IssuesKeys.Filter):
		m.filterIdx++
		if m.filterIdx >= len(m.types) {
			m.filterIdx = -1
		}
		m.pager.Page = 0
		m.cursor = 0
		m.applyFilter()

	case key.Matches(keyMsg, IssuesKeys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(keyMsg, IssuesKeys.Copy):
		issue, ok := m.Selected()
		if !ok {
			return m, nil
		}
		path := m.rules.IssuePath(issue)
		if err := m.writeClipboard(path); err != nil {
			m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
		} else {
			m.SetMessage("Copied: "+path, false)
		}

	case key.Matches(keyMsg, IssuesKeys.Edit):
		issue, ok := m.Selected()
		if !ok {
			return m, nil
		}
		path := m.rules.IssuePath(issue)
		return m, func() tea.Msg {
			return OpenEditorMsg{Path: path}
		}

	case key.Matches(keyMsg, IssuesKeys.Help):
		return m, func() tea.Msg {
			return SwitchToHelpMsg{}
		}
	}

	m.refreshDetail()
	return m, nil
}

func (m *IssuesModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, SearchKeys.Accept):
		m.searching = false
		m.search.Blur()
		return nil

	case key.Matches(msg, SearchKeys.Cancel):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.pager.Page = 0
		m.cursor = 0
		m.applyFilter()
		return nil
	}

	prev := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != prev {
		m.pager.Page = 0
		m.cursor = 0
		m.applyFilter()
	}
	return cmd
}

func (m *IssuesModel) applyFilter() {
	m.filtered = matchFiles(domain.FilterByType(m.acc.IssuesFound, m.Filter()), m.search.Value())
	m.pager.SetTotalPages(len(m.filtered))
	if m.pager.Page >= m.pager.TotalPages {
		m.pager.Page = max(0, m.pager.TotalPages-1)
	}
	if visible := len(m.Visible()); m.cursor >= visible {
		m.cursor = max(0, visible-1)
	}
	m.refreshDetail()
}

// matchFiles keeps the issues whose file fuzzily matches query, in report order
func matchFiles(issues []domain.Issue, query string) []domain.Issue {
	query = strings.TrimSpace(query)
	if query == "" {
		return issues
	}

	files := make([]string, len(issues))
	for i, issue := range issues {
		files[i] = issue.File
	}

	matched := make([]bool, len(issues))
	for _, match := range fuzzy.Find(query, files) {
		matched[match.Index] = true
	}

	var kept []domain.Issue
	for i, issue := range issues {
		if matched[i] {
			kept = append(kept, issue)
		}
	}
	return kept
}

func (m *IssuesModel) refreshDetail() {
	issue, ok := m.Selected()
	if !ok {
		m.detail.SetContent(styles.MutedText.Render("No issue selected"))
		return
	}
	wrapped := lipgloss.NewStyle().Width(m.detail.Width).Render(issue.Message)
	m.detail.SetContent(wrapped)
	m.detail.GotoTop()
}

// View renders the issue browser
func (m *IssuesModel) View() string {
	v := NewViewBuilder()
	v.Title("📋 Validation Issues")
	v.Line(m.summaryLine())
	v.Line(m.scoreLine())
	v.BlankLine()
	v.Line(m.filterLine())
	if m.searching || m.search.Value() != "" {
		v.Line(m.search.View())
	}
	v.BlankLine()

	visible := m.Visible()
	if len(visible) == 0 {
		v.Line(styles.Success.Render("✅ No issues found"))
	}
	width := max(20, m.Width-8)
	for i, issue := range visible {
		line := fmt.Sprintf("%3d. %s %s",
			m.pager.Page*m.pager.PerPage+i+1, RenderIssueType(issue.Type), issue.File)
		if i == m.cursor {
			line = styles.IssueSelected.Render(Truncate(fmt.Sprintf("%3d. [%s] %s",
				m.pager.Page*m.pager.PerPage+i+1, issue.Type, issue.File), width))
		}
		v.Line(line)
	}
	if m.pager.TotalPages > 1 {
		v.Line("  " + m.pager.View())
	}

	v.BlankLine()
	v.Line(styles.Detail.Render(m.detail.View()))
	v.Message(m.Message, m.MessageErr)
	v.BlankLine()
	if m.searching {
		v.Help(SearchKeys.Accept, SearchKeys.Cancel)
	} else {
		v.Help(IssuesKeys.Up, IssuesKeys.Down, IssuesKeys.Filter, IssuesKeys.Search, IssuesKeys.Copy, IssuesKeys.Edit, IssuesKeys.Help, IssuesKeys.Quit)
	}
	return v.String()
}

func (m *IssuesModel) summaryLine() string {
	return styles.MutedText.Render(fmt.Sprintf("%d files • %s words • %d issues",
		m.acc.FilesChecked, humanize.Comma(int64(m.acc.TotalWordCount)), len(m.acc.IssuesFound)))
}

func (m *IssuesModel) scoreLine() string {
	var parts []string
	for pair := m.acc.ConfidenceScores.Oldest(); pair != nil; pair = pair.Next() {
		parts = append(parts, RenderScore(strings.ReplaceAll(pair.Key, "_", " "), pair.Value))
	}
	return strings.Join(parts, "  ")
}

func (m *IssuesModel) filterLine() string {
	label := styles.Label.Render("Filter:")
	if m.filterIdx < 0 {
		return fmt.Sprintf("%s all types (%d)", label, len(m.filtered))
	}
	return fmt.Sprintf("%s %s (%d)", label, RenderIssueType(m.Filter()), len(m.filtered))
}
