package tui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"storyaudit/internal/adapters/tui/views"
	"storyaudit/internal/domain"
	"storyaudit/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewIssues ViewState = iota
	ViewHelp
)

// App is the issue browser application model
type App struct {
	root   string
	editor ports.EditorOpener

	state  ViewState
	issues *views.IssuesModel
	help   *views.HelpModel
}

// NewApp creates an issue browser for the report of the repository at root.
// editor may be nil, in which case files cannot be opened.
func NewApp(root string, acc *domain.Accumulator, rules *domain.Rules, editor ports.EditorOpener) *App {
	return &App{
		root:   root,
		editor: editor,
		state:  ViewIssues,
		issues: views.NewIssuesModel(acc, rules),
		help:   views.NewHelpModel(),
	}
}

// Issues returns the issue browser view
func (a *App) Issues() *views.IssuesModel {
	return a.issues
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.issues.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.issues.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToIssuesMsg:
		a.state = ViewIssues
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.issues.SetMessage("Editor: "+msg.err.Error(), true)
		}
		return a, nil
	}

	var cmd tea.Cmd
	switch a.state {
	case ViewIssues:
		_, cmd = a.issues.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}
	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(relPath string) tea.Cmd {
	if a.editor == nil {
		a.issues.SetMessage("No editor configured", true)
		return nil
	}

	cmd, err := a.editor.Command(filepath.Join(a.root, filepath.FromSlash(relPath)))
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	if a.state == ViewHelp {
		return a.help.View()
	}
	return a.issues.View()
}
