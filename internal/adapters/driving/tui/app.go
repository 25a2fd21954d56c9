// Package tui implements the interactive workflow interface following
// the Elm architecture. The app routes messages between the stage views;
// all workflow state lives behind the driving ports.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/meridian-labs/themata/internal/adapters/driving/tui/keymap"
	"github.com/meridian-labs/themata/internal/adapters/driving/tui/messages"
	"github.com/meridian-labs/themata/internal/adapters/driving/tui/styles"
	"github.com/meridian-labs/themata/internal/adapters/driving/tui/views/results"
	"github.com/meridian-labs/themata/internal/adapters/driving/tui/views/review"
	"github.com/meridian-labs/themata/internal/adapters/driving/tui/views/themes"
	"github.com/meridian-labs/themata/internal/core/ports/driving"
)

// App is the main TUI application. It implements tea.Model.
type App struct {
	workflow driving.Workflow
	ctx      context.Context
	styles   *styles.Styles

	// feedback and contextNote seed the generation call on startup.
	feedback    []string
	contextNote string

	reviewView  *review.View
	themesView  *themes.View
	resultsView *results.View

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the TUI application. Generation starts as soon as the
// program runs; the app opens on the review view in its generating state.
func NewApp(workflow driving.Workflow, feedback []string, contextNote string) *App {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	reviewView := review.NewView(s, km, workflow)
	reviewView.SetGenerating(true)

	return &App{
		workflow:    workflow,
		ctx:         context.Background(),
		styles:      s,
		feedback:    feedback,
		contextNote: contextNote,
		reviewView:  reviewView,
		themesView:  themes.NewView(s, km, workflow),
		resultsView: results.NewView(s, workflow),
		currentView: messages.ViewReview,
	}
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx == nil {
		ctx = context.Background()
	}
	a.ctx = ctx
	a.reviewView.WithContext(ctx)
	a.themesView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("themata"),
		a.generateCmd(),
		a.reviewView.Init(),
	)
}

// generateCmd dispatches the initial generation call.
func (a *App) generateCmd() tea.Cmd {
	return func() tea.Msg {
		err := a.workflow.StartGeneration(a.ctx, a.feedback, a.contextNote)
		return messages.GenerationCompleted{Err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.reviewView.SetDimensions(msg.Width, msg.Height)
		a.themesView.SetDimensions(msg.Width, msg.Height)
		a.resultsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case messages.GenerationCompleted:
		// A failed generation quits: the workflow rolled back to Empty
		// and there is nothing to review.
		if msg.Err != nil {
			a.err = msg.Err
			return a, tea.Quit
		}
		a.reviewView, cmd = a.reviewView.Update(msg)
		return a, cmd

	case messages.ApprovalCommitted:
		if msg.Err == nil {
			a.currentView = messages.ViewThemes
			return a, a.themesView.Init()
		}
		a.reviewView, cmd = a.reviewView.Update(msg)
		return a, cmd

	case messages.ClusteringCompleted:
		if msg.Err == nil {
			a.currentView = messages.ViewResults
			return a, a.resultsView.Init()
		}
		a.themesView, cmd = a.themesView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward everything else to the active view
	switch a.currentView {
	case messages.ViewReview:
		a.reviewView, cmd = a.reviewView.Update(msg)
	case messages.ViewThemes:
		a.themesView, cmd = a.themesView.Update(msg)
	case messages.ViewResults:
		a.resultsView, cmd = a.resultsView.Update(msg)
	case messages.ViewHelp:
		// Help view is static
	}

	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewReview:
		return a.reviewView.View()
	case messages.ViewThemes:
		return a.themesView.View()
	case messages.ViewResults:
		return a.resultsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.reviewView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Review:
  j/k, ↑/↓    Navigate entries
  h/l, ←/→    Navigate codewords
  a           Approve entry
  A           Approve all
  x           Remove codeword
  r           Regenerate entry
  enter       Continue when all approved

Themes:
  ↑/↓         Navigate rows
  tab         Switch theme/seeds field
  ctrl+n      Add theme row
  ctrl+d      Delete theme row
  ctrl+s      Suggest seed words
  enter       Run clustering

  ctrl+c      Quit`
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.reviewView.SetDimensions(width, height)
	a.themesView.SetDimensions(width, height)
	a.resultsView.SetDimensions(width, height)
}
