// Package themes provides the theme and seed-word editor view for the TUI.
package themes

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/meridian-labs/themata/internal/adapters/driving/tui/keymap"
	"github.com/meridian-labs/themata/internal/adapters/driving/tui/messages"
	"github.com/meridian-labs/themata/internal/adapters/driving/tui/styles"
	"github.com/meridian-labs/themata/internal/core/domain"
	"github.com/meridian-labs/themata/internal/core/ports/driving"
)

// fieldTheme and fieldSeeds identify which input of a row has focus.
const (
	fieldTheme = 0
	fieldSeeds = 1
)

// rowInputs is the pair of text inputs backing one editor row.
type rowInputs struct {
	theme textinput.Model
	seeds textinput.Model
}

// View represents the theme editor view. The editor service owns the
// rows; this view keeps a parallel slice of text inputs and pushes every
// edit straight through so the two never drift.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	workflow driving.Workflow
	ctx      context.Context

	spinner spinner.Model
	inputs  []rowInputs

	row        int
	field      int
	clustering bool
	err        error

	width  int
	height int
}

// NewView creates a new theme editor view.
func NewView(s *styles.Styles, km *keymap.KeyMap, workflow driving.Workflow) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Pending

	v := &View{
		styles:   s,
		keymap:   km,
		workflow: workflow,
		ctx:      context.Background(),
		spinner:  sp,
		width:    80,
		height:   24,
	}
	v.syncInputs()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the theme editor view.
func (v *View) Init() tea.Cmd {
	v.syncInputs()
	v.focusCurrent()
	return textinput.Blink
}

// newInput builds a text input with shared settings.
func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 40
	return ti
}

// syncInputs rebuilds the input slice from the editor rows, preserving
// nothing: the editor is the source of truth.
func (v *View) syncInputs() {
	rows := v.workflow.Editor().Rows()
	v.inputs = make([]rowInputs, len(rows))
	for i, row := range rows {
		ri := rowInputs{
			theme: newInput("theme"),
			seeds: newInput("seed words, comma separated"),
		}
		ri.theme.SetValue(row.Theme)
		ri.seeds.SetValue(row.Seeds)
		v.inputs[i] = ri
	}
	if v.row >= len(v.inputs) {
		v.row = len(v.inputs) - 1
	}
	if v.row < 0 {
		v.row = 0
	}
}

// focusCurrent gives focus to the input under the cursor.
func (v *View) focusCurrent() {
	for i := range v.inputs {
		v.inputs[i].theme.Blur()
		v.inputs[i].seeds.Blur()
	}
	if len(v.inputs) == 0 {
		return
	}
	if v.field == fieldTheme {
		v.inputs[v.row].theme.Focus()
	} else {
		v.inputs[v.row].seeds.Focus()
	}
}

// Update handles messages for the theme editor view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SeedsSuggested:
		// Suggestion failures are advisory; just refresh from the editor
		v.syncInputs()
		v.focusCurrent()
		return v, nil

	case messages.ClusteringCompleted:
		v.clustering = false
		v.err = msg.Err
		return v, nil

	case spinner.TickMsg:
		if !v.busy() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.clustering {
		if msg.String() == "ctrl+c" {
			return v, tea.Quit
		}
		return v, nil
	}

	editor := v.workflow.Editor()

	switch {
	case msg.String() == "ctrl+c":
		return v, tea.Quit

	case msg.Type == tea.KeyUp:
		if v.row > 0 {
			v.row--
			v.focusCurrent()
		}
		return v, nil

	case msg.Type == tea.KeyDown:
		if v.row < len(v.inputs)-1 {
			v.row++
			v.focusCurrent()
		}
		return v, nil

	case key.Matches(msg, v.keymap.NextField):
		if v.field == fieldTheme {
			v.field = fieldSeeds
		} else {
			v.field = fieldTheme
		}
		v.focusCurrent()
		return v, nil

	case key.Matches(msg, v.keymap.AddRow):
		if editor.AddRow() {
			v.syncInputs()
			v.row = len(v.inputs) - 1
			v.field = fieldTheme
			v.focusCurrent()
		} else {
			v.err = fmt.Errorf("theme limit reached")
		}
		return v, nil

	case key.Matches(msg, v.keymap.DeleteRow):
		editor.RemoveRow(v.row)
		v.syncInputs()
		v.focusCurrent()
		return v, nil

	case key.Matches(msg, v.keymap.Suggest):
		return v, v.suggestCmd(v.row)

	case key.Matches(msg, v.keymap.Continue):
		v.clustering = true
		v.err = nil
		return v, tea.Batch(v.clusterCmd(), v.spinner.Tick)
	}

	// Everything else edits the focused input and mirrors it into the
	// editor service.
	if len(v.inputs) == 0 {
		return v, nil
	}

	var cmd tea.Cmd
	if v.field == fieldTheme {
		v.inputs[v.row].theme, cmd = v.inputs[v.row].theme.Update(msg)
		editor.UpdateTheme(v.row, v.inputs[v.row].theme.Value())
	} else {
		v.inputs[v.row].seeds, cmd = v.inputs[v.row].seeds.Update(msg)
		editor.UpdateSeeds(v.row, v.inputs[v.row].seeds.Value())
	}
	return v, cmd
}

// suggestCmd dispatches a seed suggestion call for one row.
func (v *View) suggestCmd(index int) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			applied := v.workflow.Editor().SuggestSeeds(v.ctx, index)
			return messages.SeedsSuggested{Index: index, Applied: applied}
		},
		v.spinner.Tick,
	)
}

// clusterCmd dispatches the clustering call.
func (v *View) clusterCmd() tea.Cmd {
	return func() tea.Msg {
		return messages.ClusteringCompleted{Err: v.workflow.RunClustering(v.ctx)}
	}
}

// busy reports whether a network call owns the view.
func (v *View) busy() bool {
	if v.clustering {
		return true
	}
	for _, row := range v.workflow.Editor().Rows() {
		if row.Suggest == domain.SlotInFlight {
			return true
		}
	}
	return false
}

// View renders the theme editor view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Define Themes"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Up to %d themes. Seed words steer the clustering.", domain.MaxThemeRows)))
	b.WriteString("\n\n")

	if len(v.inputs) == 0 {
		b.WriteString(v.styles.Muted.Render("No theme rows. Add one with ctrl+n."))
		b.WriteString("\n")
	}

	for i := range v.inputs {
		cursor := "  "
		if i == v.row {
			cursor = "> "
		}
		b.WriteString(cursor)
		b.WriteString(v.inputs[i].theme.View())
		b.WriteString("  ")
		b.WriteString(v.inputs[i].seeds.View())
		b.WriteString("\n")
	}

	if v.clustering {
		b.WriteString("\n")
		b.WriteString(v.spinner.View())
		b.WriteString(v.styles.Pending.Render(" Clustering..."))
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(
		"[tab] switch field  [ctrl+n] add  [ctrl+d] delete  [ctrl+s] suggest seeds  [enter] cluster"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Row returns the currently selected row index.
func (v *View) Row() int {
	return v.row
}

// Err returns the last inline error.
func (v *View) Err() error {
	return v.err
}
