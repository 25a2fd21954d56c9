// Package review provides the codeword review view for the TUI.
package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/meridian-labs/themata/internal/adapters/driving/tui/keymap"
	"github.com/meridian-labs/themata/internal/adapters/driving/tui/messages"
	"github.com/meridian-labs/themata/internal/adapters/driving/tui/styles"
	"github.com/meridian-labs/themata/internal/core/domain"
	"github.com/meridian-labs/themata/internal/core/ports/driving"
)

// View represents the codeword review view. One transient state machine
// per entry: the ledger tracks regeneration slots, this view only renders
// them and dispatches commands.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	workflow driving.Workflow
	ctx      context.Context

	spinner spinner.Model

	// selected is the entry cursor; wordCursor indexes into the selected
	// entry's codewords.
	selected   int
	wordCursor int

	generating bool
	committing bool
	err        error

	width  int
	height int
	ready  bool
}

// NewView creates a new review view.
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

	return &View{
		styles:   s,
		keymap:   km,
		workflow: workflow,
		ctx:      context.Background(),
		spinner:  sp,
		width:    80,
		height:   24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetGenerating marks the initial generation call as in flight.
func (v *View) SetGenerating(on bool) {
	v.generating = on
}

// Init initialises the review view.
func (v *View) Init() tea.Cmd {
	return v.spinner.Tick
}

// Update handles messages for the review view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.GenerationCompleted:
		v.generating = false
		v.err = msg.Err
		return v, nil

	case messages.RegenerationCompleted:
		// Failures keep the prior codewords; surface the error inline
		v.err = msg.Err
		v.clampCursors()
		return v, nil

	case messages.ApprovalCommitted:
		v.committing = false
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
	if v.busy() {
		if key.Matches(msg, v.keymap.Quit) {
			return v, tea.Quit
		}
		return v, nil
	}

	ledger := v.workflow.Ledger()
	entries := ledger.Entries()

	switch {
	case key.Matches(msg, v.keymap.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
			v.wordCursor = 0
		}
		return v, nil

	case key.Matches(msg, v.keymap.Down):
		if v.selected < len(entries)-1 {
			v.selected++
			v.wordCursor = 0
		}
		return v, nil

	case key.Matches(msg, v.keymap.Left):
		if v.wordCursor > 0 {
			v.wordCursor--
		}
		return v, nil

	case key.Matches(msg, v.keymap.Right):
		if v.selected < len(entries) && v.wordCursor < len(entries[v.selected].Codewords)-1 {
			v.wordCursor++
		}
		return v, nil

	case key.Matches(msg, v.keymap.Approve):
		ledger.Approve(v.selected)
		return v, nil

	case key.Matches(msg, v.keymap.ApproveAll):
		ledger.ApproveAll()
		return v, nil

	case key.Matches(msg, v.keymap.Remove):
		ledger.RemoveCodeword(v.selected, v.wordCursor)
		v.clampCursors()
		return v, nil

	case key.Matches(msg, v.keymap.Regenerate):
		return v, v.regenerateCmd(v.selected)

	case key.Matches(msg, v.keymap.Continue):
		if !ledger.IsComplete() {
			v.err = fmt.Errorf("approve every entry before continuing")
			return v, nil
		}
		v.committing = true
		v.err = nil
		return v, tea.Batch(v.commitCmd(), v.spinner.Tick)
	}

	return v, nil
}

// regenerateCmd dispatches the regeneration call for one entry. The
// ledger rejects a second call while one is outstanding, which lands
// here as an inline error.
func (v *View) regenerateCmd(index int) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			err := v.workflow.Ledger().Regenerate(v.ctx, index)
			return messages.RegenerationCompleted{Index: index, Err: err}
		},
		v.spinner.Tick,
	)
}

// commitCmd dispatches the approval commit.
func (v *View) commitCmd() tea.Cmd {
	return func() tea.Msg {
		return messages.ApprovalCommitted{Err: v.workflow.AdvanceToThemes(v.ctx)}
	}
}

// busy reports whether a network call owns the view.
func (v *View) busy() bool {
	if v.generating || v.committing {
		return true
	}
	for _, e := range v.workflow.Ledger().Entries() {
		if e.Regen == domain.SlotInFlight {
			return true
		}
	}
	return false
}

// clampCursors keeps the cursors valid after removals or regenerations.
func (v *View) clampCursors() {
	entries := v.workflow.Ledger().Entries()
	if v.selected >= len(entries) {
		v.selected = len(entries) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
	if len(entries) == 0 {
		v.wordCursor = 0
		return
	}
	if max := len(entries[v.selected].Codewords) - 1; v.wordCursor > max {
		v.wordCursor = max
	}
	if v.wordCursor < 0 {
		v.wordCursor = 0
	}
}

// View renders the review view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Review Codewords"))
	b.WriteString("\n\n")

	if v.generating {
		b.WriteString(v.spinner.View())
		b.WriteString(v.styles.Pending.Render(" Generating codewords..."))
		b.WriteString("\n")
		return b.String()
	}

	ledger := v.workflow.Ledger()
	entries := ledger.Entries()
	if len(entries) == 0 {
		b.WriteString(v.styles.Muted.Render("No feedback entries."))
		b.WriteString("\n")
		return b.String()
	}

	approved := 0
	for _, e := range entries {
		if e.Approved {
			approved++
		}
	}
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("%d/%d approved", approved, len(entries))))
	b.WriteString("\n\n")

	for i, entry := range entries {
		b.WriteString(v.renderEntry(i, entry))
		b.WriteString("\n")
	}

	if v.committing {
		b.WriteString("\n")
		b.WriteString(v.spinner.View())
		b.WriteString(v.styles.Pending.Render(" Committing approved codewords..."))
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(
		"[a] approve  [A] approve all  [x] remove word  [r] regenerate  [enter] continue  [q] quit"))

	return b.String()
}

// renderEntry renders one feedback entry with its codeword chips.
func (v *View) renderEntry(i int, entry domain.FeedbackEntry) string {
	var b strings.Builder

	cursor := "  "
	if i == v.selected {
		cursor = "> "
	}

	mark := "[ ]"
	markStyle := v.styles.Muted
	switch {
	case entry.Approved:
		mark = "[✓]"
		markStyle = v.styles.Approved
	case entry.Regen == domain.SlotInFlight:
		mark = v.spinner.View()
		markStyle = v.styles.Pending
	case entry.Regen == domain.SlotFailed:
		mark = "[!]"
		markStyle = v.styles.Error
	}

	text := entry.Text
	if runes := []rune(text); len(runes) > v.width-10 && v.width > 13 {
		text = string(runes[:v.width-13]) + "..."
	}

	b.WriteString(cursor)
	b.WriteString(markStyle.Render(mark))
	b.WriteString(" ")
	b.WriteString(v.styles.Normal.Render(text))
	b.WriteString("\n      ")

	if len(entry.Codewords) == 0 {
		b.WriteString(v.styles.Muted.Render("(no codewords)"))
		return b.String()
	}

	for w, word := range entry.Codewords {
		if w > 0 {
			b.WriteString(" ")
		}
		if i == v.selected && w == v.wordCursor {
			b.WriteString(v.styles.Selected.Render("[" + word + "]"))
		} else {
			b.WriteString(v.styles.Muted.Render(word))
		}
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected entry index.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the last inline error.
func (v *View) Err() error {
	return v.err
}
