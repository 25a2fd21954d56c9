// Package results provides the clustering results view for the TUI.
package results

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/meridian-labs/themata/internal/adapters/driving/tui/styles"
	"github.com/meridian-labs/themata/internal/core/domain"
	"github.com/meridian-labs/themata/internal/core/ports/driving"
)

// View represents the clustering results view. Seed words the user typed
// during theme definition are highlighted inside the clustered lists.
type View struct {
	styles   *styles.Styles
	workflow driving.Workflow

	width  int
	height int
}

// NewView creates a new results view.
func NewView(s *styles.Styles, workflow driving.Workflow) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:   s,
		workflow: workflow,
		width:    80,
		height:   24,
	}
}

// Init initialises the results view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "enter", "esc":
			return v, tea.Quit
		}
	}

	return v, nil
}

// View renders the results view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Clustering Results"))
	b.WriteString("\n\n")

	outcome := v.workflow.Outcome()
	if outcome == nil {
		b.WriteString(v.styles.Muted.Render("No results yet."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf(
		"Submission %s: %d theme(s), %d word(s)",
		outcome.SubmissionID, len(outcome.Themes), outcome.WordCount())))
	b.WriteString("\n\n")

	labels := make([]string, 0, len(outcome.Themes))
	for theme := range outcome.Themes {
		labels = append(labels, theme)
	}
	sort.Strings(labels)

	editor := v.workflow.Editor()
	for _, theme := range labels {
		b.WriteString(v.styles.Normal.Render(theme))
		b.WriteString("\n")
		for _, word := range outcome.Themes[theme] {
			b.WriteString("  - ")
			if editor.HasSeed(word) {
				b.WriteString(v.styles.Highlight.Render(word))
			} else {
				b.WriteString(v.styles.Muted.Render(word))
			}
			b.WriteString("\n")
		}
	}

	if assets := v.availableAssets(outcome); len(assets) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Charts available: " + strings.Join(assets, ", ")))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Use 'themata results " + outcome.SubmissionID + " --save-assets DIR' to export them."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[q] quit"))

	return b.String()
}

// availableAssets lists the asset names present in display order.
func (v *View) availableAssets(outcome *domain.ClusterOutcome) []string {
	var names []string
	for _, name := range domain.AssetNames {
		if _, ok := outcome.Asset(name); ok {
			names = append(names, name)
		}
	}
	return names
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
