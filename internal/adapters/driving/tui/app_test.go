package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/themata/internal/adapters/driving/tui/messages"
	"github.com/meridian-labs/themata/internal/core/domain"
	"github.com/meridian-labs/themata/internal/core/ports/driven"
	"github.com/meridian-labs/themata/internal/core/services"
)

type fakeCoding struct {
	generateErr error
}

func (f *fakeCoding) Generate(_ context.Context, feedback []string, _ string) (string, []driven.GeneratedEntry, error) {
	if f.generateErr != nil {
		return "", nil, f.generateErr
	}
	entries := make([]driven.GeneratedEntry, len(feedback))
	for i, text := range feedback {
		entries[i] = driven.GeneratedEntry{
			FeedbackID: fmt.Sprintf("fb-%d", i+1),
			Text:       text,
			Codewords:  []string{"engagement"},
		}
	}
	return "sub-1", entries, nil
}

func (f *fakeCoding) RegenerateOne(context.Context, string) ([]string, error) {
	return nil, nil
}

func (f *fakeCoding) SuggestSeeds(context.Context, string) ([]string, error) {
	return nil, nil
}

type fakeAnalysis struct{}

func (f *fakeAnalysis) ApproveCodewords(context.Context, string, []driven.ApprovedEntry) error {
	return nil
}

func (f *fakeAnalysis) Cluster(_ context.Context, id string, _ domain.ThemePayload) (*domain.ClusterOutcome, error) {
	return &domain.ClusterOutcome{SubmissionID: id, Themes: map[string][]string{"engagement": {"fun"}}}, nil
}

func (f *fakeAnalysis) ClusterManual(context.Context, []string, domain.ThemePayload) (*domain.ClusterOutcome, error) {
	return nil, nil
}

func (f *fakeAnalysis) FetchResults(context.Context, string) (*domain.ClusterOutcome, error) {
	return nil, nil
}

func (f *fakeAnalysis) FetchCodewords(context.Context, string) ([]string, error) {
	return nil, nil
}

func newTestApp(coding *fakeCoding) *App {
	wf := services.NewWorkflow(coding, &fakeAnalysis{}, nil)
	return NewApp(wf, []string{"great class", "too fast"}, "")
}

func TestNewApp_StartsOnReview(t *testing.T) {
	a := newTestApp(&fakeCoding{})

	assert.Equal(t, messages.ViewReview, a.CurrentView())
	assert.False(t, a.Ready())
}

func TestApp_WindowSizeMakesReady(t *testing.T) {
	a := newTestApp(&fakeCoding{})

	model, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	a = model.(*App)

	assert.True(t, a.Ready())
}

func TestApp_CtrlCQuits(t *testing.T) {
	a := newTestApp(&fakeCoding{})

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_GenerationFailureQuits(t *testing.T) {
	a := newTestApp(&fakeCoding{})
	boom := errors.New("server down")

	model, cmd := a.Update(messages.GenerationCompleted{Err: boom})
	a = model.(*App)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, boom, a.Err())
}

func TestApp_ApprovalCommittedAdvancesToThemes(t *testing.T) {
	a := newTestApp(&fakeCoding{})
	require.NoError(t, a.workflow.StartGeneration(context.Background(), []string{"text"}, ""))

	model, _ := a.Update(messages.ApprovalCommitted{Err: nil})
	a = model.(*App)

	assert.Equal(t, messages.ViewThemes, a.CurrentView())
}

func TestApp_ClusteringCompletedAdvancesToResults(t *testing.T) {
	a := newTestApp(&fakeCoding{})

	model, _ := a.Update(messages.ClusteringCompleted{Err: nil})
	a = model.(*App)

	assert.Equal(t, messages.ViewResults, a.CurrentView())
}

func TestApp_ClusteringFailureStaysOnThemes(t *testing.T) {
	a := newTestApp(&fakeCoding{})
	a.currentView = messages.ViewThemes

	model, _ := a.Update(messages.ClusteringCompleted{Err: errors.New("server down")})
	a = model.(*App)

	assert.Equal(t, messages.ViewThemes, a.CurrentView())
}

func TestApp_ViewRendersAllStages(t *testing.T) {
	a := newTestApp(&fakeCoding{})
	a.SetDimensions(100, 40)

	a.currentView = messages.ViewReview
	assert.Contains(t, a.View(), "Review Codewords")

	a.currentView = messages.ViewThemes
	assert.Contains(t, a.View(), "Define Themes")

	a.currentView = messages.ViewResults
	assert.Contains(t, a.View(), "Clustering Results")

	a.currentView = messages.ViewHelp
	assert.Contains(t, a.View(), "Help")
}

func TestApp_InitDispatchesGeneration(t *testing.T) {
	a := newTestApp(&fakeCoding{})

	cmd := a.Init()
	require.NotNil(t, cmd)

	found := false
	for _, m := range collectMsgs(cmd) {
		if gc, ok := m.(messages.GenerationCompleted); ok {
			found = true
			assert.NoError(t, gc.Err)
		}
	}
	assert.True(t, found, "Init should run the generation command")
	assert.Equal(t, domain.StageReviewing, a.workflow.Stage())
}

// collectMsgs executes a command tree and returns the produced messages.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
