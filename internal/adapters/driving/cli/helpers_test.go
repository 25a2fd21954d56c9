package cli

import (
	"context"
	"fmt"

	"github.com/meridian-labs/themata/internal/adapters/driven/storage/memory"
	"github.com/meridian-labs/themata/internal/core/domain"
	"github.com/meridian-labs/themata/internal/core/ports/driven"
	"github.com/meridian-labs/themata/internal/core/services"
)

// fakeCoding is a canned CodingService for command tests.
type fakeCoding struct{}

func (f *fakeCoding) Generate(_ context.Context, feedback []string, _ string) (string, []driven.GeneratedEntry, error) {
	entries := make([]driven.GeneratedEntry, len(feedback))
	for i, text := range feedback {
		entries[i] = driven.GeneratedEntry{
			FeedbackID: fmt.Sprintf("fb-%d", i+1),
			Text:       text,
			Codewords:  []string{"engagement", "pacing"},
		}
	}
	return "sub-test", entries, nil
}

func (f *fakeCoding) RegenerateOne(context.Context, string) ([]string, error) {
	return []string{"clarity"}, nil
}

func (f *fakeCoding) SuggestSeeds(context.Context, string) ([]string, error) {
	return []string{"fun", "interactive"}, nil
}

// fakeAnalysis is a canned AnalysisService for command tests.
type fakeAnalysis struct{}

func (f *fakeAnalysis) ApproveCodewords(context.Context, string, []driven.ApprovedEntry) error {
	return nil
}

func (f *fakeAnalysis) Cluster(_ context.Context, submissionID string, _ domain.ThemePayload) (*domain.ClusterOutcome, error) {
	return &domain.ClusterOutcome{
		SubmissionID: submissionID,
		Themes:       map[string][]string{"engagement": {"fun"}},
		Assets:       map[string]string{domain.AssetBarChart: "data:image/png;base64,aGk="},
	}, nil
}

func (f *fakeAnalysis) ClusterManual(_ context.Context, codes []string, _ domain.ThemePayload) (*domain.ClusterOutcome, error) {
	return &domain.ClusterOutcome{
		SubmissionID: "sub-manual",
		Themes:       map[string][]string{"support": codes},
	}, nil
}

func (f *fakeAnalysis) FetchResults(_ context.Context, submissionID string) (*domain.ClusterOutcome, error) {
	return &domain.ClusterOutcome{
		SubmissionID: submissionID,
		Themes:       map[string][]string{"pacing": {"fast", "rushed"}},
	}, nil
}

func (f *fakeAnalysis) FetchCodewords(context.Context, string) ([]string, error) {
	return []string{"engagement", "pacing"}, nil
}

// setupTestServices wires a fresh workflow against canned services and
// returns a cleanup restoring the previous wiring.
func setupTestServices() func() {
	prevWorkflow := workflowService
	prevHistory := historyStore

	historyStore = memory.NewSubmissionStore()
	workflowService = services.NewWorkflow(&fakeCoding{}, &fakeAnalysis{}, historyStore)

	return func() {
		workflowService = prevWorkflow
		historyStore = prevHistory
	}
}
