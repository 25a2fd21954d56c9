package services

import (
	"context"
	"fmt"

	"github.com/meridian-labs/themata/internal/core/domain"
	"github.com/meridian-labs/themata/internal/core/ports/driven"
)

// stubCoding is a configurable CodingService fake. Unset funcs return
// canned successes.
type stubCoding struct {
	generateFn   func(ctx context.Context, feedback []string, contextNote string) (string, []driven.GeneratedEntry, error)
	regenerateFn func(ctx context.Context, text string) ([]string, error)
	suggestFn    func(ctx context.Context, theme string) ([]string, error)

	generateCalls   int
	regenerateCalls int
	suggestCalls    int
}

func (s *stubCoding) Generate(ctx context.Context, feedback []string, contextNote string) (string, []driven.GeneratedEntry, error) {
	s.generateCalls++
	if s.generateFn != nil {
		return s.generateFn(ctx, feedback, contextNote)
	}
	entries := make([]driven.GeneratedEntry, len(feedback))
	for i, text := range feedback {
		entries[i] = driven.GeneratedEntry{
			FeedbackID: fmt.Sprintf("fb-%d", i+1),
			Text:       text,
			Codewords:  []string{"engagement", "pacing"},
		}
	}
	return "sub-123", entries, nil
}

func (s *stubCoding) RegenerateOne(ctx context.Context, text string) ([]string, error) {
	s.regenerateCalls++
	if s.regenerateFn != nil {
		return s.regenerateFn(ctx, text)
	}
	return []string{"regenerated"}, nil
}

func (s *stubCoding) SuggestSeeds(ctx context.Context, theme string) ([]string, error) {
	s.suggestCalls++
	if s.suggestFn != nil {
		return s.suggestFn(ctx, theme)
	}
	return []string{"teamwork", "shared goals"}, nil
}

// stubAnalysis is a configurable AnalysisService fake.
type stubAnalysis struct {
	approveFn       func(ctx context.Context, submissionID string, approved []driven.ApprovedEntry) error
	clusterFn       func(ctx context.Context, submissionID string, payload domain.ThemePayload) (*domain.ClusterOutcome, error)
	clusterManualFn func(ctx context.Context, codes []string, payload domain.ThemePayload) (*domain.ClusterOutcome, error)
	fetchResultsFn  func(ctx context.Context, submissionID string) (*domain.ClusterOutcome, error)
	fetchWordsFn    func(ctx context.Context, submissionID string) ([]string, error)

	approvedSeen []driven.ApprovedEntry
	codesSeen    []string
	payloadSeen  domain.ThemePayload
}

func (s *stubAnalysis) ApproveCodewords(ctx context.Context, submissionID string, approved []driven.ApprovedEntry) error {
	s.approvedSeen = approved
	if s.approveFn != nil {
		return s.approveFn(ctx, submissionID, approved)
	}
	return nil
}

func (s *stubAnalysis) Cluster(ctx context.Context, submissionID string, payload domain.ThemePayload) (*domain.ClusterOutcome, error) {
	s.payloadSeen = payload
	if s.clusterFn != nil {
		return s.clusterFn(ctx, submissionID, payload)
	}
	return &domain.ClusterOutcome{
		SubmissionID: submissionID,
		Themes:       map[string][]string{"pacing": {"too fast"}},
	}, nil
}

func (s *stubAnalysis) ClusterManual(ctx context.Context, codes []string, payload domain.ThemePayload) (*domain.ClusterOutcome, error) {
	s.codesSeen = codes
	s.payloadSeen = payload
	if s.clusterManualFn != nil {
		return s.clusterManualFn(ctx, codes, payload)
	}
	return &domain.ClusterOutcome{
		SubmissionID: "sub-manual",
		Themes:       map[string][]string{"support": codes},
	}, nil
}

func (s *stubAnalysis) FetchResults(ctx context.Context, submissionID string) (*domain.ClusterOutcome, error) {
	if s.fetchResultsFn != nil {
		return s.fetchResultsFn(ctx, submissionID)
	}
	return &domain.ClusterOutcome{
		Themes: map[string][]string{"pacing": {"too fast"}},
	}, nil
}

func (s *stubAnalysis) FetchCodewords(ctx context.Context, submissionID string) ([]string, error) {
	if s.fetchWordsFn != nil {
		return s.fetchWordsFn(ctx, submissionID)
	}
	return []string{"engagement", "pacing"}, nil
}
