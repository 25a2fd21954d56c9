package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/meridian-labs/themata/internal/core/domain"
	"github.com/meridian-labs/themata/internal/core/ports/driven"
	"github.com/meridian-labs/themata/internal/core/ports/driving"
	"github.com/meridian-labs/themata/internal/logger"
)

// Ensure Workflow implements the interface.
var _ driving.Workflow = (*Workflow)(nil)

// Workflow is the submission lifecycle controller. It exclusively owns the
// current stage and the submission identifier, and is single-flight
// globally: only one of Generating/Clustering may be active at a time,
// enforced by the stage checks themselves.
type Workflow struct {
	coding   driven.CodingService
	analysis driven.AnalysisService
	history  driven.SubmissionStore

	ledger *ReviewLedger
	editor *ThemeEditor

	mu           sync.RWMutex
	stage        domain.Stage
	submissionID string
	outcome      *domain.ClusterOutcome
}

// NewWorkflow creates a workflow in the Empty stage with a fresh ledger
// and editor. The history store is optional; when nil, runs are simply
// not recorded locally.
func NewWorkflow(coding driven.CodingService, analysis driven.AnalysisService, history driven.SubmissionStore) *Workflow {
	return &Workflow{
		coding:   coding,
		analysis: analysis,
		history:  history,
		ledger:   NewReviewLedger(coding),
		editor:   NewThemeEditor(coding),
	}
}

// Stage returns the current lifecycle stage.
func (w *Workflow) Stage() domain.Stage {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stage
}

// SubmissionID returns the server-issued identifier for this run.
func (w *Workflow) SubmissionID() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.submissionID
}

// Ledger returns the review ledger for this run.
func (w *Workflow) Ledger() driving.ReviewLedger {
	return w.ledger
}

// Editor returns the theme/seed editor for this run.
func (w *Workflow) Editor() driving.ThemeEditor {
	return w.editor
}

// Outcome returns the clustering outcome once ResultsReady.
func (w *Workflow) Outcome() *domain.ClusterOutcome {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.outcome
}

// StartGeneration runs the generation call and seeds the ledger. A failed
// call returns the workflow to Empty with no submission id retained.
func (w *Workflow) StartGeneration(ctx context.Context, feedback []string, contextNote string) error {
	if len(feedback) == 0 {
		return fmt.Errorf("%w: no feedback texts provided", domain.ErrValidation)
	}

	if err := w.enter(domain.StageEmpty, domain.StageGenerating); err != nil {
		return err
	}

	submissionID, err := w.ledger.Generate(ctx, feedback, contextNote)
	if err != nil {
		w.setStage(domain.StageEmpty)
		return err
	}

	w.mu.Lock()
	logger.Stage(w.stage, domain.StageReviewing)
	w.submissionID = submissionID
	w.stage = domain.StageReviewing
	w.mu.Unlock()

	w.record(ctx, "generated", len(w.ledger.Entries()), 0, nil)
	return nil
}

// AdvanceToThemes commits the approved codewords and moves to theme
// definition. The ledger gate is absolute: every entry must be approved.
// A failed commit leaves the workflow in Reviewing.
func (w *Workflow) AdvanceToThemes(ctx context.Context) error {
	w.mu.RLock()
	stage := w.stage
	submissionID := w.submissionID
	w.mu.RUnlock()

	if stage != domain.StageReviewing {
		return fmt.Errorf("%w: advance from %s", domain.ErrInvalidTransition, stage)
	}
	if !w.ledger.IsComplete() {
		return fmt.Errorf("%w: unapproved entries remain", domain.ErrReviewIncomplete)
	}

	if err := w.analysis.ApproveCodewords(ctx, submissionID, w.ledger.ApprovedPayload()); err != nil {
		return fmt.Errorf("commit approved codewords: %w", err)
	}

	w.setStage(domain.StageThemeDefining)
	w.record(ctx, "generated", len(w.ledger.Entries()), 0, nil)
	return nil
}

// RunClustering clusters the committed codewords under the editor's
// themes. A failure returns the workflow to ThemeDefining.
func (w *Workflow) RunClustering(ctx context.Context) error {
	if err := w.enter(domain.StageThemeDefining, domain.StageClustering); err != nil {
		return err
	}

	w.mu.RLock()
	submissionID := w.submissionID
	w.mu.RUnlock()

	payload := w.editor.IndexedPayload()
	outcome, err := w.analysis.Cluster(ctx, submissionID, payload)
	if err != nil {
		w.setStage(domain.StageThemeDefining)
		return fmt.Errorf("%w: %w", domain.ErrClusteringFailed, err)
	}

	w.mu.Lock()
	logger.Stage(w.stage, domain.StageResultsReady)
	w.outcome = outcome
	w.stage = domain.StageResultsReady
	w.mu.Unlock()

	w.record(ctx, "generated", len(w.ledger.Entries()), payload.ThemeCount(), outcome)
	return nil
}

// RunManualClustering clusters a manually entered code list, bypassing
// generation and review. There is no approval gate on this path; the code
// list is deduplicated and lower-cased before sending. Returns the codes
// dropped as duplicates.
func (w *Workflow) RunManualClustering(ctx context.Context, rawCodes []string) ([]string, error) {
	codes, duplicates := domain.NormalizeCodes(rawCodes)
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: no codes provided", domain.ErrValidation)
	}

	w.mu.Lock()
	if w.stage != domain.StageEmpty && w.stage != domain.StageThemeDefining {
		stage := w.stage
		w.mu.Unlock()
		return nil, fmt.Errorf("%w: manual clustering from %s", domain.ErrInvalidTransition, stage)
	}
	prior := w.stage
	logger.Stage(prior, domain.StageClustering)
	w.stage = domain.StageClustering
	w.mu.Unlock()

	payload := w.editor.IndexedPayload()
	outcome, err := w.analysis.ClusterManual(ctx, codes, payload)
	if err != nil {
		w.setStage(prior)
		return duplicates, fmt.Errorf("%w: %w", domain.ErrClusteringFailed, err)
	}

	w.mu.Lock()
	logger.Stage(w.stage, domain.StageResultsReady)
	w.submissionID = outcome.SubmissionID
	w.outcome = outcome
	w.stage = domain.StageResultsReady
	w.mu.Unlock()

	w.record(ctx, "manual", len(codes), payload.ThemeCount(), outcome)
	return duplicates, nil
}

// LoadResults rehydrates results for a submission id, e.g. from a
// bookmarked identifier, without traversing the earlier stages. This is
// the one place state is rebuilt from the server instead of local
// transitions.
func (w *Workflow) LoadResults(ctx context.Context, submissionID string) (*domain.ClusterOutcome, error) {
	if submissionID == "" {
		return nil, fmt.Errorf("%w: submission id required", domain.ErrValidation)
	}

	outcome, err := w.analysis.FetchResults(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("fetch results: %w", err)
	}
	outcome.SubmissionID = submissionID

	w.mu.Lock()
	logger.Stage(w.stage, domain.StageResultsReady)
	w.submissionID = submissionID
	w.outcome = outcome
	w.stage = domain.StageResultsReady
	w.mu.Unlock()

	w.record(ctx, "resumed", 0, len(outcome.Themes), outcome)
	return outcome, nil
}

// FetchApprovedCodewords returns the committed codeword summary for the
// current submission.
func (w *Workflow) FetchApprovedCodewords(ctx context.Context) ([]string, error) {
	w.mu.RLock()
	submissionID := w.submissionID
	w.mu.RUnlock()

	if submissionID == "" {
		return nil, fmt.Errorf("%w: no submission", domain.ErrValidation)
	}
	words, err := w.analysis.FetchCodewords(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("fetch codewords: %w", err)
	}
	return words, nil
}

// enter moves from a required stage into a transient stage atomically.
func (w *Workflow) enter(from, to domain.Stage) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != from {
		return fmt.Errorf("%w: %s from %s", domain.ErrInvalidTransition, to, w.stage)
	}
	logger.Stage(w.stage, to)
	w.stage = to
	return nil
}

// setStage resets the stage after a transient call resolves.
func (w *Workflow) setStage(s domain.Stage) {
	w.mu.Lock()
	logger.Stage(w.stage, s)
	w.stage = s
	w.mu.Unlock()
}

// record persists the run's trace. Best effort: history is advisory and
// failures only log.
func (w *Workflow) record(ctx context.Context, source string, entryCount, themeCount int, outcome *domain.ClusterOutcome) {
	if w.history == nil {
		return
	}

	w.mu.RLock()
	rec := domain.SubmissionRecord{
		ID:         w.submissionID,
		Stage:      w.stage,
		Source:     source,
		EntryCount: entryCount,
		ThemeCount: themeCount,
		UpdatedAt:  time.Now(),
	}
	w.mu.RUnlock()

	if rec.ID == "" {
		return
	}
	if outcome != nil {
		if raw, err := json.Marshal(outcome.Themes); err == nil {
			rec.ResultJSON = string(raw)
		}
	}
	if existing, err := w.history.Get(ctx, rec.ID); err == nil && existing != nil {
		rec.CreatedAt = existing.CreatedAt
		if rec.EntryCount == 0 {
			rec.EntryCount = existing.EntryCount
		}
	} else {
		rec.CreatedAt = rec.UpdatedAt
	}

	if err := w.history.Save(ctx, rec); err != nil {
		logger.Warn("Failed to record submission %s: %v", rec.ID, err)
	}
}
