package analysis

import (
	"encoding/json"
	"fmt"

	"github.com/meridian-labs/themata/internal/core/domain"
	"github.com/meridian-labs/themata/internal/logger"
)

// rawResult is the shape the server returns for every clustering endpoint.
// The theme map may arrive under "results" or "themes" depending on the
// server version, and any asset field may be absent.
type rawResult struct {
	PublicID     string `json:"public_id"`
	SubmissionID string `json:"submission_id"`

	Results map[string][]string `json:"results"`
	Themes  map[string][]string `json:"themes"`

	ScatterPlot string `json:"scatter_plot"`
	BarChart    string `json:"bar_chart"`
	PieChart    string `json:"pie_chart"`
	WordCloud   string `json:"word_cloud"`
}

// NormalizeResult converts a raw server response into a ClusterOutcome.
// Missing visual assets are tolerated and skipped; a missing theme map is
// the one thing the rest of the workflow cannot do without, so it fails
// with ErrMalformedResult.
func NormalizeResult(raw json.RawMessage) (*domain.ClusterOutcome, error) {
	var res rawResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResult, err)
	}

	themes := res.Results
	if themes == nil {
		themes = res.Themes
	}
	if themes == nil {
		return nil, fmt.Errorf("%w: no theme map in response", domain.ErrMalformedResult)
	}

	outcome := &domain.ClusterOutcome{
		SubmissionID: res.PublicID,
		Themes:       make(map[string][]string, len(themes)),
		Assets:       make(map[string]string),
	}
	if outcome.SubmissionID == "" {
		outcome.SubmissionID = res.SubmissionID
	}
	for theme, words := range themes {
		if len(words) == 0 {
			logger.Debug("dropping theme %q with no clustered words", theme)
			continue
		}
		outcome.Themes[theme] = append([]string(nil), words...)
	}

	for name, value := range map[string]string{
		domain.AssetScatterPlot: res.ScatterPlot,
		domain.AssetBarChart:    res.BarChart,
		domain.AssetPieChart:    res.PieChart,
		domain.AssetWordCloud:   res.WordCloud,
	} {
		if value != "" {
			outcome.Assets[name] = value
		}
	}

	return outcome, nil
}
