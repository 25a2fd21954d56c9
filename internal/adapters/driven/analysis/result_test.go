package analysis

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/themata/internal/core/domain"
)

func TestNormalizeResult_FullResponse(t *testing.T) {
	raw := json.RawMessage(`{
		"results": {
			"engagement": ["fun", "interactive"],
			"pacing": ["fast", "rushed"]
		},
		"scatter_plot": "data:image/png;base64,AAA",
		"bar_chart": "data:image/png;base64,BBB",
		"pie_chart": "data:image/png;base64,CCC",
		"word_cloud": "data:image/png;base64,DDD"
	}`)

	outcome, err := NormalizeResult(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"fun", "interactive"}, outcome.Themes["engagement"])
	assert.Equal(t, []string{"fast", "rushed"}, outcome.Themes["pacing"])
	assert.Len(t, outcome.Assets, 4)
	assert.Equal(t, "data:image/png;base64,BBB", outcome.Assets[domain.AssetBarChart])
}

func TestNormalizeResult_MissingAssetIsTolerated(t *testing.T) {
	raw := json.RawMessage(`{
		"results": {"engagement": ["fun"]},
		"scatter_plot": "data:image/png;base64,AAA"
	}`)

	outcome, err := NormalizeResult(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"fun"}, outcome.Themes["engagement"])
	assert.Contains(t, outcome.Assets, domain.AssetScatterPlot)
	assert.NotContains(t, outcome.Assets, domain.AssetBarChart)
	assert.NotContains(t, outcome.Assets, domain.AssetWordCloud)
}

func TestNormalizeResult_ThemesKeyVariant(t *testing.T) {
	raw := json.RawMessage(`{"themes": {"clarity": ["clear", "structured"]}}`)

	outcome, err := NormalizeResult(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"clear", "structured"}, outcome.Themes["clarity"])
	assert.Empty(t, outcome.Assets)
}

func TestNormalizeResult_MissingThemeMapFails(t *testing.T) {
	raw := json.RawMessage(`{"scatter_plot": "data:image/png;base64,AAA"}`)

	_, err := NormalizeResult(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedResult))
}

func TestNormalizeResult_InvalidJSONFails(t *testing.T) {
	_, err := NormalizeResult(json.RawMessage(`not json`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedResult))
}

func TestNormalizeResult_CarriesServerID(t *testing.T) {
	raw := json.RawMessage(`{"public_id": "sub-777", "results": {"support": ["peer support"]}}`)

	outcome, err := NormalizeResult(raw)
	require.NoError(t, err)
	assert.Equal(t, "sub-777", outcome.SubmissionID)
}

func TestNormalizeResult_SubmissionIDKeyVariant(t *testing.T) {
	raw := json.RawMessage(`{"submission_id": "sub-778", "results": {"support": ["autonomy"]}}`)

	outcome, err := NormalizeResult(raw)
	require.NoError(t, err)
	assert.Equal(t, "sub-778", outcome.SubmissionID)
}

func TestNormalizeResult_DropsEmptyThemes(t *testing.T) {
	raw := json.RawMessage(`{"results": {"engagement": ["fun"], "unused": []}}`)

	outcome, err := NormalizeResult(raw)
	require.NoError(t, err)
	assert.Contains(t, outcome.Themes, "engagement")
	assert.NotContains(t, outcome.Themes, "unused")
}
