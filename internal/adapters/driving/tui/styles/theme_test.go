package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.NotEmpty(t, theme.Primary)
	assert.NotEmpty(t, theme.Error)
	assert.NotEmpty(t, theme.Highlight)
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestNewStyles_CustomTheme(t *testing.T) {
	theme := DefaultTheme()
	theme.Primary = "#FFFFFF"

	s := NewStyles(theme)

	assert.Equal(t, theme, s.Theme())
}

func TestDefaultStyles_RenderDoesNotPanic(t *testing.T) {
	s := DefaultStyles()

	assert.NotPanics(t, func() {
		_ = s.Title.Render("title")
		_ = s.Approved.Render("approved")
		_ = s.Pending.Render("pending")
		_ = s.Highlight.Render("seed")
	})
}
