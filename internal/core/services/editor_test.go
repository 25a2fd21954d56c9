package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/themata/internal/core/domain"
)

func TestThemeEditor_StartsWithOneEmptyRow(t *testing.T) {
	editor := NewThemeEditor(&stubCoding{})

	rows := editor.Rows()
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Theme)
	assert.Empty(t, rows[0].Seeds)
	assert.NotEmpty(t, rows[0].ID)
}

func TestThemeEditor_AddRow_HardCap(t *testing.T) {
	editor := NewThemeEditor(&stubCoding{})

	for i := 1; i < domain.MaxThemeRows; i++ {
		assert.True(t, editor.AddRow())
	}
	require.Len(t, editor.Rows(), domain.MaxThemeRows)

	// At the cap, adding is a no-op.
	assert.False(t, editor.AddRow())
	assert.Len(t, editor.Rows(), domain.MaxThemeRows)
}

func TestThemeEditor_RemoveRow_KeepsPairing(t *testing.T) {
	editor := NewThemeEditor(&stubCoding{})
	editor.AddRow()
	editor.AddRow()
	editor.UpdateTheme(0, "first")
	editor.UpdateSeeds(0, "a")
	editor.UpdateTheme(1, "second")
	editor.UpdateSeeds(1, "b")
	editor.UpdateTheme(2, "third")
	editor.UpdateSeeds(2, "c")

	editor.RemoveRow(1)

	rows := editor.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "first", rows[0].Theme)
	assert.Equal(t, "a", rows[0].Seeds)
	assert.Equal(t, "third", rows[1].Theme)
	assert.Equal(t, "c", rows[1].Seeds)
}

func TestThemeEditor_RemoveRow_DownToZero(t *testing.T) {
	editor := NewThemeEditor(&stubCoding{})

	editor.RemoveRow(0)

	assert.Empty(t, editor.Rows())

	// Out-of-range removal on an empty editor is ignored.
	editor.RemoveRow(0)
	assert.Empty(t, editor.Rows())
}

func TestThemeEditor_Update_RawReplace(t *testing.T) {
	editor := NewThemeEditor(&stubCoding{})

	editor.UpdateTheme(0, "  Collaboration ")
	editor.UpdateSeeds(0, " teamwork , ")

	rows := editor.Rows()
	assert.Equal(t, "  Collaboration ", rows[0].Theme)
	assert.Equal(t, " teamwork , ", rows[0].Seeds)

	// Out-of-range updates are ignored.
	editor.UpdateTheme(5, "x")
	editor.UpdateSeeds(-1, "y")
}

func TestThemeEditor_SuggestSeeds_Overwrites(t *testing.T) {
	coding := &stubCoding{}
	editor := NewThemeEditor(coding)
	editor.UpdateTheme(0, "collaboration")
	editor.UpdateSeeds(0, "stale")

	applied := editor.SuggestSeeds(context.Background(), 0)

	assert.True(t, applied)
	rows := editor.Rows()
	assert.Equal(t, "teamwork, shared goals", rows[0].Seeds)
	assert.Equal(t, domain.SlotSucceeded, rows[0].Suggest)
}

func TestThemeEditor_SuggestSeeds_BlankThemeNoOp(t *testing.T) {
	coding := &stubCoding{}
	editor := NewThemeEditor(coding)

	applied := editor.SuggestSeeds(context.Background(), 0)

	assert.False(t, applied)
	assert.Zero(t, coding.suggestCalls)
}

func TestThemeEditor_SuggestSeeds_FailureSwallowed(t *testing.T) {
	coding := &stubCoding{
		suggestFn: func(context.Context, string) ([]string, error) {
			return nil, errors.New("service down")
		},
	}
	editor := NewThemeEditor(coding)
	editor.UpdateTheme(0, "collaboration")
	editor.UpdateSeeds(0, "kept")

	applied := editor.SuggestSeeds(context.Background(), 0)

	// Suggestion is advisory: failure leaves seeds untouched, no error.
	assert.False(t, applied)
	rows := editor.Rows()
	assert.Equal(t, "kept", rows[0].Seeds)
	assert.Equal(t, domain.SlotFailed, rows[0].Suggest)
}

func TestThemeEditor_SuggestSeeds_RejectsConcurrent(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	coding := &stubCoding{
		suggestFn: func(context.Context, string) ([]string, error) {
			close(started)
			<-release
			return []string{"late"}, nil
		},
	}
	editor := NewThemeEditor(coding)
	editor.UpdateTheme(0, "collaboration")

	done := make(chan bool, 1)
	go func() {
		done <- editor.SuggestSeeds(context.Background(), 0)
	}()
	<-started

	// The row's slot is busy: the second call is a silent no-op.
	assert.False(t, editor.SuggestSeeds(context.Background(), 0))
	assert.Equal(t, 1, coding.suggestCalls)

	close(release)
	assert.True(t, <-done)
	assert.Equal(t, "late", editor.Rows()[0].Seeds)
}

func TestThemeEditor_SuggestSeeds_RowRemovedMidFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	coding := &stubCoding{
		suggestFn: func(context.Context, string) ([]string, error) {
			close(started)
			<-release
			return []string{"orphaned"}, nil
		},
	}
	editor := NewThemeEditor(coding)
	editor.UpdateTheme(0, "collaboration")

	done := make(chan bool, 1)
	go func() {
		done <- editor.SuggestSeeds(context.Background(), 0)
	}()
	<-started
	editor.RemoveRow(0)
	close(release)

	assert.False(t, <-done)
	assert.Empty(t, editor.Rows())
}

func TestThemeEditor_IndexedPayload_IncludesEmptyRows(t *testing.T) {
	editor := NewThemeEditor(&stubCoding{})
	editor.AddRow()
	editor.UpdateTheme(0, "pacing")
	editor.UpdateSeeds(0, "too fast, rushed")

	payload := editor.IndexedPayload()

	assert.Equal(t, "pacing", payload.Themes["theme[0]"])
	assert.Equal(t, "too fast, rushed", payload.Seeds["seeds[0]"])
	// The empty row is serialized as empty strings, not omitted.
	assert.Equal(t, "", payload.Themes["theme[1]"])
	assert.Equal(t, "", payload.Seeds["seeds[1]"])
}

func TestThemeEditor_HasSeed(t *testing.T) {
	editor := NewThemeEditor(&stubCoding{})
	editor.AddRow()
	editor.UpdateSeeds(0, "Teamwork,  Shared Goals")
	editor.UpdateSeeds(1, "autonomy")

	assert.True(t, editor.HasSeed("teamwork"))
	assert.True(t, editor.HasSeed("SHARED GOALS"))
	assert.True(t, editor.HasSeed(" autonomy "))
	assert.False(t, editor.HasSeed("pacing"))
	assert.False(t, editor.HasSeed(""))
}
