package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/themata/internal/core/domain"
)

func TestHistoryCmd_EmptyList(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No submissions recorded.")
}

func TestHistoryCmd_ListsRecords(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	now := time.Now()
	require.NoError(t, historyStore.Save(context.Background(), domain.SubmissionRecord{
		ID:         "sub-1",
		Stage:      domain.StageResultsReady,
		Source:     "generated",
		EntryCount: 12,
		ThemeCount: 3,
		CreatedAt:  now,
		UpdatedAt:  now,
	}))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "list"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "sub-1")
	assert.Contains(t, out, "results_ready")
	assert.Contains(t, out, "entries=12")
}

func TestHistoryDeleteCmd_RemovesRecord(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	now := time.Now()
	require.NoError(t, historyStore.Save(context.Background(), domain.SubmissionRecord{
		ID: "sub-1", Stage: domain.StageResultsReady, CreatedAt: now, UpdatedAt: now,
	}))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"history", "delete", "sub-1"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Deleted sub-1")

	_, err = historyStore.Get(context.Background(), "sub-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
