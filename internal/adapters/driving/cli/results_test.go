package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsCmd_RequiresSubmissionID(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"results"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestResultsCmd_PrintsThemes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"results", "sub-99"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Submission sub-99: 1 theme(s), 2 clustered word(s)")
	assert.Contains(t, out, "pacing (2)")
	assert.Contains(t, out, "- fast")
}

func TestResultsCmd_SaveAssets(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	dir := filepath.Join(t.TempDir(), "assets")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{
		"code", "--input", writeTempFile(t, "s.csv", "feedback\ngreat class\n"),
		"--approve-all", "--theme", "engagement", "--save-assets", dir,
	})
	defer resetCodeFlags()

	err := rootCmd.Execute()

	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "bar_chart.png"))
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
}

func TestCodewordsCmd_PrintsSummary(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"codewords", "sub-99"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Approved codewords (2):")
	assert.Contains(t, out, "engagement")
}

func TestDecodeDataURL(t *testing.T) {
	data, err := decodeDataURL("data:image/png;base64,aGk=")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))

	// Bare base64 without a prefix
	data, err = decodeDataURL("aGk=")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
}
