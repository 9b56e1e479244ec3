package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beadscan/beadscan/internal/document"
	"github.com/beadscan/beadscan/internal/extract"
	"github.com/beadscan/beadscan/internal/xlsx"
)

func TestDeriveLabel(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/data/Kansas.pdf", "Kansas"},
		{"/data/New_Hampshire.pdf", "New Hampshire"},
		{"/data/north-dakota.pdf", "north dakota"},
		{"/data/newhampshire.pdf", "New Hampshire"},
		{"/data/DistrictOfColumbia.pdf", "District of Columbia"},
		{"/data/puertorico.PDF", "Puerto Rico"},
		{"Nevada.pdf", "Nevada"},
		{"/data/double__underscore.pdf", "double underscore"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveLabel(tt.path))
		})
	}
}

func TestFindPDFs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "B.PDF"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "c.pdf"), []byte("x"), 0o600))

	paths, err := FindPDFs(dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	for _, p := range paths {
		assert.NotContains(t, p, "notes.txt")
	}
}

func TestFindPDFs_MissingDirectory(t *testing.T) {
	_, err := FindPDFs("/nonexistent/input")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot access input directory")
}

func newTestRunner(t *testing.T, inputDir string) *Runner {
	t.Helper()
	service := extract.NewService(extract.Options{})
	writer := xlsx.NewWriter(t.TempDir())
	validator := document.NewValidator(1024 * 1024)
	return NewRunner(inputDir, 2, validator, service, writer)
}

func TestRunner_EmptyDirectory(t *testing.T) {
	runner := newTestRunner(t, t.TempDir())

	summaries, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestRunner_BadFileDoesNotAbortBatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "garbage.pdf"),
		[]byte("not really a PDF"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "also_garbage.pdf"),
		[]byte("still not a PDF"), 0o600))

	runner := newTestRunner(t, dir)
	summaries, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	for _, s := range summaries {
		assert.Error(t, s.Err)
		assert.Zero(t, s.Rows)
	}
}

func TestSummary_PageRange(t *testing.T) {
	assert.Equal(t, "?", Summary{}.PageRange())
	assert.Equal(t, "3-5", Summary{Pages: []int{3, 4, 5}}.PageRange())
	assert.Equal(t, "2-2", Summary{Pages: []int{2}}.PageRange())
}
