package mergers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resolvo/internal/model"
	"resolvo/internal/resolve"
)

func TestThreeWayMerger_CleanMerge(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "a.txt")

	triplet := resolve.ContentTriplet{
		Base:   "a\nb\nc",
		Local:  "a\nB\nc",
		Server: "a\nb\nc\nd",
	}

	m := NewThreeWayMerger()
	require.NoError(t, m.MergeContent(&model.Conflict{ID: 1}, triplet, local, local))

	b, err := os.ReadFile(local)
	require.NoError(t, err)
	assert.Equal(t, "a\nB\nc\nd", string(b))
}

func TestThreeWayMerger_ConflictMarkersStay(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "a.txt")

	triplet := resolve.ContentTriplet{
		Base:   "a\nb\nc",
		Local:  "a\nYOURS\nc",
		Server: "a\nTHEIRS\nc",
	}

	// Overlapping edits still complete; the markers are the user's problem.
	m := NewThreeWayMerger()
	require.NoError(t, m.MergeContent(&model.Conflict{ID: 2}, triplet, local, local))

	b, err := os.ReadFile(local)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<<<<<<< yours")
	assert.Contains(t, string(b), ">>>>>>> theirs")
}

func TestThreeWayMerger_ResolvedPathMovesFile(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "old.txt")
	resolved := filepath.Join(dir, "renamed.txt")
	require.NoError(t, os.WriteFile(local, []byte("a"), 0644))

	triplet := resolve.ContentTriplet{Base: "a", Local: "a", Server: "a\nb"}

	m := NewThreeWayMerger()
	require.NoError(t, m.MergeContent(&model.Conflict{ID: 3}, triplet, local, resolved))

	assert.NoFileExists(t, local)
	b, err := os.ReadFile(resolved)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", string(b))
}

func TestThreeWayMerger_EmptyResolvedPathFallsBack(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "a.txt")

	triplet := resolve.ContentTriplet{Base: "x", Local: "x", Server: "y"}

	m := NewThreeWayMerger()
	require.NoError(t, m.MergeContent(&model.Conflict{ID: 4}, triplet, local, ""))

	b, err := os.ReadFile(local)
	require.NoError(t, err)
	assert.Equal(t, "y", string(b))
}
