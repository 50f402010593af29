package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// touch creates an empty file named name inside dir.
func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func numbered(index int) (string, error) {
	return fmt.Sprintf("file_%d.txt", index), nil
}

func TestResolveFreePath(t *testing.T) {
	dir := t.TempDir()

	res, err := Resolve(dir, numbered, 1, "", false)
	require.NoError(t, err)
	assert.Equal(t, Resolved, res.Outcome)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, filepath.Join(dir, "file_1.txt"), res.Path)
}

func TestResolveAdvancesPastOccupied(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "file_1.txt")
	touch(t, dir, "file_2.txt")

	res, err := Resolve(dir, numbered, 1, "", false)
	require.NoError(t, err)
	assert.Equal(t, Resolved, res.Outcome)
	assert.Equal(t, 3, res.Index)
	assert.Equal(t, filepath.Join(dir, "file_3.txt"), res.Path)
}

func TestResolveSelfPathIsNotAConflict(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "file_1.txt")

	self := filepath.Join(dir, "file_1.txt")
	res, err := Resolve(dir, numbered, 1, self, false)
	require.NoError(t, err)
	assert.Equal(t, Resolved, res.Outcome)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, self, res.Path)
}

func TestResolveOverwriteTakesFirstIndex(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "file_1.txt")
	touch(t, dir, "file_2.txt")

	// Overwrite wins immediately; no search for a free slot.
	res, err := Resolve(dir, numbered, 1, "", true)
	require.NoError(t, err)
	assert.Equal(t, OverwriteAuthorized, res.Outcome)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, filepath.Join(dir, "file_1.txt"), res.Path)
}

func TestResolveExhaustsAfterTenAttempts(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 12; i++ {
		touch(t, dir, fmt.Sprintf("file_%d.txt", i))
	}

	res, err := Resolve(dir, numbered, 1, "", false)
	require.NoError(t, err)
	assert.Equal(t, Exhausted, res.Outcome)
	assert.Equal(t, 1, res.Index)
	assert.Empty(t, res.Path)
}

func TestResolveStopsExactlyAtBound(t *testing.T) {
	dir := t.TempDir()
	// Indices 1-10 occupied; 11 free but out of reach.
	for i := 1; i <= 10; i++ {
		touch(t, dir, fmt.Sprintf("file_%d.txt", i))
	}

	calls := 0
	nameFor := func(index int) (string, error) {
		calls++
		return numbered(index)
	}
	res, err := Resolve(dir, nameFor, 1, "", false)
	require.NoError(t, err)
	assert.Equal(t, Exhausted, res.Outcome)
	assert.Equal(t, 10, calls)
}

func TestResolveDanglingSymlinkOccupiesName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "file_1.txt")))

	res, err := Resolve(dir, numbered, 1, "", false)
	require.NoError(t, err)
	assert.Equal(t, Resolved, res.Outcome)
	assert.Equal(t, 2, res.Index)
}

func TestResolvePropagatesNameError(t *testing.T) {
	dir := t.TempDir()
	nameFor := func(int) (string, error) { return "", fmt.Errorf("bad placeholder") }

	_, err := Resolve(dir, nameFor, 1, "", false)
	assert.EqualError(t, err, "bad placeholder")
}
