package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func read(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestExecuteDryRunTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	write(t, src, "data")

	require.NoError(t, execute(src, dst, false, false, true))

	assert.FileExists(t, src)
	assert.NoFileExists(t, dst)
}

func TestExecuteSameDirRename(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	write(t, src, "data")

	require.NoError(t, execute(src, dst, false, false, false))

	assert.NoFileExists(t, src)
	assert.Equal(t, "data", read(t, dst))
}

func TestExecuteSelfRenameIsNoOp(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	write(t, src, "data")

	require.NoError(t, execute(src, src, false, false, false))
	assert.Equal(t, "data", read(t, src))
}

func TestExecuteCrossDirectoryMove(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	src := filepath.Join(srcDir, "a.txt")
	dst := filepath.Join(dstDir, "a.txt")
	write(t, src, "data")

	require.NoError(t, execute(src, dst, true, false, false))

	assert.NoFileExists(t, src)
	assert.Equal(t, "data", read(t, dst))
}

func TestExecuteRaceSurfacesTargetExists(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	write(t, src, "new")
	// Simulate another actor claiming the target after resolution.
	write(t, dst, "old")

	err := execute(src, dst, false, false, false)
	assert.ErrorIs(t, err, ErrTargetExists)
	assert.Equal(t, "old", read(t, dst))
	assert.Equal(t, "new", read(t, src))
}

func TestExecuteOverwriteReplacesTarget(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	write(t, src, "new")
	write(t, dst, "old")

	require.NoError(t, execute(src, dst, false, true, false))

	assert.NoFileExists(t, src)
	assert.Equal(t, "new", read(t, dst))
}

func TestMoveFilePreservesContent(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()
	src := filepath.Join(srcDir, "big.bin")
	dst := filepath.Join(dstDir, "big.bin")
	write(t, src, "payload bytes")

	require.NoError(t, moveFile(src, dst))
	assert.Equal(t, "payload bytes", read(t, dst))
	assert.NoFileExists(t, src)
}

func TestCopyFilePreservesMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "script.sh")
	dst := filepath.Join(dir, "copy.sh")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\n"), 0o755))

	require.NoError(t, copyFile(src, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}
