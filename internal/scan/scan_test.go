package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("content"), 0o644))
	}
}

func names(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Name
	}
	return out
}

func TestScanOrdering(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "c.txt", "a.txt", "b.txt")

	res, err := Scan(dir, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, names(res.Candidates))
}

func TestScanSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	writeFiles(t, filepath.Join(dir, "sub"), "nested.txt")

	res, err := Scan(dir, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, names(res.Candidates))
}

func TestScanExtensionFilterIsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.jpg", "b.JPG", "c.png", "d.txt")

	res, err := Scan(dir, Filter{Extensions: []string{".jpg"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.JPG"}, names(res.Candidates))
}

func TestScanPrefixFilterIsCaseSensitive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "IMG_1.jpg", "img_2.jpg", "other.jpg")

	res, err := Scan(dir, Filter{Prefix: "IMG_"})
	require.NoError(t, err)
	assert.Equal(t, []string{"IMG_1.jpg"}, names(res.Candidates))
}

func TestScanExcludeSuffixCountsAlreadyMatching(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.jpg", "b.jpeg", "c.JPEG", "d.png")

	res, err := Scan(dir, Filter{ExcludeSuffix: ".jpeg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "d.png"}, names(res.Candidates))
	assert.Equal(t, 2, res.AlreadyMatching)
}

func TestScanSymlinksAreFlaggedAndBypassFilters(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "real.txt")
	require.NoError(t, os.Symlink(filepath.Join(dir, "real.txt"), filepath.Join(dir, "link.md")))

	// The extension filter would exclude .md, but symlinks are always
	// surfaced so the session can count them.
	res, err := Scan(dir, Filter{Extensions: []string{".txt"}})
	require.NoError(t, err)
	require.Len(t, res.Candidates, 2)

	byName := map[string]Candidate{}
	for _, c := range res.Candidates {
		byName[c.Name] = c
	}
	assert.True(t, byName["link.md"].Symlink)
	assert.False(t, byName["real.txt"].Symlink)
}

func TestScanMissingDirectory(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), Filter{})
	assert.Error(t, err)
}

func TestSplitSuffix(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantStem   string
		wantSuffix string
	}{
		{"simple", "a.txt", "a", ".txt"},
		{"no suffix", "README", "README", ""},
		{"dotfile", ".env", ".env", ""},
		{"double extension keeps last", "archive.tar.gz", "archive.tar", ".gz"},
		{"trailing dot", "weird.", "weird", "."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stem, suffix := SplitSuffix(tt.in)
			assert.Equal(t, tt.wantStem, stem)
			assert.Equal(t, tt.wantSuffix, suffix)
		})
	}
}
