// Package scan enumerates the direct children of one directory and filters
// them down to the candidates an operation will touch. The scan is a pure
// read; ordering is lexicographic by name, which is load-bearing because it
// determines which file receives which generated index.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Candidate is one directory entry eligible for processing.
type Candidate struct {
	Path    string // Full path inside the scanned directory.
	Name    string // Base name with extension.
	Stem    string // Name without the final suffix.
	Suffix  string // Final suffix including the dot, original case. May be "".
	Symlink bool   // Symbolic links are never mutated, only counted downstream.
}

// Filter narrows the scan to matching regular files. Symbolic links bypass
// the filters so they can always be counted and skipped by the caller.
type Filter struct {
	// Extensions is the normalized (lowercase, dot-prefixed) suffix filter.
	// Empty means all files match. Matching is case-insensitive.
	Extensions []string

	// Prefix restricts entries to names starting with it (case-sensitive).
	Prefix string

	// ExcludeSuffix drops entries already bearing this suffix
	// (case-insensitive); they are counted in Result.AlreadyMatching
	// instead of being returned.
	ExcludeSuffix string
}

// Result is the outcome of one directory scan.
type Result struct {
	Candidates      []Candidate // Sorted by name; symlinks included, flagged.
	AlreadyMatching int         // Entries excluded because their suffix already matched ExcludeSuffix.
}

// Scan lists the direct children of dir (no recursion), keeping regular
// files and symbolic links. The error is the underlying os error when the
// directory vanished or is unreadable.
func Scan(dir string, f Filter) (Result, error) {
	entries, err := os.ReadDir(dir) // sorted by filename
	if err != nil {
		return Result{}, err
	}

	var res Result
	excludeLower := strings.ToLower(f.ExcludeSuffix)

	for _, e := range entries {
		mode := e.Type()
		symlink := mode&fs.ModeSymlink != 0
		if !symlink && !mode.IsRegular() {
			continue
		}

		name := e.Name()
		stem, suffix := SplitSuffix(name)
		cand := Candidate{
			Path:    filepath.Join(dir, name),
			Name:    name,
			Stem:    stem,
			Suffix:  suffix,
			Symlink: symlink,
		}

		if symlink {
			res.Candidates = append(res.Candidates, cand)
			continue
		}

		suffixLower := strings.ToLower(suffix)
		if excludeLower != "" && suffixLower == excludeLower {
			res.AlreadyMatching++
			continue
		}
		if len(f.Extensions) > 0 && !containsString(f.Extensions, suffixLower) {
			continue
		}
		if f.Prefix != "" && !strings.HasPrefix(name, f.Prefix) {
			continue
		}
		res.Candidates = append(res.Candidates, cand)
	}
	return res, nil
}

// SplitSuffix splits name into stem and suffix. A lone leading dot
// (dotfiles like ".env") does not count as a suffix separator.
func SplitSuffix(name string) (stem, suffix string) {
	ext := filepath.Ext(name)
	if ext == name {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
