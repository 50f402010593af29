package naming

import (
	"os"
	"path/filepath"
)

// maxAttempts bounds the free-slot search per candidate. Bounding keeps
// worst-case per-file work constant and surfaces persistent pile-ups as
// visible conflicts instead of silently picking a distant index.
const maxAttempts = 10

// Outcome classifies how a target path was (or was not) chosen.
type Outcome int

const (
	// Resolved means a free path, or the file's own current path, was found.
	Resolved Outcome = iota
	// OverwriteAuthorized means the target exists and the caller allowed
	// replacing it; no further search was performed.
	OverwriteAuthorized
	// Exhausted means no usable path was found within maxAttempts.
	Exhausted
)

// Resolution is the per-candidate result of conflict resolution.
type Resolution struct {
	Path    string  // Chosen target path; empty when Exhausted.
	Index   int     // Index actually consumed; startIndex when Exhausted.
	Outcome Outcome
}

// Resolve searches for a usable target path in targetDir, starting at
// startIndex. nameFor renders the candidate target name for a given index;
// a nameFor error aborts resolution and is returned as-is (the caller
// counts it against the one candidate, not the session).
//
// A path counts as free when nothing exists there (checked with Lstat, so a
// dangling symlink occupies its name) or when it is selfPath; renaming a
// file onto its own current location is a no-op, not a conflict. When
// overwrite is authorized, the first occupied path is taken immediately;
// otherwise the index advances, up to maxAttempts tries in total.
func Resolve(targetDir string, nameFor func(index int) (string, error), startIndex int, selfPath string, overwrite bool) (Resolution, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		index := startIndex + attempt
		name, err := nameFor(index)
		if err != nil {
			return Resolution{}, err
		}
		path := filepath.Join(targetDir, name)

		if !pathExists(path) || path == selfPath {
			return Resolution{Path: path, Index: index, Outcome: Resolved}, nil
		}
		if overwrite {
			return Resolution{Path: path, Index: index, Outcome: OverwriteAuthorized}, nil
		}
	}
	return Resolution{Index: startIndex, Outcome: Exhausted}, nil
}

// pathExists reports whether anything occupies path, without following a
// symlink at path itself.
func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
