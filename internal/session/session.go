// Package session orchestrates one bulk file operation: scan, optional
// confirmation, then per-file name generation, conflict resolution, and
// execution, with per-file error recovery. Nothing one file throws is
// allowed to abort the files after it.
package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Anshulgada/file-mate/internal/config"
	"github.com/Anshulgada/file-mate/internal/naming"
	"github.com/Anshulgada/file-mate/internal/scan"
)

// previewLimit is the number of proposed changes shown before confirmation.
const previewLimit = 5

// Options are the caller-facing run switches shared by both operations.
type Options struct {
	DryRun           bool
	SkipConfirmation bool
	Overwrite        bool
}

// Env supplies the interactive collaborators. Emit receives progress and
// summary lines (plain text; the caller decides medium and color), Confirm
// asks a yes/no question. Either may be nil: a nil Emit discards output and
// a nil Confirm answers no.
type Env struct {
	Emit    func(line string)
	Confirm func(question string) bool
}

func (e Env) emit(format string, args ...interface{}) {
	if e.Emit != nil {
		e.Emit(fmt.Sprintf(format, args...))
	}
}

func (e Env) confirm(question string) bool {
	return e.Confirm != nil && e.Confirm(question)
}

// SelectionError reports that the source directory could not be scanned
// (vanished or unreadable between validation and scan). It halts the
// session before any mutation.
type SelectionError struct {
	Dir string
	Err error
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("cannot scan %s: %v", e.Dir, e.Err)
}

func (e *SelectionError) Unwrap() error { return e.Err }

// plan carries the per-operation specifics into the shared controller loop.
type plan struct {
	targetDir  string
	crossesDir bool
	startIndex int
	// nameFor renders the target name for one candidate at one index.
	nameFor func(c scan.Candidate, index int) (string, error)
	verb    string // Progress-line verb, e.g. "Renamed".
	title   string // Summary heading, e.g. "Rename".
	confirm string // Confirmation question.
}

// RenameAll renames every matching file in cfg.SourceDir to the configured
// pattern, returning the number of files renamed (or previewed in dry-run).
// The error is non-nil only for configuration or selection failures;
// per-file problems are counted and reported through env.Emit instead.
func RenameAll(ctx context.Context, cfg *config.RenameConfig, opts Options, env Env) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	res, err := scan.Scan(cfg.SourceDir, scan.Filter{
		Extensions: cfg.Extensions,
		Prefix:     cfg.Prefix,
	})
	if err != nil {
		return 0, &SelectionError{Dir: cfg.SourceDir, Err: err}
	}

	targetDir := cfg.SourceDir
	if cfg.OutputDir != "" {
		targetDir = cfg.OutputDir
	}

	env.emit("Processing files in: %s", cfg.SourceDir)
	env.emit("Rename pattern: %s (start index %d)", cfg.Pattern, cfg.Start)
	if cfg.OutputDir != "" {
		env.emit("Output directory: %s", cfg.OutputDir)
	}

	p := plan{
		targetDir:  targetDir,
		crossesDir: cfg.OutputDir != "",
		startIndex: cfg.Start,
		nameFor: func(c scan.Candidate, index int) (string, error) {
			stem, err := naming.Format(cfg.Pattern, index)
			if err != nil {
				return "", err
			}
			return stem + c.Suffix, nil
		},
		verb:    "Renamed",
		title:   "Rename",
		confirm: fmt.Sprintf("Proceed with renaming files in '%s'?", cfg.SourceDir),
	}
	return run(ctx, p, opts, env, res)
}

// ChangeExtensions changes the extension of every matching file in
// cfg.SourceDir, returning the number of files changed (or previewed in
// dry-run). Error semantics match [RenameAll].
func ChangeExtensions(ctx context.Context, cfg *config.ChangeExtConfig, opts Options, env Env) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	res, err := scan.Scan(cfg.SourceDir, scan.Filter{
		Extensions:    cfg.FromExtensions,
		Prefix:        cfg.Prefix,
		ExcludeSuffix: cfg.NewExtension,
	})
	if err != nil {
		return 0, &SelectionError{Dir: cfg.SourceDir, Err: err}
	}

	targetDir := cfg.SourceDir
	if cfg.OutputDir != "" {
		targetDir = cfg.OutputDir
	}

	env.emit("Processing files in: %s", cfg.SourceDir)
	if len(cfg.FromExtensions) > 0 {
		env.emit("Filtering for source extensions: %s", strings.Join(cfg.FromExtensions, ", "))
	}
	env.emit("Target extension: %s", cfg.NewExtension)
	if cfg.OutputDir != "" {
		env.emit("Output directory: %s", cfg.OutputDir)
	}

	p := plan{
		targetDir:  targetDir,
		crossesDir: cfg.OutputDir != "",
		startIndex: 1,
		nameFor: func(c scan.Candidate, _ int) (string, error) {
			return c.Stem + cfg.NewExtension, nil
		},
		verb:    "Changed",
		title:   "Change Extension",
		confirm: fmt.Sprintf("Proceed with changing extensions to '%s' in '%s'?", cfg.NewExtension, cfg.SourceDir),
	}
	return run(ctx, p, opts, env, res)
}

// run is the shared state machine: Selecting → Confirming → Processing →
// Summarizing. The scan result is already in hand; this function owns the
// counters and the index cursor.
func run(ctx context.Context, p plan, opts Options, env Env, res scan.Result) (int, error) {
	var c Counters
	c.Already = res.AlreadyMatching

	// Symlinks come out of the raw scan here so they are counted, never
	// silently dropped.
	files := make([]scan.Candidate, 0, len(res.Candidates))
	for _, cand := range res.Candidates {
		if cand.Symlink {
			env.emit("Skipping symbolic link: %s", cand.Name)
			c.Symlinks++
			continue
		}
		files = append(files, cand)
	}

	if len(files) == 0 {
		env.emit("No files found matching criteria.")
		summarize(env, opts, p.title, &c)
		return 0, nil
	}

	if !opts.DryRun && !opts.SkipConfirmation {
		preview(env, p, files)
		if opts.Overwrite {
			env.emit("--force specified: existing target files WILL be overwritten!")
		}
		if !env.confirm(p.confirm) {
			env.emit("Operation cancelled.")
			summarize(env, opts, p.title, &c)
			return 0, nil
		}
	}

	// The output directory is created only now: after validation and a
	// positive (or skipped) confirmation, and never in dry-run.
	if !opts.DryRun && p.crossesDir {
		if err := os.MkdirAll(p.targetDir, 0o755); err != nil {
			return 0, fmt.Errorf("cannot create output directory %s: %w", p.targetDir, err)
		}
	}

	cursor := p.startIndex
	for _, f := range files {
		if ctx != nil && ctx.Err() != nil {
			env.emit("Interrupted.")
			break
		}
		cursor = processOne(p, opts, env, f, cursor, &c)
	}

	summarize(env, opts, p.title, &c)
	return c.Processed, nil
}

// processOne runs Name Generator → Conflict Resolver → Executor for a single
// candidate and returns the next index cursor. The cursor rule is uniform:
// a success (real or dry-run) consumes the resolved index, so the next file
// starts one past it; any skip advances one past the index that was
// attempted, so a blocked slot cannot stall every later file.
func processOne(p plan, opts Options, env Env, f scan.Candidate, cursor int, c *Counters) int {
	nameFor := func(index int) (string, error) { return p.nameFor(f, index) }

	resolution, err := naming.Resolve(p.targetDir, nameFor, cursor, f.Path, opts.Overwrite)
	if err != nil {
		env.emit("Error processing %s: %v", f.Name, err)
		c.Errors++
		return cursor + 1
	}
	if resolution.Outcome == naming.Exhausted {
		env.emit("Skipped (target exists): %s", f.Name)
		c.Conflicts++
		return cursor + 1
	}

	newName := filepath.Base(resolution.Path)
	overwrite := resolution.Outcome == naming.OverwriteAuthorized
	if overwrite && !opts.DryRun {
		env.emit("Overwriting existing file: %s", newName)
	}

	err = execute(f.Path, resolution.Path, p.crossesDir, overwrite, opts.DryRun)
	switch {
	case err == nil:
		if opts.DryRun {
			env.emit("[DRY RUN] %s → %s", f.Name, newName)
		} else {
			env.emit("%s: %s → %s", p.verb, f.Name, newName)
		}
		c.Processed++
		return resolution.Index + 1
	case errors.Is(err, ErrTargetExists):
		env.emit("File already exists (skipped): %s", newName)
		c.Conflicts++
	case errors.Is(err, fs.ErrPermission):
		env.emit("Permission denied (skipped): %s → %s", f.Name, newName)
		c.Errors++
	default:
		env.emit("Error processing %s: %v", f.Name, err)
		c.Errors++
	}
	return cursor + 1
}

// preview emits up to previewLimit proposed changes plus a remainder line.
// Proposals use sequential indices from the start index; conflict resolution
// happens later, per file.
func preview(env Env, p plan, files []scan.Candidate) {
	env.emit("")
	env.emit("--- Proposed Changes ---")
	index := p.startIndex
	for i, f := range files {
		if i >= previewLimit {
			break
		}
		name, err := p.nameFor(f, index)
		if err != nil {
			env.emit("- %s → (invalid pattern: %v)", f.Name, err)
			break
		}
		env.emit("- %s → %s", f.Name, name)
		index++
	}
	if len(files) > previewLimit {
		env.emit("- ... and %d more file(s)", len(files)-previewLimit)
	}
	env.emit("")
	env.emit("About to process %d file(s) in '%s'.", len(files), p.targetDir)
}

// summarize emits the closing counter block. Skip buckets appear only when
// non-zero, matching the progress output's shape.
func summarize(env Env, opts Options, title string, c *Counters) {
	env.emit("")
	env.emit("--- %s Summary ---", title)
	if opts.DryRun {
		env.emit("Files previewed: %d", c.Processed)
	} else {
		env.emit("Files processed successfully: %d", c.Processed)
	}
	if c.Conflicts > 0 {
		env.emit("Files skipped (target conflicts): %d", c.Conflicts)
	}
	if c.Errors > 0 {
		env.emit("Files skipped (errors): %d", c.Errors)
	}
	if c.Already > 0 {
		env.emit("Files skipped (already have target extension): %d", c.Already)
	}
	if c.Symlinks > 0 {
		env.emit("Symbolic links skipped: %d", c.Symlinks)
	}
}
