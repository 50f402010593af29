package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
)

// ErrTargetExists reports that the target path appeared between conflict
// resolution and execution. The race is expected (another actor may touch
// the directory) and is handled as a per-file conflict skip, never a crash.
var ErrTargetExists = errors.New("target already exists")

// execute commits one candidate: a same-directory rename, or a move when the
// target lives in another directory or an authorized overwrite replaces an
// existing path. In dry-run mode nothing is touched and the call always
// succeeds, so dry-run accounting matches a live run.
func execute(src, dst string, crossesDir, overwrite, dryRun bool) error {
	if dryRun || src == dst {
		return nil
	}
	if !overwrite {
		// Re-check just before the write; resolution ran earlier.
		if _, err := os.Lstat(dst); err == nil {
			return ErrTargetExists
		}
	}
	if crossesDir || overwrite {
		return moveFile(src, dst)
	}
	return os.Rename(src, dst)
}

// moveFile renames src to dst, replacing dst if it exists, and falls back to
// copy-then-remove when the two paths sit on different filesystems.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// copyFile copies src to dst (truncating dst), preserving the source file mode.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	// OpenFile's perm is masked by umask; restore the exact source mode.
	return os.Chmod(dst, info.Mode().Perm())
}
