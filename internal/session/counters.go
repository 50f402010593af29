package session

// Counters tracks per-session accounting. Mutated only by the controller
// loop; read at the end to build the summary and the return value.
type Counters struct {
	Processed int // Files renamed/changed, or previewed in dry-run.
	Conflicts int // Skipped: target existed and overwrite was not authorized.
	Errors    int // Skipped: pattern-format or filesystem error.
	Symlinks  int // Skipped: symbolic links are never mutated.
	Already   int // Skipped: suffix already equals the target extension.
}
