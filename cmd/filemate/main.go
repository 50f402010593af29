// Command filemate is the CLI entrypoint for FileMate, a bulk file renaming
// and extension-changing tool.
//
// It parses flags, validates configuration, and runs one session of the
// requested operation (rename or change-ext).
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Anshulgada/file-mate/internal/config"
	"github.com/Anshulgada/file-mate/internal/display"
	"github.com/Anshulgada/file-mate/internal/logging"
	"github.com/Anshulgada/file-mate/internal/session"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	inv, err := config.ParseArgs(os.Args[1:], version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "filemate: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(inv.Run.ColorMode, inv.Run.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "filemate: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: logger available, all output goes through log from here on.
	display.PrintBanner()
	log.Debug(inv.Run.Verbose, "FileMate v%s (%s)", version, commit)
	if inv.Run.DryRun {
		log.Warn("DRY RUN: no files will be touched")
	}

	// Phase 3: signal handling. Cancel the context on SIGINT/SIGTERM so the
	// session can stop between files without leaving half-applied work.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current file...")
		cancel()
	}()

	// Phase 4: Run the session. The core emits plain lines; color and the
	// interactive prompt stay on this side of the boundary.
	env := session.Env{
		Emit:    func(line string) { log.Plain("%s", line) },
		Confirm: promptYesNo,
	}
	opts := session.Options{
		DryRun:           inv.Run.DryRun,
		SkipConfirmation: inv.Run.Yes,
		Overwrite:        inv.Run.Force,
	}

	switch inv.Command {
	case config.CommandRename:
		_, err = session.RenameAll(ctx, &inv.Rename, opts, env)
	case config.CommandChangeExt:
		_, err = session.ChangeExtensions(ctx, &inv.ChangeExt, opts, env)
	}
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}

// promptYesNo asks a yes/no question on stdout and reads the answer from
// stdin. Anything but y/yes counts as no; so does a closed stdin.
func promptYesNo(question string) bool {
	fmt.Fprintf(os.Stdout, "%s [y/N]: ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
