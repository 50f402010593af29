package config

// This file implements CLI argument parsing for the two subcommands.
// Settings are layered viper-style: flag > FILEMATE_* environment variable >
// optional config file > default. Flags are GNU-style via pflag.

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Command identifies which subcommand was requested.
type Command string

const (
	CommandRename    Command = "rename"
	CommandChangeExt Command = "change-ext"
)

// RunOptions are the behavior switches shared by both subcommands.
type RunOptions struct {
	DryRun    bool
	Yes       bool // Skip the confirmation prompt.
	Force     bool // Overwrite existing target files.
	Verbose   bool
	ColorMode ColorMode
	LogFile   string
}

// Invocation is the fully parsed command line: the subcommand, its operation
// config (only the matching field is populated), and the run options.
type Invocation struct {
	Command   Command
	Rename    RenameConfig
	ChangeExt ChangeExtConfig
	Run       RunOptions
}

// ParseArgs parses argv (without the program name) into an Invocation.
// On --help or --version it prints and exits. On error it returns non-nil
// (unknown command, bad flag, missing positional args).
func ParseArgs(args []string, version string) (*Invocation, error) {
	if len(args) == 0 {
		printUsage(os.Stderr, version)
		return nil, errors.New("missing command")
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage(os.Stdout, version)
		os.Exit(0)
	case "-V", "--version":
		fmt.Fprintln(os.Stdout, "filemate v"+version)
		os.Exit(0)
	case string(CommandRename):
		return parseRename(args[1:])
	case string(CommandChangeExt):
		return parseChangeExt(args[1:])
	}
	return nil, fmt.Errorf("unknown command %q (use 'rename' or 'change-ext')", args[0])
}

// newSettings builds the viper layer for one subcommand: FILEMATE_*
// environment variables and an optional filemate.yaml in the user config
// directory supply defaults that flags override. A missing config file is
// not an error.
func newSettings() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("FILEMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("filemate")
	v.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "filemate"))
	}
	_ = v.ReadInConfig()
	return v
}

func parseRename(args []string) (*Invocation, error) {
	v := newSettings()
	v.SetDefault("pattern", "file_{i}")
	v.SetDefault("start", 1)
	v.SetDefault("color", string(ColorAuto))

	fs := pflag.NewFlagSet("filemate rename", pflag.ContinueOnError)
	fs.Usage = func() { printRenameUsage(os.Stderr) }
	fs.String("pattern", v.GetString("pattern"), "Rename pattern; {i} is the index placeholder")
	fs.String("ext", "", "Only rename files with these extensions (comma-separated)")
	fs.String("prefix", "", "Only rename files whose name starts with this prefix")
	fs.Int("start", v.GetInt("start"), "Starting index")
	fs.StringP("output-dir", "o", "", "Move renamed files into this directory")
	defineRunFlags(fs, v)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, errors.New("rename: need exactly one FOLDER argument")
	}

	run, err := runOptions(v)
	if err != nil {
		return nil, err
	}
	return &Invocation{
		Command: CommandRename,
		Rename: RenameConfig{
			SourceDir:  fs.Arg(0),
			OutputDir:  v.GetString("output-dir"),
			Extensions: SplitExtensions(v.GetString("ext")),
			Prefix:     v.GetString("prefix"),
			Pattern:    v.GetString("pattern"),
			Start:      v.GetInt("start"),
		},
		Run: run,
	}, nil
}

func parseChangeExt(args []string) (*Invocation, error) {
	v := newSettings()
	v.SetDefault("color", string(ColorAuto))

	fs := pflag.NewFlagSet("filemate change-ext", pflag.ContinueOnError)
	fs.Usage = func() { printChangeExtUsage(os.Stderr) }
	fs.String("to", "", "Target extension (leading dot optional, e.g. '.txt' or 'txt')")
	fs.String("from", "", "Only change files with these source extensions (comma-separated)")
	fs.String("prefix", "", "Only change files whose name starts with this prefix")
	fs.StringP("output-dir", "o", "", "Move changed files into this directory")
	defineRunFlags(fs, v)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, errors.New("change-ext: need exactly one FOLDER argument")
	}

	run, err := runOptions(v)
	if err != nil {
		return nil, err
	}
	return &Invocation{
		Command: CommandChangeExt,
		ChangeExt: ChangeExtConfig{
			SourceDir:      fs.Arg(0),
			OutputDir:      v.GetString("output-dir"),
			FromExtensions: SplitExtensions(v.GetString("from")),
			Prefix:         v.GetString("prefix"),
			NewExtension:   v.GetString("to"),
		},
		Run: run,
	}, nil
}

// defineRunFlags registers the switches shared by both subcommands.
func defineRunFlags(fs *pflag.FlagSet, v *viper.Viper) {
	fs.BoolP("dry-run", "d", false, "Preview changes without modifying any files")
	fs.BoolP("yes", "y", false, "Skip the confirmation prompt")
	fs.BoolP("force", "f", false, "Overwrite existing target files")
	fs.BoolP("verbose", "v", false, "Verbose output")
	fs.String("color", v.GetString("color"), "Color output: auto | always | never")
	fs.StringP("log", "l", "", "Append output to a log file")
}

// parseFlagSet parses args, treating --help as a clean exit.
func parseFlagSet(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		return err
	}
	return nil
}

func runOptions(v *viper.Viper) (RunOptions, error) {
	mode, err := ParseColorMode(v.GetString("color"))
	if err != nil {
		return RunOptions{}, err
	}
	return RunOptions{
		DryRun:    v.GetBool("dry-run"),
		Yes:       v.GetBool("yes"),
		Force:     v.GetBool("force"),
		Verbose:   v.GetBool("verbose"),
		ColorMode: mode,
		LogFile:   v.GetString("log"),
	}, nil
}

// printUsage writes the top-level help text. Column-aligned for readability.
func printUsage(w *os.File, version string) {
	writeUsage(w, []usageLine{
		{"", "FileMate v" + version + " - bulk file renaming and extension changes"},
		{"", ""},
		{"  filemate <command> [OPTIONS] <folder>", ""},
		{"", ""},
		{"Commands", ""},
		{"  rename", "Rename files to a numbered pattern"},
		{"  change-ext", "Change file extensions"},
		{"", ""},
		{"Utility", ""},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
		{"", ""},
		{"", "Run 'filemate <command> --help' for command options."},
		{"", "Defaults can come from FILEMATE_* env vars or filemate.yaml."},
	})
}

func printRenameUsage(w *os.File) {
	writeUsage(w, []usageLine{
		{"", "Rename files in a folder to a numbered pattern."},
		{"", ""},
		{"  filemate rename [OPTIONS] <folder>", ""},
		{"", ""},
		{"Selection", ""},
		{"  --ext <list>", "Only rename these extensions (e.g. '.jpg,.png')"},
		{"  --prefix <text>", "Only rename names starting with this prefix"},
		{"", ""},
		{"Naming", ""},
		{"  --pattern <pattern>", "New name pattern; {i} or {i:03d} (default: file_{i})"},
		{"  --start <n>", "Starting index (default: 1)"},
		{"  -o, --output-dir <dir>", "Move renamed files into this directory"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Preview only; do not touch any files"},
		{"  -y, --yes", "Skip the confirmation prompt"},
		{"  -f, --force", "Overwrite existing target files"},
		{"", ""},
		{"Display", ""},
		{"  --color <mode>", "auto | always | never (default: auto)"},
		{"  -v, --verbose", "Verbose output"},
		{"  -l, --log <path>", "Append output to file"},
	})
}

func printChangeExtUsage(w *os.File) {
	writeUsage(w, []usageLine{
		{"", "Change the extension of files in a folder."},
		{"", ""},
		{"  filemate change-ext [OPTIONS] --to <ext> <folder>", ""},
		{"", ""},
		{"Selection", ""},
		{"  --from <list>", "Only change these source extensions (e.g. '.jpg,.jpeg')"},
		{"  --prefix <text>", "Only change names starting with this prefix"},
		{"", ""},
		{"Naming", ""},
		{"  --to <ext>", "Target extension (required; leading dot optional)"},
		{"  -o, --output-dir <dir>", "Move changed files into this directory"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Preview only; do not touch any files"},
		{"  -y, --yes", "Skip the confirmation prompt"},
		{"  -f, --force", "Overwrite existing target files"},
		{"", ""},
		{"Display", ""},
		{"  --color <mode>", "auto | always | never (default: auto)"},
		{"  -v, --verbose", "Verbose output"},
		{"  -l, --log <path>", "Append output to file"},
	})
}

type usageLine struct {
	flags string
	desc  string
}

func writeUsage(w *os.File, lines []usageLine) {
	const col1 = 26 // width of "  -x, --long-name <arg>  "
	for _, l := range lines {
		switch {
		case l.flags == "" && l.desc == "":
			fmt.Fprintln(w)
		case l.desc == "":
			fmt.Fprintln(w, l.flags)
		case l.flags == "":
			fmt.Fprintln(w, l.desc)
		default:
			padding := col1 - len(l.flags)
			if padding < 1 {
				padding = 1
			}
			fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
		}
	}
}
