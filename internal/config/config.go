// Package config holds operation configuration: defaults, CLI flag parsing,
// normalization, and validation. Configs are built once per invocation and
// validated eagerly before any filesystem mutation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// ParseColorMode converts a user-supplied string into a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return "", fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
}

// ConfigError reports invalid operation configuration. It is fatal and
// detected before any component touches the filesystem.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RenameConfig describes one bulk-rename invocation. Pattern must contain a
// single {i} index placeholder, optionally with a zero-pad width ({i:03d}).
type RenameConfig struct {
	SourceDir  string `validate:"required,dir"`
	OutputDir  string // Optional; created on demand after confirmation.
	Extensions []string
	Prefix     string
	Pattern    string `validate:"required"`
	Start      int    `validate:"gte=1"`
}

// ChangeExtConfig describes one bulk extension-change invocation.
type ChangeExtConfig struct {
	SourceDir      string `validate:"required,dir"`
	OutputDir      string // Optional; created on demand after confirmation.
	FromExtensions []string
	Prefix         string
	NewExtension   string `validate:"required"`
}

// validate is the singleton validator instance, shared by both config types.
var validate = validator.New()

// Validate normalizes the config in place and checks it. It returns a
// *ConfigError describing the first failure, or nil. Must be called before
// the config is handed to a session.
func (c *RenameConfig) Validate() error {
	c.SourceDir = NormalizeDirArg(c.SourceDir)
	c.OutputDir = NormalizeDirArg(c.OutputDir)
	c.Extensions = NormalizeExtensions(c.Extensions)
	c.Pattern = strings.TrimSpace(c.Pattern)

	if err := validate.Struct(c); err != nil {
		return asConfigError(err)
	}
	if strings.ContainsAny(c.Pattern, `/\`) {
		return &ConfigError{Field: "pattern", Reason: "must not contain path separators"}
	}
	return nil
}

// Validate normalizes the config in place and checks it. The new extension
// is trimmed and dot-prefixed ("txt" becomes ".txt").
func (c *ChangeExtConfig) Validate() error {
	c.SourceDir = NormalizeDirArg(c.SourceDir)
	c.OutputDir = NormalizeDirArg(c.OutputDir)
	c.FromExtensions = NormalizeExtensions(c.FromExtensions)
	c.NewExtension = NormalizeExtension(c.NewExtension)

	if err := validate.Struct(c); err != nil {
		return asConfigError(err)
	}
	if strings.ContainsAny(c.NewExtension, `/\`) {
		return &ConfigError{Field: "extension", Reason: "must not contain path separators"}
	}
	return nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// NormalizeExtension trims an extension and ensures a leading dot. Empty or
// whitespace-only input yields "".
func NormalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// NormalizeExtensions lowercases, trims, and dot-prefixes a filter list,
// dropping empty entries and duplicates. An input that normalizes to nothing
// returns nil, meaning "no filter".
func NormalizeExtensions(exts []string) []string {
	var out []string
	seen := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = NormalizeExtension(strings.ToLower(e))
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// SplitExtensions splits a comma-separated extension list as typed on the
// command line (".jpg,.jpeg" or "jpg, jpeg"). Entries are only split and
// trimmed here; [NormalizeExtensions] canonicalizes them during Validate.
func SplitExtensions(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// fieldLabels maps struct fields to the names users know them by.
var fieldLabels = map[string]string{
	"SourceDir":    "folder",
	"OutputDir":    "output directory",
	"Pattern":      "pattern",
	"Start":        "start index",
	"NewExtension": "extension",
}

// asConfigError converts validator errors into a user-friendly *ConfigError.
func asConfigError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	e := verrs[0]
	field := fieldLabels[e.StructField()]
	if field == "" {
		field = strings.ToLower(e.StructField())
	}
	switch e.Tag() {
	case "required":
		return &ConfigError{Field: field, Reason: "must not be empty"}
	case "dir":
		return &ConfigError{Field: field, Reason: fmt.Sprintf("%v is not a valid directory", e.Value())}
	case "gte":
		return &ConfigError{Field: field, Reason: fmt.Sprintf("must be at least %s (got %v)", e.Param(), e.Value())}
	}
	return &ConfigError{Field: field, Reason: fmt.Sprintf("failed %q validation", e.Tag())}
}
