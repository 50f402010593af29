// Package naming generates target file names from index patterns and
// resolves conflicts with names already present on disk.
package naming

import (
	"fmt"
	"strconv"
	"strings"
)

// Format substitutes index into the pattern's single {i} placeholder.
//
// Supported placeholder forms: {i} and {i:0Nd} (zero-padded to width N;
// {i:d} is accepted as plain). {{ and }} render as literal braces. Any other
// placeholder or an unbalanced brace is an error; the caller treats it as a
// per-file failure, not a fatal one.
func Format(pattern string, index int) (string, error) {
	var b strings.Builder
	substituted := false

	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '{':
			if i+1 < len(pattern) && pattern[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(pattern[i:], '}')
			if end < 0 {
				return "", fmt.Errorf("pattern %q has an unclosed '{'", pattern)
			}
			if substituted {
				return "", fmt.Errorf("pattern %q has more than one index placeholder", pattern)
			}
			rendered, err := renderPlaceholder(pattern[i+1:i+end], index)
			if err != nil {
				return "", fmt.Errorf("pattern %q: %w", pattern, err)
			}
			b.WriteString(rendered)
			substituted = true
			i += end
		case '}':
			if i+1 < len(pattern) && pattern[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("pattern %q has an unmatched '}'", pattern)
		default:
			b.WriteByte(c)
		}
	}

	if !substituted {
		return "", fmt.Errorf("pattern %q has no {i} placeholder", pattern)
	}
	return b.String(), nil
}

// renderPlaceholder renders the inside of one {...} token.
func renderPlaceholder(spec string, index int) (string, error) {
	name, format, hasFormat := strings.Cut(spec, ":")
	if name != "i" {
		return "", fmt.Errorf("unknown placeholder {%s} (only {i} is supported)", spec)
	}
	if !hasFormat || format == "d" {
		return strconv.Itoa(index), nil
	}
	// Zero-padded decimal: 0Nd, e.g. {i:03d}.
	if len(format) > 2 && format[0] == '0' && format[len(format)-1] == 'd' {
		width, err := strconv.Atoi(format[1 : len(format)-1])
		if err == nil && width > 0 {
			return fmt.Sprintf("%0*d", width, index), nil
		}
	}
	return "", fmt.Errorf("unsupported format spec %q in {%s}", format, spec)
}
