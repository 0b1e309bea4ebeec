package patch

import (
	"regexp"
	"strings"

	"github.com/cuba-labs/cuba-cli/internal/clierr"
)

var reInclude = regexp.MustCompile(`^(\s*)include\s*\((.*)\)\s*$`)

// AppendInclude adds module to the first include(...) line of a settings
// script. A module already listed is not added twice.
func AppendInclude(path, text, module string) (string, error) {
	lines, trailing := splitLines(text)
	for i, line := range lines {
		m := reInclude.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		var modules []string
		for _, part := range strings.Split(m[2], ",") {
			if part = strings.TrimSpace(part); part != "" {
				modules = append(modules, part)
			}
		}
		if contains(modules, module) {
			return text, nil
		}
		modules = append(modules, module)
		lines[i] = m[1] + "include(" + strings.Join(modules, ", ") + ")"
		return joinLines(lines, trailing), nil
	}
	return "", clierr.AnchorNotFound(path, "an include(...) line")
}

// ReplaceSnippet replaces the first occurrence of search with replace.
func ReplaceSnippet(path, text, search, replace string) (string, error) {
	if !strings.Contains(text, search) {
		return "", clierr.AnchorNotFound(path, quoteAnchor(search))
	}
	return strings.Replace(text, search, replace, 1), nil
}

// ContainsLine reports whether text has a line equal to line, ignoring
// surrounding whitespace.
func ContainsLine(text, line string) bool {
	want := strings.TrimSpace(line)
	lines, _ := splitLines(text)
	for _, l := range lines {
		if strings.TrimSpace(l) == want {
			return true
		}
	}
	return false
}

// AppendLines appends lines after a blank separator line.
func AppendLines(text string, lines ...string) string {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text + "\n" + strings.Join(lines, "\n") + "\n"
}

func quoteAnchor(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " ..."
	}
	return "\"" + s + "\""
}
