package patch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"
)

// SetProperty sets key to value in the properties file at path, replacing
// the existing entry or appending a new one. All other lines are kept byte
// for byte. A missing file is created.
func SetProperty(path, key, value string) error {
	text := ""
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		text = string(data)
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", path, err)
		}
	default:
		return fmt.Errorf("reading %s: %w", path, err)
	}

	patched := setProperty(text, key, value)
	if patched == text && err == nil {
		return nil
	}
	return WriteText(path, patched)
}

// GetProperty reads key from the properties file at path.
func GetProperty(path, key string) (string, bool, error) {
	l := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := l.LoadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("loading %s: %w", path, err)
	}
	v, ok := p.Get(key)
	return v, ok, nil
}

func setProperty(text, key, value string) string {
	entry := escapeKey(key) + " = " + escapeValue(value)
	lines, trailing := splitLines(text)

	for i := 0; i < len(lines); i++ {
		end := logicalLineEnd(lines, i)
		if propertyKey(lines[i]) == key {
			if end == i && lines[i] == entry {
				return text
			}
			replaced := append([]string{}, lines[:i]...)
			replaced = append(replaced, entry)
			replaced = append(replaced, lines[end+1:]...)
			return joinLines(replaced, trailing)
		}
		i = end
	}

	if text != "" && !trailing {
		text += "\n"
	}
	return text + entry + "\n"
}

// logicalLineEnd returns the index of the last physical line of the
// logical line starting at i.
func logicalLineEnd(lines []string, i int) int {
	if isComment(lines[i]) {
		return i
	}
	for i < len(lines)-1 && continues(lines[i]) {
		i++
	}
	return i
}

// continues reports whether a line ends with an odd number of backslashes.
func continues(line string) bool {
	n := 0
	for j := len(line) - 1; j >= 0 && line[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

func isComment(line string) bool {
	trimmed := strings.TrimLeft(line, " \t\f")
	return strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "!")
}

// propertyKey returns the unescaped key of a property line, or "" for
// blank and comment lines.
func propertyKey(line string) string {
	trimmed := strings.TrimLeft(line, " \t\f")
	if trimmed == "" || isComment(trimmed) {
		return ""
	}

	var b strings.Builder
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		switch {
		case c == '\\' && i+1 < len(trimmed):
			i++
			b.WriteByte(unescapeChar(trimmed[i]))
		case c == '=' || c == ':' || c == ' ' || c == '\t' || c == '\f':
			return b.String()
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func unescapeChar(c byte) byte {
	switch c {
	case 't':
		return '\t'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 'f':
		return '\f'
	default:
		return c
	}
}

var keyEscaper = strings.NewReplacer(
	`\`, `\\`,
	" ", `\ `,
	"=", `\=`,
	":", `\:`,
	"#", `\#`,
	"!", `\!`,
	"\t", `\t`,
	"\n", `\n`,
	"\r", `\r`,
	"\f", `\f`,
)

var valueEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\t", `\t`,
	"\n", `\n`,
	"\r", `\r`,
	"\f", `\f`,
)

func escapeKey(key string) string {
	return keyEscaper.Replace(key)
}

func escapeValue(value string) string {
	escaped := valueEscaper.Replace(value)
	if strings.HasPrefix(escaped, " ") {
		escaped = `\` + escaped
	}
	return escaped
}
