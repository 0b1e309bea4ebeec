package patch

import (
	"fmt"
	"os"
	"strings"
)

// ReadText returns the content of path.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// WriteText replaces the content of path, keeping its permissions.
func WriteText(path, text string) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(text), mode); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// splitLines splits text into lines and reports whether it ended with a
// newline, so joinLines can restore it exactly.
func splitLines(text string) ([]string, bool) {
	if text == "" {
		return nil, false
	}
	trailing := strings.HasSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n"), trailing
}

func joinLines(lines []string, trailing bool) string {
	text := strings.Join(lines, "\n")
	if trailing {
		text += "\n"
	}
	return text
}
