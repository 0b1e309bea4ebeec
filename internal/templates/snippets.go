package templates

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

const snippetExt = ".txt"

// Snippets are named text fragments used to patch existing files.
type Snippets map[string]string

// LoadSnippets reads every <name>.txt file in dir. A single trailing newline
// is dropped from each snippet.
func LoadSnippets(fsys fs.FS, dir string) (Snippets, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading snippets %s: %w", dir, err)
	}

	snippets := make(Snippets, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != snippetExt {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading snippet %s: %w", entry.Name(), err)
		}
		text := strings.TrimSuffix(string(data), "\n")
		text = strings.TrimSuffix(text, "\r")
		snippets[strings.TrimSuffix(entry.Name(), snippetExt)] = text
	}
	return snippets, nil
}

// Get returns the named snippet.
func (s Snippets) Get(name string) (string, error) {
	text, ok := s[name]
	if !ok {
		return "", fmt.Errorf("snippet %q not found", name)
	}
	return text, nil
}
