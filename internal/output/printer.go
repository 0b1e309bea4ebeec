package output

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Printer reports files touched by a generation step, relative to a base
// directory when possible.
type Printer struct {
	w    io.Writer
	base string
}

// NewPrinter creates a Printer writing to w. Paths under base are shown
// relative to it.
func NewPrinter(w io.Writer, base string) *Printer {
	return &Printer{w: w, base: base}
}

// FileCreated reports a newly written file.
func (p *Printer) FileCreated(path string) {
	p.line(StatusCreated, path)
}

// FileModified reports an existing file patched in place.
func (p *Printer) FileModified(path string) {
	p.line(StatusModified, path)
}

func (p *Printer) line(status, path string) {
	shown := path
	if p.base != "" {
		if rel, err := filepath.Rel(p.base, path); err == nil && !strings.HasPrefix(rel, "..") {
			shown = rel
		}
	}
	fmt.Fprintf(p.w, "  %s %s\n", StatusStyle(status).Render(fmt.Sprintf("%-8s", status)), StyleNoun.Render(filepath.ToSlash(shown)))
}
