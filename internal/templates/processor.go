package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cuba-labs/cuba-cli/internal/clierr"
)

// Reporter is told about every file a Processor creates.
type Reporter interface {
	FileCreated(path string)
}

// Processor renders one template set.
type Processor struct {
	fsys     fs.FS
	root     string
	bindings map[string]string
	reporter Reporter
}

type plannedFile struct {
	target string
	data   []byte
}

// NewProcessor prepares the template set at root in fsys. reporter may be nil.
func NewProcessor(fsys fs.FS, root string, bindings map[string]string, reporter Reporter) (*Processor, error) {
	if !fs.ValidPath(root) {
		return nil, fmt.Errorf("invalid template set %q", root)
	}
	info, err := fs.Stat(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("template set %q not found: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template set %q is not a directory", root)
	}
	return &Processor{fsys: fsys, root: root, bindings: bindings, reporter: reporter}, nil
}

// Copy copies the file or directory at rel (relative to the set) into dest
// byte for byte, keeping its path relative to the set.
func (p *Processor) Copy(rel, dest string) ([]string, error) {
	return p.run(rel, dest, false)
}

// Transform renders the file or directory at rel into dest, substituting
// tokens in paths and contents. rel names the template as stored, tokens
// included.
func (p *Processor) Transform(rel, dest string) ([]string, error) {
	return p.run(rel, dest, true)
}

// TransformWhole renders the whole set into dest.
func (p *Processor) TransformWhole(dest string) ([]string, error) {
	return p.run(".", dest, true)
}

func (p *Processor) run(rel, dest string, transform bool) ([]string, error) {
	plan, err := p.plan(rel, dest, transform)
	if err != nil {
		return nil, err
	}
	for _, f := range plan {
		if _, err := os.Lstat(f.target); err == nil {
			return nil, &clierr.DetailError{
				Type:     "already exists",
				Message:  fmt.Sprintf("file %s already exists", f.target),
				Location: f.target,
				Cause:    clierr.ErrPrecondition,
			}
		}
	}

	written := make([]string, 0, len(plan))
	for _, f := range plan {
		if err := writeNew(f.target, f.data); err != nil {
			return written, err
		}
		written = append(written, f.target)
		if p.reporter != nil {
			p.reporter.FileCreated(f.target)
		}
	}
	return written, nil
}

// plan resolves every file under rel to its target, in lexical order.
func (p *Processor) plan(rel, dest string, transform bool) ([]plannedFile, error) {
	if rel == "" {
		rel = "."
	}
	if !fs.ValidPath(rel) {
		return nil, fmt.Errorf("template path %q escapes the template set", rel)
	}
	src := path.Join(p.root, rel)

	var plan []plannedFile
	err := fs.WalkDir(p.fsys, src, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		data, err := fs.ReadFile(p.fsys, name)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", name, err)
		}

		out := p.relative(name)
		if transform {
			out = Render(out, p.bindings)
			data = []byte(Render(string(data), p.bindings))
		}
		if !fs.ValidPath(out) {
			return fmt.Errorf("rendered path %q of template %s escapes the target directory", out, name)
		}

		plan = append(plan, plannedFile{
			target: filepath.Join(dest, filepath.FromSlash(out)),
			data:   data,
		})
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("template %q not found in set %q: %w", rel, p.root, err)
		}
		return nil, err
	}
	return plan, nil
}

func (p *Processor) relative(name string) string {
	if p.root == "." {
		return name
	}
	return strings.TrimPrefix(name, p.root+"/")
}

func writeNew(target string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", target, err)
	}
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return clierr.Precondition("file %s already exists", target)
		}
		return fmt.Errorf("creating %s: %w", target, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", target, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", target, err)
	}
	return nil
}
