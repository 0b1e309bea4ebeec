package generator

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"

	"github.com/cuba-labs/cuba-cli/internal/model"
	"github.com/cuba-labs/cuba-cli/internal/output"
	"github.com/cuba-labs/cuba-cli/internal/project"
	"github.com/cuba-labs/cuba-cli/internal/prompt"
	"github.com/cuba-labs/cuba-cli/internal/templates"
)

// Context is the state shared by the phases of one command invocation.
type Context struct {
	Registry *model.Registry
	// Project is nil when the CLI runs outside a project.
	Project *project.Structure
	// ProjectErr explains why Project is nil.
	ProjectErr error
	Asker      *prompt.Asker
	Templates  fs.FS
	Printer    *output.Printer
	Out        io.Writer
}

// RequireProject returns the current project or the reason there is none.
func (c *Context) RequireProject() (*project.Structure, error) {
	if c.Project != nil {
		return c.Project, nil
	}
	if c.ProjectErr != nil {
		return nil, c.ProjectErr
	}
	return nil, project.ErrNotInProject
}

// Model returns the model registered under name.
func (c *Context) Model(name string) (any, error) {
	m, ok := c.Registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("model %q has not yet been created", name)
	}
	return m, nil
}

// NonInteractive reports whether prompting falls back to defaults.
func (c *Context) NonInteractive() bool {
	return c.Asker.NonInteractive()
}

// Println writes a message line for the user.
func (c *Context) Println(msg string) {
	fmt.Fprintln(c.Out, msg)
}

// Processor prepares the template set at root with the given bindings.
// Created files are reported through the context's Printer.
func (c *Context) Processor(root string, bindings map[string]string) (*templates.Processor, error) {
	return templates.NewProcessor(c.Templates, root, bindings, c.Printer)
}

// Session holds what outlives a single invocation: the project, the
// template tree and the terminal streams.
type Session struct {
	Project        *project.Structure
	ProjectErr     error
	Templates      fs.FS
	In             *bufio.Reader
	Out            io.Writer
	NonInteractive bool
}

// NewSession opens the project containing dir. Failing to find a project is
// not an error; commands that need one fail in their pre-execution phase.
func NewSession(dir string, tmpl fs.FS, in io.Reader, out io.Writer, nonInteractive bool) *Session {
	s := &Session{
		Templates:      tmpl,
		In:             bufio.NewReader(in),
		Out:            out,
		NonInteractive: nonInteractive,
	}
	s.Project, s.ProjectErr = project.Open(dir)
	if s.ProjectErr != nil {
		output.Debug("no project loaded", "dir", dir, "reason", s.ProjectErr)
	}
	return s
}

// NewContext creates the context for one invocation with the given answer
// overrides.
func (s *Session) NewContext(overrides map[string]string) (*Context, error) {
	reg := model.NewRegistry()
	base := ""
	if s.Project != nil {
		if err := reg.Add(project.ModelName, s.Project.Model); err != nil {
			return nil, err
		}
		base = s.Project.Root
	}

	return &Context{
		Registry:   reg,
		Project:    s.Project,
		ProjectErr: s.ProjectErr,
		Asker:      prompt.NewAsker(s.In, s.Out, overrides, s.NonInteractive),
		Templates:  s.Templates,
		Printer:    output.NewPrinter(s.Out, base),
		Out:        s.Out,
	}, nil
}
