package generator

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuba-labs/cuba-cli/internal/clierr"
	"github.com/cuba-labs/cuba-cli/internal/model"
	"github.com/cuba-labs/cuba-cli/internal/project"
	"github.com/cuba-labs/cuba-cli/internal/project/projecttest"
	"github.com/cuba-labs/cuba-cli/internal/prompt"
)

type noteModel struct {
	Title     string `binding:"title" validate:"required"`
	Directory string `binding:"directory"`
}

var noteTemplates = fstest.MapFS{
	"note/${note.directory}/${note.title}.txt": {Data: []byte("${note.title} in ${project.rootPackage}\n")},
}

// noteCommand records the phases it goes through.
func noteCommand(phases *[]string) Command {
	return Command{
		Name:      "create-note",
		ModelName: "note",
		PreExecute: func(ctx *Context) error {
			*phases = append(*phases, "pre")
			return RequireProject(ctx)
		},
		Prompting: func(ctx *Context, q *prompt.List) error {
			*phases = append(*phases, "prompt")
			q.Question("title", "Title", prompt.Validate(prompt.CheckNotEmpty()))
			q.Confirmation("confirmed", "Continue?", prompt.DefaultBool(true))
			return nil
		},
		CreateModel: func(ctx *Context, answers prompt.Answers) (any, error) {
			*phases = append(*phases, "model")
			confirmed, err := answers.Bool("confirmed")
			if err != nil {
				return nil, err
			}
			if !confirmed {
				return nil, Declined()
			}
			title, err := answers.String("title")
			if err != nil {
				return nil, err
			}
			return noteModel{Title: title, Directory: "notes"}, nil
		},
		BeforeGeneration: func(ctx *Context) error {
			*phases = append(*phases, "check")
			_, err := model.Get[noteModel](ctx.Registry, "note")
			return err
		},
		Generate: func(ctx *Context, bindings map[string]string) error {
			*phases = append(*phases, "generate")
			p, err := ctx.Processor("note", bindings)
			if err != nil {
				return err
			}
			_, err = p.TransformWhole(ctx.Project.Root)
			return err
		},
	}
}

func newSession(t *testing.T, dir, input string, nonInteractive bool) (*Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return NewSession(dir, noteTemplates, strings.NewReader(input), &out, nonInteractive), &out
}

func TestRunLifecycle(t *testing.T) {
	root := projecttest.New(t, projecttest.Options{})
	session, out := newSession(t, root, "", true)
	require.NoError(t, session.ProjectErr)

	ctx, err := session.NewContext(map[string]string{"title": "hello"})
	require.NoError(t, err)

	var phases []string
	require.NoError(t, Run(ctx, noteCommand(&phases)))

	assert.Equal(t, []string{"pre", "prompt", "model", "check", "generate"}, phases)
	assert.Equal(t, "hello in com.acme.sample\n", projecttest.ReadFile(t, root, "notes/hello.txt"))
	assert.Contains(t, out.String(), "notes/hello.txt")

	m, err := ctx.Model("note")
	require.NoError(t, err)
	assert.Equal(t, noteModel{Title: "hello", Directory: "notes"}, m)
}

func TestRunMissingAnswerWritesNothing(t *testing.T) {
	root := projecttest.New(t, projecttest.Options{})
	session, _ := newSession(t, root, "", true)
	ctx, err := session.NewContext(nil)
	require.NoError(t, err)

	var phases []string
	err = Run(ctx, noteCommand(&phases))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"title"`)
	assert.True(t, errors.Is(err, clierr.ErrValidation))
	assert.Equal(t, []string{"pre", "prompt"}, phases)

	_, statErr := os.Stat(filepath.Join(root, "notes"))
	assert.True(t, os.IsNotExist(statErr), "no files may be written")
}

func TestRunDeclinedIsSilent(t *testing.T) {
	root := projecttest.New(t, projecttest.Options{})
	session, _ := newSession(t, root, "", true)
	ctx, err := session.NewContext(map[string]string{"title": "x", "confirmed": "no"})
	require.NoError(t, err)

	var phases []string
	err = Run(ctx, noteCommand(&phases))
	require.Error(t, err)
	assert.True(t, clierr.IsSilent(err))
	assert.NotContains(t, phases, "generate")
}

func TestRunEndOfInputIsSilent(t *testing.T) {
	root := projecttest.New(t, projecttest.Options{})
	session, _ := newSession(t, root, "", false)
	ctx, err := session.NewContext(nil)
	require.NoError(t, err)

	var phases []string
	err = Run(ctx, noteCommand(&phases))
	assert.True(t, clierr.IsSilent(err))
}

func TestRunOutsideProject(t *testing.T) {
	session, _ := newSession(t, t.TempDir(), "", true)
	assert.ErrorIs(t, session.ProjectErr, project.ErrNotInProject)

	ctx, err := session.NewContext(map[string]string{"title": "x"})
	require.NoError(t, err)
	assert.False(t, ctx.Registry.Has(project.ModelName))

	var phases []string
	err = Run(ctx, noteCommand(&phases))
	assert.ErrorIs(t, err, clierr.ErrPrecondition)
	assert.Equal(t, []string{"pre"}, phases)
}

func TestRunTwiceInOneContextFails(t *testing.T) {
	root := projecttest.New(t, projecttest.Options{})
	session, _ := newSession(t, root, "", true)
	ctx, err := session.NewContext(map[string]string{"title": "a"})
	require.NoError(t, err)

	var phases []string
	require.NoError(t, Run(ctx, noteCommand(&phases)))
	err = Run(ctx, noteCommand(&phases))
	assert.ErrorContains(t, err, "already registered")

	fresh, err := session.NewContext(map[string]string{"title": "b"})
	require.NoError(t, err)
	assert.NoError(t, Run(fresh, noteCommand(&phases)), "each invocation gets its own registry")
}

func TestRunInvalidModel(t *testing.T) {
	root := projecttest.New(t, projecttest.Options{})
	session, _ := newSession(t, root, "", true)
	ctx, err := session.NewContext(map[string]string{"title": "x"})
	require.NoError(t, err)

	cmd := noteCommand(new([]string))
	cmd.CreateModel = func(*Context, prompt.Answers) (any, error) {
		return noteModel{}, nil
	}
	err = Run(ctx, cmd)
	assert.ErrorIs(t, err, clierr.ErrValidation)
	assert.False(t, ctx.Registry.Has("note"))
}

func TestRunIncompleteCommand(t *testing.T) {
	ctx := &Context{}
	assert.Error(t, Run(ctx, Command{Name: "empty"}))
}
