package entitylistener

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/cuba-labs/cuba-cli/internal/clierr"
	"github.com/cuba-labs/cuba-cli/internal/generator"
	"github.com/cuba-labs/cuba-cli/internal/model"
	"github.com/cuba-labs/cuba-cli/internal/patch"
	"github.com/cuba-labs/cuba-cli/internal/project"
	"github.com/cuba-labs/cuba-cli/internal/prompt"
)

const (
	templateSet        = "entityListener"
	noInterfaceMessage = "Listener must implement at least one of the interfaces"
)

// Command returns create-entity-listener. patcher registers the bean on the
// entity class; nil selects patch.RegexAnnotationPatcher.
func Command(patcher patch.AnnotationPatcher) generator.Command {
	if patcher == nil {
		patcher = patch.RegexAnnotationPatcher{}
	}
	var entities []project.Entity

	return generator.Command{
		Name:      "create-entity-listener",
		ModelName: ModelName,
		PreExecute: func(ctx *generator.Context) error {
			p, err := ctx.RequireProject()
			if err != nil {
				return err
			}
			entities, err = p.PersistentEntities()
			if err != nil {
				return err
			}
			if len(entities) == 0 {
				return clierr.Precondition("Project does not have any suitable entities.")
			}
			return nil
		},
		Prompting: func(ctx *generator.Context, q *prompt.List) error {
			questions(ctx.Project.Model, entities, q)
			return nil
		},
		CreateModel: func(ctx *generator.Context, answers prompt.Answers) (any, error) {
			fqn, err := answers.String("entityType")
			if err != nil {
				return nil, err
			}
			for _, e := range entities {
				if e.FQN() == fqn {
					return NewModel(answers, e)
				}
			}
			return nil, clierr.Validation("unknown entity %s", fqn)
		},
		BeforeGeneration: func(ctx *generator.Context) error {
			m, err := model.Get[Model](ctx.Registry, ModelName)
			if err != nil {
				return err
			}
			target := filepath.Join(ctx.Project.Module(project.ModuleCore).ResolvePackagePath(m.PackageName), m.ClassName+".java")
			if _, err := os.Stat(target); err == nil {
				return clierr.Precondition("Entity listener %q already exists", m.FQN())
			} else if !errors.Is(err, os.ErrNotExist) {
				return err
			}
			return nil
		},
		Generate: func(ctx *generator.Context, bindings map[string]string) error {
			m, err := model.Get[Model](ctx.Registry, ModelName)
			if err != nil {
				return err
			}
			proc, err := ctx.Processor(templateSet, bindings)
			if err != nil {
				return err
			}
			if _, err := proc.TransformWhole(ctx.Project.Module(project.ModuleCore).Src); err != nil {
				return err
			}
			if err := patcher.AddValue(m.entityPath, patch.ListenersAnnotation, m.BeanName); err != nil {
				return err
			}
			ctx.Printer.FileModified(m.entityPath)
			return nil
		},
	}
}

func questions(p *project.Model, entities []project.Entity, q *prompt.List) {
	options := make([]string, len(entities))
	for i, e := range entities {
		options[i] = e.FQN()
	}

	q.Question("className", "Class name", prompt.Validate(prompt.CheckIsClass()))
	q.Options("entityType", "Entity type", options)
	q.Question("packageName", "Package name",
		prompt.Default(p.RootPackage+".listener"),
		prompt.Validate(prompt.CheckIsPackage()))
	q.Question("beanName", "Bean name",
		prompt.DefaultFunc(func(a prompt.Answers) string {
			return p.Namespace + "_" + a.StringOr("className", "")
		}),
		prompt.Validate(prompt.CheckNotEmpty()))
	q.Group("interfaces", func(g *prompt.List) {
		for _, e := range Events {
			g.Confirmation(e.ID, "Implement "+e.Interface()+"?", prompt.DefaultBool(true))
		}
	}, prompt.ValidateGroup(func(a prompt.Answers) error {
		for _, e := range Events {
			if on, err := a.Bool(e.ID); err == nil && on {
				return nil
			}
		}
		return errors.New(noInterfaceMessage)
	}))
}
