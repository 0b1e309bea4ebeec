package screen

import (
	"strings"

	"github.com/cuba-labs/cuba-cli/internal/clierr"
	"github.com/cuba-labs/cuba-cli/internal/generator"
	"github.com/cuba-labs/cuba-cli/internal/model"
	"github.com/cuba-labs/cuba-cli/internal/project"
	"github.com/cuba-labs/cuba-cli/internal/prompt"
)

const (
	entityScreenTemplate = "entityScreen"
	screenIDPattern      = `[a-zA-Z0-9_$.\-]+`
)

// CreateEntityScreen returns the create-entity-screen command.
func CreateEntityScreen() generator.Command {
	var entities []project.Entity

	return generator.Command{
		Name:      "create-entity-screen",
		ModelName: EntityModelName,
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
			return entityScreenQuestions(ctx.Project.Model, entities, q)
		},
		CreateModel: func(ctx *generator.Context, answers prompt.Answers) (any, error) {
			fqn, err := answers.String("entity")
			if err != nil {
				return nil, err
			}
			entity, err := findEntity(entities, fqn)
			if err != nil {
				return nil, err
			}
			return NewEntityModel(answers, entity)
		},
		BeforeGeneration: func(ctx *generator.Context) error {
			m, err := model.Get[EntityModel](ctx.Registry, EntityModelName)
			if err != nil {
				return err
			}
			reg := NewRegistration(ctx.Project, ctx.Printer)
			if err := reg.CheckScreenID(m.ScreenID); err != nil {
				return err
			}
			return reg.CheckExistence(m.PackageName, m.DescriptorName, m.ControllerName)
		},
		Generate: func(ctx *generator.Context, bindings map[string]string) error {
			m, err := model.Get[EntityModel](ctx.Registry, EntityModelName)
			if err != nil {
				return err
			}
			proc, err := ctx.Processor(entityScreenTemplate, bindings)
			if err != nil {
				return err
			}
			if _, err := proc.TransformWhole(ctx.Project.Module(project.ModuleWeb).Src); err != nil {
				return err
			}
			return NewRegistration(ctx.Project, ctx.Printer).AddToScreensXML(m.ScreenID, m.PackageName, m.DescriptorName)
		},
	}
}

func entityScreenQuestions(p *project.Model, entities []project.Entity, q *prompt.List) error {
	options := make([]string, len(entities))
	for i, e := range entities {
		options[i] = e.FQN()
	}
	entityName := func(a prompt.Answers) string {
		fqn := a.StringOr("entity", "")
		return fqn[strings.LastIndex(fqn, ".")+1:]
	}

	q.Options("entity", "Choose entity", options)
	q.Question("packageName", "Package name",
		prompt.DefaultFunc(func(a prompt.Answers) string {
			return p.RootPackage + ".web." + strings.ToLower(entityName(a))
		}),
		prompt.Validate(prompt.CheckIsPackage()))
	q.Question("screenId", "Screen id",
		prompt.DefaultFunc(func(a prompt.Answers) string {
			return p.Namespace + "$" + entityName(a) + ".edit"
		}),
		prompt.Validate(prompt.CheckRegex(screenIDPattern, "Invalid screen id")))
	q.Question("descriptorName", "Descriptor name",
		prompt.DefaultFunc(func(a prompt.Answers) string {
			return model.LowerHyphen(entityName(a)) + "-edit"
		}),
		prompt.Validate(prompt.CheckRegex(NamePattern, "Invalid descriptor name")))
	q.Question("controllerName", "Controller name",
		prompt.DefaultFunc(func(a prompt.Answers) string {
			return entityName(a) + "Edit"
		}),
		prompt.Validate(prompt.CheckIsClass()))
	return nil
}

func findEntity(entities []project.Entity, fqn string) (project.Entity, error) {
	for _, e := range entities {
		if e.FQN() == fqn {
			return e, nil
		}
	}
	return project.Entity{}, clierr.Validation("unknown entity %s", fqn)
}
