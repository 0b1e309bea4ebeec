package screen

import (
	"github.com/cuba-labs/cuba-cli/internal/generator"
	"github.com/cuba-labs/cuba-cli/internal/model"
	"github.com/cuba-labs/cuba-cli/internal/project"
	"github.com/cuba-labs/cuba-cli/internal/prompt"
)

// NamePattern is the lower-hyphen form accepted for screen and descriptor
// names.
const NamePattern = `([a-zA-Z]*[a-zA-Z0-9]+)(-[a-zA-Z]*[a-zA-Z0-9]+)*`

const (
	screenTemplate = "screen"
	defaultName    = "screen"
)

// CreateScreen returns the create-screen command.
func CreateScreen() generator.Command {
	return generator.Command{
		Name:       "create-screen",
		ModelName:  ModelName,
		PreExecute: generator.RequireProject,
		Prompting:  screenQuestions,
		CreateModel: func(_ *generator.Context, answers prompt.Answers) (any, error) {
			return NewModel(answers)
		},
		BeforeGeneration: func(ctx *generator.Context) error {
			m, err := model.Get[Model](ctx.Registry, ModelName)
			if err != nil {
				return err
			}
			reg := NewRegistration(ctx.Project, ctx.Printer)
			if err := reg.CheckScreenID(m.ScreenName); err != nil {
				return err
			}
			return reg.CheckExistence(m.PackageName, m.ScreenName, m.ControllerName)
		},
		Generate: generateScreen,
	}
}

func screenQuestions(ctx *generator.Context, q *prompt.List) error {
	p, err := ctx.RequireProject()
	if err != nil {
		return err
	}

	q.Question("screenName", "Screen name",
		prompt.Default(defaultName),
		prompt.Validate(prompt.CheckRegex(NamePattern, "Invalid screen name")))
	q.Question("package", "Package name",
		prompt.Default(p.Model.RootPackage+".web.screens"),
		prompt.Validate(prompt.CheckIsPackage()))
	q.Confirmation("addToMenu", "Add screen to main menu?", prompt.DefaultBool(false))
	q.Group("menu", func(g *prompt.List) {
		g.Question("menuCaption", "Menu caption",
			prompt.DefaultFunc(func(a prompt.Answers) string {
				return captionFromName(a.StringOr("screenName", defaultName))
			}),
			prompt.Validate(prompt.CheckNotEmpty()))
	}, prompt.When(func(a prompt.Answers) bool {
		add, _ := a.Bool("addToMenu")
		return add
	}))
	return nil
}

func generateScreen(ctx *generator.Context, bindings map[string]string) error {
	m, err := model.Get[Model](ctx.Registry, ModelName)
	if err != nil {
		return err
	}

	proc, err := ctx.Processor(screenTemplate, bindings)
	if err != nil {
		return err
	}
	if _, err := proc.TransformWhole(ctx.Project.Module(project.ModuleWeb).Src); err != nil {
		return err
	}

	reg := NewRegistration(ctx.Project, ctx.Printer)
	if err := reg.AddToScreensXML(m.ScreenName, m.PackageName, m.ScreenName); err != nil {
		return err
	}
	if m.AddToMenu {
		return reg.AddToMenu(m.ScreenName, m.MenuCaption)
	}
	return nil
}
