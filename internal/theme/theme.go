package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cuba-labs/cuba-cli/internal/clierr"
	"github.com/cuba-labs/cuba-cli/internal/generator"
	"github.com/cuba-labs/cuba-cli/internal/model"
	"github.com/cuba-labs/cuba-cli/internal/patch"
	"github.com/cuba-labs/cuba-cli/internal/project"
	"github.com/cuba-labs/cuba-cli/internal/prompt"
	"github.com/cuba-labs/cuba-cli/internal/templates"
)

// ModelName is the registry name of the theme extension model.
const ModelName = "themeExtension"

// Themes that can be extended.
const (
	Halo  = "halo"
	Hover = "hover"
)

const (
	snippetsDir     = "snippets/theme"
	themesModule    = `":${modulePrefix}-web-themes"`
	confirmQuestion = "Theme extension will modify settings.gradle and build.gradle. Continue?"
)

// Model names the theme to extend.
type Model struct {
	ThemeName string `binding:"themeName" validate:"oneof=halo hover"`
}

// Extendable lists the themes p can still extend: halo unless already
// extended, and hover on platform 6.10 or newer unless already extended.
func Extendable(p *project.Structure) ([]string, error) {
	extended, err := extendedThemes(p.ThemesDir())
	if err != nil {
		return nil, err
	}

	var themes []string
	if !extended[Halo] {
		themes = append(themes, Halo)
	}
	if p.Model.PlatformAtLeast(6, 10) && !extended[Hover] {
		themes = append(themes, Hover)
	}
	return themes, nil
}

func extendedThemes(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading themes directory: %w", err)
	}
	extended := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			extended[e.Name()] = true
		}
	}
	return extended, nil
}

// Command returns the extend-theme command.
func Command() generator.Command {
	var themes []string

	return generator.Command{
		Name:      "extend-theme",
		ModelName: ModelName,
		PreExecute: func(ctx *generator.Context) error {
			p, err := ctx.RequireProject()
			if err != nil {
				return err
			}
			themes, err = Extendable(p)
			if err != nil {
				return err
			}
			if len(themes) == 0 {
				return clierr.Precondition("Halo and hover themes already extended")
			}
			return nil
		},
		Prompting: func(ctx *generator.Context, q *prompt.List) error {
			if len(themes) > 1 {
				q.Options("themeName", "Choose theme to extend", themes)
			} else {
				ctx.Println(fmt.Sprintf("Only %s theme can be extended.", themes[0]))
			}
			q.Confirmation("confirmed", confirmQuestion)
			return nil
		},
		CreateModel: func(_ *generator.Context, answers prompt.Answers) (any, error) {
			confirmed, err := answers.Bool("confirmed")
			if err != nil {
				return nil, err
			}
			if !confirmed {
				return nil, generator.Declined()
			}
			if len(themes) == 1 {
				return Model{ThemeName: themes[0]}, nil
			}
			name, err := answers.String("themeName")
			if err != nil {
				return nil, err
			}
			return Model{ThemeName: name}, nil
		},
		Generate: generate,
	}
}

func generate(ctx *generator.Context, bindings map[string]string) error {
	m, err := model.Get[Model](ctx.Registry, ModelName)
	if err != nil {
		return err
	}
	p := ctx.Project
	target := filepath.Join(p.ThemesDir(), m.ThemeName)

	// Compute the Gradle edits first so a missing anchor leaves the
	// project untouched.
	edits, err := registrationEdits(ctx, p)
	if err != nil {
		return err
	}

	proc, err := ctx.Processor("themes/"+m.ThemeName, bindings)
	if err != nil {
		return err
	}
	steps := []struct {
		rel       string
		transform bool
	}{
		{"styles.scss", true},
		{"${project.rootPackage}", true},
		{"favicon.ico", false},
		{"branding", false},
	}
	for _, s := range steps {
		if s.transform {
			_, err = proc.Transform(s.rel, target)
		} else {
			_, err = proc.Copy(s.rel, target)
		}
		if err != nil {
			return err
		}
	}

	for _, e := range edits {
		if err := patch.WriteText(e.path, e.text); err != nil {
			return err
		}
		ctx.Printer.FileModified(e.path)
	}
	return nil
}

var snippetNames = []string{
	"moduleRegistration",
	"webModuleSearch",
	"webModuleReplace",
	"configureWebModuleSearch",
	"configureWebModuleReplace",
}

type fileEdit struct {
	path string
	text string
}

// registrationEdits returns the new settings.gradle and build.gradle, or
// nothing when the web-themes module is already registered.
func registrationEdits(ctx *generator.Context, p *project.Structure) ([]fileEdit, error) {
	snippets, err := templates.LoadSnippets(ctx.Templates, snippetsDir)
	if err != nil {
		return nil, err
	}
	for _, name := range snippetNames {
		if _, err := snippets.Get(name); err != nil {
			return nil, err
		}
	}
	registration := snippets["moduleRegistration"]

	settingsPath := p.SettingsGradle()
	settings, err := patch.ReadText(settingsPath)
	if err != nil {
		return nil, err
	}
	if patch.ContainsLine(settings, registration) {
		return nil, nil
	}
	settings, err = patch.AppendInclude(settingsPath, settings, themesModule)
	if err != nil {
		return nil, err
	}
	settings = patch.AppendLines(settings, registration)

	buildPath := p.BuildGradle()
	build, err := patch.ReadText(buildPath)
	if err != nil {
		return nil, err
	}
	if build, err = patch.ReplaceSnippet(buildPath, build, snippets["webModuleSearch"], snippets["webModuleReplace"]); err != nil {
		return nil, err
	}
	if build, err = patch.ReplaceSnippet(buildPath, build, snippets["configureWebModuleSearch"], snippets["configureWebModuleReplace"]); err != nil {
		return nil, err
	}

	return []fileEdit{{settingsPath, settings}, {buildPath, build}}, nil
}
