package screen

import (
	"strings"

	"github.com/cuba-labs/cuba-cli/internal/model"
	"github.com/cuba-labs/cuba-cli/internal/project"
	"github.com/cuba-labs/cuba-cli/internal/prompt"
)

// Registry names of the screen models.
const (
	ModelName       = "screen"
	EntityModelName = "entityScreen"
)

// Model describes a blank screen.
type Model struct {
	ScreenName       string `binding:"screenName" validate:"required"`
	ControllerName   string `binding:"controllerName" validate:"required"`
	PackageName      string `binding:"packageName" validate:"required"`
	PackageDirectory string `binding:"packageDirectory" validate:"required"`
	AddToMenu        bool   `binding:"addToMenu"`
	MenuCaption      string `binding:"menuCaption" validate:"required_if=AddToMenu true"`
}

// NewModel builds a Model from the create-screen answers.
func NewModel(answers prompt.Answers) (Model, error) {
	name, err := answers.String("screenName")
	if err != nil {
		return Model{}, err
	}
	pkg, err := answers.String("package")
	if err != nil {
		return Model{}, err
	}

	m := Model{
		ScreenName:       name,
		ControllerName:   model.UpperCamel(name),
		PackageName:      pkg,
		PackageDirectory: project.PackageDirectory(pkg),
	}
	if answers.Has("addToMenu") {
		if m.AddToMenu, err = answers.Bool("addToMenu"); err != nil {
			return Model{}, err
		}
	}
	if m.AddToMenu {
		if m.MenuCaption, err = answers.String("menuCaption"); err != nil {
			return Model{}, err
		}
	}
	return m, nil
}

// EntityRef is the entity an entity screen edits.
type EntityRef struct {
	Name         string `binding:"name"`
	PackageName  string `binding:"packageName"`
	FQN          string `binding:"fqn" validate:"required"`
	VariableName string `binding:"variableName"`
}

// EntityModel describes an entity editor screen.
type EntityModel struct {
	ScreenID         string    `binding:"screenId" validate:"required"`
	DescriptorName   string    `binding:"descriptorName" validate:"required"`
	PackageName      string    `binding:"packageName" validate:"required"`
	PackageDirectory string    `binding:"packageDirectory" validate:"required"`
	Entity           EntityRef `binding:"entity"`
	ControllerName   string    `binding:"controllerName" validate:"required"`
}

// NewEntityRef describes entity for templates.
func NewEntityRef(e project.Entity) EntityRef {
	return EntityRef{
		Name:         e.Name,
		PackageName:  e.PackageName,
		FQN:          e.FQN(),
		VariableName: model.LowerCamel(e.Name),
	}
}

// NewEntityModel builds an EntityModel from the create-entity-screen answers.
func NewEntityModel(answers prompt.Answers, entity project.Entity) (EntityModel, error) {
	var m EntityModel
	fields := []struct {
		id  string
		dst *string
	}{
		{"screenId", &m.ScreenID},
		{"descriptorName", &m.DescriptorName},
		{"packageName", &m.PackageName},
		{"controllerName", &m.ControllerName},
	}
	for _, f := range fields {
		v, err := answers.String(f.id)
		if err != nil {
			return EntityModel{}, err
		}
		*f.dst = v
	}
	m.PackageDirectory = project.PackageDirectory(m.PackageName)
	m.Entity = NewEntityRef(entity)
	return m, nil
}

// captionFromName turns "customer-edit" into "Customer edit".
func captionFromName(name string) string {
	words := strings.Split(name, "-")
	if len(words) == 0 {
		return name
	}
	words[0] = model.Capitalize(words[0])
	return strings.Join(words, " ")
}
