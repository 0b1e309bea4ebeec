package entitylistener

import (
	"github.com/cuba-labs/cuba-cli/internal/clierr"
	"github.com/cuba-labs/cuba-cli/internal/project"
	"github.com/cuba-labs/cuba-cli/internal/prompt"
)

// ModelName is the registry name of the listener model.
const ModelName = "entityListener"

// Model describes an entity listener bean.
type Model struct {
	ClassName         string   `binding:"className" validate:"required"`
	PackageName       string   `binding:"packageName" validate:"required"`
	PackageDirectory  string   `binding:"packageDirectory" validate:"required"`
	EntityFqn         string   `binding:"entityFqn" validate:"required"`
	EntityName        string   `binding:"entityName" validate:"required"`
	EntityPackageName string   `binding:"entityPackageName"`
	BeanName          string   `binding:"beanName" validate:"required"`
	Interfaces        []string `binding:"interfaces" validate:"min=1"`

	// Rendered Java fragments for the template.
	Imports          string `binding:"imports"`
	ImplementsClause string `binding:"implementsClause"`
	Methods          string `binding:"methods"`

	entityPath string
}

// NewModel builds a Model from the create-entity-listener answers.
func NewModel(answers prompt.Answers, entity project.Entity) (Model, error) {
	m := Model{
		EntityFqn:         entity.FQN(),
		EntityName:        entity.Name,
		EntityPackageName: entity.PackageName,
		entityPath:        entity.Path,
	}

	var err error
	if m.ClassName, err = answers.String("className"); err != nil {
		return Model{}, err
	}
	if m.PackageName, err = answers.String("packageName"); err != nil {
		return Model{}, err
	}
	if m.BeanName, err = answers.String("beanName"); err != nil {
		return Model{}, err
	}
	m.PackageDirectory = project.PackageDirectory(m.PackageName)

	var events []Event
	for _, e := range Events {
		if !answers.Has(e.ID) {
			continue
		}
		on, err := answers.Bool(e.ID)
		if err != nil {
			return Model{}, err
		}
		if on {
			events = append(events, e)
			m.Interfaces = append(m.Interfaces, e.Interface())
		}
	}
	if len(events) == 0 {
		return Model{}, clierr.Validation(noInterfaceMessage)
	}

	m.Imports = renderImports(events)
	m.ImplementsClause = renderImplements(events, entity.Name)
	m.Methods = renderMethods(events, entity.Name)
	return m, nil
}

// FQN is the listener's fully qualified class name.
func (m Model) FQN() string {
	return m.PackageName + "." + m.ClassName
}
