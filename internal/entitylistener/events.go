package entitylistener

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cuba-labs/cuba-cli/internal/model"
)

const (
	listenerPackage = "com.haulmont.cuba.core.listener"
	entityManager   = "com.haulmont.cuba.core.EntityManager"
	connection      = "java.sql.Connection"
)

// Event is one of the listener interfaces an entity listener may implement.
type Event struct {
	// ID is the question id and the lowerCamel event name.
	ID string
	// extra is the import of the second callback parameter, if any.
	extra string
}

// Events are the supported listener events in prompt order.
var Events = []Event{
	{ID: "beforeInsert", extra: entityManager},
	{ID: "beforeUpdate", extra: entityManager},
	{ID: "beforeDelete", extra: entityManager},
	{ID: "afterInsert", extra: connection},
	{ID: "afterUpdate", extra: connection},
	{ID: "afterDelete", extra: connection},
	{ID: "beforeAttach"},
	{ID: "beforeDetach", extra: entityManager},
}

// Interface is the simple name of the listener interface.
func (e Event) Interface() string {
	return model.Capitalize(e.ID) + "EntityListener"
}

// Method renders the interface's callback for entity.
func (e Event) Method(entity string) string {
	params := entity + " entity"
	if e.extra != "" {
		simple := e.extra[strings.LastIndex(e.extra, ".")+1:]
		params += ", " + simple + " " + model.LowerCamel(simple)
	}
	return fmt.Sprintf("    @Override\n    public void on%s(%s) {\n\n    }\n", model.Capitalize(e.ID), params)
}

// renderImports returns the sorted import statements the events need.
func renderImports(events []Event) string {
	seen := map[string]bool{}
	for _, e := range events {
		seen[listenerPackage+"."+e.Interface()] = true
		if e.extra != "" {
			seen[e.extra] = true
		}
	}
	imports := make([]string, 0, len(seen))
	for imp := range seen {
		imports = append(imports, "import "+imp+";")
	}
	sort.Strings(imports)
	return strings.Join(imports, "\n")
}

func renderImplements(events []Event, entity string) string {
	parts := make([]string, len(events))
	for i, e := range events {
		parts[i] = e.Interface() + "<" + entity + ">"
	}
	return strings.Join(parts, ", ")
}

func renderMethods(events []Event, entity string) string {
	methods := make([]string, len(events))
	for i, e := range events {
		methods[i] = e.Method(entity)
	}
	return strings.TrimSuffix(strings.Join(methods, "\n"), "\n")
}
