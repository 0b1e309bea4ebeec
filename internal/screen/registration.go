package screen

import (
	"os"
	"path/filepath"

	"github.com/beevik/etree"

	"github.com/cuba-labs/cuba-cli/internal/clierr"
	"github.com/cuba-labs/cuba-cli/internal/output"
	"github.com/cuba-labs/cuba-cli/internal/patch"
	"github.com/cuba-labs/cuba-cli/internal/project"
)

const menuMessagePrefix = "menu-config."

// Registration adds screens to the web module's registries.
type Registration struct {
	project *project.Structure
	printer *output.Printer
}

// NewRegistration creates a Registration for p. printer may be nil.
func NewRegistration(p *project.Structure, printer *output.Printer) *Registration {
	return &Registration{project: p, printer: printer}
}

// ScreenIDExists reports whether web-screens.xml already registers id.
func (r *Registration) ScreenIDExists(id string) (bool, error) {
	return patch.HasElementWithAttr(r.project.ScreensXML(), "screen", "id", id)
}

// CheckScreenID fails when id is already registered.
func (r *Registration) CheckScreenID(id string) error {
	exists, err := r.ScreenIDExists(id)
	if err != nil {
		return err
	}
	if exists {
		return clierr.Precondition("Screen with id %q already exists", id)
	}
	return nil
}

// CheckExistence fails when the descriptor or controller of a screen in
// packageName already exists. Empty names are not checked.
func (r *Registration) CheckExistence(packageName, descriptor, controller string) error {
	dir := r.project.Module(project.ModuleWeb).ResolvePackagePath(packageName)
	if descriptor != "" && fileExists(filepath.Join(dir, descriptor+".xml")) {
		return clierr.Precondition("Screen descriptor %s.%s.xml already exists", packageName, descriptor)
	}
	if controller != "" && fileExists(filepath.Join(dir, controller+".java")) {
		return clierr.Precondition("Screen controller %s.%s already exists", packageName, controller)
	}
	return nil
}

// AddToScreensXML registers a screen descriptor under id. Callers check
// CheckScreenID first; the registry itself is not deduplicated.
func (r *Registration) AddToScreensXML(id, packageName, descriptor string) error {
	path := r.project.ScreensXML()
	template := project.PackageDirectory(packageName) + "/" + descriptor + ".xml"

	err := patch.UpdateXML(path, func(doc *etree.Document) error {
		patch.AppendChild(doc.Root(), "screen",
			patch.Attr{Key: "id", Value: id},
			patch.Attr{Key: "template", Value: template})
		return nil
	})
	if err != nil {
		return err
	}
	r.modified(path)
	return nil
}

// AddToMenu adds a menu item opening screen id to the first menu of
// web-menu.xml and stores its caption in the main message bundle.
func (r *Registration) AddToMenu(id, caption string) error {
	menu := r.project.MenuXML()
	err := patch.UpdateXML(menu, func(doc *etree.Document) error {
		parent := patch.FindOrCreate(doc.Root(), "menu")
		patch.AppendChild(parent, "item",
			patch.Attr{Key: "id", Value: id},
			patch.Attr{Key: "screen", Value: id})
		return nil
	})
	if err != nil {
		return err
	}
	r.modified(menu)

	messages := r.project.WebMessages()
	if err := patch.SetProperty(messages, menuMessagePrefix+id, caption); err != nil {
		return err
	}
	r.modified(messages)
	return nil
}

func (r *Registration) modified(path string) {
	if r.printer != nil {
		r.printer.FileModified(path)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
