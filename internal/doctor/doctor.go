package doctor

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/beevik/etree"

	"github.com/cuba-labs/cuba-cli/internal/gradle"
	"github.com/cuba-labs/cuba-cli/internal/project"
	"github.com/cuba-labs/cuba-cli/internal/theme"
)

// Template sets the generators render.
var templateSets = []string{"screen", "entityScreen", "entityListener", "themes/halo", "themes/hover", "snippets/theme"}

const (
	screensNamespace = "http://schemas.haulmont.com/cuba/screens.xsd"
	menuNamespace    = "http://schemas.haulmont.com/cuba/menu.xsd"
	wrapperPerm      = 0755
)

// Checker writes one line per check and counts the problems it leaves
// unfixed.
type Checker struct {
	w        io.Writer
	fix      bool
	problems int
}

// New creates a Checker reporting to w. With fix set, repairable problems
// are repaired.
func New(w io.Writer, fix bool) *Checker {
	return &Checker{w: w, fix: fix}
}

// Problems returns the number of unfixed problems found so far.
func (c *Checker) Problems() int {
	return c.problems
}

// CheckProject runs every project check.
func (c *Checker) CheckProject(p *project.Structure) {
	fmt.Fprintf(c.w, "Project %s (%s):\n", p.Model.Name, p.Root)

	c.checkFile(p.SettingsGradle())
	c.checkFile(p.BuildGradle())
	c.checkDescriptor(p.Root)
	for _, name := range []string{project.ModuleGlobal, project.ModuleCore, project.ModuleWeb} {
		c.checkModule(p.Module(name))
	}
	c.checkWrapper(p.Root)
	c.checkRegistry(p.ScreensXML(), "screen-config", screensNamespace, false)
	c.checkRegistry(p.MenuXML(), "menu-config", menuNamespace, true)

	fmt.Fprintf(c.w, "  [INFO] platform %s, root package %s\n", p.Model.PlatformVersion, p.Model.RootPackage)
	if entities, err := p.PersistentEntities(); err != nil {
		c.fail("scanning entities: %v", err)
	} else {
		fmt.Fprintf(c.w, "  [INFO] %d persistent entities\n", len(entities))
	}
	if themes, err := theme.Extendable(p); err != nil {
		c.fail("reading themes: %v", err)
	} else if len(themes) == 0 {
		fmt.Fprintln(c.w, "  [INFO] no themes left to extend")
	} else {
		fmt.Fprintf(c.w, "  [INFO] extendable themes: %v\n", themes)
	}
}

// CheckTemplates verifies that every template set exists in fsys.
func (c *Checker) CheckTemplates(fsys fs.FS) {
	fmt.Fprintln(c.w, "Templates:")
	for _, set := range templateSets {
		info, err := fs.Stat(fsys, set)
		if err != nil || !info.IsDir() {
			c.miss("template set %s not found", set)
			continue
		}
		fmt.Fprintf(c.w, "  [ OK ] %s\n", set)
	}
}

func (c *Checker) checkFile(path string) {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		c.miss("%s does not exist", path)
	case err != nil:
		c.fail("%s: %v", path, err)
	case info.IsDir():
		c.fail("%s is a directory", path)
	default:
		fmt.Fprintf(c.w, "  [ OK ] %s exists\n", path)
	}
}

func (c *Checker) checkModule(m project.Module) {
	if !m.Exists() {
		c.miss("%s module %s does not exist", m.Name, m.Path)
		return
	}
	c.checkDir(m.Src)
}

func (c *Checker) checkDir(path string) {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		c.miss("%s does not exist", path)
	case err != nil:
		c.fail("%s: %v", path, err)
	case !info.IsDir():
		c.fail("%s exists but is not a directory", path)
	default:
		fmt.Fprintf(c.w, "  [ OK ] %s exists\n", path)
	}
}

func (c *Checker) checkDescriptor(root string) {
	path := project.DescriptorPath(root)
	_, err := project.LoadDescriptor(root)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintf(c.w, "  [INFO] no descriptor at %s, settings are inferred from Gradle\n", path)
	case err != nil:
		c.fail("%v", err)
	default:
		fmt.Fprintf(c.w, "  [ OK ] %s is valid\n", path)
	}
}

// checkWrapper only warns: generators work without a wrapper, build does not.
func (c *Checker) checkWrapper(root string) {
	path, err := gradle.Wrapper(root)
	if err != nil {
		fmt.Fprintf(c.w, "  [WARN] %s not found, build will not run\n", gradle.WrapperName())
		return
	}
	if runtime.GOOS == "windows" {
		fmt.Fprintf(c.w, "  [ OK ] %s exists\n", path)
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		c.fail("%s: %v", path, err)
		return
	}
	if info.Mode().Perm()&0111 != 0 {
		fmt.Fprintf(c.w, "  [ OK ] %s is executable\n", path)
		return
	}

	fmt.Fprintf(c.w, "  [WARN] %s is not executable (permissions %o)\n", path, info.Mode().Perm())
	if c.fix {
		if err := os.Chmod(path, wrapperPerm); err != nil {
			c.fail("could not fix permissions on %s: %v", path, err)
			return
		}
		fmt.Fprintf(c.w, "  [FIX ] Fixed permissions on %s to %o\n", path, wrapperPerm)
	}
}

// checkRegistry verifies that path is an XML file with the given root
// element. A missing file is created empty when fixing.
func (c *Checker) checkRegistry(path, rootTag, namespace string, withMenu bool) {
	doc := etree.NewDocument()
	err := doc.ReadFromFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if !c.fix {
			c.miss("%s does not exist", path)
			return
		}
		if err := writeRegistry(path, rootTag, namespace, withMenu); err != nil {
			c.fail("could not create %s: %v", path, err)
			return
		}
		fmt.Fprintf(c.w, "  [FIX ] Created %s\n", path)
		return
	}
	if err != nil {
		c.fail("%s: %v", path, err)
		return
	}
	if root := doc.Root(); root == nil || root.Tag != rootTag {
		c.fail("%s has no <%s> root element", path, rootTag)
		return
	}
	fmt.Fprintf(c.w, "  [ OK ] %s\n", path)
}

func writeRegistry(path, rootTag, namespace string, withMenu bool) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(rootTag)
	root.CreateAttr("xmlns", namespace)
	if withMenu {
		root.CreateElement("menu").CreateAttr("id", "application")
	}
	doc.Indent(4)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return doc.WriteToFile(path)
}

func (c *Checker) miss(format string, args ...any) {
	c.problems++
	fmt.Fprintf(c.w, "  [MISS] %s\n", fmt.Sprintf(format, args...))
}

func (c *Checker) fail(format string, args ...any) {
	c.problems++
	fmt.Fprintf(c.w, "  [FAIL] %s\n", fmt.Sprintf(format, args...))
}
