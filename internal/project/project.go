package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/cuba-labs/cuba-cli/internal/clierr"
	"github.com/cuba-labs/cuba-cli/internal/model"
)

// ModelName is the registry name of the project model.
const ModelName = "project"

// Module names.
const (
	ModuleGlobal = "global"
	ModuleCore   = "core"
	ModuleWeb    = "web"
)

const (
	settingsGradle = "settings.gradle"
	buildGradle    = "build.gradle"
)

// ErrNotInProject is returned when no project root can be found.
var ErrNotInProject = fmt.Errorf("not inside a CUBA project: %w", clierr.ErrPrecondition)

// Model describes the project as seen by templates ("project.*" bindings).
type Model struct {
	Name                 string          `binding:"name"`
	Group                string          `binding:"group"`
	RootPackage          string          `binding:"rootPackage" validate:"required"`
	RootPackageDirectory string          `binding:"rootPackageDirectory" validate:"required"`
	Namespace            string          `binding:"namespace" validate:"required"`
	ModulePrefix         string          `binding:"modulePrefix" validate:"required"`
	PlatformVersion      *semver.Version `binding:"platformVersion" validate:"required"`
}

// Structure locates files inside a project.
type Structure struct {
	Root    string
	Model   *Model
	modules map[string]string
}

// Module is one Gradle module of the project.
type Module struct {
	Name string
	// Path is the module directory.
	Path string
	// Src is the module's source root.
	Src string

	rootPackageDir string
}

// RootPackageDirectory is the directory of the root package under Src.
func (m Module) RootPackageDirectory() string {
	return filepath.Join(m.Src, filepath.FromSlash(m.rootPackageDir))
}

// ResolvePackagePath returns the directory of a Java package under Src.
func (m Module) ResolvePackagePath(pkg string) string {
	return filepath.Join(m.Src, filepath.FromSlash(PackageDirectory(pkg)))
}

// Exists reports whether the module directory is present.
func (m Module) Exists() bool {
	info, err := os.Stat(m.Path)
	return err == nil && info.IsDir()
}

// PackageDirectory converts a dotted package name into a slash separated path.
func PackageDirectory(pkg string) string {
	return strings.ReplaceAll(pkg, ".", "/")
}

// Find walks up from start until it finds a directory holding both
// settings.gradle and build.gradle.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}

	for {
		if isFile(filepath.Join(dir, settingsGradle)) && isFile(filepath.Join(dir, buildGradle)) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("searching from %s: %w", start, ErrNotInProject)
		}
		dir = parent
	}
}

// Load reads the project rooted at root.
func Load(root string) (*Structure, error) {
	info, err := inferFromGradle(root)
	if err != nil {
		return nil, err
	}

	desc, err := LoadDescriptor(root)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if desc != nil {
		desc.apply(info)
	}

	m, err := info.model()
	if err != nil {
		return nil, err
	}
	if err := model.Validate(m); err != nil {
		return nil, &clierr.DetailError{
			Type:     "invalid project",
			Message:  fmt.Sprintf("could not determine project settings: %v", err),
			Location: root,
			Hint:     fmt.Sprintf("Check build.gradle or add a %s descriptor.", descriptorName()),
			Cause:    clierr.ErrPrecondition,
		}
	}

	return &Structure{Root: root, Model: m, modules: info.modules}, nil
}

// Open finds and loads the project containing dir.
func Open(dir string) (*Structure, error) {
	root, err := Find(dir)
	if err != nil {
		return nil, err
	}
	return Load(root)
}

// Module returns the named module.
func (s *Structure) Module(name string) Module {
	rel, ok := s.modules[name]
	if !ok {
		rel = filepath.Join("modules", name)
	}
	path := filepath.Join(s.Root, filepath.FromSlash(rel))
	return Module{
		Name:           name,
		Path:           path,
		Src:            filepath.Join(path, "src"),
		rootPackageDir: s.Model.RootPackageDirectory,
	}
}

// SettingsGradle is the path of settings.gradle.
func (s *Structure) SettingsGradle() string {
	return filepath.Join(s.Root, settingsGradle)
}

// BuildGradle is the path of build.gradle.
func (s *Structure) BuildGradle() string {
	return filepath.Join(s.Root, buildGradle)
}

// ScreensXML is the web module's screen registry.
func (s *Structure) ScreensXML() string {
	return filepath.Join(s.Module(ModuleWeb).RootPackageDirectory(), "web-screens.xml")
}

// MenuXML is the web module's main menu definition.
func (s *Structure) MenuXML() string {
	return filepath.Join(s.Module(ModuleWeb).RootPackageDirectory(), "web-menu.xml")
}

// WebMessages is the web module's main message bundle.
func (s *Structure) WebMessages() string {
	return filepath.Join(s.Module(ModuleWeb).RootPackageDirectory(), "web", "messages.properties")
}

// ThemesDir holds extended themes.
func (s *Structure) ThemesDir() string {
	return filepath.Join(s.Module(ModuleWeb).Path, "themes")
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
