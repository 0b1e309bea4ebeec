package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/beevik/etree"
)

var (
	reRootProjectName = regexp.MustCompile(`(?m)^\s*rootProject\.name\s*=\s*['"]([^'"]+)['"]`)
	reCubaVersion     = regexp.MustCompile(`(?m)^\s*ext\.cubaVersion\s*=\s*['"]([^'"]+)['"]`)
	reModulePrefix    = regexp.MustCompile(`(?m)^\s*def\s+modulePrefix\s*=\s*['"]([^'"]+)['"]`)
	reArtifactGroup   = regexp.MustCompile(`(?m)^\s*group\s*=\s*['"]([^'"]+)['"]`)
)

// facts collects what is known about a project before it becomes a Model.
type facts struct {
	name            string
	group           string
	rootPackage     string
	namespace       string
	modulePrefix    string
	platformVersion string
	modules         map[string]string
}

func inferFromGradle(root string) (*facts, error) {
	f := &facts{modules: map[string]string{}}

	settings, err := os.ReadFile(filepath.Join(root, settingsGradle))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", settingsGradle, err)
	}
	build, err := os.ReadFile(filepath.Join(root, buildGradle))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", buildGradle, err)
	}

	f.name = firstMatch(reRootProjectName, settings)
	f.modulePrefix = firstMatch(reModulePrefix, build)
	if f.modulePrefix == "" {
		f.modulePrefix = firstMatch(reModulePrefix, settings)
	}
	f.platformVersion = firstMatch(reCubaVersion, build)
	f.group = firstMatch(reArtifactGroup, build)

	metadata := filepath.Join(root, "modules", ModuleGlobal, "src", "metadata.xml")
	rootPackage, namespace, err := readMetadataModel(metadata)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	f.rootPackage = rootPackage
	f.namespace = namespace
	if f.rootPackage == "" {
		f.rootPackage = f.group
	}

	return f, nil
}

// readMetadataModel returns the root-package and namespace attributes of the
// <metadata-model> element in metadata.xml.
func readMetadataModel(path string) (string, string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", "", err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return "", "", fmt.Errorf("parsing %s: %w", path, err)
	}
	el := doc.FindElement("//metadata-model")
	if el == nil {
		return "", "", nil
	}
	return el.SelectAttrValue("root-package", ""), el.SelectAttrValue("namespace", ""), nil
}

func (f *facts) model() (*Model, error) {
	m := &Model{
		Name:                 f.name,
		Group:                f.group,
		RootPackage:          f.rootPackage,
		RootPackageDirectory: PackageDirectory(f.rootPackage),
		Namespace:            f.namespace,
		ModulePrefix:         f.modulePrefix,
	}
	if m.Namespace == "" && m.RootPackage != "" {
		m.Namespace = m.RootPackage[strings.LastIndex(m.RootPackage, ".")+1:]
	}
	if f.platformVersion != "" {
		v, err := semver.NewVersion(f.platformVersion)
		if err != nil {
			return nil, fmt.Errorf("parsing platform version %q: %w", f.platformVersion, err)
		}
		m.PlatformVersion = v
	}
	return m, nil
}

func firstMatch(re *regexp.Regexp, data []byte) string {
	m := re.FindSubmatch(data)
	if m == nil {
		return ""
	}
	return string(m[1])
}
