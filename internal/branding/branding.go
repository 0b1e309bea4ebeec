// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Hard defaults apply when a key is missing.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	Descriptor  string `yaml:"project_descriptor"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:     "cuba",
			DisplayName: "CUBA CLI",
			Description: "Scaffolding tool for CUBA platform projects",
			HomeDir:     ".cuba-cli",
			EnvPrefix:   "CUBA",
			Descriptor:  "cuba-project.yaml",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "cuba").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".cuba-cli").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "CUBA").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ProjectDescriptor returns the file name of the optional project descriptor
// looked up at the project root.
func ProjectDescriptor() string { load(); return defaults.Descriptor }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("home") → "CUBA_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
