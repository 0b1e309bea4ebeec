package project

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cuba-labs/cuba-cli/internal/branding"
	"github.com/cuba-labs/cuba-cli/internal/clierr"
)

//go:embed schema/project.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Descriptor is the optional project descriptor. Every field overrides the
// value inferred from the Gradle scripts.
type Descriptor struct {
	Name            string            `yaml:"name,omitempty"`
	Group           string            `yaml:"group,omitempty"`
	RootPackage     string            `yaml:"rootPackage,omitempty"`
	Namespace       string            `yaml:"namespace,omitempty"`
	ModulePrefix    string            `yaml:"modulePrefix,omitempty"`
	PlatformVersion string            `yaml:"platformVersion,omitempty"`
	Modules         map[string]string `yaml:"modules,omitempty"`
}

// ValidationIssue is a single schema violation in a descriptor.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/rootPackage")
	Message string
	Keyword string
}

func descriptorName() string {
	return branding.ProjectDescriptor()
}

// DescriptorPath returns the descriptor location for a project root.
func DescriptorPath(root string) string {
	return filepath.Join(root, descriptorName())
}

// LoadDescriptor reads and validates the descriptor in root. A missing file
// is reported with an error satisfying errors.Is(err, os.ErrNotExist).
func LoadDescriptor(root string) (*Descriptor, error) {
	path := DescriptorPath(root)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project descriptor: %w", err)
	}

	issues, err := ValidateDescriptor(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if len(issues) > 0 {
		msgs := make([]string, 0, len(issues))
		for _, issue := range issues {
			msgs = append(msgs, fmt.Sprintf("%s: %s", displayPath(issue.Path), issue.Message))
		}
		return nil, &clierr.DetailError{
			Type:     "invalid descriptor",
			Message:  "project descriptor is invalid: " + strings.Join(msgs, "; "),
			Location: path,
			Cause:    clierr.ErrValidation,
		}
	}

	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing project descriptor: %w", err)
	}
	return &d, nil
}

func (d *Descriptor) apply(f *facts) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&f.name, d.Name)
	set(&f.group, d.Group)
	set(&f.rootPackage, d.RootPackage)
	set(&f.namespace, d.Namespace)
	set(&f.modulePrefix, d.ModulePrefix)
	set(&f.platformVersion, d.PlatformVersion)
	for name, path := range d.Modules {
		f.modules[name] = path
	}
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("project.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("project.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// ValidateDescriptor checks raw YAML against the descriptor schema. The error
// return is for parse or schema failures; violations come back as issues.
func ValidateDescriptor(data []byte) ([]ValidationIssue, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	// Round-trip through JSON so the validator sees json.Number values.
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	var issues []ValidationIssue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		issues = append(issues, ValidationIssue{Message: ve.Error()})
	}
	return issues, nil
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	keyword := ""
	msg := ""
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			keyword = kw[len(kw)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}
	if keyword == "" || keyword == "$ref" {
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	*issues = append(*issues, ValidationIssue{Path: path, Message: msg, Keyword: keyword})
}

func displayPath(p string) string {
	if p == "" {
		return "(root)"
	}
	return p
}
