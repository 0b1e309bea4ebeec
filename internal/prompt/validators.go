package prompt

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	packagePattern    = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)*$`)
	identifierPattern = regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z0-9_$]*$`)
)

var javaKeywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true, "case": true,
	"catch": true, "char": true, "class": true, "const": true, "continue": true, "default": true,
	"do": true, "double": true, "else": true, "enum": true, "extends": true, "final": true,
	"finally": true, "float": true, "for": true, "goto": true, "if": true, "implements": true,
	"import": true, "instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true, "return": true,
	"short": true, "static": true, "strictfp": true, "super": true, "switch": true, "synchronized": true,
	"this": true, "throw": true, "throws": true, "transient": true, "try": true, "void": true,
	"volatile": true, "while": true, "true": true, "false": true, "null": true,
}

// CheckRegex requires the whole value to match pattern.
func CheckRegex(pattern, message string) Validator {
	re := regexp.MustCompile(`^(?:` + pattern + `)$`)
	return func(value string, _ Answers) error {
		if !re.MatchString(value) {
			return errors.New(message)
		}
		return nil
	}
}

// CheckIsPackage requires a dotted Java package name without keywords.
func CheckIsPackage() Validator {
	return func(value string, _ Answers) error {
		if !packagePattern.MatchString(value) {
			return fmt.Errorf("%q is not a valid package name", value)
		}
		for _, part := range strings.Split(value, ".") {
			if javaKeywords[part] {
				return fmt.Errorf("%q is not a valid package name: %q is a reserved word", value, part)
			}
		}
		return nil
	}
}

// CheckIsClass requires a Java class identifier.
func CheckIsClass() Validator {
	return func(value string, _ Answers) error {
		if !identifierPattern.MatchString(value) || javaKeywords[value] {
			return fmt.Errorf("%q is not a valid class name", value)
		}
		return nil
	}
}

// CheckNotEmpty rejects blank values.
func CheckNotEmpty() Validator {
	return func(value string, _ Answers) error {
		if strings.TrimSpace(value) == "" {
			return errors.New("value is required")
		}
		return nil
	}
}
