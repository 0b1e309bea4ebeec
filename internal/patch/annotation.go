package patch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cuba-labs/cuba-cli/internal/clierr"
)

// ListenersAnnotation is the CUBA entity annotation naming listener beans.
var ListenersAnnotation = Annotation{
	Name:   "Listeners",
	Import: "com.haulmont.cuba.core.entity.annotation.Listeners",
}

// Annotation identifies a class-level annotation holding a list of strings.
type Annotation struct {
	// Name is the simple annotation name, without "@".
	Name string
	// Import is the fully qualified name to import.
	Import string
}

// AnnotationPatcher adds a value to a class-level string-array annotation of
// a Java source file.
type AnnotationPatcher interface {
	AddValue(path string, ann Annotation, value string) error
}

// RegexAnnotationPatcher edits single-line annotations with regular
// expressions. The import is inserted after the last import (or at line 2)
// when absent; an existing annotation is rewritten as @Name({"a", "b"}) with
// the value appended unless already present; otherwise a new annotation is
// inserted above the class declaration.
type RegexAnnotationPatcher struct{}

// reClassLine also matches declarations that share their line with
// annotations, such as `@Entity(name = "x") public class X`.
var reClassLine = regexp.MustCompile(`^\s*(?:@[\w.]+(?:\([^)]*\)\s*|\s+))*(?:(?:public|protected|private|abstract|final|static)\s+)*class\s+\w+`)

const importLineIndex = 2

// AddValue implements AnnotationPatcher.
func (RegexAnnotationPatcher) AddValue(path string, ann Annotation, value string) error {
	text, err := ReadText(path)
	if err != nil {
		return err
	}
	patched, err := addAnnotationValue(path, text, ann, value)
	if err != nil {
		return err
	}
	if patched == text {
		return nil
	}
	return WriteText(path, patched)
}

func addAnnotationValue(path, text string, ann Annotation, value string) (string, error) {
	lines, trailing := splitLines(text)

	classIdx := -1
	for i, line := range lines {
		if reClassLine.MatchString(line) {
			classIdx = i
			break
		}
	}
	if classIdx < 0 {
		return "", clierr.AnchorNotFound(path, "a class declaration")
	}

	reAnnotation := regexp.MustCompile(`@` + regexp.QuoteMeta(ann.Name) + `\((?:\s*value\s*=\s*)?\{?([^(){}]*)\}?\)`)
	annIdx := -1
	for i := 0; i <= classIdx; i++ {
		if reAnnotation.MatchString(lines[i]) {
			annIdx = i
			break
		}
	}

	if annIdx >= 0 {
		line := lines[annIdx]
		loc := reAnnotation.FindStringSubmatchIndex(line)
		values := parseStringArray(line[loc[2]:loc[3]])
		if contains(values, value) {
			return text, nil
		}
		values = append(values, value)
		lines[annIdx] = line[:loc[0]] + formatAnnotation(ann.Name, values) + line[loc[1]:]
	} else {
		indent := lines[classIdx][:len(lines[classIdx])-len(strings.TrimLeft(lines[classIdx], " \t"))]
		lines = insertLine(lines, classIdx, indent+formatAnnotation(ann.Name, []string{value}))
	}

	lines = ensureImport(lines, ann.Import)
	return joinLines(lines, trailing), nil
}

func ensureImport(lines []string, fqn string) []string {
	statement := "import " + fqn + ";"
	last := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == statement {
			return lines
		}
		if strings.HasPrefix(trimmed, "import ") {
			last = i
		}
	}
	idx := last + 1
	if last < 0 {
		idx = min(importLineIndex, len(lines))
	}
	return insertLine(lines, idx, statement)
}

func parseStringArray(s string) []string {
	var values []string
	for _, part := range strings.Split(s, ",") {
		v := strings.Trim(strings.TrimSpace(part), `"`)
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

func formatAnnotation(name string, values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return "@" + name + "({" + strings.Join(quoted, ", ") + "})"
}

func insertLine(lines []string, idx int, line string) []string {
	lines = append(lines, "")
	copy(lines[idx+1:], lines[idx:])
	lines[idx] = line
	return lines
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
