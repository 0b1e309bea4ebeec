package project

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var (
	rePackageDecl = regexp.MustCompile(`^\s*package\s+([\w.]+)\s*;`)
	reClassDecl   = regexp.MustCompile(`^\s*(?:@[\w.]+(?:\([^)]*\)\s*|\s+))*(?:(?:public|protected|private|abstract|final|static)\s+)*class\s+(\w+)`)
	reEntityAnn   = regexp.MustCompile(`^\s*(?:@[\w.]+(?:\([^)]*\))?\s*)*@(?:javax\.persistence\.)?(Entity|Embeddable)\b`)
)

// Entity is a persistent class found in the global module.
type Entity struct {
	Name        string
	PackageName string
	Embeddable  bool
	// Path is the Java source file.
	Path string
}

// FQN returns the fully qualified class name.
func (e Entity) FQN() string {
	if e.PackageName == "" {
		return e.Name
	}
	return e.PackageName + "." + e.Name
}

// String implements fmt.Stringer.
func (e Entity) String() string {
	return e.FQN()
}

// Entities scans the global module sources for classes annotated with
// @Entity or @Embeddable, sorted by fully qualified name.
func (s *Structure) Entities() ([]Entity, error) {
	src := s.Module(ModuleGlobal).Src
	var entities []Entity

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".java" {
			return nil
		}
		e, ok, err := parseEntity(path)
		if err != nil {
			return err
		}
		if ok {
			entities = append(entities, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching entities in %s: %w", src, err)
	}

	sort.Slice(entities, func(i, j int) bool { return entities[i].FQN() < entities[j].FQN() })
	return entities, nil
}

// PersistentEntities returns Entities without the embeddable ones.
func (s *Structure) PersistentEntities() ([]Entity, error) {
	all, err := s.Entities()
	if err != nil {
		return nil, err
	}
	var out []Entity
	for _, e := range all {
		if !e.Embeddable {
			out = append(out, e)
		}
	}
	return out, nil
}

func parseEntity(path string) (Entity, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return Entity{}, false, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	e := Entity{Path: path}
	annotated := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		if m := rePackageDecl.FindStringSubmatch(line); m != nil && e.PackageName == "" {
			e.PackageName = m[1]
			continue
		}
		if m := reEntityAnn.FindStringSubmatch(line); m != nil {
			annotated = true
			e.Embeddable = m[1] == "Embeddable"
		}
		if m := reClassDecl.FindStringSubmatch(line); m != nil {
			e.Name = m[1]
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return Entity{}, false, fmt.Errorf("reading %s: %w", path, err)
	}
	return e, annotated && e.Name != "", nil
}
