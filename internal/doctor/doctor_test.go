package doctor

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuba-labs/cuba-cli/internal/project"
	"github.com/cuba-labs/cuba-cli/internal/project/projecttest"
	"github.com/cuba-labs/cuba-cli/internal/templates"
)

func load(t *testing.T, root string) *project.Structure {
	t.Helper()
	p, err := project.Load(root)
	require.NoError(t, err)
	return p
}

func TestHealthyProject(t *testing.T) {
	root := projecttest.New(t, projecttest.Options{})
	var out bytes.Buffer

	c := New(&out, false)
	c.CheckProject(load(t, root))
	c.CheckTemplates(templates.Default())

	assert.Equal(t, 0, c.Problems(), out.String())
	assert.Contains(t, out.String(), "[WARN] gradlew")
	assert.Contains(t, out.String(), "[INFO] 2 persistent entities")
	assert.Contains(t, out.String(), "extendable themes: [halo hover]")
	assert.Contains(t, out.String(), "[ OK ] entityListener")
}

func TestMissingModule(t *testing.T) {
	root := projecttest.New(t, projecttest.Options{})
	p := load(t, root)
	require.NoError(t, os.RemoveAll(p.Module(project.ModuleCore).Path))

	var out bytes.Buffer
	c := New(&out, false)
	c.CheckProject(p)
	assert.Equal(t, 1, c.Problems(), out.String())
	assert.Contains(t, out.String(), "[MISS] core module "+p.Module(project.ModuleCore).Path+" does not exist")
	assert.Contains(t, out.String(), "[ OK ] "+p.Module(project.ModuleWeb).Src+" exists")
}

func TestMissingRegistryFiles(t *testing.T) {
	root := projecttest.New(t, projecttest.Options{})
	p := load(t, root)
	require.NoError(t, os.Remove(p.ScreensXML()))
	require.NoError(t, os.Remove(p.MenuXML()))

	var out bytes.Buffer
	c := New(&out, false)
	c.CheckProject(p)
	assert.Equal(t, 2, c.Problems())
	assert.Contains(t, out.String(), "[MISS] "+p.ScreensXML())

	out.Reset()
	c = New(&out, true)
	c.CheckProject(p)
	assert.Equal(t, 0, c.Problems(), out.String())
	assert.Contains(t, out.String(), "[FIX ] Created "+p.MenuXML())

	menu := projecttest.ReadFile(t, root, "modules/web/src/com/acme/sample/web-menu.xml")
	assert.Contains(t, menu, `<menu-config xmlns="http://schemas.haulmont.com/cuba/menu.xsd">`)
	assert.Contains(t, menu, `<menu id="application"/>`)
}

func TestWrapperPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no permission bits on windows")
	}
	root := projecttest.New(t, projecttest.Options{})
	wrapper := filepath.Join(root, "gradlew")
	require.NoError(t, os.WriteFile(wrapper, []byte("#!/bin/sh\n"), 0644))

	var out bytes.Buffer
	New(&out, false).CheckProject(load(t, root))
	assert.Contains(t, out.String(), "is not executable")

	out.Reset()
	New(&out, true).CheckProject(load(t, root))
	info, err := os.Stat(wrapper)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestInvalidDescriptor(t *testing.T) {
	root := projecttest.New(t, projecttest.Options{})
	p := load(t, root)
	projecttest.WriteFile(t, root, "cuba-project.yaml", "unknownKey: 1\n")

	var out bytes.Buffer
	c := New(&out, false)
	c.CheckProject(p)
	assert.Equal(t, 1, c.Problems())
	assert.Contains(t, out.String(), "[FAIL] ")
}

func TestIncompleteTemplates(t *testing.T) {
	fsys := fstest.MapFS{"screen/a.xml": {Data: []byte("x")}}

	var out bytes.Buffer
	c := New(&out, false)
	c.CheckTemplates(fsys)
	assert.Equal(t, len(templateSets)-1, c.Problems())
	assert.Contains(t, out.String(), "[MISS] template set entityScreen not found")
}
