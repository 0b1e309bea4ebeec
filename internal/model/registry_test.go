package model

import (
	"errors"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuba-labs/cuba-cli/internal/clierr"
)

type entity struct {
	Name    string
	Package string `binding:"packageName"`
}

type sample struct {
	ScreenName string `validate:"required"`
	Package    string `binding:"packageName" validate:"required"`
	Entity     entity
	Version    *semver.Version
	Events     []string
	Hidden     string `binding:"-"`
	internal   string
}

func TestRegistryAddAndGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add("screen", sample{ScreenName: "a"}))

	err := r.Add("screen", sample{})
	assert.Error(t, err, "double registration is rejected")

	got, err := Get[sample](r, "screen")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ScreenName)

	_, err = Get[entity](r, "screen")
	assert.Error(t, err)

	_, err = Get[sample](r, "missing")
	assert.ErrorContains(t, err, "has not yet been created")
}

func TestBindings(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add("screen", sample{
		ScreenName: "customer-edit",
		Package:    "com.acme",
		Entity:     entity{Name: "Customer", Package: "com.acme.entity"},
		Version:    semver.MustParse("6.10.3"),
		Events:     []string{"beforeInsert", "afterDelete"},
		Hidden:     "x",
		internal:   "y",
	}))

	b := r.Bindings()

	assert.Equal(t, map[string]string{
		"gitignore":                 ".gitignore",
		"screen.screenName":         "customer-edit",
		"screen.packageName":        "com.acme",
		"screen.entity.name":        "Customer",
		"screen.entity.packageName": "com.acme.entity",
		"screen.version":            "6.10.3",
		"screen.events":             "beforeInsert, afterDelete",
	}, b)
}

func TestBindingsAreDeterministic(t *testing.T) {
	build := func() map[string]string {
		r := NewRegistry()
		_ = r.Add("b", entity{Name: "x"})
		_ = r.Add("a", entity{Name: "y"})
		return r.Bindings()
	}
	assert.Equal(t, build(), build())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(sample{ScreenName: "x", Package: "y"}))

	err := Validate(sample{ScreenName: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, clierr.ErrValidation))
	assert.Contains(t, err.Error(), "sample.Package")
}
