package entitylistener

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuba-labs/cuba-cli/internal/clierr"
	"github.com/cuba-labs/cuba-cli/internal/generator"
	"github.com/cuba-labs/cuba-cli/internal/patch"
	"github.com/cuba-labs/cuba-cli/internal/project"
	"github.com/cuba-labs/cuba-cli/internal/project/projecttest"
	"github.com/cuba-labs/cuba-cli/internal/prompt"
	"github.com/cuba-labs/cuba-cli/internal/templates"
)

func run(t *testing.T, root string, overrides map[string]string, patcher patch.AnnotationPatcher) error {
	t.Helper()
	session := generator.NewSession(root, templates.Default(), strings.NewReader(""), &bytes.Buffer{}, true)
	require.NoError(t, session.ProjectErr)
	ctx, err := session.NewContext(overrides)
	require.NoError(t, err)
	return generator.Run(ctx, Command(patcher))
}

func onlyEvents(on ...string) map[string]string {
	m := map[string]string{}
	for _, e := range Events {
		m[e.ID] = "no"
	}
	for _, id := range on {
		m[id] = "yes"
	}
	return m
}

func TestCreateEntityListener(t *testing.T) {
	root := projecttest.New(t, projecttest.Options{})
	overrides := onlyEvents("beforeInsert", "afterUpdate")
	overrides["className"] = "CustomerListener"
	overrides["entityType"] = "com.acme.sample.entity.Customer"

	require.NoError(t, run(t, root, overrides, nil))

	listener := projecttest.ReadFile(t, root, "modules/core/src/com/acme/sample/listener/CustomerListener.java")
	want := `package com.acme.sample.listener;

import org.springframework.stereotype.Component;
import com.haulmont.cuba.core.EntityManager;
import com.haulmont.cuba.core.listener.AfterUpdateEntityListener;
import com.haulmont.cuba.core.listener.BeforeInsertEntityListener;
import java.sql.Connection;
import com.acme.sample.entity.Customer;

@Component("sample_CustomerListener")
public class CustomerListener implements BeforeInsertEntityListener<Customer>, AfterUpdateEntityListener<Customer> {
    @Override
    public void onBeforeInsert(Customer entity, EntityManager entityManager) {

    }

    @Override
    public void onAfterUpdate(Customer entity, Connection connection) {

    }
}
`
	assert.Equal(t, want, listener)

	entity := projecttest.ReadFile(t, root, "modules/global/src/com/acme/sample/entity/Customer.java")
	assert.Contains(t, entity, `@Listeners({"sample_CustomerListener"})`)
	assert.Contains(t, entity, "import com.haulmont.cuba.core.entity.annotation.Listeners;")
}

func TestCreateEntityListenerMergesAnnotation(t *testing.T) {
	root := projecttest.New(t, projecttest.Options{})
	overrides := map[string]string{
		"className":  "OrderListener",
		"entityType": "com.acme.sample.entity.Order",
		"beanName":   "sample_OrderListener",
	}

	require.NoError(t, run(t, root, overrides, nil))

	entity := projecttest.ReadFile(t, root, "modules/global/src/com/acme/sample/entity/Order.java")
	assert.Contains(t, entity, `@Listeners({"sample_AuditListener", "sample_OrderListener"})`)
	assert.Equal(t, 1, strings.Count(entity, "import com.haulmont.cuba.core.entity.annotation.Listeners;"))

	listener := projecttest.ReadFile(t, root, "modules/core/src/com/acme/sample/listener/OrderListener.java")
	for _, e := range Events {
		assert.Contains(t, listener, e.Interface()+"<Order>", "all events default to yes")
	}
}

func TestCreateEntityListenerRequiresAnInterface(t *testing.T) {
	root := projecttest.New(t, projecttest.Options{})
	overrides := onlyEvents()
	overrides["className"] = "CustomerListener"
	overrides["entityType"] = "1"

	err := run(t, root, overrides, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, clierr.ErrValidation)
	assert.Contains(t, err.Error(), "Listener must implement at least one of the interfaces")
	_, statErr := os.Stat(filepath.Join(root, "modules/core/src/com/acme/sample/listener/CustomerListener.java"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCreateEntityListenerExisting(t *testing.T) {
	root := projecttest.New(t, projecttest.Options{
		ExtraFiles: map[string]string{
			"modules/core/src/com/acme/sample/listener/CustomerListener.java": "class CustomerListener {}",
		},
	})

	err := run(t, root, map[string]string{"className": "CustomerListener", "entityType": "1"}, nil)
	assert.ErrorIs(t, err, clierr.ErrPrecondition)
	assert.EqualError(t, err, `Entity listener "com.acme.sample.listener.CustomerListener" already exists`)
}

type failingPatcher struct{}

func (failingPatcher) AddValue(string, patch.Annotation, string) error {
	return errors.New("patch refused")
}

func TestCreateEntityListenerUsesPatcher(t *testing.T) {
	root := projecttest.New(t, projecttest.Options{})

	err := run(t, root, map[string]string{"className": "CustomerListener", "entityType": "1"}, failingPatcher{})
	assert.EqualError(t, err, "patch refused")
}

func TestCreateEntityListenerWithoutEntities(t *testing.T) {
	root := projecttest.New(t, projecttest.Options{})
	require.NoError(t, os.RemoveAll(filepath.Join(root, "modules/global/src/com/acme/sample/entity")))

	err := run(t, root, map[string]string{"className": "X"}, nil)
	assert.EqualError(t, err, "Project does not have any suitable entities.")
}

func TestNewModel(t *testing.T) {
	entity := project.Entity{Name: "Customer", PackageName: "com.acme.entity"}
	answers := prompt.NewAnswers(map[string]any{
		"className":    "CustomerListener",
		"packageName":  "com.acme.listener",
		"beanName":     "acme_CustomerListener",
		"beforeAttach": true,
		"afterDelete":  false,
	})

	m, err := NewModel(answers, entity)
	require.NoError(t, err)
	assert.Equal(t, "com/acme/listener", m.PackageDirectory)
	assert.Equal(t, []string{"BeforeAttachEntityListener"}, m.Interfaces)
	assert.Equal(t, "BeforeAttachEntityListener<Customer>", m.ImplementsClause)
	assert.Equal(t, "import com.haulmont.cuba.core.listener.BeforeAttachEntityListener;", m.Imports)
	assert.Contains(t, m.Methods, "public void onBeforeAttach(Customer entity) {")
	assert.Equal(t, "com.acme.listener.CustomerListener", m.FQN())

	_, err = NewModel(prompt.NewAnswers(map[string]any{
		"className": "A", "packageName": "a", "beanName": "b", "beforeInsert": false,
	}), entity)
	assert.ErrorIs(t, err, clierr.ErrValidation)
}

func TestEventInterfaces(t *testing.T) {
	var names []string
	for _, e := range Events {
		names = append(names, e.Interface())
	}
	assert.Equal(t, []string{
		"BeforeInsertEntityListener",
		"BeforeUpdateEntityListener",
		"BeforeDeleteEntityListener",
		"AfterInsertEntityListener",
		"AfterUpdateEntityListener",
		"AfterDeleteEntityListener",
		"BeforeAttachEntityListener",
		"BeforeDetachEntityListener",
	}, names)
}
