// Package projecttest builds throwaway CUBA project trees for tests.
package projecttest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Defaults of the generated project.
const (
	RootPackage  = "com.acme.sample"
	Namespace    = "sample"
	ModulePrefix = "app"
)

// Options tweaks the generated project.
type Options struct {
	// PlatformVersion defaults to 6.10.3.
	PlatformVersion string
	// NoMetadata omits modules/global/src/metadata.xml.
	NoMetadata bool
	// ExtraFiles are written relative to the project root.
	ExtraFiles map[string]string
}

// SettingsGradle is the generated settings.gradle.
const SettingsGradle = `rootProject.name = 'sample'
def modulePrefix = 'app'

include(":${modulePrefix}-global", ":${modulePrefix}-core", ":${modulePrefix}-web")

project(":${modulePrefix}-global").projectDir = new File(settingsDir, 'modules/global')
project(":${modulePrefix}-core").projectDir = new File(settingsDir, 'modules/core')
project(":${modulePrefix}-web").projectDir = new File(settingsDir, 'modules/web')
`

const buildGradle = `buildscript {
    ext.cubaVersion = '%VERSION%'
    repositories {
        maven {
            url 'https://repo.cuba-platform.com/content/groups/work'
        }
    }
    dependencies {
        classpath "com.haulmont.gradle:cuba-plugin:$cubaVersion"
    }
}

def modulePrefix = 'app'

def globalModule = project(":${modulePrefix}-global")
def coreModule = project(":${modulePrefix}-core")
def webModule = project(":${modulePrefix}-web")

apply(plugin: 'cuba')

cuba {
    artifact {
        group = 'com.acme.sample'
        version = '0.1'
        isSnapshot = true
    }
}

configure([globalModule, coreModule, webModule]) {
    apply(plugin: 'java')
    apply(plugin: 'maven')
    apply(plugin: 'cuba')
}

configure(webModule) {
    configurations {
        webcontent
    }

    dependencies {
        compile(globalModule)
    }
}
`

const metadataXML = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<metadata xmlns="http://schemas.haulmont.com/cuba/metadata.xsd">
    <metadata-model root-package="com.acme.sample" namespace="sample"/>
</metadata>
`

const screensXML = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<screen-config xmlns="http://schemas.haulmont.com/cuba/screens.xsd">
    <screen id="sample$Customer.browse" template="com/acme/sample/web/customer/customer-browse.xml"/>
</screen-config>
`

const menuXML = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<menu-config xmlns="http://schemas.haulmont.com/cuba/menu.xsd">
    <menu id="application" insertBefore="administration">
        <item id="sample$Customer.browse"/>
    </menu>
</menu-config>
`

const messages = `# Main messages
application.caption = Sample
menu-config.application = Application
`

// CustomerJava is an entity without listeners.
const CustomerJava = `package com.acme.sample.entity;

import javax.persistence.Entity;
import javax.persistence.Table;
import com.haulmont.cuba.core.entity.StandardEntity;

@Table(name = "SAMPLE_CUSTOMER")
@Entity(name = "sample$Customer")
public class Customer extends StandardEntity {
    private static final long serialVersionUID = 1L;
}
`

// OrderJava is an entity that already has one listener.
const OrderJava = `package com.acme.sample.entity;

import javax.persistence.Entity;
import com.haulmont.cuba.core.entity.annotation.Listeners;
import com.haulmont.cuba.core.entity.StandardEntity;

@Listeners("sample_AuditListener")
@Entity(name = "sample$Order")
public class Order extends StandardEntity {
}
`

// AddressJava is an embeddable class.
const AddressJava = `package com.acme.sample.entity;

import javax.persistence.Embeddable;
import com.haulmont.cuba.core.entity.EmbeddableEntity;

@Embeddable
public class Address extends EmbeddableEntity {
}
`

// New writes a project into a temp directory and returns its root.
func New(t testing.TB, opts Options) string {
	t.Helper()
	root := t.TempDir()

	version := opts.PlatformVersion
	if version == "" {
		version = "6.10.3"
	}

	files := map[string]string{
		"settings.gradle": SettingsGradle,
		"build.gradle":    replaceVersion(buildGradle, version),
		"modules/web/src/com/acme/sample/web-screens.xml":         screensXML,
		"modules/web/src/com/acme/sample/web-menu.xml":            menuXML,
		"modules/web/src/com/acme/sample/web/messages.properties": messages,
		"modules/global/src/com/acme/sample/entity/Customer.java": CustomerJava,
		"modules/global/src/com/acme/sample/entity/Order.java":    OrderJava,
		"modules/global/src/com/acme/sample/entity/Address.java":  AddressJava,
		"modules/core/src/com/acme/sample/listener/.keep":         "",
	}
	if !opts.NoMetadata {
		files["modules/global/src/metadata.xml"] = metadataXML
	}
	for name, content := range opts.ExtraFiles {
		files[name] = content
	}

	for name, content := range files {
		WriteFile(t, root, name, content)
	}
	return root
}

// WriteFile writes content to root/name, creating parent directories.
func WriteFile(t testing.TB, root, name, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// ReadFile returns the content of root/name.
func ReadFile(t testing.TB, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

func replaceVersion(s, version string) string {
	return strings.Replace(s, "%VERSION%", version, 1)
}
