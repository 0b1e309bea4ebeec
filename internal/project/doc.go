// Package project discovers the CUBA project the CLI operates on and
// describes its layout.
//
// A project root is the nearest directory, walking up from the working
// directory, that contains both settings.gradle and build.gradle. Project
// facts (root package, namespace, module prefix, platform version) are
// inferred from the Gradle scripts and the global module's metadata.xml, and
// may be overridden by an optional cuba-project.yaml descriptor validated
// against an embedded JSON schema.
//
// Modules follow the standard layout modules/{global,core,web}/src, with
// sources rooted at the root package directory.
package project
