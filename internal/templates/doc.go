// Package templates renders template sets into a project.
//
// A template set is a directory in a template tree (the embedded resources
// or a user supplied directory). Rendering substitutes ${key} tokens from a
// flat bindings map in both file paths and contents; tokens without a
// binding are left untouched, so Gradle or SCSS "${...}" expressions survive.
//
// Rendering only ever creates files. Every target is checked before the
// first write, and a set that would overwrite anything writes nothing.
package templates
