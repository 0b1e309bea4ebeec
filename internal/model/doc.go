// Package model holds the per-run registry of artifact models. A command
// builds its model once from the answers, validates it, and registers it
// under a well-known name; later phases read it back with Get and the
// template renderer consumes all registered models flattened into bindings.
package model
