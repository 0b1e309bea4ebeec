// Package generator runs scaffolding commands through a fixed lifecycle:
//
//  1. pre-execution checks
//  2. prompting
//  3. model construction and validation
//  4. registration in the per-run model registry
//  5. pre-generation checks (read-only)
//  6. generation from the flattened bindings
//
// A Command supplies each phase as a closure. Context carries the state one
// invocation shares between phases; Session creates a fresh Context for each
// invocation, seeded with the project model.
package generator
