// Package cli defines the Cobra command tree for the cuba CLI. Each file
// registers one group of commands with the root command. Generators are
// built by their own packages; this package only parses flags, owns the
// session and maps the shell onto the same commands.
package cli
