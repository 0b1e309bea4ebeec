// Package prompt implements the question/answer engine used by every
// scaffolding command. A command declares a List of questions; an Asker
// resolves each one from a non-interactive override, from its default, or by
// asking on the terminal, and returns a typed, read-only Answers set.
//
// Defaults computed with DefaultFunc and group guards receive the answers
// collected so far, so they may only refer to questions declared earlier in
// the list.
package prompt
