package prompt

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAnswer is returned when no answer is stored for a question id.
	ErrMissingAnswer = errors.New("missing answer")

	// ErrWrongType is returned when an answer exists with a different type.
	ErrWrongType = errors.New("wrong answer type")
)

// Answers maps question ids to resolved values. Text and option questions
// store strings, confirmations store booleans.
type Answers struct {
	values map[string]any
}

// NewAnswers builds an answer set from literal values. Intended for tests and
// for commands that construct models without prompting.
func NewAnswers(values map[string]any) Answers {
	a := Answers{values: make(map[string]any, len(values))}
	for k, v := range values {
		a.values[k] = v
	}
	return a
}

// String returns the string answer for id.
func (a Answers) String(id string) (string, error) {
	v, ok := a.values[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingAnswer, id)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, not string", ErrWrongType, id, v)
	}
	return s, nil
}

// Bool returns the boolean answer for id.
func (a Answers) Bool(id string) (bool, error) {
	v, ok := a.values[id]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrMissingAnswer, id)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q is %T, not bool", ErrWrongType, id, v)
	}
	return b, nil
}

// StringOr returns the string answer for id, or fallback when it is absent.
func (a Answers) StringOr(id, fallback string) string {
	if s, err := a.String(id); err == nil {
		return s
	}
	return fallback
}

// Has reports whether an answer is stored for id.
func (a Answers) Has(id string) bool {
	_, ok := a.values[id]
	return ok
}

func (a Answers) set(id string, v any) {
	a.values[id] = v
}

func (a Answers) without(ids []string) {
	for _, id := range ids {
		delete(a.values, id)
	}
}
