package prompt

import (
	"strconv"
)

// Kind is the type of input a question expects.
type Kind int

const (
	// KindText accepts free text.
	KindText Kind = iota

	// KindOptions accepts one of a fixed list of values.
	KindOptions

	// KindConfirmation accepts yes or no.
	KindConfirmation
)

// Validator checks a raw value. The answers collected so far are passed so a
// value can be checked against earlier ones.
type Validator func(value string, answers Answers) error

// Question is a single prompt.
type Question struct {
	ID      string
	Text    string
	Kind    Kind
	Options []string

	defaultValue string
	hasDefault   bool
	defaultFunc  func(Answers) string
	validators   []Validator
}

// Default returns the question's default for the given answers, and whether
// one exists.
func (q *Question) Default(answers Answers) (string, bool) {
	if q.defaultFunc != nil {
		return q.defaultFunc(answers), true
	}
	return q.defaultValue, q.hasDefault
}

// QuestionOption configures a Question.
type QuestionOption func(*Question)

// Default sets a literal default value.
func Default(v string) QuestionOption {
	return func(q *Question) {
		q.defaultValue = v
		q.hasDefault = true
	}
}

// DefaultBool sets the default of a confirmation.
func DefaultBool(v bool) QuestionOption {
	return Default(strconv.FormatBool(v))
}

// DefaultFunc computes the default from earlier answers.
func DefaultFunc(f func(Answers) string) QuestionOption {
	return func(q *Question) {
		q.defaultFunc = f
	}
}

// Validate adds a validator. Validators run in declaration order.
func Validate(v Validator) QuestionOption {
	return func(q *Question) {
		q.validators = append(q.validators, v)
	}
}

// Group is a conditional block of questions.
type Group struct {
	ID string

	guard    func(Answers) bool
	validate func(Answers) error
	list     *List
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// When makes the group conditional. Skipped groups contribute no answers.
func When(guard func(Answers) bool) GroupOption {
	return func(g *Group) {
		g.guard = guard
	}
}

// ValidateGroup checks the group's answers once all of them are resolved.
func ValidateGroup(v func(Answers) error) GroupOption {
	return func(g *Group) {
		g.validate = v
	}
}

// List is an ordered list of questions and groups.
type List struct {
	items []any
}

// Question declares a free-text question.
func (l *List) Question(id, text string, opts ...QuestionOption) {
	l.add(&Question{ID: id, Text: text, Kind: KindText}, opts)
}

// Options declares a choice among options.
func (l *List) Options(id, text string, options []string, opts ...QuestionOption) {
	l.add(&Question{ID: id, Text: text, Kind: KindOptions, Options: options}, opts)
}

// Confirmation declares a yes/no question.
func (l *List) Confirmation(id, text string, opts ...QuestionOption) {
	l.add(&Question{ID: id, Text: text, Kind: KindConfirmation}, opts)
}

// Group declares a block of questions built by build.
func (l *List) Group(id string, build func(g *List), opts ...GroupOption) {
	g := &Group{ID: id, list: &List{}}
	for _, opt := range opts {
		opt(g)
	}
	build(g.list)
	l.items = append(l.items, g)
}

// IDs returns every question id in declaration order, including grouped ones.
func (l *List) IDs() []string {
	var ids []string
	for _, item := range l.items {
		switch it := item.(type) {
		case *Question:
			ids = append(ids, it.ID)
		case *Group:
			ids = append(ids, it.list.IDs()...)
		}
	}
	return ids
}

func (l *List) add(q *Question, opts []QuestionOption) {
	for _, opt := range opts {
		opt(q)
	}
	l.items = append(l.items, q)
}
