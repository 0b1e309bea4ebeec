package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/cuba-labs/cuba-cli/internal/clierr"
	"github.com/cuba-labs/cuba-cli/internal/output"
)

// ErrAborted is returned when the user cancels prompting (end of input) or a
// required choice has no options.
var ErrAborted = clierr.ErrAborted

// Asker resolves question lists.
type Asker struct {
	in             *bufio.Reader
	out            io.Writer
	overrides      map[string]string
	nonInteractive bool
}

// NewAsker creates an Asker reading answers from in and writing prompts to
// out. Overrides are keyed by question id and take precedence over input.
// In non-interactive mode nothing is read: every question must be answered
// by an override or a default.
func NewAsker(in io.Reader, out io.Writer, overrides map[string]string, nonInteractive bool) *Asker {
	if overrides == nil {
		overrides = map[string]string{}
	}
	return &Asker{
		in:             bufio.NewReader(in),
		out:            out,
		overrides:      overrides,
		nonInteractive: nonInteractive,
	}
}

// NonInteractive reports whether the asker never reads from input.
func (a *Asker) NonInteractive() bool {
	return a.nonInteractive
}

// Ask resolves every question in l and returns the answers.
func (a *Asker) Ask(l *List) (Answers, error) {
	answers := Answers{values: make(map[string]any)}
	if err := a.askItems(l.items, answers); err != nil {
		return Answers{}, err
	}

	known := make(map[string]bool)
	for _, id := range l.IDs() {
		known[id] = true
	}
	var unused []string
	for id := range a.overrides {
		if !answers.Has(id) || !known[id] {
			unused = append(unused, id)
		}
	}
	sort.Strings(unused)
	for _, id := range unused {
		output.Debug("ignoring override", "question", id)
	}

	return answers, nil
}

func (a *Asker) askItems(items []any, answers Answers) error {
	for _, item := range items {
		switch it := item.(type) {
		case *Question:
			v, err := a.askQuestion(it, answers)
			if err != nil {
				return err
			}
			answers.set(it.ID, v)
		case *Group:
			if err := a.askGroup(it, answers); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *Asker) askGroup(g *Group, answers Answers) error {
	if g.guard != nil && !g.guard(answers) {
		output.Debug("skipping question group", "group", g.ID)
		return nil
	}

	for {
		if err := a.askItems(g.list.items, answers); err != nil {
			return err
		}
		if g.validate == nil {
			return nil
		}
		err := g.validate(answers)
		if err == nil {
			return nil
		}
		if a.nonInteractive || a.answeredByOverrides(g.list) {
			return clierr.Validation("invalid answers for %q: %v", g.ID, err)
		}
		fmt.Fprintf(a.out, "  ! %v\n", err)
		answers.without(g.list.IDs())
	}
}

// answeredByOverrides reports whether every question of l has an override,
// in which case re-asking the group would loop forever.
func (a *Asker) answeredByOverrides(l *List) bool {
	for _, id := range l.IDs() {
		if _, ok := a.overrides[id]; !ok {
			return false
		}
	}
	return true
}

func (a *Asker) askQuestion(q *Question, answers Answers) (any, error) {
	if q.Kind == KindOptions && len(q.Options) == 0 {
		fmt.Fprintf(a.out, "No options available for %q.\n", q.Text)
		return nil, fmt.Errorf("%w: no options for question %q", ErrAborted, q.ID)
	}

	if raw, ok := a.overrides[q.ID]; ok {
		v, err := a.accept(q, raw, answers)
		if err == nil {
			output.Debug("answer from override", "question", q.ID)
			return v, nil
		}
		if a.nonInteractive {
			return nil, clierr.Validation("invalid value %q for %q: %v", raw, q.ID, err)
		}
		fmt.Fprintf(a.out, "  ! invalid value %q for %q: %v\n", raw, q.ID, err)
	}

	if a.nonInteractive {
		def, ok := q.Default(answers)
		if !ok {
			return nil, &clierr.DetailError{
				Type:    "missing answer",
				Message: fmt.Sprintf("no value supplied for question %q", q.ID),
				Hint:    fmt.Sprintf("pass -P%s=<value>", q.ID),
				Cause:   clierr.ErrValidation,
			}
		}
		v, err := a.accept(q, def, answers)
		if err != nil {
			return nil, clierr.Validation("invalid default %q for %q: %v", def, q.ID, err)
		}
		return v, nil
	}

	for {
		raw, err := a.read(q, answers)
		if err != nil {
			return nil, err
		}
		v, err := a.accept(q, raw, answers)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(a.out, "  ! %v\n", err)
	}
}

// read prints the question and returns the raw input, with the default
// substituted for an empty line.
func (a *Asker) read(q *Question, answers Answers) (string, error) {
	def, hasDefault := q.Default(answers)

	switch q.Kind {
	case KindOptions:
		fmt.Fprintf(a.out, "? %s\n", q.Text)
		for i, opt := range q.Options {
			fmt.Fprintf(a.out, "  %d) %s\n", i+1, opt)
		}
		fmt.Fprintf(a.out, "  Enter number [1-%d]", len(q.Options))
	case KindConfirmation:
		fmt.Fprintf(a.out, "? %s", q.Text)
		if hasDefault && def == "true" {
			fmt.Fprint(a.out, " [Y/n]")
		} else if hasDefault {
			fmt.Fprint(a.out, " [y/N]")
		} else {
			fmt.Fprint(a.out, " [y/n]")
		}
		hasDefault = hasDefault && def != ""
	default:
		fmt.Fprintf(a.out, "? %s", q.Text)
	}
	if hasDefault && q.Kind != KindConfirmation {
		fmt.Fprintf(a.out, " (%s)", def)
	}
	fmt.Fprint(a.out, ": ")

	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		fmt.Fprintln(a.out)
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("reading answer for %q: %w", q.ID, err)
	}

	line = strings.TrimSpace(line)
	if line == "" && hasDefault {
		return def, nil
	}
	return line, nil
}

// accept converts and validates a raw value.
func (a *Asker) accept(q *Question, raw string, answers Answers) (any, error) {
	var value any

	switch q.Kind {
	case KindOptions:
		opt, err := resolveOption(q.Options, raw)
		if err != nil {
			return nil, err
		}
		raw = opt
		value = opt
	case KindConfirmation:
		b, err := parseConfirmation(raw)
		if err != nil {
			return nil, err
		}
		raw = strconv.FormatBool(b)
		value = b
	default:
		if raw == "" {
			return nil, errors.New("value is required")
		}
		value = raw
	}

	for _, v := range q.validators {
		if err := v(raw, answers); err != nil {
			return nil, err
		}
	}
	return value, nil
}

// resolveOption accepts either a 1-based index or the literal option text.
func resolveOption(options []string, raw string) (string, error) {
	for _, opt := range options {
		if opt == raw {
			return opt, nil
		}
	}
	if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], nil
	}
	return "", fmt.Errorf("invalid selection %q: choose 1-%d", raw, len(options))
}

func parseConfirmation(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "y", "yes", "true":
		return true, nil
	case "n", "no", "false":
		return false, nil
	default:
		return false, fmt.Errorf("answer %q is not yes or no", raw)
	}
}

// ParseOverrides converts "id=value" pairs into an override table.
func ParseOverrides(pairs []string) (map[string]string, error) {
	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, clierr.Validation("invalid parameter %q: expected <question>=<value>", pair)
		}
		overrides[key] = value
	}
	return overrides, nil
}
