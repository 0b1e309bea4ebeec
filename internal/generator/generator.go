package generator

import (
	"errors"
	"fmt"

	"github.com/cuba-labs/cuba-cli/internal/clierr"
	"github.com/cuba-labs/cuba-cli/internal/model"
	"github.com/cuba-labs/cuba-cli/internal/output"
	"github.com/cuba-labs/cuba-cli/internal/prompt"
)

// Command is a scaffolding command expressed as lifecycle phases. Only
// CreateModel and Generate are required.
type Command struct {
	Name      string
	ModelName string

	// PreExecute runs before any question is asked. It must not write.
	PreExecute func(ctx *Context) error
	// Prompting declares the questions.
	Prompting func(ctx *Context, q *prompt.List) error
	// CreateModel builds the artifact model from the answers.
	CreateModel func(ctx *Context, answers prompt.Answers) (any, error)
	// BeforeGeneration runs read-only checks once the model is registered.
	BeforeGeneration func(ctx *Context) error
	// Generate writes the artifacts.
	Generate func(ctx *Context, bindings map[string]string) error
}

// Run executes cmd against ctx. A declined confirmation or an aborted
// prompt ends the run with a silent error.
func Run(ctx *Context, cmd Command) error {
	if cmd.CreateModel == nil || cmd.Generate == nil {
		return fmt.Errorf("command %s is incomplete", cmd.Name)
	}
	log := output.Logger.With("command", cmd.Name)

	if cmd.PreExecute != nil {
		if err := cmd.PreExecute(ctx); err != nil {
			return err
		}
	}

	questions := &prompt.List{}
	if cmd.Prompting != nil {
		if err := cmd.Prompting(ctx, questions); err != nil {
			return err
		}
	}
	log.Debug("prompting", "questions", len(questions.IDs()))
	answers, err := ctx.Asker.Ask(questions)
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			return clierr.Silent(err)
		}
		return err
	}

	m, err := cmd.CreateModel(ctx, answers)
	if err != nil {
		return err
	}
	if err := model.Validate(m); err != nil {
		return err
	}
	if err := ctx.Registry.Add(cmd.ModelName, m); err != nil {
		return err
	}
	log.Debug("model registered", "model", cmd.ModelName)

	if cmd.BeforeGeneration != nil {
		if err := cmd.BeforeGeneration(ctx); err != nil {
			return err
		}
	}

	bindings := ctx.Registry.Bindings()
	log.Debug("generating", "bindings", len(bindings))
	return cmd.Generate(ctx, bindings)
}

// RequireProject is a PreExecute phase for commands that only work inside a
// project.
func RequireProject(ctx *Context) error {
	_, err := ctx.RequireProject()
	return err
}

// Declined is returned from CreateModel when the user rejects a
// confirmation. It fails the run without a message.
func Declined() error {
	return clierr.Silent(fmt.Errorf("user rejected: %w", clierr.ErrAborted))
}
