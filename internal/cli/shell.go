package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cuba-labs/cuba-cli/internal/branding"
	"github.com/cuba-labs/cuba-cli/internal/clierr"
	"github.com/cuba-labs/cuba-cli/internal/output"
	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
)

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively in one session",
		Long: `Reads commands line by line and runs them against the same project.
Lines are split with shell quoting rules. Type "exit" or "quit" to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.sessionFor(cmd)
			if err != nil {
				return err
			}
			if session.Project != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Project %s (%s)\n",
					output.StyleNoun.Render(session.Project.Model.Name), session.Project.Root)
			}
			return a.runShell(cmd)
		},
	}
}

func (a *app) runShell(cmd *cobra.Command) error {
	w := cmd.OutOrStdout()
	in := a.session.In
	parser := shellwords.NewParser()

	for {
		fmt.Fprintf(w, "%s> ", branding.CLIName())
		line, readErr := in.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("reading command: %w", readErr)
		}

		words, err := parser.Parse(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		} else if len(words) > 0 {
			if words[0] == "exit" || words[0] == "quit" {
				return nil
			}
			if err := a.runLine(cmd, words); err != nil {
				ReportError(cmd.ErrOrStderr(), err)
			}
		}

		if readErr != nil {
			fmt.Fprintln(w)
			return nil
		}
	}
}

// runLine executes one shell line on a fresh command tree bound to the
// running session. Session flags are fixed when the shell starts; only -P is
// accepted per line.
func (a *app) runLine(parent *cobra.Command, words []string) error {
	if words[0] == "shell" {
		return errors.New("already in the shell")
	}

	line := &app{info: a.info, session: a.session}

	lineCmd := &cobra.Command{
		Use:           branding.CLIName(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	lineCmd.PersistentFlags().StringArrayVarP(&line.params, "param", "P", nil, "Answer a question up front, as <question>=<value> (repeatable)")
	addProjectCommands(lineCmd, line)
	lineCmd.AddCommand(newConfigCmd())
	lineCmd.AddCommand(newVersionCmd(line))

	lineCmd.SetArgs(words)
	lineCmd.SetIn(parent.InOrStdin())
	lineCmd.SetOut(parent.OutOrStdout())
	lineCmd.SetErr(parent.ErrOrStderr())
	return lineCmd.ExecuteContext(parent.Context())
}

// ReportError prints err to w unless it is a silent failure.
func ReportError(w io.Writer, err error) {
	if err == nil || clierr.IsSilent(err) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
