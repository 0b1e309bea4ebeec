package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cuba-labs/cuba-cli/internal/clierr"
	"github.com/cuba-labs/cuba-cli/internal/config"
	"github.com/cuba-labs/cuba-cli/internal/gradle"
	"github.com/cuba-labs/cuba-cli/internal/output"
	"github.com/cuba-labs/cuba-cli/internal/project"
	"github.com/spf13/cobra"
)

const buildTask = "assemble"

func newBuildCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "build [-- gradle args...]",
		Short: "Assemble the project with its Gradle wrapper",
		Long: `Runs "gradlew assemble" in the project root. Extra arguments come from the
gradle.args config key and from the command line after "--". The gradle.env
key adds KEY=VALUE pairs to the wrapper's environment.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.sessionFor(cmd)
			if err != nil {
				return err
			}
			if session.Project == nil {
				if session.ProjectErr != nil {
					return session.ProjectErr
				}
				return project.ErrNotInProject
			}

			gradleArgs := append([]string{buildTask}, config.GradleArgs()...)
			gradleArgs = append(gradleArgs, args...)
			return runBuild(cmd, session.Project.Root, gradleArgs)
		},
	}
}

func runBuild(cmd *cobra.Command, root string, args []string) error {
	w := cmd.OutOrStdout()
	if _, err := gradle.Wrapper(root); err != nil {
		fmt.Fprintf(w, "Gradle wrapper %s not found in %s.\n", gradle.WrapperName(), root)
		return clierr.Silent(err)
	}

	// Live output would fight with the spinner for the terminal, so it is
	// only streamed when there is no spinner.
	spin := output.IsTTY()
	runner := &gradle.Runner{Env: config.GradleEnv()}
	if !spin {
		runner.Stdout = w
		runner.Stderr = cmd.ErrOrStderr()
	}

	output.Debug("running gradle", "root", root, "args", args)
	var result *gradle.Output
	err := output.RunWithSpinner("Running gradle "+strings.Join(args, " "), func() error {
		var runErr error
		result, runErr = runner.Run(cmd.Context(), root, args...)
		return runErr
	})
	if err != nil {
		if errors.Is(err, gradle.ErrNoWrapper) {
			return clierr.Silent(err)
		}
		return err
	}

	if result.ExitCode != 0 {
		if spin {
			fmt.Fprint(cmd.ErrOrStderr(), result.Stdout, result.Stderr)
		}
		return fmt.Errorf("gradle %s failed with exit code %d", strings.Join(args, " "), result.ExitCode)
	}

	fmt.Fprintln(w, output.FormatCheckmark("Build finished"))
	return nil
}
