package cli

import (
	"fmt"

	"github.com/cuba-labs/cuba-cli/internal/clierr"
	"github.com/cuba-labs/cuba-cli/internal/doctor"
	"github.com/cuba-labs/cuba-cli/internal/output"
	"github.com/spf13/cobra"
)

func newDoctorCmd(a *app) *cobra.Command {
	var fix bool

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the project layout used by the generators",
		Long: `Checks the Gradle files, module sources, screen and menu registries, the
Gradle wrapper and the template sets. With --fix, a non-executable wrapper
and missing registry files are repaired.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.sessionFor(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			c := doctor.New(w, fix)
			c.CheckTemplates(session.Templates)
			if session.Project == nil {
				fmt.Fprintf(w, "  [FAIL] %v\n", session.ProjectErr)
				return clierr.Silent(session.ProjectErr)
			}
			c.CheckProject(session.Project)

			if n := c.Problems(); n > 0 {
				return clierr.Silent(fmt.Errorf("%d problems found", n))
			}
			fmt.Fprintln(w, output.FormatCheckmark("No problems found"))
			return nil
		},
	}
	doctorCmd.Flags().BoolVar(&fix, "fix", false, "Repair what can be repaired")
	return doctorCmd
}
