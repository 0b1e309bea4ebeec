package cli

import (
	"encoding/json"
	"fmt"

	"github.com/cuba-labs/cuba-cli/internal/branding"
	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	var (
		short  bool
		asJSON bool
	)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(w, a.info.Version)
				return nil
			}

			if asJSON {
				info := map[string]string{
					"version": a.info.Version,
					"commit":  a.info.Commit,
					"date":    a.info.Date,
				}
				out, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling version info: %w", err)
				}
				fmt.Fprintln(w, string(out))
				return nil
			}

			fmt.Fprintf(w, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), a.info.Version, a.info.Commit, a.info.Date)
			return nil
		},
	}
	versionCmd.Flags().BoolVar(&short, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&asJSON, "json", false, "Print version info as JSON")
	return versionCmd
}
