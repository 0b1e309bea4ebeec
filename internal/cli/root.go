package cli

import (
	"fmt"
	"os"

	"github.com/cuba-labs/cuba-cli/internal/branding"
	"github.com/cuba-labs/cuba-cli/internal/config"
	"github.com/cuba-labs/cuba-cli/internal/generator"
	"github.com/cuba-labs/cuba-cli/internal/output"
	"github.com/cuba-labs/cuba-cli/internal/templates"
	"github.com/spf13/cobra"
)

// BuildInfo is injected via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// app carries the global flags and the session shared by every command run
// from one process.
type app struct {
	info BuildInfo

	nonInteractive bool
	verbose        bool
	projectDir     string
	params         []string

	session *generator.Session
}

// NewRootCmd creates the root command.
func NewRootCmd(info BuildInfo) *cobra.Command {
	a := &app{info: info}

	rootCmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` generates screens, entity listeners and theme extensions
inside an existing CUBA platform project.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.nonInteractive, "non-interactive", "n", false, "Never prompt; use -P values and defaults (env: CUBA_NON_INTERACTIVE)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.projectDir, "project", "", "Project directory (default: search upward from the working directory)")
	rootCmd.PersistentFlags().StringArrayVarP(&a.params, "param", "P", nil, "Answer a question up front, as <question>=<value> (repeatable)")

	addProjectCommands(rootCmd, a)
	rootCmd.AddCommand(newShellCmd(a))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd(a))

	return rootCmd
}

// Execute runs the root command against the process streams.
func Execute(info BuildInfo) error {
	return NewRootCmd(info).Execute()
}

// initialize loads configuration and sets up logging. Flags win over config.
func (a *app) initialize(cmd *cobra.Command) error {
	configErr := config.Load()

	if !cmd.Flags().Changed("non-interactive") {
		a.nonInteractive = config.NonInteractive()
	}
	if !cmd.Flags().Changed("verbose") {
		a.verbose = config.Verbose()
	}

	output.SetupLoggingTo(cmd.ErrOrStderr(), a.verbose)
	if configErr != nil {
		output.Warn("using default settings", "err", configErr)
	}
	output.Debug("initializing CLI",
		"version", a.info.Version,
		"config", config.FilePath(),
		"non-interactive", a.nonInteractive,
		"templates", config.TemplatesDir(),
	)
	return nil
}

// sessionFor returns the process session, opening the project on first use.
func (a *app) sessionFor(cmd *cobra.Command) (*generator.Session, error) {
	if a.session != nil {
		return a.session, nil
	}

	dir := a.projectDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}

	a.session = generator.NewSession(dir, templates.Source(config.TemplatesDir()), cmd.InOrStdin(), cmd.OutOrStdout(), a.nonInteractive)
	return a.session, nil
}
