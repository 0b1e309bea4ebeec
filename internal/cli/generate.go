package cli

import (
	"github.com/cuba-labs/cuba-cli/internal/entitylistener"
	"github.com/cuba-labs/cuba-cli/internal/generator"
	"github.com/cuba-labs/cuba-cli/internal/prompt"
	"github.com/cuba-labs/cuba-cli/internal/screen"
	"github.com/cuba-labs/cuba-cli/internal/theme"
	"github.com/spf13/cobra"
)

// addProjectCommands registers the commands that operate on a project. The
// shell registers the same set for every line it runs.
func addProjectCommands(parent *cobra.Command, a *app) {
	parent.AddCommand(
		newGeneratorCmd(a, screen.CreateScreen,
			"Create a blank screen",
			`Creates an XML descriptor and a controller in the web module and registers
the screen in web-screens.xml, optionally adding it to the main menu.

Questions: screenName, package, addToMenu, menuCaption.`),
		newGeneratorCmd(a, screen.CreateEntityScreen,
			"Create an editor screen for an entity",
			`Creates an editor descriptor and controller for a persistent entity and
registers the screen in web-screens.xml.

Questions: entity, packageName, screenId, descriptorName, controllerName.`),
		newGeneratorCmd(a, func() generator.Command { return entitylistener.Command(nil) },
			"Create an entity listener",
			`Creates a Spring bean in the core module implementing the selected entity
lifecycle interfaces and adds it to the entity's @Listeners annotation.

Questions: className, entityType, packageName, beanName, beforeInsert,
beforeUpdate, beforeDelete, afterInsert, afterUpdate, afterDelete,
beforeAttach, beforeDetach.`),
		newGeneratorCmd(a, theme.Command,
			"Extend the halo or hover theme",
			`Copies the theme extension sources into modules/web/themes/<theme> and
registers the web-themes module in settings.gradle and build.gradle.

Questions: themeName, confirmed.`),
		newBuildCmd(a),
		newDoctorCmd(a),
	)
}

// newGeneratorCmd wraps a generator command. factory is called per run so
// commands that keep state between phases start clean.
func newGeneratorCmd(a *app, factory func() generator.Command, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:   factory().Name,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := prompt.ParseOverrides(a.params)
			if err != nil {
				return err
			}
			session, err := a.sessionFor(cmd)
			if err != nil {
				return err
			}
			ctx, err := session.NewContext(overrides)
			if err != nil {
				return err
			}
			return generator.Run(ctx, factory())
		},
	}
}
