// Package commands defines the CLI command structure and flag bindings.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the topoplan CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topoplan",
		Short: "Resolve a layered virtual cluster configuration into a deployment plan",
	}

	cmd.AddCommand(Resolve())
	cmd.AddCommand(Version())

	return cmd
}
