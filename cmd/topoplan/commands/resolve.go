package commands

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/imamik/topoplan/internal/configtree"
	"github.com/imamik/topoplan/internal/topology"
)

// Resolve returns the command that resolves a cluster configuration.
//
// The base configuration is merged with the overlays in the order given,
// then expanded into the full deployment plan and written out as YAML.
//
// Flags:
//
//	--config, -c:  Path to the base configuration YAML file (required)
//	--overlay:     Overlay YAML file, repeatable, applied left to right
//	--output, -o:  Output path for the resolved topology (default: stdout)
//	--verbose, -v: Log resolution progress to stderr
func Resolve() *cobra.Command {
	var (
		configPath string
		overlays   []string
		outputPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the configuration into a deployment plan",
		Long: `Resolve a base cluster configuration plus overlays into the full
deployment plan: node instances with names, blade placements, and network
address assignments.

Examples:
  # Resolve a standalone configuration
  topoplan resolve -c cluster.yaml

  # Apply application overlays on top of the base
  topoplan resolve -c cluster.yaml --overlay app.yaml --overlay site.yaml

  # Write the plan to a file
  topoplan resolve -c cluster.yaml -o plan.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd, configPath, overlays, outputPath, verbose)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to base configuration file")
	cmd.Flags().StringArrayVar(&overlays, "overlay", nil, "Overlay configuration file (repeatable)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path for the resolved topology (default: stdout)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log resolution progress")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runResolve(cmd *cobra.Command, configPath string, overlayPaths []string, outputPath string, verbose bool) error {
	base, err := configtree.LoadFile(configPath)
	if err != nil {
		return err
	}
	overlays := make([]configtree.Tree, 0, len(overlayPaths))
	for _, path := range overlayPaths {
		overlay, err := configtree.LoadFile(path)
		if err != nil {
			return err
		}
		overlays = append(overlays, overlay)
	}

	log := logr.Discard()
	if verbose {
		log = funcr.New(func(prefix, args string) {
			fmt.Fprintln(os.Stderr, prefix, args)
		}, funcr.Options{Verbosity: 1})
	}

	resolver := topology.New(topology.WithLogger(log))
	plan, err := resolver.Resolve(cmd.Context(), base, overlays...)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal resolved topology: %w", err)
	}
	if outputPath == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write resolved topology: %w", err)
	}
	return nil
}
