package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gext.dev/pkg/gext/internal/domain"
)

var installUUIDFlag string
var installSourcesFlag []string
var installSchemasFlag []string
var installParallelFlag int
var installDryRunFlag bool

// installCmd represents the install command.
var installCmd = newInstallCmd()

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install [dirs...]",
		Short: "Install extension bundles",
		Long: `Resolve and install each extension bundle directory (default: current
directory) into the extensions dir, compiling any GSettings schemas.`,
		RunE: func(_ *cobra.Command, args []string) error {
			dirs := parseDirs(args)
			if installUUIDFlag != "" && len(dirs) > 1 {
				return fmt.Errorf("--uuid applies to a single bundle, got %d dirs", len(dirs))
			}

			return workflow.Install(context.Background(), domain.InstallArgs{
				Bundles:     bundlesFor(dirs, installUUIDFlag, installSourcesFlag, installSchemasFlag),
				InstallRoot: resolveInstallRoot(),
				Parallel:    viper.GetInt(installParallelKey),
				DryRun:      installDryRunFlag,
			})
		},
	}

	configureInstallFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(installCmd)
}

func configureInstallFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&installUUIDFlag, "uuid", "u", "", "uuid naming the install directory (overrides metadata.json)")
	cmd.Flags().StringArrayVarP(&installSourcesFlag, "source", "s", nil, "extra file to install and scan (can be repeated)")
	cmd.Flags().StringArrayVar(&installSchemasFlag, "schema", nil, "extra GSettings schema file to compile (can be repeated)")
	cmd.Flags().BoolVarP(&installDryRunFlag, "dry-run", "n", false, "resolve and print the plan without installing")

	cmd.Flags().IntVarP(&installParallelFlag, parallelFlagName, "p", viper.GetInt(installParallelKey), "number of bundles to install in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), installParallelKey)
}
