package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"gext.dev/pkg/gext/internal/domain"
)

// uninstallCmd represents the uninstall command.
var uninstallCmd = newUninstallCmd()

func newUninstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall <uuid>",
		Short: "Remove an installed extension bundle",
		Long: `Remove a previously installed bundle from the extensions dir, using the
manifest the install wrote.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Uninstall(context.Background(), domain.UninstallArgs{
				UUID:        args[0],
				InstallRoot: resolveInstallRoot(),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}
