package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"gext.dev/pkg/gext/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [dirs...]",
		Short: "List the resolved file set of each bundle",
		Long: `Resolve each extension bundle (default: current directory) and print
the files that an install would copy, with their provenance, without
writing anything.`,
		RunE: func(_ *cobra.Command, args []string) error {
			root := resolveInstallRoot()

			for _, bundle := range bundlesFor(parseDirs(args), "", nil, nil) {
				plan, err := workflow.Plan(context.Background(), domain.PlanArgs{
					Bundle:      bundle,
					InstallRoot: root,
				})
				if err != nil {
					return err
				}

				ui.DisplayPlan(plan)
			}

			return nil
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
