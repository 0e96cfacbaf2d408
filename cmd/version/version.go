package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/threef-labs/threef-cli/internal/runtime"
)

// Default placeholder value
var Version = "development"

func New(runtimeContext *runtime.Context) *cobra.Command {
	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the threef version",
		Long:  "This command prints the current version of threef",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "threef", Version)
			return nil
		},
	}

	return versionCmd
}
