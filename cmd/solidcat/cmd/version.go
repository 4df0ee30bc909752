package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/solidcat/solidcat/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the solidcat version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s v%s (%s, %s/%s)\n",
			version.Name, version.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
