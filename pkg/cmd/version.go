package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set with -ldflags "-X github.com/c9s/tacandle/pkg/cmd.Version=v0.1.0".
var Version = "dev"

func init() {
	RootCmd.AddCommand(VersionCmd)
}

var VersionCmd = &cobra.Command{
	Use:          "version",
	Short:        "show version name",
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}
