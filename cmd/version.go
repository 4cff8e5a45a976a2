package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"xview/internal/extract"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "xview %s (patterns %s)\n", Version, extract.Version)
	},
}
