package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagThumbDir string

var thumbCmd = &cobra.Command{
	Use:   "thumb <id|url>",
	Short: "Download the thumbnail, blurred by --blur or blur_level",
	Args:  cobra.ExactArgs(1),
	RunE:  thumbRun,
}

func init() {
	thumbCmd.Flags().StringVarP(&flagThumbDir, "output", "o", "", "Output directory (default: download_dir)")
}

func thumbRun(cmd *cobra.Command, args []string) error {
	p, err := newProvider()
	if err != nil {
		return err
	}
	defer p.Close()

	rec, err := resolveAvailable(cmd.Context(), p, args[0])
	if err != nil {
		return err
	}
	path, err := saveThumbnail(cmd.Context(), p, rec, flagThumbDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
