package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"xview/internal/download"
	"xview/internal/extract"
	"xview/internal/media"
)

var flagDownloadDir string

var linkCmd = &cobra.Command{
	Use:   "link <id|url> [quality]",
	Short: "Print the media URL for a quality (best, worst, half, 720, 1080p)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  linkRun,
}

func init() {
	linkCmd.Flags().StringVarP(&flagDownloadDir, "download", "d", "", "Download the media into this directory with ffmpeg")
}

func linkRun(cmd *cobra.Command, args []string) error {
	quality := cfg.Quality
	if len(args) == 2 {
		quality = args[1]
	}
	if !extract.ValidQuality(quality) {
		return fmt.Errorf("%w: unsupported quality %q", media.ErrInvalidInput, quality)
	}

	p, err := newProvider()
	if err != nil {
		return err
	}
	defer p.Close()

	rec, err := resolveAvailable(cmd.Context(), p, args[0])
	if err != nil {
		return err
	}

	mediaURL, ok := rec.MediaURL(quality).Get()
	if !ok {
		return fmt.Errorf("%w: no media sources on %s", media.ErrNotFound, rec.URL())
	}
	debugf("selected %s for quality %s (available %v)", mediaURL, quality, rec.AvailableQualities())

	if flagJSON {
		if err := printJSON(cmd.OutOrStdout(), map[string]any{
			"id":        rec.ID(),
			"title":     rec.Title(),
			"quality":   quality,
			"url":       mediaURL,
			"qualities": rec.AvailableQualities(),
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), mediaURL)
	}

	if flagDownloadDir == "" {
		return nil
	}
	title := rec.Title().OrElse(rec.ID())
	fmt.Fprintf(cmd.ErrOrStderr(), "Downloading to: %s\n", flagDownloadDir)
	path, err := download.Stream(cmd.Context(), mediaURL, title, flagDownloadDir, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved: %s\n", path)
	return nil
}
