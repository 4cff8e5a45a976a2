package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"xview/internal/download"
	"xview/internal/media"
	"xview/internal/provider"
)

var flagThumb bool

var infoCmd = &cobra.Command{
	Use:   "info <id|url>",
	Short: "Show metadata for a video or profile",
	Args:  cobra.ExactArgs(1),
	RunE:  infoRun,
}

func init() {
	infoCmd.Flags().BoolVar(&flagThumb, "thumb", false, "Also save the thumbnail to the download directory")
}

func infoRun(cmd *cobra.Command, args []string) error {
	p, err := newProvider()
	if err != nil {
		return err
	}
	defer p.Close()

	rec, err := resolveAvailable(cmd.Context(), p, args[0])
	if err != nil {
		return err
	}
	if err := showInfo(cmd.OutOrStdout(), rec); err != nil {
		return err
	}

	if flagThumb {
		path, err := saveThumbnail(cmd.Context(), p, rec, "")
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Thumbnail saved to: %s\n", path)
	}
	return nil
}

// resolveAvailable fetches a record and rejects removed or disabled pages.
func resolveAvailable(ctx context.Context, p provider.Provider, input string) (*media.Record, error) {
	debugf("resolving: %s", input)
	rec, err := p.Resolve(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", input, err)
	}
	if err := rec.CheckAvailable(); err != nil {
		return nil, err
	}
	return rec, nil
}

func showInfo(w io.Writer, rec *media.Record) error {
	info := rec.Info()
	if flagJSON {
		return printJSON(w, info)
	}
	_, err := io.WriteString(w, renderInfo(info, stdoutStyled(w)))
	return err
}

// saveThumbnail downloads, blurs per config and stores the thumbnail. An
// empty dir means the configured download directory.
func saveThumbnail(ctx context.Context, p provider.Provider, rec *media.Record, dir string) (string, error) {
	if dir == "" {
		var err error
		dir, err = cfg.ExpandDownloadDir()
		if err != nil {
			return "", err
		}
	}

	data, ok := p.Thumbnail(ctx, rec, cfg.BlurLevel).Get()
	if !ok {
		return "", fmt.Errorf("%w: no thumbnail available for %s", media.ErrNotFound, rec.ID())
	}
	path, err := download.Save(data, rec.ID()+".jpg", dir)
	if err != nil {
		return "", fmt.Errorf("saving thumbnail: %w", err)
	}
	return path, nil
}
