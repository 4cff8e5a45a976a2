package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"xview/internal/media"
	"xview/internal/provider"
	"xview/internal/ui"
)

var (
	flagPage        int
	flagInteractive bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search listings for videos and profiles",
	Args:  cobra.MinimumNArgs(1),
	RunE:  searchRun,
}

func init() {
	searchCmd.Flags().IntVar(&flagPage, "page", 1, "Result page")
	searchCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Pick a result and show its info")
}

func searchRun(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: empty search query", media.ErrInvalidInput)
	}

	p, err := newProvider()
	if err != nil {
		return err
	}
	defer p.Close()

	debugf("searching for: %s (page %d)", query, flagPage)
	hits := p.Search(cmd.Context(), query, flagPage)
	return listFlow(cmd, p, hits, flagInteractive, fmt.Sprintf("No results for %q", query))
}

// listFlow prints hits, or when interactive lets the user pick one and shows
// its info.
func listFlow(cmd *cobra.Command, p provider.Provider, hits []media.SearchHit, interactive bool, empty string) error {
	out := cmd.OutOrStdout()
	if len(hits) == 0 {
		if flagJSON {
			return printJSON(out, hits)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), empty)
		return nil
	}

	if !interactive {
		return printHits(out, hits)
	}

	idx, err := ui.Select("Select", lo.Map(hits, func(h media.SearchHit, _ int) string { return h.ID }))
	if err != nil {
		return err
	}
	selected := hits[idx]
	debugf("selected: %s", selected.ID)

	rec, err := resolveAvailable(cmd.Context(), p, selected.ID)
	if err != nil {
		return err
	}
	return showInfo(out, rec)
}

func printHits(w io.Writer, hits []media.SearchHit) error {
	if flagJSON {
		return printJSON(w, hits)
	}
	_, err := io.WriteString(w, renderHits(hits, stdoutStyled(w)))
	return err
}
