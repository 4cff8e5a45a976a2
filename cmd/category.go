package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"xview/internal/media"
)

var (
	flagCategoryPage        int
	flagCategoryInteractive bool
)

var categoryCmd = &cobra.Command{
	Use:   "category <name>",
	Short: "List a category page",
	Args:  cobra.ExactArgs(1),
	RunE:  categoryRun,
}

func init() {
	categoryCmd.Flags().IntVar(&flagCategoryPage, "page", 1, "Result page")
	categoryCmd.Flags().BoolVarP(&flagCategoryInteractive, "interactive", "i", false, "Pick a result and show its info")
}

func categoryRun(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("%w: empty category name", media.ErrInvalidInput)
	}

	p, err := newProvider()
	if err != nil {
		return err
	}
	defer p.Close()

	debugf("listing category: %s (page %d)", name, flagCategoryPage)
	hits := p.Category(cmd.Context(), name, flagCategoryPage)
	return listFlow(cmd, p, hits, flagCategoryInteractive, fmt.Sprintf("Nothing listed under %q", name))
}
