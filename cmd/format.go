package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/term"

	"xview/internal/media"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// stdoutStyled reports whether output to w should carry terminal styling.
func stdoutStyled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

type row struct {
	label string
	value string
}

func addString(rows []row, label string, v mo.Option[string]) []row {
	if s, ok := v.Get(); ok {
		return append(rows, row{label, s})
	}
	return rows
}

func addInt(rows []row, label string, v mo.Option[int]) []row {
	if n, ok := v.Get(); ok {
		return append(rows, row{label, strconv.Itoa(n)})
	}
	return rows
}

func addList(rows []row, label string, items []string) []row {
	if len(items) == 0 {
		return rows
	}
	return append(rows, row{label, strings.Join(items, ", ")})
}

// infoRows lists the present fields of info in display order.
func infoRows(info media.Info) []row {
	rows := []row{{"ID", info.ID}, {"URL", info.URL}}
	rows = addString(rows, "Title", info.Title)
	rows = addString(rows, "Description", info.Description)
	rows = addString(rows, "Duration", info.DurationFormatted)
	rows = addInt(rows, "Views", info.Views)
	if r, ok := info.Rating.Get(); ok {
		rows = append(rows, row{"Rating", strconv.FormatFloat(r, 'f', -1, 64)})
	}
	rows = addInt(rows, "Likes", info.Likes)
	rows = addString(rows, "Uploader", info.Uploader)
	rows = addString(rows, "Published", info.PublishDate)
	rows = addList(rows, "Tags", info.Tags)
	rows = addString(rows, "Real name", info.RealName)
	rows = addInt(rows, "Followers", info.Followers)
	rows = addString(rows, "Gender", info.Gender)
	rows = addInt(rows, "Age", info.Age)
	rows = addString(rows, "Interested in", info.InterestedIn)
	rows = addString(rows, "Location", info.Location)
	rows = addString(rows, "Languages", info.Languages)
	rows = addString(rows, "Body type", info.BodyType)
	rows = addString(rows, "Decorations", info.BodyDecorations)
	rows = addString(rows, "Last broadcast", info.LastBroadcast)
	rows = addList(rows, "Social", info.SocialMedia)
	rows = append(rows, row{"Online", strconv.FormatBool(info.IsOnline)})
	if len(info.AvailableQualities) > 0 {
		rows = append(rows, row{"Qualities", strings.Join(lo.Map(info.AvailableQualities, func(q int, _ int) string {
			return strconv.Itoa(q) + "p"
		}), ", ")})
	}
	rows = addString(rows, "Thumbnail", info.Thumbnail)
	return rows
}

func renderRows(rows []row, styled bool) string {
	width := 0
	for _, r := range rows {
		width = max(width, len(r.label))
	}

	var b strings.Builder
	for _, r := range rows {
		label := fmt.Sprintf("%-*s", width+1, r.label+":")
		if styled {
			fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(label), valueStyle.Render(r.value))
		} else {
			fmt.Fprintf(&b, "%s %s\n", label, r.value)
		}
	}
	return b.String()
}

// renderInfo formats a record snapshot as a label/value block.
func renderInfo(info media.Info, styled bool) string {
	return renderRows(infoRows(info), styled)
}

// renderHits formats listing hits one per line.
func renderHits(hits []media.SearchHit, styled bool) string {
	var b strings.Builder
	for i, h := range hits {
		idx := fmt.Sprintf("%2d.", i+1)
		if styled {
			fmt.Fprintf(&b, "%s %s %s\n", dimStyle.Render(idx), labelStyle.Render(h.ID), dimStyle.Render(h.URL))
		} else {
			fmt.Fprintf(&b, "%s %s %s\n", idx, h.ID, h.URL)
		}
	}
	return b.String()
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
