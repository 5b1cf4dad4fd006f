package status

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/apraga/scidataflow/internal/remote"
)

// defaultSpacing separates adjacent columns when RenderOptions does not
// say otherwise.
const defaultSpacing = 6

// RenderOptions controls table layout and styling. Styling is always an
// explicit decision of the caller; Render never sniffs the terminal.
type RenderOptions struct {
	// Spacing is the number of blanks between columns. Zero or negative
	// selects the default of 6.
	Spacing int
	// Indent is the number of blanks prefixed to every data row.
	Indent int
	// Styled wraps rows in their severity color and bolds group keys.
	Styled bool
}

func (o RenderOptions) spacing() int {
	if o.Spacing <= 0 {
		return defaultSpacing
	}
	return o.Spacing
}

// Severity colors, forced on so that Styled output carries ANSI codes
// even when stdout is not a terminal. RenderOptions.Styled is the only
// switch.
var severityColors = map[Severity]*color.Color{
	SeverityOK:        forced(color.FgGreen),
	SeverityUntracked: forced(color.FgCyan),
	SeverityCaution:   forced(color.FgYellow),
	SeverityDrifted:   forced(color.FgRed),
	SeverityUnknown:   forced(color.FgCyan),
}

var boldStyle = forced(color.Bold)

func forced(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// Render writes the grouped report to w: one "[key]" header per group in
// sorted key order, the group's rows aligned on shared column widths, and
// a blank line after each group. Rows keep their insertion order.
//
// Column widths are the maximum terminal display width of any cell in
// that column across all groups, so wide runes line up. Rows with fewer
// columns render only the cells they have. Malformed input never makes
// Render fail; it renders what is there.
func Render(w io.Writer, groups map[string][]Entry, opts RenderOptions) {
	widths := columnWidths(groups)

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	spacer := strings.Repeat(" ", opts.spacing())
	indent := strings.Repeat(" ", opts.Indent)
	for _, key := range keys {
		prettyKey := key
		if opts.Styled {
			prettyKey = boldStyle.Sprint(key)
		}
		fmt.Fprintf(w, "[%s]\n", prettyKey)

		for _, e := range groups[key] {
			if len(e.Cols) == 0 {
				continue
			}
			line := formatRow(e.Cols, widths, spacer, opts.Styled)
			if opts.Styled {
				line = colorFor(e.Severity()).Sprint(line)
			}
			fmt.Fprintf(w, "%s%s\n", indent, line)
		}
		fmt.Fprintln(w)
	}
}

func formatRow(cols []string, widths []int, spacer string, styled bool) string {
	cells := make([]string, 0, len(cols))
	for i, col := range cols {
		cell := runewidth.FillRight(col, widths[i])
		if styled && i == 0 {
			cell = " " + cell
		}
		cells = append(cells, cell)
	}
	return strings.Join(cells, spacer)
}

func colorFor(s Severity) *color.Color {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return severityColors[SeverityUnknown]
}

// columnWidths computes, per column index, the maximum display width of
// any cell across all groups.
func columnWidths(groups map[string][]Entry) []int {
	var widths []int
	for _, rows := range groups {
		for _, e := range rows {
			for i, col := range e.Cols {
				for len(widths) <= i {
					widths = append(widths, 0)
				}
				if w := runewidth.StringWidth(col); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	return widths
}

// PrintStatus writes the full project report: a title, the count of
// registered data files, then the entries grouped by directory with
// remote names merged into the group headers.
func PrintStatus(w io.Writer, entries []Entry, remotes map[string]remote.Remote, opts RenderOptions) {
	title := "Project data status:"
	if opts.Styled {
		title = boldStyle.Sprint(title)
	}
	fmt.Fprintln(w, title)

	plural := ""
	if len(entries) > 1 {
		plural = "s"
	}
	fmt.Fprintf(w, "%d data file%s registered.\n\n", len(entries), plural)

	groups := MergeRemoteNames(GroupByDirectory(entries), remotes)
	Render(w, groups, opts)
}
