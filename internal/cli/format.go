package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/danieljhkim/workspyce/internal/bump"
	"github.com/danieljhkim/workspyce/internal/engine"
)

var (
	// fatih/color disables these when stdout is not a TTY
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
	dimColor     = color.New(color.FgHiBlack)

	kindColors = map[bump.Kind]*color.Color{
		bump.Major: color.New(color.FgRed, color.Bold),
		bump.Minor: color.New(color.FgYellow),
		bump.Patch: color.New(color.FgGreen),
	}
)

// Table headers for the bump and pending-record listings.
var (
	bumpHeaders    = []string{"PACKAGE", "KIND", "FROM", "TO"}
	pendingHeaders = []string{"RECORD", "PACKAGE", "KIND", "SUMMARY"}
)

// PrintSection prints a section header
func PrintSection(title string) {
	fmt.Println()
	_, _ = headerColor.Printf("▸ %s\n", title)
	fmt.Println()
}

// PrintSuccess prints a success message with a checkmark
func PrintSuccess(msg string) {
	_, _ = successColor.Printf("✓ %s\n", msg)
}

// PrintWarning prints a warning message with a warning symbol
func PrintWarning(msg string) {
	_, _ = warningColor.Printf("⚠ %s\n", msg)
}

// PrintError prints an error message to stderr
func PrintError(msg string) {
	_, _ = errorColor.Fprintf(os.Stderr, "✗ %s\n", msg)
}

// PrintInfo prints an informational message
func PrintInfo(msg string) {
	fmt.Println(msg)
}

// PrintLabelValue prints a label-value pair with proper formatting
func PrintLabelValue(label, value string) {
	_, _ = labelColor.Printf("  %s: ", label)
	_, _ = valueColor.Println(value)
}

// PrintNumberedList prints a numbered list
func PrintNumberedList(items []string, indent int) {
	indentStr := strings.Repeat("  ", indent)
	for i, item := range items {
		_, _ = infoColor.Printf("%s%d. %s\n", indentStr, i+1, item)
	}
}

// printStyledTable prints rows aligned under headers, coloring cells by
// style. Cells are padded before coloring so escape codes do not skew the
// columns.
func printStyledTable(headers []string, rows [][]string, style func(col int, cell string) *color.Color) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	colWidths := make([]int, len(headers))
	for i, header := range headers {
		colWidths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(colWidths) && len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}

	_, _ = headerColor.Print("  ")
	for i, header := range headers {
		if i > 0 {
			fmt.Print("  ")
		}
		_, _ = headerColor.Printf("%-*s", colWidths[i], header)
	}
	fmt.Println()

	fmt.Print("  ")
	for i, width := range colWidths {
		if i > 0 {
			fmt.Print("  ")
		}
		fmt.Print(strings.Repeat("-", width))
	}
	fmt.Println()

	for _, row := range rows {
		fmt.Print("  ")
		for i, cell := range row {
			if i >= len(colWidths) {
				break
			}
			if i > 0 {
				fmt.Print("  ")
			}
			c := valueColor
			if style != nil {
				if sc := style(i, cell); sc != nil {
					c = sc
				}
			}
			_, _ = c.Printf("%-*s", colWidths[i], cell)
		}
		fmt.Println()
	}
}

// PrintEmptyState prints a message when there's no data to show
func PrintEmptyState(msg string) {
	_, _ = dimColor.Printf("  %s\n", msg)
}

// PrintCount prints a count with proper formatting
func PrintCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// kindColor returns the color for a bump kind, or nil for anything else.
func kindColor(k bump.Kind) *color.Color {
	return kindColors[k]
}

// kindColumn styles the cells of column col by bump kind.
func kindColumn(col int) func(int, string) *color.Color {
	return func(i int, cell string) *color.Color {
		if i != col {
			return nil
		}
		return kindColor(bump.Kind(cell))
	}
}

// bumpRows renders bumps as PACKAGE/KIND/FROM/TO rows. Resumed bumps are
// marked in the TO column.
func bumpRows(bumps []engine.Bump) [][]string {
	rows := make([][]string, 0, len(bumps))
	for _, b := range bumps {
		to := b.NewVersion
		if b.Resumed {
			to += " (resumed)"
		}
		rows = append(rows, []string{b.Package, string(b.Kind), b.OldVersion, to})
	}
	return rows
}

// pendingRows renders intent records as RECORD/PACKAGE/KIND/SUMMARY rows.
func pendingRows(pending []engine.PendingRecord) [][]string {
	rows := make([][]string, 0, len(pending))
	for _, p := range pending {
		if p.Error != "" {
			rows = append(rows, []string{p.File, "?", "?", "unreadable: " + p.Error})
			continue
		}
		rows = append(rows, []string{p.File, p.Package, string(p.Kind), p.Summary})
	}
	return rows
}

// PrintBumps prints the bump table with kinds colored.
func PrintBumps(bumps []engine.Bump) {
	printStyledTable(bumpHeaders, bumpRows(bumps), kindColumn(1))
}

// PrintPending prints pending intent records, or an empty state.
func PrintPending(pending []engine.PendingRecord) {
	if len(pending) == 0 {
		PrintEmptyState("No pending intent records")
		return
	}
	printStyledTable(pendingHeaders, pendingRows(pending), kindColumn(2))
}

// PrintManifest prints the release manifest entries. exists distinguishes a
// missing manifest from an empty one.
func PrintManifest(entries []string, exists bool) {
	switch {
	case !exists:
		PrintEmptyState("Nothing to release")
	case len(entries) == 0:
		PrintEmptyState("Release manifest is empty")
	default:
		PrintNumberedList(entries, 1)
	}
}

// PrintRecorded prints one recorded intent line.
func PrintRecorded(r engine.RecordedIntent) {
	_, _ = successColor.Print("✓ ")
	fmt.Printf("%s: ", r.Package)
	c := kindColor(r.Kind)
	if c == nil {
		c = valueColor
	}
	_, _ = c.Print(string(r.Kind))
	_, _ = dimColor.Printf(" release (%s)\n", r.File)
}
