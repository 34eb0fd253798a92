package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/porder/pkg/ordering"
	"github.com/matzehuels/porder/pkg/scenario"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printTitle prints a section heading.
func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, StyleTitle.Render(title))
}

// =============================================================================
// Formatting
// =============================================================================

// formatOrder renders a linearization as "1 → 2 → 3".
func formatOrder(order []ordering.StepID) string {
	if len(order) == 0 {
		return StyleDim.Render("(empty)")
	}
	parts := make([]string, len(order))
	for i, id := range order {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, " "+iconArrow+" ")
}

// formatPairs renders pairs as "S(1) < S(2), S(2) < S(3)".
func formatPairs(pairs []ordering.Pair) string {
	if len(pairs) == 0 {
		return StyleDim.Render("(none)")
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("S(%d) < S(%d)", p.Before, p.After)
	}
	return strings.Join(parts, ", ")
}

// formatStats renders the non-zero insertion cases on a single line.
func formatStats(s ordering.Stats) string {
	fields := []struct {
		name string
		n    int
	}{
		{ordering.CaseBothNew.String(), s.BothNew},
		{ordering.CaseLaterNew.String(), s.LaterNew},
		{ordering.CaseEarlierNew.String(), s.EarlierNew},
		{ordering.CaseBothKnown.String(), s.BothKnown},
		{ordering.CaseRedundant.String(), s.Redundant},
		{ordering.CaseSentinel.String(), s.Sentinel},
		{"inherit", s.Inherits},
	}
	var parts []string
	for _, f := range fields {
		if f.n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", f.name, f.n))
		}
	}
	if len(parts) == 0 {
		return StyleDim.Render("(none)")
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

// =============================================================================
// Tables
// =============================================================================

// branchTable summarizes every branch of a report, one row each.
func branchTable(r *scenario.Report) string {
	rows := make([][]string, len(r.Branches))
	for i, b := range r.Branches {
		rows[i] = []string{
			b.Name,
			fmt.Sprint(len(b.Order)),
			fmt.Sprint(len(b.Reduction)),
			fmt.Sprint(b.Stats.Total()),
			fmt.Sprint(len(b.Failures)),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Branch", "Steps", "Hasse", "Inserts", "Failed").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 4 && len(r.Branches[row].Failures) > 0 {
				return lipgloss.NewStyle().Foreground(colorRed)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}
