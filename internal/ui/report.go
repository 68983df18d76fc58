package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/thesavant42/wikitop/internal/models"
)

// Column widths: Rank, Article, Views, URL
var colWidths = []int{4, 40, 12, 60}

// viewsPrinter formats view counts with Portuguese digit grouping (1.234.567)
var viewsPrinter = message.NewPrinter(language.Portuguese)

// FormatViews renders a view count with locale digit grouping
func FormatViews(n int64) string {
	return viewsPrinter.Sprintf("%d", n)
}

// PrintHeader prints a styled header for a report
func PrintHeader(w io.Writer, title, subtitle string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render(title))
	if subtitle != "" {
		fmt.Fprintln(w, SubtitleStyle.Render(subtitle))
	}
	fmt.Fprintln(w)
}

// PrintArticleTable prints a styled table of cleaned articles. Rows from
// different dates are separated by a date divider.
//
// This is a non-interactive report: lipgloss only colors the text, the table
// structure is plain string formatting.
func PrintArticleTable(w io.Writer, table models.Table) {
	if len(table) == 0 {
		fmt.Fprintln(w, HintStyle.Render("No data"))
		return
	}

	totalWidth := 1
	for _, cw := range colWidths {
		totalWidth += cw + 3
	}
	separator := strings.Repeat("─", totalWidth-2)

	fmt.Fprintln(w, BorderLineStyle.Render("┌"+separator+"┐"))
	fmt.Fprintln(w, HeaderStyle.Render(formatRow("#", "Article", "Views", "URL")))

	lastDate := ""
	for _, row := range table {
		if row.Date != lastDate {
			fmt.Fprintln(w, BorderLineStyle.Render("├"+separator+"┤"))
			fmt.Fprintln(w, DividerStyle.Render(formatDivider(row.Date, totalWidth)))
			lastDate = row.Date
		}
		fmt.Fprintln(w, NormalStyle.Render(formatRow(
			fmt.Sprintf("%d", row.Rank),
			row.Article,
			FormatViews(row.Views),
			row.URL,
		)))
	}

	fmt.Fprintln(w, BorderLineStyle.Render("└"+separator+"┘"))
	fmt.Fprintln(w)
}

// formatRow pads cells by display width so accented titles stay aligned
func formatRow(rank, article, views, url string) string {
	cells := []string{rank, article, views, url}
	for i, c := range cells {
		c = runewidth.Truncate(c, colWidths[i], "...")
		if i == 0 || i == 2 {
			cells[i] = runewidth.FillLeft(c, colWidths[i])
		} else {
			cells[i] = runewidth.FillRight(c, colWidths[i])
		}
	}
	return "│ " + strings.Join(cells, " │ ") + " │"
}

func formatDivider(date string, totalWidth int) string {
	return "│ " + runewidth.FillRight(date, totalWidth-4) + " │"
}

// PrintAbsent reports a day the source had no table for
func PrintAbsent(w io.Writer, result models.DayResult) {
	style := lipgloss.NewStyle().Foreground(ColorAccentDim)
	fmt.Fprintln(w, style.Render(fmt.Sprintf("No results for %s: %s", models.FormatDate(result.Date), result.Absent)))
}

// PrintSummary prints a brief summary after the table
func PrintSummary(w io.Writer, table models.Table) {
	days := make(map[string]bool)
	var views int64
	for _, row := range table {
		days[row.Date] = true
		views += row.Views
	}
	summary := fmt.Sprintf("%d articles across %d day(s), %s views in total",
		len(table), len(days), FormatViews(views))
	fmt.Fprintln(w, AccentStyle.Render("Summary:")+" "+HintStyle.Render(summary))
	fmt.Fprintln(w)
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	fmt.Fprintln(w, ErrorStyle.Render("Error: "+message))
}

// GenerateMarkdownReport renders a table of cleaned articles as Markdown
func GenerateMarkdownReport(title string, table models.Table) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	if len(table) == 0 {
		sb.WriteString("No data\n")
		return sb.String()
	}

	sb.WriteString("| Date | Rank | Article | Views |\n")
	sb.WriteString("|------|------|---------|-------|\n")

	for _, row := range table {
		article := strings.ReplaceAll(row.Article, "|", `\|`)
		sb.WriteString(fmt.Sprintf("| %s | %d | [%s](%s) | %s |\n",
			row.Date, row.Rank, article, row.URL, FormatViews(row.Views)))
	}

	return sb.String()
}
