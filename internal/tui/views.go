package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kharcha/internal/cli"
	"kharcha/internal/view"
)

const barWidth = 24

var (
	colWidths = []int{14, 10, 14, 12}
	cellStyle = lipgloss.NewStyle().PaddingRight(2)
)

func (m Model) View() string {
	page := view.Build(m.store.State())

	var b strings.Builder
	b.WriteString(cli.FormatTitle(view.Title))
	b.WriteString("\n")
	b.WriteString(m.formView(page))
	b.WriteString("\n\n")
	b.WriteString(m.tableView(page))
	b.WriteString("\n")
	b.WriteString(chartView(page))
	b.WriteString("\n")

	switch {
	case m.lastErr != nil:
		b.WriteString(cli.FormatError(m.lastErr))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(cli.FormatSuccess(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keymap))
	return b.String()
}

func (m Model) formView(page view.Page) string {
	fields := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		style := cli.BoxStyle
		if i == m.focus {
			style = style.BorderForeground(cli.PrimaryColor)
		}
		fields[i] = style.Render(in.View())
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, fields...)
	label := cli.BoldStyle.Render("[ " + page.SubmitLabel + " ]")
	if page.EditingID != "" {
		label += cli.SubtleStyle.Render("  esc to cancel")
	}
	return row + "\n" + label
}

func (m Model) tableView(page view.Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Filter: %s   %s\n\n",
		cli.InfoStyle.Render(page.Filter),
		cli.BoldStyle.Render("Total Expense: "+page.TotalText))

	header := []string{"  "}
	for i, h := range []string{"Username", "Amount", "Category", "Date"} {
		header = append(header, cli.TableHeaderStyle.Width(colWidths[i]).Render(h))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Bottom, header...))
	b.WriteString("\n")

	if page.Empty {
		b.WriteString(cli.SubtleStyle.Render("  " + view.EmptyText))
		b.WriteString("\n")
		return b.String()
	}

	tableFocused := m.focus == tableFocus
	for i, r := range page.Rows {
		prefix := "  "
		style := cellStyle
		if tableFocused && i == m.cursor {
			prefix = "> "
			style = style.Inherit(cli.SelectedStyle)
		}
		b.WriteString(prefix)
		for j, v := range []string{r.Username, r.Amount, r.Category, r.Date} {
			b.WriteString(style.Width(colWidths[j]).Render(v))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// chartView draws the category shares as bars; terminals have no pie.
func chartView(page view.Page) string {
	var b strings.Builder
	b.WriteString(cli.BoldStyle.Render(view.ChartTitle))
	b.WriteString("\n")
	for _, s := range page.Segments {
		fmt.Fprintf(&b, "%-14s %s %6s  %s\n",
			s.Name,
			cli.Bar(s.Share, barWidth, s.Color),
			s.Percent,
			s.Value.Display())
	}
	return b.String()
}
