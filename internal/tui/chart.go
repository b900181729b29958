package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/basicstrategy/strategy"
)

// RenderChart draws one strategy chart. If highlight points into this
// chart that cell is emphasised.
func RenderChart(table strategy.TableType, highlight *strategy.Cell) string {
	view := strategy.Chart(table)

	var b strings.Builder
	b.WriteString(HandInfoStyle.Render(strings.ToUpper(table.String()) + " TOTALS"))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%-6s", ""))
	for _, col := range view.Columns {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("%-3s", col)))
	}
	b.WriteString("\n")

	for r, row := range view.Cells {
		b.WriteString(fmt.Sprintf("%-6s", view.Rows[r]))
		for c, code := range row {
			text := fmt.Sprintf("%-2s", code)
			style, ok := chartCellStyles[code.String()[0]]
			if !ok {
				style = lipgloss.NewStyle()
			}
			if highlight != nil && highlight.Table == table && highlight.Row == r && highlight.Col == c {
				style = highlightStyle
			}
			b.WriteString(style.Render(text))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// ChartLegend explains the chart codes.
func ChartLegend() string {
	return InfoStyle.Render("H hit  S stand  D double/hit  Ds double/stand  P split  Rh surrender/hit  Rs surrender/stand")
}
