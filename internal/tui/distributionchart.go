package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/bestiary/internal/catalog"
)

// renderDistribution draws one bar per category present in the visible
// items, colored with the category's palette color, plus a count legend.
func renderDistribution(counts []catalog.CategoryCount, width, height int) string {
	if len(counts) == 0 {
		return renderChartMessage("No data available", width, height)
	}
	style := sectionStyle.Width(width - 2).Height(height - 2)
	title := titleStyle.Render("Types shown")

	innerWidth := width - 4
	chartHeight := height - 3
	legendWidth := 13
	chartWidth := max(4, innerWidth-legendWidth-1)
	maxBars := max(1, chartWidth/2)

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(1),
		barchart.WithNoAxis(),
	)

	shown := counts
	if len(shown) > maxBars {
		shown = shown[:maxBars]
	}
	for _, cc := range shown {
		color := lipgloss.Color(cc.Category.Color)
		bc.Push(barchart.BarData{
			Values: []barchart.BarValue{{
				Name:  cc.Category.Name,
				Value: float64(cc.Count),
				Style: lipgloss.NewStyle().Foreground(color).Background(color),
			}},
		})
	}
	bc.Draw()

	var legend []string
	for i, cc := range counts {
		if i >= chartHeight {
			break
		}
		line := fmt.Sprintf("%-8s%4d", cc.Category.Name, cc.Count)
		legend = append(legend, lipgloss.NewStyle().Foreground(lipgloss.Color(cc.Category.Color)).Render(line))
	}

	chartLines := strings.Split(bc.View(), "\n")
	var combined []string
	for i := 0; i < chartHeight; i++ {
		var chartLine, legendLine string
		if i < len(chartLines) {
			chartLine = chartLines[i]
		}
		if i < len(legend) {
			legendLine = legend[i]
		}
		pad := max(0, chartWidth-lipgloss.Width(chartLine))
		combined = append(combined, chartLine+strings.Repeat(" ", pad)+" "+legendLine)
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(combined, "\n")))
}

// renderChartMessage draws the chart box with a single line of text in place
// of the bars.
func renderChartMessage(text string, width, height int) string {
	style := sectionStyle.Width(width - 2).Height(height - 2)
	title := titleStyle.Render("Types shown")
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, helpStyle.Render(text)))
}
