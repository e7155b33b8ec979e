package cli

import (
	"fmt"
	"strings"

	"options-payoff/internal/models"
)

// RenderChart draws an ASCII payoff diagram for a curve. Profit region
// plots above the zero axis, loss below. The curve is resampled onto a
// width-column grid, so uneven point counts render fine.
func RenderChart(output *Output, curve models.PayoffCurve, width, height int) {
	if len(curve) < 2 || width < 10 || height < 5 {
		return
	}

	minPnL, maxPnL := curve[0].PnL, curve[0].PnL
	for _, p := range curve {
		if p.PnL < minPnL {
			minPnL = p.PnL
		}
		if p.PnL > maxPnL {
			maxPnL = p.PnL
		}
	}
	// Keep the zero axis inside the plot.
	if minPnL > 0 {
		minPnL = 0
	}
	if maxPnL < 0 {
		maxPnL = 0
	}
	span := maxPnL - minPnL
	if span == 0 {
		span = 1
	}

	// row 0 is the top of the plot
	rowOf := func(pnl float64) int {
		r := int(float64(height-1) * (maxPnL - pnl) / span)
		if r < 0 {
			r = 0
		}
		if r >= height {
			r = height - 1
		}
		return r
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	zeroRow := rowOf(0)
	for j := 0; j < width; j++ {
		grid[zeroRow][j] = '─'
	}

	// Resample the curve across the columns.
	for j := 0; j < width; j++ {
		idx := j * (len(curve) - 1) / (width - 1)
		r := rowOf(curve[idx].PnL)
		if r == zeroRow {
			grid[r][j] = '┼'
		} else {
			grid[r][j] = '●'
		}
	}

	labelWidth := 12
	for i, row := range grid {
		label := ""
		switch i {
		case rowOf(maxPnL):
			label = FormatCompact(maxPnL)
		case zeroRow:
			label = "0"
		case rowOf(minPnL):
			label = FormatCompact(minPnL)
		}
		line := string(row)
		if output.colorEnabled {
			line = colorizeChartRow(row, i, zeroRow)
		}
		output.Printf("%s │%s\n", PadLeft(label, labelWidth), line)
	}

	// Price axis with first, middle, and last prices.
	output.Printf("%s └%s\n", strings.Repeat(" ", 12), strings.Repeat("─", width))
	first := FormatPrice(curve[0].Price)
	mid := FormatPrice(curve[len(curve)/2].Price)
	last := FormatPrice(curve[len(curve)-1].Price)
	gap := width - len(first) - len(mid) - len(last)
	if gap < 2 {
		gap = 2
	}
	output.Printf("%s  %s%s%s%s%s\n",
		strings.Repeat(" ", 12),
		first,
		strings.Repeat(" ", gap/2),
		mid,
		strings.Repeat(" ", gap-gap/2),
		last)
}

// colorizeChartRow colors points green above the zero axis and red below.
func colorizeChartRow(row []rune, rowIdx, zeroRow int) string {
	var b strings.Builder
	for _, r := range row {
		switch {
		case r == '●' && rowIdx < zeroRow:
			b.WriteString(ColorGreen + string(r) + ColorReset)
		case r == '●' && rowIdx > zeroRow:
			b.WriteString(ColorRed + string(r) + ColorReset)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// printMetrics prints the derived metrics below a chart or table.
func printMetrics(output *Output, metrics models.PayoffMetrics) {
	output.Bold("Analysis")
	output.Printf("  Max Profit:  %s\n", output.FormatPnLColored(metrics.MaxProfit))
	output.Printf("  Max Loss:    %s\n", output.FormatPnLColored(metrics.MaxLoss))
	if len(metrics.BreakEvens) == 0 {
		output.Printf("  Break-even:  %s\n", output.DimText("none in range"))
	} else {
		levels := make([]string, len(metrics.BreakEvens))
		for i, be := range metrics.BreakEvens {
			levels[i] = FormatPrice(be)
		}
		output.Printf("  Break-even:  %s\n", strings.Join(levels, ", "))
	}
}

// printCurveTable prints a sampled view of the curve as a table. Large
// curves are thinned to keep the table readable.
func printCurveTable(output *Output, curve models.PayoffCurve) {
	step := 1
	if len(curve) > 20 {
		step = len(curve) / 20
	}

	table := NewTable(output, "Price", "P&L")
	for i := 0; i < len(curve); i += step {
		p := curve[i]
		table.AddRow(
			PadLeft(FormatPrice(p.Price), 10),
			PadLeft(output.FormatPnLColored(p.PnL), 14),
		)
	}
	last := curve[len(curve)-1]
	if (len(curve)-1)%step != 0 {
		table.AddRow(
			PadLeft(FormatPrice(last.Price), 10),
			PadLeft(output.FormatPnLColored(last.PnL), 14),
		)
	}
	table.Render()
	output.Println()
	fmt.Fprintf(output.writer, "  %d points total\n", len(curve))
}
