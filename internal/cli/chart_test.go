package cli

import (
	"bytes"
	"strings"
	"testing"

	"options-payoff/internal/models"
)

func testOutput() (*Output, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Output{writer: &buf}, &buf
}

func straddleCurve() models.PayoffCurve {
	// V shape with the loss floor at 18000.
	return models.PayoffCurve{
		{Price: 17000, PnL: 31000},
		{Price: 17500, PnL: 6000},
		{Price: 18000, PnL: -19000},
		{Price: 18500, PnL: 6000},
		{Price: 19000, PnL: 31000},
	}
}

func TestRenderChartShape(t *testing.T) {
	output, buf := testOutput()
	RenderChart(output, straddleCurve(), 40, 10)

	text := buf.String()
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	// height rows + axis + price labels
	if len(lines) != 12 {
		t.Fatalf("chart lines = %d, want 12\n%s", len(lines), text)
	}
	if !strings.Contains(text, "●") {
		t.Error("chart has no plotted points")
	}
	if !strings.Contains(text, "─") {
		t.Error("chart has no zero axis")
	}
	if !strings.Contains(text, "17000.00") || !strings.Contains(text, "19000.00") {
		t.Errorf("price axis missing endpoints:\n%s", text)
	}
	if !strings.Contains(text, "31,000") {
		t.Errorf("max profit label missing:\n%s", text)
	}
}

func TestRenderChartDegenerateInputs(t *testing.T) {
	output, buf := testOutput()
	RenderChart(output, models.PayoffCurve{{Price: 18000, PnL: 0}}, 40, 10)
	RenderChart(output, straddleCurve(), 5, 10)
	RenderChart(output, straddleCurve(), 40, 2)
	if buf.Len() != 0 {
		t.Errorf("degenerate inputs produced output: %q", buf.String())
	}
}

func TestPrintMetrics(t *testing.T) {
	output, buf := testOutput()
	printMetrics(output, models.PayoffMetrics{
		MaxProfit:  35000,
		MaxLoss:    -10000,
		BreakEvens: []float64{17800},
	})

	text := buf.String()
	if !strings.Contains(text, "+₹35,000.00") {
		t.Errorf("max profit missing:\n%s", text)
	}
	if !strings.Contains(text, "-₹10,000.00") {
		t.Errorf("max loss missing:\n%s", text)
	}
	if !strings.Contains(text, "17800.00") {
		t.Errorf("break-even missing:\n%s", text)
	}
}

func TestPrintCurveTableThinning(t *testing.T) {
	curve := make(models.PayoffCurve, 50)
	for i := range curve {
		curve[i] = models.PricePoint{Price: 12600 + float64(i)*220, PnL: float64(i * 100)}
	}

	output, buf := testOutput()
	printCurveTable(output, curve)

	text := buf.String()
	if !strings.Contains(text, "50 points total") {
		t.Errorf("point count footer missing:\n%s", text)
	}
	// Last price must always be shown even after thinning.
	if !strings.Contains(text, FormatPrice(curve[49].Price)) {
		t.Errorf("last price missing:\n%s", text)
	}
}
