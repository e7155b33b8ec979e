package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"options-payoff/internal/logging"
	"options-payoff/internal/models"
	"options-payoff/internal/payoff"
)

func newCustomCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Calculate a custom multi-leg strategy payoff",
		Long: `Calculate the expiration payoff curve for an arbitrary multi-leg
position. Each leg is passed as a --leg flag:

  --leg TYPE:ACTION:price:premium:lots[:exit]

TYPE is FUT, CE, or PE and ACTION is BUY or SELL. For futures legs the
price field is the entry price; for option legs it is the strike and
premium is the option premium. Without --underlying the price sweep is
inferred from the legs' strikes and entry prices.`,
		Example: `  payoff custom --leg CE:SELL:19000:110:50 --leg PE:SELL:17000:95:50
  payoff custom --leg FUT:BUY:18000:0:50 --leg CE:SELL:18500:200:50 --chart
  payoff custom --leg CE:BUY:18000:200:50 --save "long-call" --expiry 2026-03-26`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			specs, _ := cmd.Flags().GetStringArray("leg")
			if len(specs) == 0 {
				return fmt.Errorf("at least one --leg is required")
			}
			legs, err := parseLegSpecs(specs)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			req := payoff.Request{
				StrategyType: models.CustomStrategy,
				CustomLegs:   legs,
			}
			req.UnderlyingPrice, _ = cmd.Flags().GetFloat64("underlying")
			req.RangePercent, _ = cmd.Flags().GetFloat64("range")
			req.NumPoints, _ = cmd.Flags().GetInt("points")
			applyConfigDefaults(app, &req)

			start := time.Now()
			result, err := payoff.Calculate(req)
			if err != nil {
				output.Error("Calculation failed: %v", err)
				return err
			}
			logging.LogCalculation(
				logging.WithStrategy(app.Logger, string(models.CustomStrategy)),
				len(result.Curve), time.Since(start))

			if output.IsJSON() {
				return output.JSON(result)
			}

			output.Bold("Custom Strategy Payoff")
			output.Println()
			output.Bold("Legs")
			for i, leg := range legs {
				output.Printf("  %d. %s\n", i+1, describeLeg(leg))
			}
			output.Println()

			if chart, _ := cmd.Flags().GetBool("chart"); chart {
				RenderChart(output, result.Curve, app.Config.UI.ChartWidth, app.Config.UI.ChartHeight)
				output.Println()
			} else {
				printCurveTable(output, result.Curve)
				output.Println()
			}
			printMetrics(output, result.Metrics)

			if name, _ := cmd.Flags().GetString("save"); name != "" {
				return saveFromFlags(cmd, app, output, name, models.CustomStrategy, nil, legs)
			}
			return nil
		},
	}

	cmd.Flags().StringArray("leg", nil, "strategy leg as TYPE:ACTION:price:premium:lots[:exit] (repeatable)")
	addSweepFlags(cmd)
	addSaveFlags(cmd)
	return cmd
}
