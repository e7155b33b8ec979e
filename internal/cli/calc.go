package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"options-payoff/internal/logging"
	"options-payoff/internal/models"
	"options-payoff/internal/payoff"
)

func newCalcCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc <strategy-type>",
		Short: "Calculate a template strategy payoff",
		Long: `Calculate the expiration payoff curve for a template strategy.

Strategy parameters are passed as repeated --set name=value flags. Each
template has its own parameter set; run with no --set flags to see the
required names. Supported types: ` + strategyTypeHelp() + `.`,
		Example: `  payoff calc covered-call --set futuresLotSize=50 --set futuresPrice=18000 \
      --set callLotSize=50 --set callStrike=18500 --set premium=200
  payoff calc long-straddle --set strikePrice=18000 --set callLotSize=50 \
      --set putLotSize=50 --set callPremium=200 --set putPremium=180 --chart
  payoff calc iron-condor --set ... --save "march-condor" --expiry 2026-03-26`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			strategyType := models.StrategyType(args[0])
			if !strategyType.Valid() || strategyType == models.CustomStrategy {
				output.Error("Unknown strategy type: %s", args[0])
				output.Dim("Supported: %s", strategyTypeHelp())
				return fmt.Errorf("unknown strategy type %q", args[0])
			}

			sets, _ := cmd.Flags().GetStringArray("set")
			params, err := parseSetFlags(sets)
			if err != nil {
				return err
			}

			req := payoff.Request{
				StrategyType: strategyType,
				Parameters:   params,
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
				logging.WithStrategy(app.Logger, string(strategyType)),
				len(result.Curve), time.Since(start))

			if output.IsJSON() {
				return output.JSON(result)
			}

			output.Bold("%s Payoff", titleCase(string(strategyType)))
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
				return saveFromFlags(cmd, app, output, name, strategyType, params, nil)
			}
			return nil
		},
	}

	cmd.Flags().StringArray("set", nil, "strategy parameter as name=value (repeatable)")
	addSweepFlags(cmd)
	addSaveFlags(cmd)
	return cmd
}

// addSweepFlags registers the price-sweep override flags shared by the
// calc and custom commands.
func addSweepFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("underlying", 0, "underlying price (default: strategy-derived center)")
	cmd.Flags().Float64("range", 0, "price range percent around the center")
	cmd.Flags().Int("points", 0, "number of curve points")
	cmd.Flags().Bool("chart", false, "render an ASCII payoff chart instead of a table")
}

func addSaveFlags(cmd *cobra.Command) {
	cmd.Flags().String("save", "", "save the strategy under this name")
	cmd.Flags().String("entry", "", "entry date for the saved strategy (YYYY-MM-DD)")
	cmd.Flags().String("expiry", "", "expiry date for the saved strategy (YYYY-MM-DD)")
	cmd.Flags().String("notes", "", "notes for the saved strategy")
}

// applyConfigDefaults fills sweep defaults from configuration where the
// flags were left unset.
func applyConfigDefaults(app *App, req *payoff.Request) {
	if req.RangePercent == 0 {
		req.RangePercent = app.Config.Payoff.DefaultRangePercent
	}
	if req.NumPoints == 0 {
		req.NumPoints = app.Config.Payoff.DefaultNumPoints
	}
}

// parseSetFlags parses repeated name=value strategy parameters.
func parseSetFlags(sets []string) (map[string]string, error) {
	params := make(map[string]string, len(sets))
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q, expected name=value", s)
		}
		params[name] = value
	}
	return params, nil
}

// saveFromFlags persists a calculated strategy using the save flag group.
func saveFromFlags(cmd *cobra.Command, app *App, output *Output, name string,
	strategyType models.StrategyType, params map[string]string, legs []models.Leg) error {
	if app.Store == nil {
		return fmt.Errorf("strategy store unavailable")
	}

	entry, _ := cmd.Flags().GetString("entry")
	expiry, _ := cmd.Flags().GetString("expiry")
	notes, _ := cmd.Flags().GetString("notes")
	if entry == "" {
		entry = time.Now().Format("2006-01-02")
	}
	if params == nil {
		params = map[string]string{}
	}

	strategy := &models.Strategy{
		Name:       name,
		Type:       strategyType,
		EntryDate:  entry,
		ExpiryDate: expiry,
		Parameters: params,
		CustomLegs: legs,
		Notes:      notes,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := app.Store.SaveStrategy(ctx, strategy)
	if err != nil {
		output.Error("Failed to save strategy: %v", err)
		return err
	}
	output.Println()
	output.Success("✓ Saved as #%d %q", id, name)
	return nil
}

// titleCase turns a kebab-case strategy type into a display title.
func titleCase(s string) string {
	words := strings.Split(s, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
