package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"options-payoff/internal/models"
	"options-payoff/internal/payoff"
	"options-payoff/internal/store"
)

func newStrategyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategy",
		Short: "Manage saved strategies",
		Long:  "List, inspect, and delete strategies saved with calc --save or custom --save.",
	}

	cmd.AddCommand(newStrategySaveCmd(app))
	cmd.AddCommand(newStrategyListCmd(app))
	cmd.AddCommand(newStrategyShowCmd(app))
	cmd.AddCommand(newStrategyDeleteCmd(app))

	return cmd
}

func newStrategySaveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a strategy configuration",
		Long: `Save a strategy without running a calculation first. Template
strategies take --type and repeated --set flags; custom strategies take
--type custom-strategy and repeated --leg flags.`,
		Example: `  payoff strategy save "march-condor" --type iron-condor --set lotSize=50 --set ...
  payoff strategy save "strangle" --type custom-strategy \
      --leg CE:SELL:19000:110:50 --leg PE:SELL:17000:95:50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}

			typeFlag, _ := cmd.Flags().GetString("type")
			strategyType := models.StrategyType(typeFlag)
			if !strategyType.Valid() {
				return fmt.Errorf("unknown strategy type %q", typeFlag)
			}

			sets, _ := cmd.Flags().GetStringArray("set")
			params, err := parseSetFlags(sets)
			if err != nil {
				return err
			}
			specs, _ := cmd.Flags().GetStringArray("leg")
			legs, err := parseLegSpecs(specs)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if strategyType == models.CustomStrategy && len(legs) == 0 {
				return fmt.Errorf("custom-strategy requires at least one --leg")
			}

			// Validate before persisting so broken configurations are
			// rejected here, not on the next show.
			if _, err := payoff.Calculate(payoff.Request{
				StrategyType: strategyType,
				Parameters:   params,
				CustomLegs:   legs,
			}); err != nil {
				output.Error("Invalid strategy: %v", err)
				return err
			}

			return saveFromFlags(cmd, app, output, args[0], strategyType, params, legs)
		},
	}

	cmd.Flags().String("type", "", "strategy type (required)")
	cmd.Flags().StringArray("set", nil, "strategy parameter as name=value (repeatable)")
	cmd.Flags().StringArray("leg", nil, "custom strategy leg (repeatable)")
	cmd.Flags().String("entry", "", "entry date (YYYY-MM-DD)")
	cmd.Flags().String("expiry", "", "expiry date (YYYY-MM-DD)")
	cmd.Flags().String("notes", "", "notes")
	cmd.MarkFlagRequired("type")
	return cmd
}

func requireStore(app *App) error {
	if app.Store == nil {
		return fmt.Errorf("strategy store unavailable")
	}
	return nil
}

func storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func newStrategyListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved strategies",
		Example: `  payoff strategy list
  payoff strategy list --type iron-condor
  payoff strategy list --name condor --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}

			filter := store.StrategyFilter{}
			typeFlag, _ := cmd.Flags().GetString("type")
			filter.Type = models.StrategyType(typeFlag)
			filter.Name, _ = cmd.Flags().GetString("name")
			filter.Limit, _ = cmd.Flags().GetInt("limit")

			ctx, cancel := storeContext()
			defer cancel()
			strategies, err := app.Store.ListStrategies(ctx, filter)
			if err != nil {
				output.Error("Failed to list strategies: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(strategies)
			}
			if len(strategies) == 0 {
				output.Dim("No saved strategies.")
				return nil
			}

			table := NewTable(output, "ID", "Name", "Type", "Entry", "Expiry", "Updated")
			for _, s := range strategies {
				table.AddRow(
					strconv.FormatInt(s.ID, 10),
					s.Name,
					string(s.Type),
					s.EntryDate,
					s.ExpiryDate,
					s.UpdatedAt.Local().Format("02-Jan-2006 15:04"),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().String("type", "", "filter by strategy type")
	cmd.Flags().String("name", "", "filter by name substring")
	cmd.Flags().Int("limit", 0, "maximum number of strategies to show")
	return cmd
}

func newStrategyShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved strategy and recompute its payoff",
		Example: `  payoff strategy show 3
  payoff strategy show 3 --chart`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid strategy id %q", args[0])
			}

			ctx, cancel := storeContext()
			defer cancel()
			strategy, err := app.Store.GetStrategy(ctx, id)
			if err != nil {
				output.Error("Failed to load strategy: %v", err)
				return err
			}

			req := payoff.Request{
				StrategyType: strategy.Type,
				Parameters:   strategy.Parameters,
				CustomLegs:   strategy.CustomLegs,
			}
			applyConfigDefaults(app, &req)
			result, err := payoff.Calculate(req)
			if err != nil {
				output.Error("Calculation failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"strategy": strategy,
					"result":   result,
				})
			}

			output.Bold("#%d %s", strategy.ID, strategy.Name)
			output.Printf("  Type:   %s\n", strategy.Type)
			output.Printf("  Entry:  %s\n", strategy.EntryDate)
			output.Printf("  Expiry: %s\n", strategy.ExpiryDate)
			if strategy.Notes != "" {
				output.Printf("  Notes:  %s\n", strategy.Notes)
			}
			output.Println()

			if len(strategy.Parameters) > 0 {
				output.Bold("Parameters")
				names := make([]string, 0, len(strategy.Parameters))
				for name := range strategy.Parameters {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					output.Printf("  %-20s %s\n", name, strategy.Parameters[name])
				}
				output.Println()
			}
			if len(strategy.CustomLegs) > 0 {
				output.Bold("Legs")
				for i, leg := range strategy.CustomLegs {
					output.Printf("  %d. %s\n", i+1, describeLeg(leg))
				}
				output.Println()
			}

			if chart, _ := cmd.Flags().GetBool("chart"); chart {
				RenderChart(output, result.Curve, app.Config.UI.ChartWidth, app.Config.UI.ChartHeight)
				output.Println()
			}
			printMetrics(output, result.Metrics)
			return nil
		},
	}

	cmd.Flags().Bool("chart", false, "render an ASCII payoff chart")
	return cmd
}

func newStrategyDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete a saved strategy",
		Example: `  payoff strategy delete 3`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid strategy id %q", args[0])
			}

			ctx, cancel := storeContext()
			defer cancel()
			if err := app.Store.DeleteStrategy(ctx, id); err != nil {
				output.Error("Failed to delete strategy: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"deleted": id})
			}
			output.Success("✓ Deleted strategy #%d", id)
			return nil
		},
	}
}
