package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"options-payoff/internal/payoff"
)

func newExitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exit",
		Short: "Calculate realized P&L for closed legs",
		Long: `Calculate the realized profit or loss of a position's closed legs.

Legs use the same --leg format as the custom command, with the sixth
field as the exit price. For futures legs the exit field is the exit
price; for option legs it is the premium the option was closed at.
Legs without an exit field stay open and are excluded from the total.`,
		Example: `  payoff exit --leg CE:SELL:18500:200:50:80
  payoff exit --leg FUT:BUY:18000:0:50:18250 --leg PE:SELL:17500:150:50`,
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

			result := payoff.ExitPnL(legs)

			if output.IsJSON() {
				return output.JSON(result)
			}

			output.Bold("Realized P&L")
			output.Println()

			if len(result.Closed) > 0 {
				table := NewTable(output, "Leg", "P&L")
				for _, closed := range result.Closed {
					table.AddRow(describeLeg(closed.Leg), output.FormatPnLColored(closed.PnL))
				}
				table.Render()
				output.Println()
			}

			output.Printf("  Closed legs: %d\n", len(result.Closed))
			if result.OpenLegs > 0 {
				output.Printf("  Open legs:   %d %s\n", result.OpenLegs, output.DimText("(excluded)"))
			}
			output.Printf("  Total:       %s\n", output.FormatPnLColored(result.TotalPnL))
			return nil
		},
	}

	cmd.Flags().StringArray("leg", nil, "position leg as TYPE:ACTION:price:premium:lots[:exit] (repeatable)")
	return cmd
}
