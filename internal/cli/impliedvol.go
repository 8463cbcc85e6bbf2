package cli

import (
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"derivative-pricer/internal/logging"
	"derivative-pricer/internal/pricing/analytic"
)

func newImpliedVolCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "impliedvol",
		Short: "Solve the volatility implied by a market price",
		Long: `Solve for the volatility at which the Black-Scholes price matches an
observed market price, by Newton-Raphson on vega.

Only European calls and puts are supported. Prices outside the
no-arbitrage bounds are rejected.`,
		Example: `  pricer impliedvol --type european-call --spot 100 --strike 100 --expiry 1 --price 10.45
  pricer impliedvol --type european-put --spot 100 --strike 110 --expiry 0.5 --price 12.30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.Output(cmd)
			logger := logging.FromContext(cmd.Context())

			m, err := marketFromFlags(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			c, err := contractFromFlags(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			target, _ := cmd.Flags().GetFloat64("price")

			start := time.Now()
			vol, err := analytic.ImpliedVol(m, c, target)
			if err != nil {
				output.Error("Implied vol failed: %v", err)
				return err
			}
			logging.LogImpliedVol(logger, string(c.Type), target, vol, time.Since(start))

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"contract":     c.Type,
					"target_price": target,
					"implied_vol":  vol,
				})
			}

			color.Cyan("Implied Volatility")
			table := NewTable(output, "Field", "Value")
			table.AddRow("Contract", string(c.Type))
			table.AddRow("Target Price", FormatPrice(target))
			table.AddRow("Implied Vol", output.BoldText(FormatVol(vol)))
			table.Render()
			return nil
		},
	}

	addMarketFlags(cmd, app)
	addContractFlags(cmd)
	cmd.Flags().Float64("price", 0, "observed market price to invert")
	cmd.MarkFlagRequired("price")
	return cmd
}
