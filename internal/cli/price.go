package cli

import (
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"derivative-pricer/internal/errors"
	"derivative-pricer/internal/logging"
	"derivative-pricer/internal/models"
	"derivative-pricer/internal/pricing/analytic"
)

func newPriceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a contract in closed form",
		Long: `Price a contract with the analytic Black-Scholes engine.

European and digital options, forwards and zero-coupon bonds have closed
forms. Path-dependent contracts need the simulate command.`,
		Example: `  pricer price --type european-call --spot 100 --strike 100 --expiry 1
  pricer price --type digital-put --spot 100 --strike 95 --expiry 0.5 --vol 0.25
  pricer price --type zero-coupon-bond --spot 100 --expiry 1 --face 1000`,
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

			start := time.Now()
			price, err := analytic.Price(m, c)
			if err != nil {
				if errors.Is(err, errors.ErrNoClosedForm) {
					output.Warning("%s has no closed form; use 'pricer simulate'", c.Type)
				} else {
					output.Error("Pricing failed: %v", err)
				}
				return err
			}
			logging.LogPricing(logger, string(c.Type), "analytic", price, time.Since(start))

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"contract": c.Type,
					"engine":   "analytic",
					"price":    price,
				})
			}

			color.Cyan("Analytic Valuation")
			table := NewTable(output, "Field", "Value")
			table.AddRow("Contract", string(c.Type))
			table.AddRow("Spot", FormatPrice(m.Spot))
			if c.Type.NeedsStrike() {
				table.AddRow("Strike", FormatPrice(c.Strike))
			}
			if c.Type == models.ContractZeroCouponBond {
				table.AddRow("Face", FormatPrice(c.Face))
			}
			table.AddRow("Expiry", FormatYears(c.Expiry-m.Time))
			table.AddRow("Vol", FormatVol(m.Vol))
			table.AddRow("Price", output.BoldText(FormatPrice(price)))
			table.Render()
			return nil
		},
	}

	addMarketFlags(cmd, app)
	addContractFlags(cmd)
	return cmd
}
