package cli

import (
	"math"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"derivative-pricer/internal/logging"
	"derivative-pricer/internal/models"
	"derivative-pricer/internal/pricing/analytic"
	"derivative-pricer/internal/pricing/montecarlo"
)

func newSimulateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Price a contract by Monte-Carlo simulation",
		Long: `Price a contract by simulating geometric Brownian motion paths.

Each path draws from its own seeded stream, so a fixed seed reproduces the
estimate exactly for any worker count. With --tolerance the run repeats
batches until the pooled standard error reaches the target or --max-paths
is exhausted.`,
		Example: `  pricer simulate --type european-call --spot 100 --strike 100 --expiry 1 --seed 42
  pricer simulate --type asian-put --spot 100 --strike 95 --expiry 1 --steps 12
  pricer simulate --type european-put --spot 100 --strike 110 --expiry 2 --antithetic
  pricer simulate --type digital-call --spot 100 --strike 105 --expiry 1 --tolerance 0.001 --max-paths 2000000`,
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
			cfg, err := simulationFromFlags(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			tolerance, _ := cmd.Flags().GetFloat64("tolerance")
			maxPaths, _ := cmd.Flags().GetInt("max-paths")

			est, err := montecarlo.NewEstimator(cfg)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			start := time.Now()
			var res models.PricingResult
			if cmd.Flags().Changed("tolerance") {
				res, err = est.PriceToPrecision(cmd.Context(), m, c, tolerance, maxPaths)
			} else {
				res, err = est.Price(cmd.Context(), m, c)
			}
			if err != nil {
				output.Error("Simulation failed: %v", err)
				return err
			}
			elapsed := time.Since(start)
			logging.LogSimulation(logger, res.Paths, cfg.Steps, est.Seed(), res.StdError, elapsed)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"contract":   c.Type,
					"engine":     "monte-carlo",
					"price":      res.Price,
					"std_error":  res.StdError,
					"confidence": res.Confidence,
					"interval":   res.Interval,
					"paths":      res.Paths,
					"steps":      cfg.Steps,
					"seed":       est.Seed(),
					"antithetic": cfg.Antithetic,
				})
			}

			color.Cyan("Monte-Carlo Valuation")
			table := NewTable(output, "Field", "Value")
			table.AddRow("Contract", string(c.Type))
			table.AddRow("Price", output.BoldText(FormatPrice(res.Price)))
			table.AddRow("Std Error", FormatPrice(res.StdError))
			table.AddRow("Interval", FormatInterval(res.Interval, res.Confidence))
			table.AddRow("Paths", FormatCount(res.Paths))
			table.AddRow("Steps", FormatCount(int64(cfg.Steps)))
			table.AddRow("Seed", FormatSeed(est.Seed()))
			table.AddRow("Elapsed", FormatDuration(elapsed))
			table.Render()

			// Cross-check against the closed form when one exists.
			if c.Type.HasClosedForm() {
				if ref, refErr := analytic.Price(m, c); refErr == nil {
					diff := res.Price - ref
					line := output.DimText("Closed form " + FormatPrice(ref))
					if res.StdError > 0 && math.Abs(diff) > 3*res.StdError {
						line += " " + output.Yellow("(difference exceeds 3 standard errors)")
					}
					output.Println(line)
				}
			}
			return nil
		},
	}

	addMarketFlags(cmd, app)
	addContractFlags(cmd)
	addSimulationFlags(cmd, app)
	cmd.Flags().Float64("tolerance", 0, "target standard error; repeats batches until reached")
	cmd.Flags().Int("max-paths", 1_000_000, "path budget for --tolerance runs")
	return cmd
}
