package cli

import (
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"derivative-pricer/internal/logging"
	"derivative-pricer/internal/models"
	"derivative-pricer/internal/pricing/greeks"
)

func newGreeksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greeks",
		Short: "Compute price sensitivities",
		Long: `Compute delta, gamma, vega, theta and rho for a contract.

The analytic engine differentiates the closed forms and bumps the
closed-form price for digitals. The monte-carlo engine bumps the
estimator under common random numbers; it is the only engine for
path-dependent contracts.`,
		Example: `  pricer greeks --type european-call --spot 100 --strike 100 --expiry 1
  pricer greeks --type digital-call --spot 100 --strike 105 --expiry 0.5
  pricer greeks --type asian-call --spot 100 --strike 100 --expiry 1 --engine monte-carlo --steps 12 --seed 7`,
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

			engineName, _ := cmd.Flags().GetString("engine")
			engine, err := greeks.ParseEngine(engineName)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			cfg, err := simulationFromFlags(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			calc, err := greeks.New(engine, cfg)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			start := time.Now()
			set, err := calc.Compute(cmd.Context(), m, c)
			if err != nil {
				output.Error("Greeks failed: %v", err)
				return err
			}
			elapsed := time.Since(start)
			logging.LogGreeks(logger, string(c.Type), string(engine), len(set), elapsed)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"contract": c.Type,
					"engine":   engine,
					"greeks":   set,
				})
			}

			color.Cyan("Sensitivities (%s)", engine)
			table := NewTable(output, "Greek", "Value")
			for _, name := range models.AllGreeks() {
				value, ok := set[name]
				if !ok {
					continue
				}
				table.AddRow(string(name), output.FormatSigned(value))
			}
			table.Render()
			return nil
		},
	}

	addMarketFlags(cmd, app)
	addContractFlags(cmd)
	addSimulationFlags(cmd, app)
	cmd.Flags().String("engine", "analytic", "pricing engine: analytic or monte-carlo")
	return cmd
}
