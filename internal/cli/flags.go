package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"derivative-pricer/internal/models"
)

// addMarketFlags registers the market parameter flags. Config values act as
// defaults; flags override them.
func addMarketFlags(cmd *cobra.Command, app *App) {
	cmd.Flags().Float64("spot", app.Config.Market.Spot, "spot price of the underlying")
	cmd.Flags().Float64("rate", app.Config.Market.Rate, "risk-free rate, continuously compounded")
	cmd.Flags().Float64("dividend", app.Config.Market.Dividend, "continuous dividend yield")
	cmd.Flags().Float64("vol", app.Config.Market.Vol, "annualized volatility")
	cmd.Flags().Float64("valuation-time", 0, "valuation time in years")
}

// marketFromFlags assembles MarketParameters from flags and config defaults.
func marketFromFlags(cmd *cobra.Command) (models.MarketParameters, error) {
	spot, _ := cmd.Flags().GetFloat64("spot")
	rate, _ := cmd.Flags().GetFloat64("rate")
	dividend, _ := cmd.Flags().GetFloat64("dividend")
	vol, _ := cmd.Flags().GetFloat64("vol")
	valuationTime, _ := cmd.Flags().GetFloat64("valuation-time")

	if spot == 0 && !cmd.Flags().Changed("spot") {
		return models.MarketParameters{}, fmt.Errorf("--spot is required (or set market.spot in the config)")
	}

	m := models.MarketParameters{
		Spot:     spot,
		Rate:     rate,
		Dividend: dividend,
		Vol:      vol,
		Time:     valuationTime,
	}
	return m, m.Validate()
}

// addContractFlags registers the contract flags.
func addContractFlags(cmd *cobra.Command) {
	cmd.Flags().String("type", "", "contract type: european-call, european-put, digital-call, digital-put, asian-call, asian-put, forward, zero-coupon-bond")
	cmd.Flags().Float64("strike", 0, "strike price")
	cmd.Flags().Float64("expiry", 0, "expiry in years")
	cmd.Flags().Float64("face", 1, "face value for zero-coupon bonds")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("expiry")
}

// contractFromFlags assembles a Contract from flags.
func contractFromFlags(cmd *cobra.Command) (models.Contract, error) {
	typeName, _ := cmd.Flags().GetString("type")
	strike, _ := cmd.Flags().GetFloat64("strike")
	expiry, _ := cmd.Flags().GetFloat64("expiry")
	face, _ := cmd.Flags().GetFloat64("face")

	contractType, err := models.ParseContractType(typeName)
	if err != nil {
		return models.Contract{}, err
	}
	if contractType.NeedsStrike() && !cmd.Flags().Changed("strike") {
		return models.Contract{}, fmt.Errorf("--strike is required for %s contracts", contractType)
	}

	c := models.Contract{
		Type:   contractType,
		Strike: strike,
		Expiry: expiry,
	}
	if contractType == models.ContractZeroCouponBond {
		c.Face = face
	}
	return c, c.Validate()
}

// addSimulationFlags registers the Monte-Carlo flags with config defaults.
func addSimulationFlags(cmd *cobra.Command, app *App) {
	sim := app.Config.Simulation
	cmd.Flags().Int("paths", sim.Paths, "number of Monte-Carlo paths")
	cmd.Flags().Int("steps", sim.Steps, "time steps per path")
	cmd.Flags().Uint64("seed", sim.Seed, "master seed; 0 draws one from the wall clock")
	cmd.Flags().Bool("antithetic", sim.Antithetic, "pair each draw with its negation")
	cmd.Flags().Float64("confidence", sim.Confidence, "confidence level for the reported interval")
	cmd.Flags().Int("workers", sim.Workers, "worker goroutines; 0 uses every CPU")
}

// simulationFromFlags assembles a SimulationConfig from flags.
func simulationFromFlags(cmd *cobra.Command) (models.SimulationConfig, error) {
	paths, _ := cmd.Flags().GetInt("paths")
	steps, _ := cmd.Flags().GetInt("steps")
	seed, _ := cmd.Flags().GetUint64("seed")
	antithetic, _ := cmd.Flags().GetBool("antithetic")
	confidence, _ := cmd.Flags().GetFloat64("confidence")
	workers, _ := cmd.Flags().GetInt("workers")

	cfg := models.SimulationConfig{
		Paths:      paths,
		Steps:      steps,
		Seed:       seed,
		Antithetic: antithetic,
		Confidence: confidence,
		Workers:    workers,
	}
	return cfg, cfg.Validate()
}
