// Package cli provides the command-line interface for the pricer.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"derivative-pricer/internal/config"
	"derivative-pricer/internal/logging"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2025-08-25"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// Output builds an Output honoring the configured color setting.
func (a *App) Output(cmd *cobra.Command) *Output {
	o := NewOutput(cmd)
	if !a.Config.Output.ColorEnabled {
		o.SetColor(false)
	}
	if a.Config.Output.Format == "json" {
		o.jsonMode = true
	}
	return o
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "pricer",
		Short: "Black-Scholes derivative pricer",
		Long: `Pricer values equity derivatives under Black-Scholes dynamics.

It prices European and digital options, forwards and zero-coupon bonds in
closed form, runs reproducible Monte-Carlo simulations for those and for
Asian options, computes greeks analytically or by bump-and-revalue, and
solves implied volatility.

Use 'pricer help <command>' for more information about a command.
Use 'pricer examples' to see common workflows.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), app.Logger))
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/derivative-pricer)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addPricingCommands(rootCmd, app)
	addSimulationCommands(rootCmd, app)
	addGreeksCommands(rootCmd, app)
	addHelpCommands(rootCmd)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func addPricingCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newImpliedVolCmd(app))
}

func addSimulationCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newSimulateCmd(app))
}

func addGreeksCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newGreeksCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Derivative Pricer v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.Output(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a commented config template",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.Output(cmd)
			configDir, _ := cmd.Flags().GetString("config")
			path, err := config.WriteTemplate(configDir)
			if err != nil {
				output.Error("Could not write template: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]string{"path": path})
			}
			output.Success("Template written to %s", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.Output(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]bool{"valid": true})
			}
			output.Success("Configuration is valid")
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Market Defaults")
	if cfg.Market.Spot > 0 {
		output.Printf("  Spot:       %s\n", FormatPrice(cfg.Market.Spot))
	} else {
		output.Printf("  Spot:       (flag required)\n")
	}
	output.Printf("  Rate:       %s\n", FormatRate(cfg.Market.Rate))
	output.Printf("  Dividend:   %s\n", FormatRate(cfg.Market.Dividend))
	output.Printf("  Vol:        %s\n", FormatVol(cfg.Market.Vol))
	output.Println()

	output.Bold("Simulation")
	output.Printf("  Paths:      %s\n", FormatCount(int64(cfg.Simulation.Paths)))
	output.Printf("  Steps:      %d\n", cfg.Simulation.Steps)
	output.Printf("  Seed:       %d\n", cfg.Simulation.Seed)
	output.Printf("  Antithetic: %v\n", cfg.Simulation.Antithetic)
	output.Printf("  Confidence: %s\n", FormatConfidence(cfg.Simulation.Confidence))
	output.Printf("  Workers:    %d\n", cfg.Simulation.Workers)
	output.Println()

	output.Bold("Output")
	output.Printf("  Color:      %v\n", cfg.Output.ColorEnabled)
	output.Printf("  Precision:  %d\n", cfg.Output.Precision)
	output.Printf("  Format:     %s\n", cfg.Output.Format)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:      %s\n", cfg.Logging.Level)
	output.Printf("  Console:    %v\n", cfg.Logging.Console)
	output.Printf("  File:       %v\n", cfg.Logging.File)
}
