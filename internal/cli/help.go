package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// addHelpCommands adds help and documentation commands.
func addHelpCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newCommandsCmd())
	rootCmd.AddCommand(newExamplesCmd())
	rootCmd.AddCommand(newQuickstartCmd())
}

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List all commands by category",
		Long:  "Display all available commands organized by category.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Bold("Derivative Pricer Commands")
			output.Println()

			categories := []struct {
				name     string
				commands []struct {
					cmd  string
					desc string
				}
			}{
				{
					name: "Pricing",
					commands: []struct {
						cmd  string
						desc string
					}{
						{"price", "Closed-form valuation"},
						{"simulate", "Monte-Carlo valuation"},
						{"impliedvol", "Back out volatility from a price"},
					},
				},
				{
					name: "Sensitivities",
					commands: []struct {
						cmd  string
						desc string
					}{
						{"greeks", "Delta, gamma, vega, theta, rho"},
						{"greeks --engine monte-carlo", "Bump-and-revalue greeks"},
					},
				},
				{
					name: "Configuration",
					commands: []struct {
						cmd  string
						desc string
					}{
						{"config show", "Current settings"},
						{"config path", "Config file location"},
						{"config init", "Write a starter config"},
						{"config validate", "Check the config file"},
					},
				},
				{
					name: "Help",
					commands: []struct {
						cmd  string
						desc string
					}{
						{"help <command>", "Detailed help"},
						{"commands", "List all commands"},
						{"examples", "Common workflows"},
						{"quickstart", "New user guide"},
						{"version", "Version information"},
					},
				},
			}

			for _, cat := range categories {
				output.Bold(cat.name)
				for _, c := range cat.commands {
					output.Printf("  %-30s %s\n", output.Cyan(c.cmd), c.desc)
				}
				output.Println()
			}

			output.Dim("Use 'pricer help <command>' for detailed help on any command")

			return nil
		},
	}
}

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show common workflow examples",
		Long:  "Display examples of common pricing workflows.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Bold("Common Workflow Examples")
			output.Println()

			examples := []struct {
				title    string
				commands []string
			}{
				{
					title: "Price a European Option",
					commands: []string{
						"pricer price --type call --spot 100 --strike 105 --expiry 0.5   # Closed form",
						"pricer price --type put --spot 100 --strike 95 --expiry 1 --vol 0.25",
						"pricer price --type digital-call --spot 100 --strike 110 --expiry 1",
					},
				},
				{
					title: "Cross-Check with Monte-Carlo",
					commands: []string{
						"pricer simulate --type call --spot 100 --strike 105 --expiry 0.5 --paths 1000000",
						"pricer simulate --type call --spot 100 --strike 105 --expiry 0.5 --antithetic",
						"pricer simulate --type asian-call --spot 100 --strike 100 --expiry 1 --steps 12",
					},
				},
				{
					title: "Target a Standard Error",
					commands: []string{
						"pricer simulate --type call --spot 100 --strike 100 --expiry 1 --tolerance 0.01",
						"pricer simulate --type put --spot 100 --strike 90 --expiry 2 --tolerance 0.005 --max-paths 4000000",
					},
				},
				{
					title: "Sensitivities",
					commands: []string{
						"pricer greeks --type call --spot 100 --strike 100 --expiry 1    # Closed form",
						"pricer greeks --type digital-call --spot 100 --strike 100 --expiry 1",
						"pricer greeks --type asian-call --spot 100 --strike 100 --expiry 1 --engine monte-carlo --steps 12",
					},
				},
				{
					title: "Implied Volatility",
					commands: []string{
						"pricer impliedvol --type call --spot 100 --strike 105 --expiry 0.5 --price 4.13",
						"pricer impliedvol --type put --spot 100 --strike 95 --expiry 1 --price 2.70",
					},
				},
				{
					title: "Reproducible Runs",
					commands: []string{
						"pricer simulate --type call --spot 100 --strike 100 --expiry 1 --seed 42",
						"pricer simulate --type call --spot 100 --strike 100 --expiry 1 --seed 42 --workers 1   # Same answer",
						"pricer simulate --type call --spot 100 --strike 100 --expiry 1 --seed 42 --json",
					},
				},
				{
					title: "Configuration",
					commands: []string{
						"pricer config init               # Write a starter config",
						"pricer config show               # Current settings",
						"pricer price --type call --strike 105 --expiry 0.5   # Spot from config",
					},
				},
			}

			for _, ex := range examples {
				output.Bold(ex.title)
				for _, c := range ex.commands {
					parts := strings.SplitN(c, "#", 2)
					if len(parts) == 2 {
						output.Printf("  %s %s\n", output.Cyan(strings.TrimSpace(parts[0])), output.DimText(strings.TrimSpace(parts[1])))
					} else {
						output.Printf("  %s\n", output.Cyan(c))
					}
				}
				output.Println()
			}

			return nil
		},
	}
}

func newQuickstartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quickstart",
		Short: "New user guide",
		Long:  "Step-by-step guide for new users.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Bold("Derivative Pricer - Quick Start Guide")
			output.Println()

			steps := []struct {
				step  int
				title string
				desc  string
				cmd   string
			}{
				{
					step:  1,
					title: "Write a Starter Config",
					desc:  "Optional. Sets market defaults so you can skip flags later.",
					cmd:   "pricer config init",
				},
				{
					step:  2,
					title: "Price an Option",
					desc:  "Closed-form Black-Scholes valuation.",
					cmd:   "pricer price --type call --spot 100 --strike 105 --expiry 0.5",
				},
				{
					step:  3,
					title: "Cross-Check with Monte-Carlo",
					desc:  "Simulated price with a standard error and confidence interval.",
					cmd:   "pricer simulate --type call --spot 100 --strike 105 --expiry 0.5",
				},
				{
					step:  4,
					title: "Compute Greeks",
					desc:  "Sensitivities to spot, volatility, time and rate.",
					cmd:   "pricer greeks --type call --spot 100 --strike 105 --expiry 0.5",
				},
				{
					step:  5,
					title: "Back Out Implied Volatility",
					desc:  "Find the volatility that reproduces a quoted premium.",
					cmd:   "pricer impliedvol --type call --spot 100 --strike 105 --expiry 0.5 --price 4.13",
				},
			}

			for _, s := range steps {
				output.Printf("%s Step %d: %s\n", output.Cyan("→"), s.step, output.BoldText(s.title))
				output.Printf("  %s\n", s.desc)
				output.Printf("  %s\n\n", output.DimText(s.cmd))
			}

			output.Bold("Configuration")
			output.Println()
			output.Printf("  %s - Market defaults, simulation settings, output format\n", output.Cyan("config.toml"))
			output.Println()

			output.Bold("Getting Help")
			output.Println()
			output.Printf("  %s - List all commands\n", output.Cyan("pricer commands"))
			output.Printf("  %s - Common workflows\n", output.Cyan("pricer examples"))
			output.Printf("  %s - Help for any command\n", output.Cyan("pricer help <command>"))
			output.Println()

			output.Bold("Notes")
			output.Println()
			output.Printf("  %s Times are year fractions: 0.5 is six months\n", output.Yellow("⚠"))
			output.Printf("  %s Rates and vols are decimals: 0.05 is 5%%\n", output.Yellow("⚠"))
			output.Printf("  %s Seed 0 draws a fresh seed each run; set --seed for reproducibility\n", output.Yellow("⚠"))

			return nil
		},
	}
}
