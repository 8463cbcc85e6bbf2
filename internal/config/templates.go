package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Derivative Pricer Configuration

[market]
# Default spot price; 0 keeps the --spot flag required
spot = 0.0
# Risk-free rate, continuously compounded, annualized
rate = 0.05
# Continuous dividend yield
dividend = 0.0
# Volatility, annualized
vol = 0.2

[simulation]
# Monte-Carlo paths per run
paths = 100000
# Time steps per path
steps = 1
# Master seed; 0 draws one from the wall clock
seed = 0
# Pair each draw with its negation
antithetic = false
# Confidence level for the reported interval
confidence = 0.95
# Worker goroutines; 0 uses every CPU
workers = 0

[output]
# Enable colored output
color_enabled = true
# Decimal places for printed prices
precision = 4
# Output format: "table" or "json"
format = "table"

[logging]
# Log level: debug, info, warn, error
level = "info"
# Log to the terminal
console = true
# Log to a rotated file
file = false
# Log file path; empty uses the default under the config directory
file_path = ""
`

// WriteTemplate writes a commented default config.toml and returns its
// path. Refuses to overwrite an existing file.
func WriteTemplate(configDir string) (string, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return "", fmt.Errorf("writing config template: %w", err)
	}
	return path, nil
}
