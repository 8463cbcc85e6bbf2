package cli

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"derivative-pricer/internal/config"
	pricererrors "derivative-pricer/internal/errors"
)

// runCommand executes the root command with a fresh command tree and
// returns everything written to its output stream.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Output.ColorEnabled = false

	root := NewRootCmd(cfg, zerolog.Nop())
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCommand(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v\noutput:\n%s", args, err, out)
	}
	return out
}

func decodeJSON(t *testing.T, out string, into interface{}) {
	t.Helper()
	if err := json.Unmarshal([]byte(out), into); err != nil {
		t.Fatalf("invalid JSON output: %v\noutput:\n%s", err, out)
	}
}

func TestPriceCommand(t *testing.T) {
	out := mustRun(t, "price", "--type", "call", "--spot", "100", "--strike", "100", "--expiry", "1")

	if !strings.Contains(out, "european-call") {
		t.Errorf("output missing contract type:\n%s", out)
	}
	// Known value for S=100, K=100, r=5%, sigma=20%, tau=1.
	if !strings.Contains(out, "10.4506") {
		t.Errorf("output missing expected price:\n%s", out)
	}
}

func TestPriceCommandJSON(t *testing.T) {
	out := mustRun(t, "price", "--type", "call", "--spot", "100", "--strike", "100", "--expiry", "1", "--json")

	var got struct {
		Contract string  `json:"contract"`
		Engine   string  `json:"engine"`
		Price    float64 `json:"price"`
	}
	decodeJSON(t, out, &got)

	if got.Contract != "european-call" {
		t.Errorf("contract = %s, want european-call", got.Contract)
	}
	if got.Engine != "analytic" {
		t.Errorf("engine = %s, want analytic", got.Engine)
	}
	if math.Abs(got.Price-10.450584) > 1e-4 {
		t.Errorf("price = %v, want 10.450584", got.Price)
	}
}

func TestPriceCommandBond(t *testing.T) {
	out := mustRun(t, "price", "--type", "bond", "--spot", "100", "--expiry", "1", "--face", "1000", "--json")

	var got struct {
		Price float64 `json:"price"`
	}
	decodeJSON(t, out, &got)

	want := 1000 * math.Exp(-0.05)
	if math.Abs(got.Price-want) > 1e-9 {
		t.Errorf("price = %v, want %v", got.Price, want)
	}
}

func TestPriceCommandErrors(t *testing.T) {
	t.Run("missing spot", func(t *testing.T) {
		out, err := runCommand(t, "price", "--type", "call", "--strike", "100", "--expiry", "1")
		if err == nil {
			t.Fatalf("expected error, got output:\n%s", out)
		}
		if !strings.Contains(err.Error(), "--spot is required") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := runCommand(t, "price", "--type", "swaption", "--spot", "100", "--strike", "100", "--expiry", "1")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "unrecognized") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing strike", func(t *testing.T) {
		_, err := runCommand(t, "price", "--type", "call", "--spot", "100", "--expiry", "1")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "--strike is required") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("asian has no closed form", func(t *testing.T) {
		out, err := runCommand(t, "price", "--type", "asian-call", "--spot", "100", "--strike", "100", "--expiry", "1")
		if !pricererrors.Is(err, pricererrors.ErrNoClosedForm) {
			t.Fatalf("expected ErrNoClosedForm, got %v", err)
		}
		if !strings.Contains(out, "simulate") {
			t.Errorf("expected pointer to simulate command:\n%s", out)
		}
	})
}

func TestSimulateCommandJSON(t *testing.T) {
	out := mustRun(t, "simulate", "--type", "call", "--spot", "100", "--strike", "100", "--expiry", "1",
		"--paths", "20000", "--seed", "42", "--json")

	var got struct {
		Contract string  `json:"contract"`
		Engine   string  `json:"engine"`
		Price    float64 `json:"price"`
		StdError float64 `json:"std_error"`
		Paths    int64   `json:"paths"`
		Seed     uint64  `json:"seed"`
		Interval struct {
			Lower float64
			Upper float64
		} `json:"interval"`
	}
	decodeJSON(t, out, &got)

	if got.Engine != "monte-carlo" {
		t.Errorf("engine = %s, want monte-carlo", got.Engine)
	}
	if got.Paths != 20000 {
		t.Errorf("paths = %d, want 20000", got.Paths)
	}
	if got.Seed != 42 {
		t.Errorf("seed = %d, want 42", got.Seed)
	}
	if got.StdError <= 0 {
		t.Errorf("std_error = %v, want positive", got.StdError)
	}
	if math.Abs(got.Price-10.450584) > 1.0 {
		t.Errorf("price = %v, too far from 10.450584", got.Price)
	}
	if got.Interval.Lower >= got.Interval.Upper {
		t.Errorf("degenerate interval [%v, %v]", got.Interval.Lower, got.Interval.Upper)
	}
}

func TestSimulateReproducibleAcrossWorkers(t *testing.T) {
	price := func(workers string) float64 {
		out := mustRun(t, "simulate", "--type", "call", "--spot", "100", "--strike", "100", "--expiry", "1",
			"--paths", "20000", "--seed", "7", "--workers", workers, "--json")
		var got struct {
			Price float64 `json:"price"`
		}
		decodeJSON(t, out, &got)
		return got.Price
	}

	if a, b := price("1"), price("4"); a != b {
		t.Errorf("worker count changed the estimate: %v vs %v", a, b)
	}
}

func TestSimulateToleranceStopsAtFirstBatch(t *testing.T) {
	// A 0.5 tolerance is far above the standard error of the first batch.
	out := mustRun(t, "simulate", "--type", "call", "--spot", "100", "--strike", "100", "--expiry", "1",
		"--paths", "20000", "--seed", "3", "--tolerance", "0.5", "--json")

	var got struct {
		Paths    int64   `json:"paths"`
		StdError float64 `json:"std_error"`
	}
	decodeJSON(t, out, &got)

	if got.Paths != 20000 {
		t.Errorf("paths = %d, want 20000", got.Paths)
	}
	if got.StdError >= 0.5 {
		t.Errorf("std_error = %v, want below tolerance", got.StdError)
	}
}

func TestSimulateRejectsForward(t *testing.T) {
	_, err := runCommand(t, "simulate", "--type", "forward", "--spot", "100", "--expiry", "1",
		"--paths", "1000", "--seed", "1")
	if !pricererrors.Is(err, pricererrors.ErrNotSimulatable) {
		t.Fatalf("expected ErrNotSimulatable, got %v", err)
	}
}

func TestGreeksCommandJSON(t *testing.T) {
	out := mustRun(t, "greeks", "--type", "call", "--spot", "100", "--strike", "100", "--expiry", "1", "--json")

	var got struct {
		Engine string             `json:"engine"`
		Greeks map[string]float64 `json:"greeks"`
	}
	decodeJSON(t, out, &got)

	if got.Engine != "analytic" {
		t.Errorf("engine = %s, want analytic", got.Engine)
	}
	if len(got.Greeks) != 5 {
		t.Errorf("greeks = %v, want all five", got.Greeks)
	}
	if delta := got.Greeks["delta"]; math.Abs(delta-0.636831) > 1e-4 {
		t.Errorf("delta = %v, want 0.636831", delta)
	}
	if vega := got.Greeks["vega"]; math.Abs(vega-37.524035) > 1e-3 {
		t.Errorf("vega = %v, want 37.524035", vega)
	}
}

func TestGreeksCommandMonteCarlo(t *testing.T) {
	out := mustRun(t, "greeks", "--type", "asian-call", "--spot", "100", "--strike", "100", "--expiry", "1",
		"--engine", "monte-carlo", "--paths", "20000", "--steps", "12", "--seed", "5", "--json")

	var got struct {
		Engine string             `json:"engine"`
		Greeks map[string]float64 `json:"greeks"`
	}
	decodeJSON(t, out, &got)

	if got.Engine != "monte-carlo" {
		t.Errorf("engine = %s, want monte-carlo", got.Engine)
	}
	if delta := got.Greeks["delta"]; delta <= 0.2 || delta >= 0.9 {
		t.Errorf("asian call delta = %v, want in (0.2, 0.9)", delta)
	}
}

func TestGreeksRejectsUnknownEngine(t *testing.T) {
	_, err := runCommand(t, "greeks", "--type", "call", "--spot", "100", "--strike", "100", "--expiry", "1",
		"--engine", "quantum")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestImpliedVolCommand(t *testing.T) {
	out := mustRun(t, "impliedvol", "--type", "call", "--spot", "100", "--strike", "100", "--expiry", "1",
		"--price", "10.450584", "--json")

	var got struct {
		ImpliedVol float64 `json:"implied_vol"`
	}
	decodeJSON(t, out, &got)

	if math.Abs(got.ImpliedVol-0.2) > 1e-6 {
		t.Errorf("implied_vol = %v, want 0.2", got.ImpliedVol)
	}
}

func TestImpliedVolRejectsArbitragePrice(t *testing.T) {
	_, err := runCommand(t, "impliedvol", "--type", "call", "--spot", "100", "--strike", "100", "--expiry", "1",
		"--price", "150")
	if !pricererrors.Is(err, pricererrors.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out := mustRun(t, "version")
	if !strings.Contains(out, Version) {
		t.Errorf("output missing version:\n%s", out)
	}

	out = mustRun(t, "version", "--json")
	var got struct {
		Version string `json:"version"`
	}
	decodeJSON(t, out, &got)
	if got.Version != Version {
		t.Errorf("version = %s, want %s", got.Version, Version)
	}
}

func TestConfigShowCommand(t *testing.T) {
	out := mustRun(t, "config", "show")

	if !strings.Contains(out, "Market Defaults") {
		t.Errorf("output missing market section:\n%s", out)
	}
	if !strings.Contains(out, "100,000") {
		t.Errorf("output missing default path count:\n%s", out)
	}
	if !strings.Contains(out, "95%") {
		t.Errorf("output missing confidence level:\n%s", out)
	}
}

func TestConfigValidateCommand(t *testing.T) {
	out := mustRun(t, "config", "validate")
	if !strings.Contains(out, "valid") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestHelpCommands(t *testing.T) {
	for _, name := range []string{"commands", "examples", "quickstart"} {
		t.Run(name, func(t *testing.T) {
			out := mustRun(t, name)
			if out == "" {
				t.Error("expected output")
			}
		})
	}
}
