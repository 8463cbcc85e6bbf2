package montecarlo

import (
	"context"
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"

	"derivative-pricer/internal/errors"
	"derivative-pricer/internal/models"
)

// blockSize is the number of path indices in one work unit. Blocks are
// merged in index order, so the estimate is identical for any worker count.
const blockSize = 4096

// ctxCheckEvery bounds how many paths a block runs between cancellation
// checks.
const ctxCheckEvery = 1024

// Estimator prices contracts by Monte-Carlo simulation with per-path seeded
// streams, optional antithetic pairing, and parallel block execution.
type Estimator struct {
	cfg     models.SimulationConfig
	streams StreamFactory
}

// NewEstimator builds an estimator with PCG streams derived from the
// configured master seed. A zero seed is replaced by a wall-clock seed,
// fixed for the estimator's lifetime so repeated calls stay comparable.
func NewEstimator(cfg models.SimulationConfig) (*Estimator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = RandomSeed()
	}
	return &Estimator{cfg: cfg, streams: PCGStreams(cfg.Seed)}, nil
}

// NewEstimatorWithStreams builds an estimator drawing from caller-supplied
// streams instead of the seeded PCG default.
func NewEstimatorWithStreams(cfg models.SimulationConfig, streams StreamFactory) (*Estimator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if streams == nil {
		return nil, errors.NewValidationError("streams", nil, "must not be nil")
	}
	return &Estimator{cfg: cfg, streams: streams}, nil
}

// Seed returns the master seed in effect for the default streams.
func (e *Estimator) Seed() uint64 {
	return e.cfg.Seed
}

// Config returns the simulation configuration in effect.
func (e *Estimator) Config() models.SimulationConfig {
	return e.cfg
}

// Price estimates the discounted expected payoff from the configured number
// of paths. Identical configuration and seed give identical results for any
// worker count.
func (e *Estimator) Price(ctx context.Context, m models.MarketParameters, c models.Contract) (models.PricingResult, error) {
	spec, err := e.prepare(m, c)
	if err != nil {
		return models.PricingResult{}, err
	}
	acc, err := e.runBatch(ctx, spec, 0)
	if err != nil {
		return models.PricingResult{}, err
	}
	return e.result(acc)
}

// PriceToPrecision repeats batches of the configured path count until the
// pooled standard error drops to tolerance or maxPaths samples have been
// accumulated, whichever comes first. Batches continue the per-path stream
// index space, so pooled runs are as reproducible as single ones. The
// tolerance is a target, not a guarantee: the result reports the standard
// error actually reached.
func (e *Estimator) PriceToPrecision(ctx context.Context, m models.MarketParameters, c models.Contract, tolerance float64, maxPaths int) (models.PricingResult, error) {
	if !finite(tolerance) || tolerance <= 0 {
		return models.PricingResult{}, errors.NewValidationError("tolerance", tolerance, "must be positive and finite")
	}
	if maxPaths < e.cfg.Paths {
		return models.PricingResult{}, errors.NewValidationError("maxPaths", maxPaths, "must cover at least one batch")
	}
	spec, err := e.prepare(m, c)
	if err != nil {
		return models.PricingResult{}, err
	}

	var pooled Accumulator
	for offset := int64(0); pooled.Count() < int64(maxPaths); offset += spec.units {
		batch, err := e.runBatch(ctx, spec, offset)
		if err != nil {
			return models.PricingResult{}, err
		}
		pooled.Merge(batch)
		if pooled.Count() >= 2 && pooled.StdError() <= tolerance {
			break
		}
	}
	return e.result(pooled)
}

// runSpec carries the per-run state shared by all workers.
type runSpec struct {
	sim      *Simulator
	contract models.Contract
	discount float64
	units    int64 // stream indices per batch; pairs when antithetic
	workers  int
}

func (e *Estimator) prepare(m models.MarketParameters, c models.Contract) (runSpec, error) {
	if err := m.Validate(); err != nil {
		return runSpec{}, err
	}
	if err := c.Validate(); err != nil {
		return runSpec{}, err
	}
	tau, err := models.TimeToExpiry(m, c)
	if err != nil {
		return runSpec{}, err
	}
	switch c.Type {
	case models.ContractForward, models.ContractZeroCouponBond:
		return runSpec{}, errors.Wrapf(errors.ErrNotSimulatable, "%s", c.Type)
	}
	discount := math.Exp(-m.Rate * tau)
	if !finite(discount) {
		return runSpec{}, errors.NewNumericalError("discount", "non-finite discount factor")
	}

	units := int64(e.cfg.Paths)
	if e.cfg.Antithetic {
		units = (units + 1) / 2
	}
	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return runSpec{
		sim:      NewSimulator(m, tau, e.cfg.Steps),
		contract: c,
		discount: discount,
		units:    units,
		workers:  workers,
	}, nil
}

// runBatch simulates spec.units stream indices starting at offset. Blocks
// are dealt to workers through a channel and merged in index order after
// the last worker finishes.
func (e *Estimator) runBatch(ctx context.Context, spec runSpec, offset int64) (Accumulator, error) {
	blocks := (spec.units + blockSize - 1) / blockSize
	accs := make([]Accumulator, blocks)
	errs := make([]error, blocks)

	workers := spec.workers
	if int64(workers) > blocks {
		workers = int(blocks)
	}

	jobs := make(chan int64)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range jobs {
				lo := offset + b*blockSize
				hi := min(lo+blockSize, offset+spec.units)
				accs[b], errs[b] = e.runBlock(ctx, spec, lo, hi)
			}
		}()
	}
	for b := int64(0); b < blocks; b++ {
		jobs <- b
	}
	close(jobs)
	wg.Wait()

	var merged Accumulator
	for b := range accs {
		if errs[b] != nil {
			return Accumulator{}, errs[b]
		}
		merged.Merge(accs[b])
	}
	return merged, nil
}

func (e *Estimator) runBlock(ctx context.Context, spec runSpec, lo, hi int64) (Accumulator, error) {
	var acc Accumulator
	scratch := make([]float64, 0, spec.sim.Steps())
	for i := lo; i < hi; i++ {
		if (i-lo)%ctxCheckEvery == 0 {
			select {
			case <-ctx.Done():
				return acc, ctx.Err()
			default:
			}
		}
		src := e.streams(uint64(i))
		if e.cfg.Antithetic {
			rec := newRecorded(src, scratch)
			first, err := e.evaluate(spec, rec)
			if err != nil {
				return acc, err
			}
			second, err := e.evaluate(spec, rec.mirror())
			if err != nil {
				return acc, err
			}
			acc.Add(spec.discount * first)
			acc.Add(spec.discount * second)
			scratch = rec.draws
		} else {
			payoff, err := e.evaluate(spec, src)
			if err != nil {
				return acc, err
			}
			acc.Add(spec.discount * payoff)
		}
	}
	return acc, nil
}

func (e *Estimator) evaluate(spec runSpec, src NormalSource) (float64, error) {
	if spec.contract.Type.PathDependent() {
		return PathPayoff(spec.contract, spec.sim.Path(src).Values())
	}
	return Payoff(spec.contract, spec.sim.Terminal(src))
}

func (e *Estimator) result(acc Accumulator) (models.PricingResult, error) {
	price := acc.Mean()
	stderr := acc.StdError()
	if !finite(price) || !finite(stderr) {
		return models.PricingResult{}, errors.NewNumericalError("estimate", "non-finite mean or standard error")
	}
	z := distuv.UnitNormal.Quantile(0.5 + e.cfg.Confidence/2)
	return models.PricingResult{
		Price:      price,
		StdError:   stderr,
		Confidence: e.cfg.Confidence,
		Interval: models.ConfidenceInterval{
			Lower: price - z*stderr,
			Upper: price + z*stderr,
		},
		Paths: acc.Count(),
	}, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
