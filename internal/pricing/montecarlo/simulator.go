package montecarlo

import (
	"math"

	"derivative-pricer/internal/models"
)

// Simulator evolves geometric Brownian motion on a uniform time grid. The
// per-step drift and diffusion terms are precomputed once per run.
type Simulator struct {
	spot  float64
	steps int
	drift float64 // (r - q - vol^2/2) * dt
	vol   float64 // vol * sqrt(dt)
}

// NewSimulator prepares a GBM simulator over the given horizon in years.
// Callers guarantee validated market parameters, horizon >= 0 and steps >= 1.
func NewSimulator(m models.MarketParameters, horizon float64, steps int) *Simulator {
	dt := horizon / float64(steps)
	return &Simulator{
		spot:  m.Spot,
		steps: steps,
		drift: (m.Rate - m.Dividend - 0.5*m.Vol*m.Vol) * dt,
		vol:   m.Vol * math.Sqrt(dt),
	}
}

// Steps returns the number of evolution steps per path.
func (s *Simulator) Steps() int {
	return s.steps
}

// Terminal evolves one path and returns only its final price, consuming
// exactly Steps draws from the source.
func (s *Simulator) Terminal(src NormalSource) float64 {
	price := s.spot
	for i := 0; i < s.steps; i++ {
		price *= math.Exp(s.drift + s.vol*src.Normal())
	}
	return price
}

// Path returns a lazy iterator over the Steps+1 prices of one path,
// starting at the initial spot.
func (s *Simulator) Path(src NormalSource) *Path {
	return &Path{sim: s, src: src, price: s.spot, step: -1}
}

// Path iterates a single GBM path. The zeroth value is the initial spot and
// consumes no draw; each later value consumes one.
type Path struct {
	sim   *Simulator
	src   NormalSource
	price float64
	step  int
}

// Next returns the next price on the path, reporting false once the path
// is exhausted.
func (p *Path) Next() (float64, bool) {
	if p.step >= p.sim.steps {
		return 0, false
	}
	if p.step >= 0 {
		p.price *= math.Exp(p.sim.drift + p.sim.vol*p.src.Normal())
	}
	p.step++
	return p.price, true
}

// Values drains the iterator into a slice of Steps+1 prices.
func (p *Path) Values() []float64 {
	out := make([]float64, 0, p.sim.steps+1)
	for v, ok := p.Next(); ok; v, ok = p.Next() {
		out = append(out, v)
	}
	return out
}
