// Package montecarlo prices contracts by simulating geometric Brownian
// motion paths and aggregating discounted payoffs with stable one-pass
// statistics.
package montecarlo

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// NormalSource yields independent standard normal draws.
type NormalSource interface {
	Normal() float64
}

// StreamFactory returns the normal stream for a path index. Streams for
// distinct indices must be mutually independent; the estimator relies on
// this to run paths in parallel without coordination.
type StreamFactory func(path uint64) NormalSource

// Source draws ziggurat normals from a seeded PCG generator.
type Source struct {
	rng *rand.Rand
}

// NewSource returns a PCG-backed source. Equal seeds yield equal streams.
func NewSource(seed uint64) *Source {
	return NewPathSource(seed, 0)
}

// NewPathSource returns the stream for one simulation path, derived from
// the master seed and the path index alone. Scheduling and worker count
// never influence the draws a path sees.
func NewPathSource(master, path uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(master, path))}
}

// Normal returns one standard normal draw.
func (s *Source) Normal() float64 {
	return s.rng.NormFloat64()
}

// PCGStreams returns the default factory deriving one stream per path index
// from a master seed.
func PCGStreams(master uint64) StreamFactory {
	return func(path uint64) NormalSource {
		return NewPathSource(master, path)
	}
}

// RandomSeed returns a wall-clock-derived master seed for callers that did
// not fix one.
func RandomSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// InverseCDFSource generates normals by mapping PCG uniforms through the
// standard normal quantile. Slower than the ziggurat source; useful when
// draws must be a monotone function of the underlying uniforms.
type InverseCDFSource struct {
	rng *rand.Rand
}

// NewInverseCDFSource returns an inverse-transform source for the seed.
func NewInverseCDFSource(seed uint64) *InverseCDFSource {
	return &InverseCDFSource{rng: rand.New(rand.NewPCG(seed, 0))}
}

// InverseCDFStreams returns a factory of inverse-transform streams, one per
// path index, derived from a master seed like PCGStreams.
func InverseCDFStreams(master uint64) StreamFactory {
	return func(path uint64) NormalSource {
		return &InverseCDFSource{rng: rand.New(rand.NewPCG(master, path))}
	}
}

// Normal returns one standard normal draw.
func (s *InverseCDFSource) Normal() float64 {
	u := s.rng.Float64()
	for u == 0 {
		u = s.rng.Float64()
	}
	return distuv.UnitNormal.Quantile(u)
}

// recordedSource captures draws from an underlying source so the antithetic
// partner path can replay them negated.
type recordedSource struct {
	src   NormalSource
	draws []float64
}

func newRecorded(src NormalSource, buf []float64) *recordedSource {
	return &recordedSource{src: src, draws: buf[:0]}
}

func (r *recordedSource) Normal() float64 {
	z := r.src.Normal()
	r.draws = append(r.draws, z)
	return z
}

// mirror returns a source replaying the recorded draws negated. It yields
// exactly as many draws as were recorded.
func (r *recordedSource) mirror() NormalSource {
	return &mirrorSource{draws: r.draws}
}

type mirrorSource struct {
	draws []float64
	next  int
}

func (m *mirrorSource) Normal() float64 {
	z := m.draws[m.next]
	m.next++
	return -z
}
