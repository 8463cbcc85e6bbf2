package montecarlo

import "math"

// Accumulator keeps a running mean and variance with Welford's one-pass
// update, which stays numerically stable at large sample counts where a
// naive sum of squares loses precision.
type Accumulator struct {
	n    int64
	mean float64
	m2   float64
}

// Add folds one sample into the accumulator.
func (a *Accumulator) Add(x float64) {
	a.n++
	delta := x - a.mean
	a.mean += delta / float64(a.n)
	a.m2 += delta * (x - a.mean)
}

// Merge folds another accumulator into this one. The result matches
// accumulating both sample sets sequentially in order.
func (a *Accumulator) Merge(b Accumulator) {
	if b.n == 0 {
		return
	}
	if a.n == 0 {
		*a = b
		return
	}
	n := a.n + b.n
	delta := b.mean - a.mean
	a.mean += delta * float64(b.n) / float64(n)
	a.m2 += b.m2 + delta*delta*float64(a.n)*float64(b.n)/float64(n)
	a.n = n
}

// Count returns the number of samples seen.
func (a *Accumulator) Count() int64 {
	return a.n
}

// Mean returns the sample mean, zero before the first sample.
func (a *Accumulator) Mean() float64 {
	return a.mean
}

// Variance returns the unbiased sample variance, zero below two samples.
// A constant sample stream legitimately reports zero variance.
func (a *Accumulator) Variance() float64 {
	if a.n < 2 {
		return 0
	}
	return a.m2 / float64(a.n-1)
}

// StdDev returns the sample standard deviation.
func (a *Accumulator) StdDev() float64 {
	return math.Sqrt(a.Variance())
}

// StdError returns the standard error of the mean.
func (a *Accumulator) StdError() float64 {
	if a.n == 0 {
		return 0
	}
	return a.StdDev() / math.Sqrt(float64(a.n))
}
