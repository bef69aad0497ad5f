// Package integrator estimates total reflectance of a BRDF by Monte Carlo
// integration over the hemisphere. It is a diagnostic for energy
// conservation, not a rendering path.
package integrator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"pbr-kernels/internal/brdf"
	"pbr-kernels/internal/logging"
	"pbr-kernels/internal/mathutil"
)

// UniformHemispherePDF is the density of SampleUniformHemisphere over solid
// angle.
const UniformHemispherePDF = 1 / (2 * math.Pi)

// PlausibleBound is the regression ceiling for the reflectance of a
// physically plausible material under uniform hemisphere sampling.
const PlausibleBound = 2.0

// ctxCheckInterval is how many samples run between cancellation checks.
const ctxCheckInterval = 1024

// ErrNoSamples is returned when Options.Samples is not positive.
var ErrNoSamples = errors.New("integrator: sample count must be positive")

// Options controls an estimate.
type Options struct {
	Samples int   // total sample count
	Seed    int64 // base seed; worker i uses Seed+i
	Workers int   // <= 1 runs on the calling goroutine
}

// DefaultOptions returns 10000 samples, seed 1, one worker.
func DefaultOptions() Options {
	return Options{Samples: 10000, Seed: 1, Workers: 1}
}

// Estimate is the result of EstimateReflectance.
type Estimate struct {
	RGB       mathutil.Vec3 // mean of brdf/pdf per channel
	Luminance float64
	Samples   int
}

// SampleUniformHemisphere maps two uniform numbers to a direction in the
// Y-up hemisphere: phi = 2π·u1 and cosθ = u2. The density is uniform in
// solid angle (UniformHemispherePDF), not cosine weighted.
func SampleUniformHemisphere(u1, u2 float64) mathutil.Vec3 {
	phi := 2 * math.Pi * u1
	cosTheta := u2
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	return mathutil.Vec3{sinTheta * math.Cos(phi), cosTheta, sinTheta * math.Sin(phi)}
}

// EstimateReflectance integrates brdf.Evaluate over the hemisphere around n
// for the fixed view direction v. The result is reproducible for a given
// Seed and Workers count.
func EstimateReflectance(ctx context.Context, n, v mathutil.Vec3, m brdf.Material, opts Options) (Estimate, error) {
	if opts.Samples <= 0 {
		return Estimate{}, ErrNoSamples
	}
	if err := m.Validate(); err != nil {
		return Estimate{}, fmt.Errorf("integrator: %w", err)
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > opts.Samples {
		workers = opts.Samples
	}

	frame := mathutil.NewFrame(n)
	counts := partition(opts.Samples, workers)
	logging.Logger().Debug("integrator: estimating reflectance",
		"samples", opts.Samples, "workers", workers, "seed", opts.Seed)

	sums := make([]mathutil.Vec3, workers)
	errs := make([]error, workers)

	if workers == 1 {
		sums[0], errs[0] = integrate(ctx, frame, v, m, counts[0], NewSeededSampler(opts.Seed))
	} else {
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				sampler := NewSeededSampler(opts.Seed + int64(w))
				sums[w], errs[w] = integrate(ctx, frame, v, m, counts[w], sampler)
			}(w)
		}
		wg.Wait()
	}

	var total mathutil.Vec3
	for w := 0; w < workers; w++ {
		if errs[w] != nil {
			return Estimate{}, errs[w]
		}
		total = total.Add(sums[w])
	}

	mean := total.Scale(1 / float64(opts.Samples))
	return Estimate{RGB: mean, Luminance: brdf.Luminance(mean), Samples: opts.Samples}, nil
}

// integrate accumulates count samples drawn from sampler and returns the sum
// (not the mean) of brdf/pdf, or ctx's error once it is cancelled.
func integrate(ctx context.Context, frame mathutil.Frame, v mathutil.Vec3, m brdf.Material, count int, sampler Sampler) (mathutil.Vec3, error) {
	var sum mathutil.Vec3
	for i := 0; i < count; i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return mathutil.Vec3{}, err
			}
		}
		u1, u2 := sampler.Get2D()
		l := frame.ToWorld(SampleUniformHemisphere(u1, u2))
		f := brdf.Evaluate(frame.N, l, v, m)
		sum = sum.Add(f.Scale(1 / UniformHemispherePDF))
	}
	return sum, nil
}

// partition splits total into n near-equal counts, larger counts first.
func partition(total, n int) []int {
	counts := make([]int, n)
	base, rem := total/n, total%n
	for i := range counts {
		counts[i] = base
		if i < rem {
			counts[i]++
		}
	}
	return counts
}
