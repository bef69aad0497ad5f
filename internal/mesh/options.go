package mesh

import "pbr-kernels/internal/mathutil"

// Policy decides what happens to a vertex whose accumulated normal or
// tangent cannot be normalized.
type Policy int

const (
	// PolicyReject fails with a *DegenerateError.
	PolicyReject Policy = iota
	// PolicyFallback substitutes a default basis and logs a warning.
	PolicyFallback
)

func (p Policy) String() string {
	switch p {
	case PolicyReject:
		return "reject"
	case PolicyFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// degenerateRelSq bounds how much of its contributions an accumulated vector
// may lose to cancellation, as a squared ratio: the vector is degenerate when
// |sum|² <= degenerateRelSq · (Σ|contribution|)². The test is independent of
// mesh scale.
const degenerateRelSq = 1e-20

// degenerate reports whether sum, accumulated from contributions whose
// lengths add up to mag, is numerically zero or not finite.
func degenerate(sum mathutil.Vec3, mag float64) bool {
	return !(sum.LenSq() > degenerateRelSq*mag*mag) || !sum.IsFinite()
}

// unit normalizes v without an absolute length floor. Callers rule out zero
// vectors with degenerate first.
func unit(v mathutil.Vec3) mathutil.Vec3 {
	return v.Scale(1 / v.Len())
}

type options struct {
	policy Policy
}

// Option configures ComputeNormals, ComputeTangents and Rebuild.
type Option func(*options)

// WithPolicy sets the degenerate-vertex policy. The default is PolicyReject.
func WithPolicy(p Policy) Option {
	return func(o *options) { o.policy = p }
}

func buildOptions(opts []Option) options {
	o := options{policy: PolicyReject}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
