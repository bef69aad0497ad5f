package texture

import (
	"errors"
	"math"
	"testing"

	"pbr-kernels/internal/mathutil"
)

func near(a, b mathutil.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

// corners is the 2×2 grid black, red / green, blue.
func corners(t *testing.T) *PixelGrid {
	t.Helper()
	g, err := NewPixelGrid(2, 2, []mathutil.Vec3{
		{0, 0, 0}, {1, 0, 0},
		{0, 1, 0}, {0, 0, 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestSample_Center(t *testing.T) {
	got := Sample(corners(t), 0.5, 0.5)
	want := mathutil.Vec3{0.25, 0.25, 0.25}
	if got != want {
		t.Errorf("expected exactly %v, got %v", want, got)
	}
}

func TestSample_Anchors(t *testing.T) {
	g := corners(t)
	tests := []struct {
		name string
		u, v float64
		want mathutil.Vec3
	}{
		{"origin", 0, 0, mathutil.Vec3{0, 0, 0}},
		{"top edge midpoint", 0.5, 0, mathutil.Vec3{0.5, 0, 0}},
		{"left edge midpoint", 0, 0.5, mathutil.Vec3{0, 0.5, 0}},
		// u just below 1 approaches the last column, which is clamped.
		{"near right edge", 0.999999, 0, mathutil.Vec3{0.999999, 0, 0}},
		// u = 1 wraps back to column 0: the seam is discontinuous.
		{"right edge wraps", 1, 0, mathutil.Vec3{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sample(g, tt.u, tt.v); !near(got, tt.want, 1e-9) {
				t.Errorf("Sample(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
			}
		})
	}
}

func TestSample_Periodic(t *testing.T) {
	pix := make([]mathutil.Vec3, 5*3)
	for i := range pix {
		pix[i] = mathutil.Vec3{float64(i) / 15, float64(i%5) / 5, float64(i%3) / 3}
	}
	g, err := NewPixelGrid(5, 3, pix)
	if err != nil {
		t.Fatal(err)
	}

	// Dyadic coordinates wrap without rounding, so results match exactly.
	for _, uv := range [][2]float64{{0.25, 0.5}, {0.125, 0.875}, {0.75, 0.0625}} {
		u, v := uv[0], uv[1]
		base := Sample(g, u, v)
		for _, shift := range []float64{1, 2, -1, -3} {
			if got := Sample(g, u+shift, v); got != base {
				t.Errorf("Sample(%v+%v, %v) = %v, want %v", u, shift, v, got, base)
			}
			if got := Sample(g, u, v+shift); got != base {
				t.Errorf("Sample(%v, %v+%v) = %v, want %v", u, v, shift, got, base)
			}
		}
	}

	// Arbitrary coordinates agree up to the rounding of the modulo.
	for _, uv := range [][2]float64{{0.3, 0.7}, {0.61, 0.17}} {
		base := Sample(g, uv[0], uv[1])
		if got := Sample(g, uv[0]+1, uv[1]); !near(got, base, 1e-9) {
			t.Errorf("Sample(%v+1, %v) = %v, want %v", uv[0], uv[1], got, base)
		}
	}
}

func TestSample_NegativeAndNonFinite(t *testing.T) {
	g := corners(t)
	if got, want := Sample(g, -0.5, -0.5), Sample(g, 0.5, 0.5); got != want {
		t.Errorf("negative coordinates should wrap: got %v want %v", got, want)
	}
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := Sample(g, bad, bad); got != (mathutil.Vec3{}) {
			t.Errorf("Sample(%v) = %v, expected texel (0,0)", bad, got)
		}
	}
}

func TestSample_SingleTexel(t *testing.T) {
	c := mathutil.Vec3{0.2, 0.4, 0.6}
	g := Uniform(c)
	for _, uv := range [][2]float64{{0, 0}, {0.5, 0.5}, {0.99, 0.3}, {-2.5, 7.25}} {
		if got := Sample(g, uv[0], uv[1]); got != c {
			t.Errorf("Sample(%v) = %v, want %v", uv, got, c)
		}
	}
}

func TestNewPixelGrid_Errors(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		n    int
	}{
		{"too few pixels", 2, 2, 3},
		{"too many pixels", 2, 2, 5},
		{"zero width", 0, 2, 0},
		{"negative height", 2, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPixelGrid(tt.w, tt.h, make([]mathutil.Vec3, tt.n))
			if !errors.Is(err, ErrGridSize) {
				t.Errorf("expected ErrGridSize, got %v", err)
			}
		})
	}
}

func TestPixelGrid_Average(t *testing.T) {
	if got := corners(t).Average(); !near(got, mathutil.Vec3{0.25, 0.25, 0.25}, 1e-12) {
		t.Errorf("expected (0.25,0.25,0.25), got %v", got)
	}
}
