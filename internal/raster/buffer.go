package raster

import (
	"image"
	"math"
)

// FrameBuffer holds linear HDR radiance as flat slices for cache locality.
type FrameBuffer struct {
	Width    int
	Height   int
	Color    []float64 // RGB interleaved, len = W*H*3
	ZBuf     []float64 // depth per pixel (larger is closer), initialized to -inf
	Coverage []bool
}

// NewFrameBuffer allocates a black color buffer and -inf z-buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	zbuf := make([]float64, n)
	for i := range zbuf {
		zbuf[i] = math.Inf(-1)
	}
	return &FrameBuffer{
		Width:    w,
		Height:   h,
		Color:    make([]float64, n*3),
		ZBuf:     zbuf,
		Coverage: make([]bool, n),
	}
}

// Resolve tone maps the radiance with exposure and ACES, encodes with the
// display gamma and returns an image that is transparent where nothing was
// drawn.
func (fb *FrameBuffer) Resolve(exposure, invGamma float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, covered := range fb.Coverage {
		if !covered {
			continue
		}
		o := i * 4
		for c := 0; c < 3; c++ {
			v := ACESTonemap(fb.Color[i*3+c] * exposure)
			img.Pix[o+c] = clamp255(math.Pow(v, invGamma) * 255)
		}
		img.Pix[o+3] = 255
	}
	return img
}

func clamp255(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
