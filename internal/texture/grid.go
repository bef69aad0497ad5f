// Package texture holds decoded RGB pixel grids and samples them bilinearly
// with periodic UV addressing.
package texture

import (
	"errors"
	"fmt"

	"pbr-kernels/internal/mathutil"
)

// ErrGridSize is returned for non-positive dimensions or a pixel slice whose
// length is not Width*Height.
var ErrGridSize = errors.New("texture: pixel count does not match dimensions")

// PixelGrid is one mip level: Width*Height linear RGB triples, row-major,
// row 0 first. It is treated as immutable once built.
type PixelGrid struct {
	Width  int
	Height int
	Pix    []mathutil.Vec3
}

// NewPixelGrid wraps pix after checking it matches the dimensions.
func NewPixelGrid(width, height int, pix []mathutil.Vec3) (*PixelGrid, error) {
	if width <= 0 || height <= 0 || len(pix) != width*height {
		return nil, fmt.Errorf("%w: %dx%d with %d pixels", ErrGridSize, width, height, len(pix))
	}
	return &PixelGrid{Width: width, Height: height, Pix: pix}, nil
}

// Uniform returns a 1×1 grid of color c.
func Uniform(c mathutil.Vec3) *PixelGrid {
	return &PixelGrid{Width: 1, Height: 1, Pix: []mathutil.Vec3{c}}
}

// At returns the texel at (x, y). No bounds wrapping is applied.
func (g *PixelGrid) At(x, y int) mathutil.Vec3 {
	return g.Pix[y*g.Width+x]
}

// Average returns the mean color of the grid.
func (g *PixelGrid) Average() mathutil.Vec3 {
	var sum mathutil.Vec3
	for _, p := range g.Pix {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(g.Pix)))
}
