package texture

import (
	"image"
	"image/color"

	"pbr-kernels/internal/mathutil"
)

// FromImage converts an already decoded image into a PixelGrid with
// channels normalized to [0,1]. Alpha is dropped after un-premultiplying; no
// color-space conversion is applied.
func FromImage(src image.Image) *PixelGrid {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	g := &PixelGrid{Width: w, Height: h, Pix: make([]mathutil.Vec3, w*h)}

	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			off := n.PixOffset(b.Min.X, b.Min.Y+y)
			for x := 0; x < w; x++ {
				i := off + x*4
				g.Pix[y*w+x] = mathutil.Vec3{
					float64(n.Pix[i]) / 255,
					float64(n.Pix[i+1]) / 255,
					float64(n.Pix[i+2]) / 255,
				}
			}
		}
		return g
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA64Model.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
			g.Pix[y*w+x] = mathutil.Vec3{
				float64(c.R) / 0xffff,
				float64(c.G) / 0xffff,
				float64(c.B) / 0xffff,
			}
		}
	}
	return g
}

// ToNRGBA quantizes the grid to an opaque 8-bit image, clamping to [0,1].
func (g *PixelGrid) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.Pix[y*g.Width+x]
			i := img.PixOffset(x, y)
			img.Pix[i] = quantize(c[0])
			img.Pix[i+1] = quantize(c[1])
			img.Pix[i+2] = quantize(c[2])
			img.Pix[i+3] = 255
		}
	}
	return img
}

func quantize(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
