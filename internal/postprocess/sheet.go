package postprocess

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ContactSheet lays tiles out left to right, top to bottom, cols per row,
// each cell cell×cell pixels with gap pixels between cells, over an opaque
// background. Tiles of a different size are scaled to fit their cell.
func ContactSheet(tiles []image.Image, cols, cell, gap int, bg color.Color) *image.NRGBA {
	if cols < 1 {
		cols = 1
	}
	rows := (len(tiles) + cols - 1) / cols
	if rows == 0 {
		rows = 1
	}
	if len(tiles) < cols {
		cols = max(len(tiles), 1)
	}

	w := cols*cell + (cols+1)*gap
	h := rows*cell + (rows+1)*gap
	sheet := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for i, tile := range tiles {
		if tile == nil {
			continue
		}
		col, row := i%cols, i/cols
		x := gap + col*(cell+gap)
		y := gap + row*(cell+gap)
		dst := image.Rect(x, y, x+cell, y+cell)

		tb := tile.Bounds()
		if tb.Dx() == cell && tb.Dy() == cell {
			draw.Draw(sheet, dst, tile, tb.Min, draw.Over)
		} else {
			draw.CatmullRom.Scale(sheet, dst, tile, tb, draw.Over, nil)
		}
	}
	return sheet
}
