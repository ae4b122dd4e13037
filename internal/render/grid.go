package render

import (
	"image"

	"github.com/fogleman/gg"
)

// Grid geometry is fixed and secret-independent: the grid is a camera
// calibration reference, not an authenticity feature.
const (
	gridSpacing = 64
	gridWidth   = 2
)

// GridLayer draws a semi-transparent gray line grid over the full canvas.
func GridLayer(size int) *image.RGBA {
	dc := gg.NewContext(size, size)
	dc.SetRGBA255(120, 120, 120, 90)
	dc.SetLineWidth(gridWidth)

	for x := 0; x < size; x += gridSpacing {
		dc.DrawLine(float64(x), 0, float64(x), float64(size))
		dc.Stroke()
	}
	for y := 0; y < size; y += gridSpacing {
		dc.DrawLine(0, float64(y), float64(size), float64(y))
		dc.Stroke()
	}
	return dc.Image().(*image.RGBA)
}
