package render

import (
	"image"
	"math"

	"github.com/fogleman/gg"
)

const (
	guillocheCurves = 4
	// guillocheSteps is high enough that consecutive points are sub-pixel
	// apart at 1600 px, so the polyline reads as a smooth curve.
	guillocheSteps = 7200
	guillocheTurns = 8
	guillocheWidth = 2
)

// High-chroma cyan/magenta family: strong contrast against the monochrome QR
// and reliably separable in HSV at verification time.
var guillochePalette = [][4]int{
	{0, 180, 220, 160},
	{200, 0, 150, 140},
	{0, 150, 200, 150},
}

// GuillocheLayer renders the anti-copy pattern: four rose-like parametric
// curves whose amplitude, frequency, petal count, and phase are fully
// determined by the 16-byte key. Reproducible from the key, but with no
// closed-form shortcut for an attacker who only has the printed tag.
func GuillocheLayer(key [16]byte, size int) *image.RGBA {
	dc := gg.NewContext(size, size)
	dc.SetLineWidth(guillocheWidth)
	center := float64(size / 2)
	limit := float64(size)

	for i := 0; i < guillocheCurves; i++ {
		p := GuillocheCurve(key, i, size)
		c := guillochePalette[i%len(guillochePalette)]
		dc.SetRGBA255(c[0], c[1], c[2], c[3])

		started := false
		for step := 0; step <= guillocheSteps; step++ {
			theta := float64(step)/guillocheSteps*2*math.Pi*guillocheTurns + p.Phase
			r := p.Amplitude * math.Cos(float64(p.Petals)*theta) * (1 + 0.2*math.Sin(float64(p.Frequency)*theta))
			x := center + r*math.Cos(theta)
			y := center + r*math.Sin(theta)
			// Out-of-bounds points are discarded; the polyline bridges the
			// gap between their in-bounds neighbors.
			if x < 0 || x >= limit || y < 0 || y >= limit {
				continue
			}
			if !started {
				dc.MoveTo(x, y)
				started = true
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
	}
	return dc.Image().(*image.RGBA)
}
