package render

import (
	"image"
	"math"

	"github.com/fogleman/gg"
)

// Corner marks are fixed geometry (detectable without the key); only the
// dashed perimeter is secret-derived.
const (
	borderThickness = 8.0
	cornerLeg       = 120.0
)

// BorderLayer draws four L-shaped corner marks plus a key-derived dashed line
// tracing the canvas perimeter. The segment index advances after every dash,
// so the rhythm differs across the four sides and does not repeat predictably.
func BorderLayer(key [16]byte, size int) *image.RGBA {
	dc := gg.NewContext(size, size)
	dc.SetRGBA255(0, 0, 0, 255)
	s := float64(size)

	dc.SetLineWidth(borderThickness)
	corners := [][2]float64{
		{0, 0},
		{s - cornerLeg, 0},
		{s - cornerLeg, s - cornerLeg},
		{0, s - cornerLeg},
	}
	for _, c := range corners {
		dc.DrawLine(c[0], c[1], c[0]+cornerLeg, c[1])
		dc.Stroke()
		dc.DrawLine(c[0], c[1], c[0], c[1]+cornerLeg)
		dc.Stroke()
	}

	offset := borderThickness / 2
	sides := [][4]float64{
		{offset, offset, s - offset, offset},
		{s - offset, offset, s - offset, s - offset},
		{s - offset, s - offset, offset, s - offset},
		{offset, s - offset, offset, offset},
	}

	segment := 0
	for _, side := range sides {
		x1, y1, x2, y2 := side[0], side[1], side[2], side[3]
		dx, dy := x2-x1, y2-y1
		length := math.Hypot(dx, dy)

		for dist := 0.0; dist < length; {
			step := BorderDash(key, segment, dist)
			start, end := dist, math.Min(dist+step.DashLen, length)
			if end > start {
				sx := x1 + dx*start/length
				sy := y1 + dy*start/length
				ex := x1 + dx*end/length
				ey := y1 + dy*end/length
				dc.SetLineWidth(step.Thickness)
				dc.DrawLine(sx, sy, ex, ey)
				dc.Stroke()
			}
			dist += step.DashLen + step.GapLen
			segment++
		}
	}
	return dc.Image().(*image.RGBA)
}
