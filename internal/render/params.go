package render

import "math"

// Secret-derived parameter mapping. Each function is a pure, total map from
// fixed-width byte values into a bounded design range so the rendering loops
// stay free of byte arithmetic and the maps can be unit-tested in isolation.

// maxRadiusFactor bounds the guilloche so the pattern never touches the
// canvas edge: amplitude tops out at 47.5% of the canvas size.
const maxRadiusFactor = 0.475

// CurveParams are the four parameters of one rose-like guilloche curve.
type CurveParams struct {
	Amplitude float64 // pixels, within 70-100% of the max radius
	Frequency int     // radial modulation frequency
	Petals    int     // lobe count
	Phase     float64 // radians, uniform over one full turn
}

// GuillocheCurve derives the parameters of curve i from the 16-byte key,
// cycling through it in 4-byte groups.
func GuillocheCurve(key [16]byte, i, canvasSize int) CurveParams {
	base := i * 4
	maxRadius := float64(canvasSize) * maxRadiusFactor
	return CurveParams{
		Amplitude: maxRadius * (0.7 + float64(key[base%16])/255*0.3),
		Frequency: 8 + int(key[(base+1)%16])/32,
		Petals:    5 + int(key[(base+2)%16])/32,
		Phase:     float64(key[(base+3)%16]) / 255 * 2 * math.Pi,
	}
}

// DashStep is the geometry of one dash along the border perimeter.
type DashStep struct {
	DashLen   float64
	GapLen    float64
	Thickness float64
}

// BorderDash derives dash geometry for the given segment index at the given
// distance along a side. Dash length is sinusoidally modulated by distance so
// the rhythm is non-uniform; gap and thickness come from a different byte
// offset so the three values vary independently.
func BorderDash(key [16]byte, segment int, dist float64) DashStep {
	idx := segment % 16
	mod := float64(key[idx])/255*2 + 1
	return DashStep{
		DashLen:   20 * mod * (1 + 0.3*math.Sin(dist*0.1)),
		GapLen:    12 + float64(key[(idx+5)%16])/255*10,
		Thickness: float64(int(borderThickness * (0.8 + 0.4*float64(key[idx])/255))),
	}
}
