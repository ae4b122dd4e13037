package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuillocheCurveRanges(t *testing.T) {
	// The mapping must be total: every byte value lands inside the design
	// range, for every curve index.
	keys := [][16]byte{
		{},
		{255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255},
		{0, 127, 255, 63, 191, 31, 223, 95, 159, 15, 239, 79, 175, 47, 207, 111},
	}
	const size = 1200
	maxRadius := float64(size) * maxRadiusFactor

	for _, key := range keys {
		for i := 0; i < guillocheCurves; i++ {
			p := GuillocheCurve(key, i, size)
			assert.GreaterOrEqual(t, p.Amplitude, 0.7*maxRadius)
			assert.LessOrEqual(t, p.Amplitude, maxRadius)
			assert.GreaterOrEqual(t, p.Frequency, 8)
			assert.LessOrEqual(t, p.Frequency, 15)
			assert.GreaterOrEqual(t, p.Petals, 5)
			assert.LessOrEqual(t, p.Petals, 12)
			assert.GreaterOrEqual(t, p.Phase, 0.0)
			assert.LessOrEqual(t, p.Phase, 2*math.Pi)
		}
	}
}

func TestGuillocheCurveDeterministic(t *testing.T) {
	key := [16]byte{9, 8, 7, 6, 5, 4, 3, 2, 1, 0, 11, 12, 13, 14, 15, 16}
	for i := 0; i < guillocheCurves; i++ {
		assert.Equal(t, GuillocheCurve(key, i, 1024), GuillocheCurve(key, i, 1024))
	}
}

func TestGuillocheCurveCyclesKey(t *testing.T) {
	key := [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	// Curve 4 would wrap to the start of the key; curves 0-3 each consume a
	// distinct 4-byte group.
	p0 := GuillocheCurve(key, 0, 1024)
	p1 := GuillocheCurve(key, 1, 1024)
	assert.NotEqual(t, p0, p1)
}

func TestBorderDashTotalAndBounded(t *testing.T) {
	key := [16]byte{0, 32, 64, 96, 128, 160, 192, 224, 255, 16, 48, 80, 112, 144, 176, 208}
	for segment := 0; segment < 64; segment++ {
		for _, dist := range []float64{0, 10.5, 400, 1199.9} {
			step := BorderDash(key, segment, dist)
			// dash = 20·mod·(1±0.3), mod in [1,3]
			assert.Greater(t, step.DashLen, 0.0)
			assert.LessOrEqual(t, step.DashLen, 20*3*1.3+1e-9)
			assert.GreaterOrEqual(t, step.GapLen, 12.0)
			assert.LessOrEqual(t, step.GapLen, 22.0)
			assert.GreaterOrEqual(t, step.Thickness, math.Trunc(borderThickness*0.8))
			assert.LessOrEqual(t, step.Thickness, borderThickness*1.2)
		}
	}
}
