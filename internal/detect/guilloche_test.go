package detect

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Pure palette cyan; alpha-free so painted pixel counts are exact.
var cyanOpaque = color.NRGBA{R: 0, G: 180, B: 220, A: 255}

// paintRows fills the first n pixels of a white image with c, row by row.
func paintRows(w, h, n int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	for i := 0; i < n; i++ {
		img.Set(i%w, i/w, c)
	}
	return img
}

func TestGuillocheAreaBoundaryStrict(t *testing.T) {
	cfg := DefaultConfig()
	const w, h = 100, 50 // 5000 px; 2% = 100 px exactly

	t.Run("exactly at threshold is not detected", func(t *testing.T) {
		img := paintRows(w, h, 100, cyanOpaque)
		assert.False(t, Guilloche(img, cfg), "coverage must strictly exceed the threshold")
	})

	t.Run("one pixel above threshold is detected", func(t *testing.T) {
		img := paintRows(w, h, 101, cyanOpaque)
		assert.True(t, Guilloche(img, cfg))
	})
}

func TestGuillocheMagentaBandCountsIndependently(t *testing.T) {
	cfg := DefaultConfig()
	magenta := color.NRGBA{R: 200, G: 0, B: 150, A: 255}
	img := paintRows(100, 50, 150, magenta)
	assert.True(t, Guilloche(img, cfg))
}

func TestGuillocheRejectsWashedOutColor(t *testing.T) {
	cfg := DefaultConfig()
	// Cyan hue but saturation far below the floor: print wash or sensor haze.
	pale := color.NRGBA{R: 230, G: 245, B: 250, A: 255}
	img := paintRows(100, 50, 2500, pale)
	assert.False(t, Guilloche(img, cfg))
}

func TestGuillocheRejectsWrongHue(t *testing.T) {
	cfg := DefaultConfig()
	red := color.NRGBA{R: 220, G: 20, B: 20, A: 255}
	img := paintRows(100, 50, 2500, red)
	assert.False(t, Guilloche(img, cfg))
}

func TestGuillocheBlankImage(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, Guilloche(image.NewRGBA(image.Rect(0, 0, 64, 64)), cfg))
	assert.False(t, Guilloche(image.NewRGBA(image.Rectangle{}), cfg))
}
