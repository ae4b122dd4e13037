package detect

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

func whiteCanvas(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return img
}

// drawGridLines paints 2px black lines every spacing pixels, both axes.
func drawGridLines(img *image.RGBA, spacing int) {
	b := img.Bounds()
	black := color.NRGBA{A: 255}
	for x := spacing; x < b.Dx(); x += spacing {
		for y := 0; y < b.Dy(); y++ {
			img.Set(x, y, black)
			img.Set(x+1, y, black)
		}
	}
	for y := spacing; y < b.Dy(); y += spacing {
		for x := 0; x < b.Dx(); x++ {
			img.Set(x, y, black)
			img.Set(x, y+1, black)
		}
	}
}

func TestGridDetectsRegularLines(t *testing.T) {
	cfg := DefaultConfig()
	img := whiteCanvas(512)
	drawGridLines(img, 64)
	assert.True(t, Grid(img, cfg))
}

func TestGridRejectsBlankImage(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, Grid(whiteCanvas(512), cfg))
}

func TestGridRejectsSparseLines(t *testing.T) {
	cfg := DefaultConfig()
	img := whiteCanvas(512)
	// One long line yields only the handful of segments along its edge band,
	// below the >10 cutoff.
	black := color.NRGBA{A: 255}
	for y := 0; y < 512; y++ {
		img.Set(250, y, black)
	}
	assert.False(t, Grid(img, cfg))
}

func TestGridTinyImage(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, Grid(image.NewRGBA(image.Rect(0, 0, 2, 2)), cfg))
	assert.False(t, Grid(image.NewRGBA(image.Rectangle{}), cfg))
}
