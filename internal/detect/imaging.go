package detect

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// grayPlane converts an image to a float64 luminance plane, lightly blurred
// to suppress sensor noise before gradient operators run.
func grayPlane(img image.Image) [][]float64 {
	gray := effect.Grayscale(img)
	smoothed := blur.Gaussian(gray, 1.0)

	b := smoothed.Bounds()
	w, h := b.Dx(), b.Dy()
	plane := make([][]float64, h)
	for y := 0; y < h; y++ {
		row := make([]float64, w)
		for x := 0; x < w; x++ {
			// Grayscale output has R=G=B; reading one channel suffices.
			row[x] = float64(smoothed.Pix[smoothed.PixOffset(b.Min.X+x, b.Min.Y+y)])
		}
		plane[y] = row
	}
	return plane
}

// sobel computes horizontal and vertical gradients with 3x3 Sobel kernels.
// Border pixels are left at zero gradient.
func sobel(plane [][]float64) (gx, gy [][]float64) {
	h := len(plane)
	w := 0
	if h > 0 {
		w = len(plane[0])
	}
	gx = make([][]float64, h)
	gy = make([][]float64, h)
	for y := 0; y < h; y++ {
		gx[y] = make([]float64, w)
		gy[y] = make([]float64, w)
	}
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx[y][x] = plane[y-1][x+1] + 2*plane[y][x+1] + plane[y+1][x+1] -
				plane[y-1][x-1] - 2*plane[y][x-1] - plane[y+1][x-1]
			gy[y][x] = plane[y+1][x-1] + 2*plane[y+1][x] + plane[y+1][x+1] -
				plane[y-1][x-1] - 2*plane[y-1][x] - plane[y-1][x+1]
		}
	}
	return gx, gy
}
