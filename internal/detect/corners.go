package detect

import (
	"image"
)

// Corners approximates "the four corner L-marks are present and sharp": it
// computes a Harris-style corner response over grayscale and counts locations
// whose response exceeds CornerResponseRatio of the map's maximum. Exact
// geometric localization is deliberately not required.
func Corners(img image.Image, cfg Config) (detected bool) {
	defer func() {
		if r := recover(); r != nil {
			detected = false
		}
	}()

	plane := grayPlane(img)
	h := len(plane)
	if h < 3 {
		return false
	}
	w := len(plane[0])
	if w < 3 {
		return false
	}

	gx, gy := sobel(plane)

	// Structure tensor summed over a 2x2 block window, then the Harris
	// response R = det(M) - k·trace(M)^2.
	response := make([][]float64, h-1)
	maxR := 0.0
	for y := 0; y < h-1; y++ {
		response[y] = make([]float64, w-1)
		for x := 0; x < w-1; x++ {
			var sxx, syy, sxy float64
			for dy := 0; dy <= 1; dy++ {
				for dx := 0; dx <= 1; dx++ {
					ix := gx[y+dy][x+dx]
					iy := gy[y+dy][x+dx]
					sxx += ix * ix
					syy += iy * iy
					sxy += ix * iy
				}
			}
			trace := sxx + syy
			r := sxx*syy - sxy*sxy - cfg.HarrisK*trace*trace
			response[y][x] = r
			if r > maxR {
				maxR = r
			}
		}
	}
	if maxR <= 0 {
		return false
	}

	threshold := cfg.CornerResponseRatio * maxR
	count := 0
	for y := range response {
		for x := range response[y] {
			if response[y][x] > threshold {
				count++
				if count >= cfg.CornerMinCount {
					return true
				}
			}
		}
	}
	return false
}
