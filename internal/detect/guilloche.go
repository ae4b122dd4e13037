package detect

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Hue bands for the guilloche palette, in degrees. These are the OpenCV
// half-degree calibration bands (cyan 80-100, magenta 140-170 on the 0-180
// scale) converted to the full 0-360 hue circle.
const (
	cyanHueLow     = 160.0
	cyanHueHigh    = 200.0
	magentaHueLow  = 280.0
	magentaHueHigh = 340.0
)

// Guilloche reports whether the cyan/magenta pattern is present: pixels in
// either hue band (above minimum saturation and value) must strictly exceed
// the configured fraction of total area. The two bands are counted
// independently, so a tag that kept only its cyan curves still detects.
func Guilloche(img image.Image, cfg Config) (detected bool) {
	defer func() {
		if r := recover(); r != nil {
			detected = false
		}
	}()

	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return false
	}

	var cyan, magenta int
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			c := colorful.Color{
				R: float64(r) / 65535,
				G: float64(g) / 65535,
				B: float64(b) / 65535,
			}
			h, s, v := c.Hsv()
			if s < cfg.MinSaturation || v < cfg.MinValue {
				continue
			}
			switch {
			case h >= cyanHueLow && h <= cyanHueHigh:
				cyan++
			case h >= magentaHueLow && h <= magentaHueHigh:
				magenta++
			}
		}
	}

	threshold := float64(total) * cfg.GuillocheAreaRatio
	return float64(cyan) > threshold || float64(magenta) > threshold
}
