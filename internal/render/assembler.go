package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/AVN-Software/skern-tag-system/internal/domain"
)

// AssembleTag composites the five layers onto an opaque white base, strictly
// in the order QR, Grid, Guilloche, Border, Text. The order is a correctness
// requirement: the detectors rely on later layers being visually salient over
// the QR and grid at overlapping pixels.
func AssembleTag(bundle domain.SecretBundle, spec TagSpec) (*image.RGBA, error) {
	qr, err := QRLayer(bundle.CertID, spec)
	if err != nil {
		return nil, err
	}
	layers := []image.Image{
		qr,
		GridLayer(spec.Size),
		GuillocheLayer(bundle.GuillocheKey, spec.Size),
		BorderLayer(bundle.BorderKey, spec.Size),
		TextLayer(bundle.CertID, bundle.SerialNumber, spec),
	}
	return Flatten(spec.Size, layers...), nil
}

// Underlay composites only the decorative security layers (guilloche and
// border) on a transparent canvas. The press pipeline prints it as its own
// screen, separate from the QR pass.
func Underlay(bundle domain.SecretBundle, size int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(out, out.Bounds(), GuillocheLayer(bundle.GuillocheKey, size), image.Point{}, draw.Over)
	draw.Draw(out, out.Bounds(), BorderLayer(bundle.BorderKey, size), image.Point{}, draw.Over)
	return out
}

// Flatten alpha-composites layers in order over an opaque white base.
func Flatten(size int, layers ...image.Image) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(out, out.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	for _, layer := range layers {
		draw.Draw(out, out.Bounds(), layer, image.Point{}, draw.Over)
	}
	return out
}
