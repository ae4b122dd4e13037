package render

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	certIDFontSize = 56
	serialFontSize = 32
)

// TextLayer renders the cert ID and serial number near the bottom of the
// canvas, centered. Informational only, not a security feature.
func TextLayer(certID, serial string, spec TagSpec) *image.RGBA {
	dc := gg.NewContext(spec.Size, spec.Size)
	s := float64(spec.Size)

	dc.SetRGBA255(0, 0, 0, 255)
	dc.SetFontFace(face(spec.FontPath, certIDFontSize))
	dc.DrawStringAnchored(certID, s/2, s-120, 0.5, 1)

	dc.SetRGBA255(80, 80, 80, 255)
	dc.SetFontFace(face(spec.FontPath, serialFontSize))
	dc.DrawStringAnchored(serial, s/2, s-60, 0.5, 1)

	return dc.Image().(*image.RGBA)
}

// face loads the preferred font file when configured, otherwise the embedded
// Go Regular face. Rendering never fails for want of a font: the last resort
// is the fixed basicfont face.
func face(path string, points float64) font.Face {
	if path != "" {
		if f, err := gg.LoadFontFace(path, points); err == nil {
			return f
		}
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(f, &truetype.Options{Size: points})
}
