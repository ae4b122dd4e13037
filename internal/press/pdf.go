// Package press produces press-ready PDF sheets for two-pass security
// printing. The underlay screen (guilloche and border) is burned first, then
// the QR screen is printed on top of it. Both layers are placed at identical
// page coordinates so the passes register without manual alignment.
package press

import (
	"bytes"
	"fmt"
	"image"

	"github.com/jung-kurt/gofpdf"

	"github.com/AVN-Software/skern-tag-system/internal/render"
)

// DefaultMarkSizeMM is the printed edge length of the tag on the sheet.
const DefaultMarkSizeMM = 40.0

const (
	regMarkInsetMM  = 10.0
	regMarkRadiusMM = 3.0
)

// Sheet lays out a single A4 page carrying both print passes of one tag.
// The underlay is flattened over white so the base screen has no holes; the
// QR layer keeps its transparency so only the code area lands on the second
// pass.
func Sheet(underlay, qrLayer image.Image, markSizeMM float64) ([]byte, error) {
	if markSizeMM <= 0 {
		markSizeMM = DefaultMarkSizeMM
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	x := (pageW - markSizeMM) / 2
	y := (pageH - markSizeMM) / 2

	drawRegistrationMarks(pdf, pageW, pageH)

	bounds := underlay.Bounds()
	base := render.Flatten(bounds.Dx(), underlay)
	if err := placeLayer(pdf, "underlay", base, x, y, markSizeMM); err != nil {
		return nil, err
	}
	if err := placeLayer(pdf, "qr", qrLayer, x, y, markSizeMM); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("press: write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// TagPDF wraps a flattened tag in a single-page PDF sized so the composite
// prints at 600 DPI.
func TagPDF(tag image.Image) ([]byte, error) {
	bounds := tag.Bounds()
	const mmPerInch = 25.4
	widthMM := float64(bounds.Dx()) / 600 * mmPerInch
	heightMM := float64(bounds.Dy()) / 600 * mmPerInch

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: widthMM, Ht: heightMM},
	})
	pdf.AddPage()
	if err := placeLayer(pdf, "tag", tag, 0, 0, widthMM); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("press: write tag pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func placeLayer(pdf *gofpdf.Fpdf, name string, img image.Image, x, y, size float64) error {
	encoded, err := render.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("press: encode %s layer: %w", name, err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(encoded))
	pdf.ImageOptions(name, x, y, size, size, false, opts, 0, "")
	if pdf.Err() {
		return fmt.Errorf("press: place %s layer: %s", name, pdf.Error())
	}
	return nil
}

// drawRegistrationMarks puts crosshair targets in the page corners and at
// the edge midpoints so the press operator can align the two screens.
func drawRegistrationMarks(pdf *gofpdf.Fpdf, pageW, pageH float64) {
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)

	marks := [8][2]float64{
		{regMarkInsetMM, regMarkInsetMM},
		{pageW - regMarkInsetMM, regMarkInsetMM},
		{regMarkInsetMM, pageH - regMarkInsetMM},
		{pageW - regMarkInsetMM, pageH - regMarkInsetMM},
		{pageW / 2, regMarkInsetMM},
		{pageW / 2, pageH - regMarkInsetMM},
		{regMarkInsetMM, pageH / 2},
		{pageW - regMarkInsetMM, pageH / 2},
	}
	for _, c := range marks {
		cx, cy := c[0], c[1]
		pdf.Circle(cx, cy, regMarkRadiusMM, "D")
		pdf.Line(cx-regMarkRadiusMM*1.5, cy, cx+regMarkRadiusMM*1.5, cy)
		pdf.Line(cx, cy-regMarkRadiusMM*1.5, cx, cy+regMarkRadiusMM*1.5)
	}
}
