// Package render produces the five transparent layers of a tag and composites
// them into the distributable image. Renderers are pure functions of the
// identity/secrets plus a TagSpec; pixels not drawn stay fully transparent.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
)

// QRLayer encodes the verification URL for certID at the highest error
// correction level, so the code survives print degradation and the border
// marks overlapping its quiet zone. The code is centered at QRPercent of the
// canvas edge.
func QRLayer(certID string, spec TagSpec) (*image.RGBA, error) {
	url := fmt.Sprintf("%s?id=%s", spec.VerifyBaseURL, certID)
	code, err := qrcode.New(url, qrcode.Highest)
	if err != nil {
		return nil, fmt.Errorf("encode qr payload: %w", err)
	}

	target := spec.Size * spec.QRPercent / 100
	qrImg := code.Image(target)

	layer := image.NewRGBA(image.Rect(0, 0, spec.Size, spec.Size))
	off := (spec.Size - target) / 2
	// draw.Src keeps the opaque white module background, matching a printed
	// QR patch rather than transparent modules.
	draw.Draw(layer, image.Rect(off, off, off+target, off+target), qrImg, qrImg.Bounds().Min, draw.Src)
	return layer, nil
}

// EncodePNG flattens an image to PNG bytes for distribution.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
