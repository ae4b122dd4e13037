package detect

import (
	"image"
	"image/color"
	"strings"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
)

const certIDMarker = "id="

// lightCutoff is the 16-bit luminance above which a pixel is forced to pure
// white before binarization. The grid overlay blends to roughly 207/255 over
// white paper; QR modules under the guilloche stay well below this.
const lightCutoff = 180 * 257

// QR locates and decodes a QR barcode in the photograph and extracts the
// candidate cert ID from the id= query marker. A decodable QR without the
// marker, or with nothing after it, counts as not detected, so foreign QR
// codes never read as a hit.
func QR(img image.Image) (certID string, detected bool) {
	// The zxing port indexes freely into luminance buffers; treat any panic
	// on malformed input the same as a decode failure.
	defer func() {
		if r := recover(); r != nil {
			certID, detected = "", false
		}
	}()

	payload, ok := decodePayload(img)
	if !ok {
		return "", false
	}

	i := strings.Index(payload, certIDMarker)
	if i < 0 {
		return "", false
	}
	id := payload[i+len(certIDMarker):]
	if id == "" {
		return "", false
	}
	return id, true
}

// decodePayload runs progressively more aggressive binarizations. The hybrid
// binarizer thresholds locally and reads the faint grid lines over the code
// as modules; the global black point washes them out, and as a last resort
// the luminance is pre-thresholded so only true modules survive.
func decodePayload(img image.Image) (string, bool) {
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	source := gozxing.NewLuminanceSourceFromImage(img)
	binarizers := []gozxing.Binarizer{
		gozxing.NewHybridBinarizer(source),
		gozxing.NewGlobalHistgramBinarizer(source),
		gozxing.NewHybridBinarizer(gozxing.NewLuminanceSourceFromImage(whitenLight(img))),
	}

	for _, binarizer := range binarizers {
		bmp, err := gozxing.NewBinaryBitmap(binarizer)
		if err != nil {
			continue
		}
		result, err := zxqrcode.NewQRCodeReader().Decode(bmp, hints)
		if err == nil {
			return result.GetText(), true
		}
	}
	return "", false
}

// whitenLight forces near-white pixels to pure white so faint overlays cannot
// shift local module thresholds.
func whitenLight(img image.Image) image.Image {
	bounds := img.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			lum := (299*r + 587*g + 114*b) / 1000
			if lum > lightCutoff {
				lum = 0xffff
			}
			out.SetGray(x, y, color.Gray{Y: uint8(lum >> 8)})
		}
	}
	return out
}
