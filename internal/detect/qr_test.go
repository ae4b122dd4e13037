package detect

import (
	"image"
	"image/draw"
	"testing"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AVN-Software/skern-tag-system/internal/render"
)

func qrOnWhite(t *testing.T, payload string) image.Image {
	t.Helper()
	code, err := qrcode.New(payload, qrcode.Highest)
	require.NoError(t, err)

	canvas := whiteCanvas(600)
	qrImg := code.Image(400)
	draw.Draw(canvas, image.Rect(100, 100, 500, 500), qrImg, qrImg.Bounds().Min, draw.Src)
	return canvas
}

func TestQRExtractsCertID(t *testing.T) {
	img := qrOnWhite(t, "https://skern.com/verify?id=CERT-B26A001-0123456789AB")
	certID, ok := QR(img)
	assert.True(t, ok)
	assert.Equal(t, "CERT-B26A001-0123456789AB", certID)
}

func TestQRReadableUnderGridOverlay(t *testing.T) {
	// The composite draws the semi-transparent grid across the code; the
	// decoder must tolerate the light overlay rather than reading the lines
	// as modules.
	img := qrOnWhite(t, "https://skern.com/verify?id=CERT-B26A001-4F2A9C1D07BE")
	canvas := img.(*image.RGBA)
	grid := render.GridLayer(canvas.Bounds().Dx())
	draw.Draw(canvas, canvas.Bounds(), grid, image.Point{}, draw.Over)

	certID, ok := QR(canvas)
	assert.True(t, ok)
	assert.Equal(t, "CERT-B26A001-4F2A9C1D07BE", certID)
}

func TestQREmptyIDNotDetected(t *testing.T) {
	// A marker with nothing after it carries no identity.
	img := qrOnWhite(t, "https://skern.com/verify?id=")
	certID, ok := QR(img)
	assert.False(t, ok)
	assert.Empty(t, certID)
}

func TestQRForeignPayloadNotDetected(t *testing.T) {
	// A decodable QR without the id= marker must not read as a hit.
	img := qrOnWhite(t, "https://example.com/nothing-to-see")
	certID, ok := QR(img)
	assert.False(t, ok)
	assert.Empty(t, certID)
}

func TestQRNoCodeInImage(t *testing.T) {
	certID, ok := QR(whiteCanvas(600))
	assert.False(t, ok)
	assert.Empty(t, certID)
}

func TestQRDegenerateImage(t *testing.T) {
	certID, ok := QR(image.NewRGBA(image.Rectangle{}))
	assert.False(t, ok)
	assert.Empty(t, certID)
}
