package render

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AVN-Software/skern-tag-system/internal/domain"
)

const testSize = 800

func testBundle() domain.SecretBundle {
	return domain.SecretBundle{
		CertID:       "CERT-B26A001-0123456789AB",
		GuillocheKey: [16]byte{41, 87, 12, 200, 3, 99, 150, 77, 8, 222, 130, 54, 19, 240, 66, 101},
		BorderKey:    [16]byte{17, 93, 211, 5, 140, 62, 250, 33, 70, 118, 9, 185, 44, 201, 27, 156},
		SerialNumber: "SK-00FFAA1122BB",
	}
}

func TestGuillocheLayerDeterministic(t *testing.T) {
	bundle := testBundle()
	a := GuillocheLayer(bundle.GuillocheKey, testSize)
	b := GuillocheLayer(bundle.GuillocheKey, testSize)
	assert.True(t, bytes.Equal(a.Pix, b.Pix), "same key must render pixel-identical output")
}

func TestGuillocheLayerKeySensitivity(t *testing.T) {
	bundle := testBundle()
	other := bundle.GuillocheKey
	other[0] ^= 0xFF
	other[5] ^= 0xFF

	a := GuillocheLayer(bundle.GuillocheKey, testSize)
	b := GuillocheLayer(other, testSize)
	assert.False(t, bytes.Equal(a.Pix, b.Pix), "different keys must render different patterns")
}

func TestBorderLayerDeterministic(t *testing.T) {
	bundle := testBundle()
	a := BorderLayer(bundle.BorderKey, testSize)
	b := BorderLayer(bundle.BorderKey, testSize)
	assert.True(t, bytes.Equal(a.Pix, b.Pix))

	other := bundle.BorderKey
	other[3] ^= 0xFF
	c := BorderLayer(other, testSize)
	assert.False(t, bytes.Equal(a.Pix, c.Pix))
}

func TestBorderLayerCornerMarks(t *testing.T) {
	layer := BorderLayer(testBundle().BorderKey, testSize)
	// The horizontal leg of the top-left L-mark is centered on y=0, so
	// (60, 2) sits inside the stroke.
	_, _, _, a := layer.At(60, 2).RGBA()
	assert.NotZero(t, a, "expected opaque corner mark pixel")
}

func TestGridLayerCoversCanvas(t *testing.T) {
	layer := GridLayer(testSize)
	// A grid line runs along x=64; the canvas center between lines is empty.
	_, _, _, onLine := layer.At(64, 100).RGBA()
	_, _, _, offLine := layer.At(32, 33).RGBA()
	assert.NotZero(t, onLine)
	assert.Zero(t, offLine)
}

func TestQRLayerCentered(t *testing.T) {
	spec := DefaultSpec()
	spec.Size = testSize
	layer, err := QRLayer(testBundle().CertID, spec)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, testSize, testSize), layer.Bounds())
	// Outside the QR patch the layer stays transparent.
	_, _, _, a := layer.At(5, testSize/2).RGBA()
	assert.Zero(t, a)
	// Center of the patch is opaque (white quiet zone or black module).
	_, _, _, a = layer.At(testSize/2, testSize/2).RGBA()
	assert.NotZero(t, a)
}

func TestTextLayerNeverFails(t *testing.T) {
	spec := DefaultSpec()
	spec.Size = testSize
	spec.FontPath = "/nonexistent/font.ttf"
	layer := TextLayer("CERT-B26A001-0123456789AB", "SK-00FFAA1122BB", spec)

	opaque := 0
	for i := 3; i < len(layer.Pix); i += 4 {
		if layer.Pix[i] != 0 {
			opaque++
		}
	}
	assert.Greater(t, opaque, 0, "fallback font must still render glyphs")
}

func TestAssembleTagOpaque(t *testing.T) {
	spec := DefaultSpec()
	spec.Size = testSize
	tag, err := AssembleTag(testBundle(), spec)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, testSize, testSize), tag.Bounds())
	for i := 3; i < len(tag.Pix); i += 4 {
		if tag.Pix[i] != 255 {
			t.Fatalf("flattened tag must be fully opaque, alpha %d at offset %d", tag.Pix[i], i)
		}
	}
}

func TestUnderlayExcludesQR(t *testing.T) {
	under := Underlay(testBundle(), testSize)
	// Underlay carries guilloche+border only; the canvas region between the
	// corner marks and the pattern's inner gaps keeps transparency, which the
	// press pass relies on to not occlude the QR screen.
	transparent := 0
	for i := 3; i < len(under.Pix); i += 4 {
		if under.Pix[i] == 0 {
			transparent++
		}
	}
	assert.Greater(t, transparent, testSize*testSize/2)
}
