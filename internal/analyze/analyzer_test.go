package analyze

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AVN-Software/skern-tag-system/internal/detect"
	"github.com/AVN-Software/skern-tag-system/internal/domain"
	"github.com/AVN-Software/skern-tag-system/internal/render"
)

func freshBundle() domain.SecretBundle {
	return domain.SecretBundle{
		CertID:       "CERT-B26A001-4F2A9C1D07BE",
		GuillocheKey: [16]byte{41, 87, 12, 200, 3, 99, 150, 77, 8, 222, 130, 54, 19, 240, 66, 101},
		BorderKey:    [16]byte{17, 93, 211, 5, 140, 62, 250, 33, 70, 118, 9, 185, 44, 201, 27, 156},
		SerialNumber: "SK-00FFAA1122BB",
	}
}

func testSpec() render.TagSpec {
	spec := render.DefaultSpec()
	spec.Size = 1024
	return spec
}

func TestRoundTripCleanComposite(t *testing.T) {
	bundle := freshBundle()
	tag, err := render.AssembleTag(bundle, testSpec())
	require.NoError(t, err)

	result := New(detect.DefaultConfig()).Analyze(context.Background(), tag)

	assert.True(t, result.QRDetected, "qr layer must be recoverable from a clean composite")
	assert.True(t, result.GuillocheDetected)
	assert.True(t, result.GridDetected)
	assert.True(t, result.CornersDetected)
	assert.True(t, result.OverallValid)
	assert.Equal(t, bundle.CertID, result.CertID)
}

func TestBlankedGuillocheFlipsOnlyGuilloche(t *testing.T) {
	bundle := freshBundle()
	spec := testSpec()

	qr, err := render.QRLayer(bundle.CertID, spec)
	require.NoError(t, err)
	composite := render.Flatten(spec.Size,
		qr,
		render.GridLayer(spec.Size),
		// guilloche layer withheld
		render.BorderLayer(bundle.BorderKey, spec.Size),
		render.TextLayer(bundle.CertID, bundle.SerialNumber, spec),
	)

	result := New(detect.DefaultConfig()).Analyze(context.Background(), composite)

	assert.False(t, result.GuillocheDetected)
	assert.False(t, result.OverallValid)
	assert.True(t, result.QRDetected)
	assert.True(t, result.GridDetected)
	assert.True(t, result.CornersDetected)
}
