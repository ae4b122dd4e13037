// Package analyze runs all component detectors over one photograph and
// aggregates their outcomes. Pure function of the input image; no persisted
// state.
package analyze

import (
	"context"
	"image"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/AVN-Software/skern-tag-system/internal/detect"
	"github.com/AVN-Software/skern-tag-system/internal/domain"
)

// Analyzer fans the four detectors out over a capture. Detectors are
// independent and total, so the fan-out joins without error handling.
type Analyzer struct {
	cfg    detect.Config
	tracer trace.Tracer
}

func New(cfg detect.Config) *Analyzer {
	return &Analyzer{
		cfg:    cfg,
		tracer: otel.Tracer("skern/analyze"),
	}
}

// Analyze produces the structural completeness result for one photograph.
func (a *Analyzer) Analyze(ctx context.Context, img image.Image) domain.AnalysisResult {
	ctx, span := a.tracer.Start(ctx, "tag.analyze")
	defer span.End()

	var result domain.AnalysisResult
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		result.CertID, result.QRDetected = detect.QR(img)
		return nil
	})
	g.Go(func() error {
		result.GuillocheDetected = detect.Guilloche(img, a.cfg)
		return nil
	})
	g.Go(func() error {
		result.GridDetected = detect.Grid(img, a.cfg)
		return nil
	})
	g.Go(func() error {
		result.CornersDetected = detect.Corners(img, a.cfg)
		return nil
	})
	_ = g.Wait()

	result.Finalize()
	span.SetAttributes(
		attribute.Bool("qr_detected", result.QRDetected),
		attribute.Bool("guilloche_detected", result.GuillocheDetected),
		attribute.Bool("grid_detected", result.GridDetected),
		attribute.Bool("corners_detected", result.CornersDetected),
		attribute.Bool("overall_valid", result.OverallValid),
	)
	return result
}
