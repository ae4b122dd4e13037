// Package verify drives the verification flow: analyze a photograph, consult
// the registry for the extracted identity, and classify the outcome.
package verify

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/AVN-Software/skern-tag-system/internal/audit"
	"github.com/AVN-Software/skern-tag-system/internal/domain"
	"github.com/AVN-Software/skern-tag-system/internal/platform/metrics"
	"github.com/AVN-Software/skern-tag-system/internal/registry"
	"github.com/AVN-Software/skern-tag-system/internal/verdict"
	"github.com/AVN-Software/skern-tag-system/pkg/platform/sentinel"
	"github.com/AVN-Software/skern-tag-system/pkg/requestcontext"
)

// Analyzer recovers per-layer presence from one photograph.
type Analyzer interface {
	Analyze(ctx context.Context, img image.Image) domain.AnalysisResult
}

// Result is one verification outcome: the structural analysis, the registry
// record when the identity was issued, and the verdict.
type Result struct {
	Analysis  domain.AnalysisResult
	Record    *domain.RegistryRecord
	Verdict   domain.Verdict
	ScannedAt time.Time
}

// Service verifies photographs against the registry.
type Service struct {
	analyzer Analyzer
	store    registry.Store
	logger   *slog.Logger
	metrics  *metrics.Metrics
	audit    *audit.Publisher
	tracer   trace.Tracer
}

func NewService(analyzer Analyzer, store registry.Store, logger *slog.Logger, m *metrics.Metrics, auditPub *audit.Publisher) *Service {
	return &Service{
		analyzer: analyzer,
		store:    store,
		logger:   logger,
		metrics:  m,
		audit:    auditPub,
		tracer:   otel.Tracer("skern/verify"),
	}
}

// Verify analyzes the photograph and classifies it. Capture-quality failures
// surface as detector booleans, never as errors; only registry infrastructure
// faults propagate.
func (s *Service) Verify(ctx context.Context, img image.Image) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "tag.verify")
	defer span.End()

	scannedAt := requestcontext.Now(ctx)
	analysisStart := time.Now()
	analysis := s.analyzer.Analyze(ctx, img)
	analysisDuration := time.Since(analysisStart)

	var record *domain.RegistryRecord
	if analysis.CertID != "" {
		var err error
		record, err = s.store.Get(ctx, analysis.CertID)
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			// An unreachable registry is not evidence of forgery; fail the
			// request rather than misclassify.
			return nil, fmt.Errorf("registry lookup: %w", err)
		}
	}

	v := verdict.Decide(analysis, record)
	s.metrics.ObserveScan(v, analysisDuration)
	span.SetAttributes(attribute.String("verdict", string(v)))

	if err := s.audit.Emit(ctx, audit.Event{
		Timestamp: scannedAt,
		Action:    audit.ActionTagScanned,
		CertID:    analysis.CertID,
		Verdict:   string(v),
		RequestID: requestcontext.RequestID(ctx),
	}); err != nil {
		s.logger.ErrorContext(ctx, "audit emit failed", "error", err)
	}
	s.logger.InfoContext(ctx, "tag verified",
		"request_id", requestcontext.RequestID(ctx),
		"cert_id", analysis.CertID,
		"verdict", v,
		"overall_valid", analysis.OverallValid,
		"duration_ms", analysisDuration.Milliseconds(),
	)

	return &Result{
		Analysis:  analysis,
		Record:    record,
		Verdict:   v,
		ScannedAt: scannedAt,
	}, nil
}
