// Package issue drives tag issuance: derive a fresh identity, register it
// atomically, and render the composite tag image.
package issue

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"regexp"

	"github.com/AVN-Software/skern-tag-system/internal/audit"
	"github.com/AVN-Software/skern-tag-system/internal/domain"
	"github.com/AVN-Software/skern-tag-system/internal/platform/metrics"
	"github.com/AVN-Software/skern-tag-system/internal/registry"
	"github.com/AVN-Software/skern-tag-system/internal/render"
	"github.com/AVN-Software/skern-tag-system/internal/secrets"
	dErrors "github.com/AVN-Software/skern-tag-system/pkg/domain-errors"
	"github.com/AVN-Software/skern-tag-system/pkg/platform/sentinel"
	"github.com/AVN-Software/skern-tag-system/pkg/requestcontext"
)

// maxInsertAttempts bounds the collision-regenerate loop. Collisions are
// effectively 48-bit-improbable; two in a row means something else is wrong.
const maxInsertAttempts = 3

// batchCodePattern: B + two-digit year + 1-3 letter factory code + 3-digit
// sequence, e.g. B26A001.
var batchCodePattern = regexp.MustCompile(`^B\d{2}[A-Z]{1,3}\d{3}$`)

// IssuedTag is the result of one issuance: the identity, its registry view,
// and the rendered composite.
type IssuedTag struct {
	Bundle domain.SecretBundle
	Record domain.RegistryRecord
	Image  *image.RGBA
}

// GenerateBundle matches secrets.GenerateBundle; injectable so tests can
// force collisions.
type GenerateBundle func(batchCode string) (domain.SecretBundle, error)

// Service issues tags against a registry store.
type Service struct {
	store    registry.Store
	generate GenerateBundle
	spec     render.TagSpec
	logger   *slog.Logger
	metrics  *metrics.Metrics
	audit    *audit.Publisher
}

func NewService(store registry.Store, spec render.TagSpec, logger *slog.Logger, m *metrics.Metrics, auditPub *audit.Publisher) *Service {
	return &Service{
		store:    store,
		generate: secrets.GenerateBundle,
		spec:     spec,
		logger:   logger,
		metrics:  m,
		audit:    auditPub,
	}
}

// WithGenerator overrides the bundle generator. Test seam only.
func (s *Service) WithGenerator(g GenerateBundle) *Service {
	s.generate = g
	return s
}

// Issue creates, registers, and renders one tag for the batch. On a cert ID
// collision the whole bundle is regenerated with fresh randomness; an
// existing record is never overwritten.
func (s *Service) Issue(ctx context.Context, batchCode string) (*IssuedTag, error) {
	if !batchCodePattern.MatchString(batchCode) {
		return nil, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("invalid batch code %q", batchCode))
	}

	var bundle domain.SecretBundle
	var record domain.RegistryRecord
	inserted := false
	for attempt := 1; attempt <= maxInsertAttempts; attempt++ {
		var err error
		bundle, err = s.generate(batchCode)
		if err != nil {
			return nil, fmt.Errorf("generate bundle: %w", err)
		}
		record = domain.NewRegistryRecord(bundle, batchCode, requestcontext.Now(ctx))

		err = s.store.Put(ctx, record)
		if err == nil {
			inserted = true
			break
		}
		if !errors.Is(err, sentinel.ErrConflict) {
			return nil, fmt.Errorf("register tag: %w", err)
		}
		s.metrics.IncIssueCollisions()
		s.logger.WarnContext(ctx, "cert id collision, regenerating",
			"request_id", requestcontext.RequestID(ctx),
			"cert_id", bundle.CertID,
			"attempt", attempt,
		)
	}
	if !inserted {
		return nil, dErrors.New(dErrors.CodeConflict, "could not allocate a unique cert id")
	}

	img, err := render.AssembleTag(bundle, s.spec)
	if err != nil {
		return nil, fmt.Errorf("render tag: %w", err)
	}

	s.metrics.IncTagsIssued()
	if err := s.audit.Emit(ctx, audit.Event{
		Action:    audit.ActionTagIssued,
		CertID:    bundle.CertID,
		BatchCode: batchCode,
		RequestID: requestcontext.RequestID(ctx),
	}); err != nil {
		s.logger.ErrorContext(ctx, "audit emit failed", "error", err)
	}
	s.logger.InfoContext(ctx, "tag issued",
		"request_id", requestcontext.RequestID(ctx),
		"cert_id", bundle.CertID,
		"batch_code", batchCode,
	)
	return &IssuedTag{Bundle: bundle, Record: record, Image: img}, nil
}

// Rerender rebuilds the tag image for an already-issued cert ID from its
// registry record. The decorative layers are fully determined by the stored
// keys, so the output is pixel-identical to the original issuance render.
func (s *Service) Rerender(ctx context.Context, certID string) (*IssuedTag, error) {
	record, err := s.store.Get(ctx, certID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "unknown cert id")
		}
		return nil, fmt.Errorf("load registry record: %w", err)
	}
	bundle, err := record.Bundle()
	if err != nil {
		return nil, fmt.Errorf("decode registry record: %w", err)
	}
	img, err := render.AssembleTag(bundle, s.spec)
	if err != nil {
		return nil, fmt.Errorf("render tag: %w", err)
	}
	return &IssuedTag{Bundle: bundle, Record: *record, Image: img}, nil
}

// Spec exposes the rendering spec for adapters that need layer images (press
// output).
func (s *Service) Spec() render.TagSpec {
	return s.spec
}
