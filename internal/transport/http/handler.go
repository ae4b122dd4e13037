// Package httpapi is the thin HTTP layer over the issue and verify services.
// Handlers decode, delegate, and encode; business rules live in the services.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/go-chi/chi/v5"

	"github.com/AVN-Software/skern-tag-system/internal/issue"
	"github.com/AVN-Software/skern-tag-system/internal/press"
	"github.com/AVN-Software/skern-tag-system/internal/render"
	"github.com/AVN-Software/skern-tag-system/internal/verify"
	dErrors "github.com/AVN-Software/skern-tag-system/pkg/domain-errors"
	"github.com/AVN-Software/skern-tag-system/pkg/platform/httputil"
	"github.com/AVN-Software/skern-tag-system/pkg/requestcontext"
)

// maxUploadBytes bounds scan uploads. A 1200px PNG tag is well under 4 MiB;
// phone camera JPEGs fit comfortably.
const maxUploadBytes = 16 << 20

// Issuer defines the issuance operations the handler needs.
type Issuer interface {
	Issue(ctx context.Context, batchCode string) (*issue.IssuedTag, error)
	Rerender(ctx context.Context, certID string) (*issue.IssuedTag, error)
	Spec() render.TagSpec
}

// Verifier defines the scan-side operation the handler needs.
type Verifier interface {
	Verify(ctx context.Context, img image.Image) (*verify.Result, error)
}

// Handler wires tag endpoints to the issuance and verification services.
type Handler struct {
	issuer   Issuer
	verifier Verifier
	logger   *slog.Logger
}

func NewHandler(issuer Issuer, verifier Verifier, logger *slog.Logger) *Handler {
	return &Handler{
		issuer:   issuer,
		verifier: verifier,
		logger:   logger,
	}
}

// Register mounts tag endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/tags", h.HandleIssue)
	r.Get("/tags/{certID}/image", h.HandleTagImage)
	r.Get("/tags/{certID}/pdf", h.HandleTagPDF)
	r.Get("/tags/{certID}/press", h.HandleTagPress)
	r.Post("/verify", h.HandleVerify)
}

// HandleIssue handles POST /tags requests.
func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}
	req.Normalize()

	tag, err := h.issuer.Issue(ctx, req.BatchCode)
	if err != nil {
		h.logger.ErrorContext(ctx, "tag issuance failed",
			"request_id", requestID,
			"batch_code", req.BatchCode,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp, err := fromIssuedTag(tag)
	if err != nil {
		h.logger.ErrorContext(ctx, "tag image encoding failed",
			"request_id", requestID,
			"cert_id", tag.Record.CertID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, resp)
}

// HandleTagImage handles GET /tags/{certID}/image requests. The composite is
// re-rendered from the registered keys, so the bytes match the original
// issuance pixel for pixel.
func (h *Handler) HandleTagImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	certID := chi.URLParam(r, "certID")

	tag, err := h.issuer.Rerender(ctx, certID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	encoded, err := render.EncodePNG(tag.Image)
	if err != nil {
		h.logger.ErrorContext(ctx, "tag image encoding failed",
			"request_id", requestcontext.RequestID(ctx),
			"cert_id", certID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(encoded)
}

// HandleTagPDF handles GET /tags/{certID}/pdf requests: the flattened
// composite wrapped in a single-page PDF sized for 600 DPI output.
func (h *Handler) HandleTagPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	certID := chi.URLParam(r, "certID")

	tag, err := h.issuer.Rerender(ctx, certID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	doc, err := press.TagPDF(tag.Image)
	if err != nil {
		h.logger.ErrorContext(ctx, "tag pdf generation failed",
			"request_id", requestcontext.RequestID(ctx),
			"cert_id", certID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", certID+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// HandleTagPress handles GET /tags/{certID}/press requests. The optional
// mark_size_mm query parameter sets the printed edge length on the sheet.
func (h *Handler) HandleTagPress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	certID := chi.URLParam(r, "certID")

	markSize := press.DefaultMarkSizeMM
	if raw := r.URL.Query().Get("mark_size_mm"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "mark_size_mm must be a positive number"))
			return
		}
		markSize = parsed
	}

	tag, err := h.issuer.Rerender(ctx, certID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	spec := h.issuer.Spec()
	underlay := render.Underlay(tag.Bundle, spec.Size)
	qrLayer, err := render.QRLayer(tag.Bundle.CertID, spec)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	sheet, err := press.Sheet(underlay, qrLayer, markSize)
	if err != nil {
		h.logger.ErrorContext(ctx, "press sheet generation failed",
			"request_id", requestcontext.RequestID(ctx),
			"cert_id", certID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", certID+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(sheet)
}

// HandleVerify handles POST /verify requests. The scan image arrives either
// as a multipart "image" part or as the raw request body.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	img, err := decodeScanImage(r)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, err.Error()))
		return
	}

	result, err := h.verifier.Verify(ctx, img)
	if err != nil {
		h.logger.ErrorContext(ctx, "verification failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "scan verified",
		"request_id", requestID,
		"cert_id", result.Analysis.CertID,
		"verdict", result.Verdict,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, result.Report())
}

func decodeScanImage(r *http.Request) (image.Image, error) {
	var reader io.Reader = http.MaxBytesReader(nil, r.Body, maxUploadBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("image")
		if err != nil {
			return nil, fmt.Errorf("missing multipart field %q", "image")
		}
		defer file.Close()
		reader = file
	}

	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("unreadable image: %v", err)
	}
	return img, nil
}
