package httpapi

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/AVN-Software/skern-tag-system/internal/issue"
	"github.com/AVN-Software/skern-tag-system/internal/render"
)

// IssueResponse is the public view of a freshly issued tag. The secret keys
// stay server-side; the rendered composite is inlined so the factory line
// can print straight from the issue call, and re-fetchable by cert ID.
type IssueResponse struct {
	CertID       string    `json:"cert_id"`
	SerialNumber string    `json:"serial_number"`
	BatchCode    string    `json:"batch_code"`
	CreatedAt    time.Time `json:"created_at"`
	ImageBase64  string    `json:"image_png_base64,omitempty"`
	ImageURL     string    `json:"image_url"`
	PDFURL       string    `json:"pdf_url"`
	PressURL     string    `json:"press_url"`
}

func fromIssuedTag(tag *issue.IssuedTag) (IssueResponse, error) {
	encoded, err := render.EncodePNG(tag.Image)
	if err != nil {
		return IssueResponse{}, err
	}
	return IssueResponse{
		CertID:       tag.Record.CertID,
		SerialNumber: tag.Record.SerialNumber,
		BatchCode:    tag.Record.BatchCode,
		CreatedAt:    tag.Record.CreatedAt,
		ImageBase64:  base64.StdEncoding.EncodeToString(encoded),
		ImageURL:     fmt.Sprintf("/tags/%s/image", tag.Record.CertID),
		PDFURL:       fmt.Sprintf("/tags/%s/pdf", tag.Record.CertID),
		PressURL:     fmt.Sprintf("/tags/%s/press", tag.Record.CertID),
	}, nil
}
