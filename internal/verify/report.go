package verify

import (
	"time"

	"github.com/AVN-Software/skern-tag-system/internal/domain"
)

// Report is the downloadable serialization of one verification attempt.
type Report struct {
	ScanTime           time.Time       `json:"scan_time"`
	CertID             string          `json:"cert_id,omitempty"`
	ComponentsDetected ComponentReport `json:"components_detected"`
	VerificationResult domain.Verdict  `json:"verification_result"`
}

// ComponentReport mirrors the per-layer booleans of the analysis.
type ComponentReport struct {
	QRCode    bool `json:"qr_code"`
	Guilloche bool `json:"guilloche"`
	Grid      bool `json:"grid"`
	Corners   bool `json:"corners"`
}

// Report builds the serializable view of the result.
func (r *Result) Report() Report {
	return Report{
		ScanTime: r.ScannedAt,
		CertID:   r.Analysis.CertID,
		ComponentsDetected: ComponentReport{
			QRCode:    r.Analysis.QRDetected,
			Guilloche: r.Analysis.GuillocheDetected,
			Grid:      r.Analysis.GridDetected,
			Corners:   r.Analysis.CornersDetected,
		},
		VerificationResult: r.Verdict,
	}
}
