package domain

// AnalysisResult is the outcome of running all four component detectors over
// one photograph. Ephemeral; produced per scan and never persisted.
type AnalysisResult struct {
	QRDetected        bool   `json:"qr_detected"`
	CertID            string `json:"cert_id,omitempty"`
	GuillocheDetected bool   `json:"guilloche_detected"`
	GridDetected      bool   `json:"grid_detected"`
	CornersDetected   bool   `json:"corners_detected"`
	OverallValid      bool   `json:"overall_valid"`
}

// Finalize derives OverallValid: a tag is structurally complete only when
// every security layer is independently recoverable.
func (r *AnalysisResult) Finalize() {
	r.OverallValid = r.QRDetected && r.GuillocheDetected && r.GridDetected && r.CornersDetected
}
