package domain

// Verdict is the final four-way classification of a verification attempt.
// Reported only, never persisted on the registry record.
type Verdict string

const (
	// VerdictAuthentic: registered identity, all security layers recovered.
	VerdictAuthentic Verdict = "AUTHENTIC"
	// VerdictSuspicious: registered identity with incomplete layers. Could be
	// poor capture, wear, or partial forgery; surfaced for manual review.
	VerdictSuspicious Verdict = "SUSPICIOUS"
	// VerdictCounterfeit: a readable identity that was never issued.
	VerdictCounterfeit Verdict = "COUNTERFEIT"
	// VerdictScanFailed: no readable identity at all; a capture failure, not a
	// security verdict.
	VerdictScanFailed Verdict = "SCAN_FAILED"
)
