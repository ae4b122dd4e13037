// Package verdict holds the state-free classification combining analysis
// output with the registry lookup. The rules are centralized here so they
// stay testable in isolation.
package verdict

import "github.com/AVN-Software/skern-tag-system/internal/domain"

// Decide applies the verdict table. Rule priority (fail-fast):
//  1. No readable identity at all is a capture failure, not a security
//     verdict: SCAN_FAILED.
//  2. A readable but unregistered identity is COUNTERFEIT outright; genuine
//     identities are registered at issuance with no exception window.
//  3. A registered identity with every layer recovered is AUTHENTIC.
//  4. A registered identity with incomplete layers is ambiguous (poor
//     capture, wear, or partial forgery) and surfaces as SUSPICIOUS for
//     manual re-inspection; never authenticated, never flatly rejected.
func Decide(analysis domain.AnalysisResult, record *domain.RegistryRecord) domain.Verdict {
	switch {
	case analysis.CertID == "":
		return domain.VerdictScanFailed
	case record == nil:
		return domain.VerdictCounterfeit
	case analysis.OverallValid:
		return domain.VerdictAuthentic
	default:
		return domain.VerdictSuspicious
	}
}
