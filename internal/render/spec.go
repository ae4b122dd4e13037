package render

// TagSpec carries the design-time knobs of one tag rendering. The zero value
// is not usable; construct through DefaultSpec and override as needed.
type TagSpec struct {
	// Size is the square canvas edge in pixels. Practical range 800-1600.
	Size int
	// QRPercent is the QR module area as a percentage of the canvas edge.
	QRPercent int
	// VerifyBaseURL is the issuer endpoint embedded in the QR payload. Only
	// the id= query parameter is a core invariant; the host is convention.
	VerifyBaseURL string
	// FontPath optionally points at a TTF for the text layer. When empty or
	// unreadable the renderer falls back to the embedded Go Regular face.
	FontPath string
}

// DefaultSpec mirrors the production tag geometry.
func DefaultSpec() TagSpec {
	return TagSpec{
		Size:          1200,
		QRPercent:     75,
		VerifyBaseURL: "https://skern.com/verify",
	}
}
