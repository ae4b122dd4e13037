// Package detect recovers per-layer presence from a photograph. Every
// detector is a total function over well-formed image input: internal faults
// collapse to "not detected" so a damaged capture degrades the verdict
// instead of crashing the pipeline.
package detect

// Config carries the detector tunables. The defaults are the empirically
// calibrated production values; they are fields rather than constants so they
// can be recalibrated against real capture hardware without a code change.
type Config struct {
	// GuillocheAreaRatio is the fraction of total pixel area a single hue
	// band must strictly exceed to count as present. Calibrated to tolerate
	// partial occlusion and wear while rejecting accidental color noise.
	GuillocheAreaRatio float64
	// MinSaturation/MinValue reject washed-out pixels before hue banding,
	// on colorful's [0,1] scale.
	MinSaturation float64
	MinValue      float64

	// Grid detection: a coarse statistical proxy for "a regular grid is
	// present", not a geometric grid fit.
	GridMinSegments   int
	GridMinLineLength int
	GridMaxLineGap    int
	GridVoteThreshold int

	// Corner detection via a Harris-style response map.
	CornerMinCount      int
	CornerResponseRatio float64
	HarrisK             float64
}

// DefaultConfig mirrors the production calibration.
func DefaultConfig() Config {
	return Config{
		GuillocheAreaRatio:  0.02,
		MinSaturation:       50.0 / 255,
		MinValue:            50.0 / 255,
		GridMinSegments:     10,
		GridMinLineLength:   50,
		GridMaxLineGap:      10,
		GridVoteThreshold:   100,
		CornerMinCount:      4,
		CornerResponseRatio: 0.01,
		HarrisK:             0.04,
	}
}
