package domain

// Confidence bands as shown on dashboard cards.
const (
	BandHigh = "high"
	BandMed  = "med"
	BandLow  = "low"
)

// Clamp01 clamps v into [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ConfidenceBand buckets a confidence value the way dashboard cards color
// it: high at or above 0.90, med at or above 0.75, low below that.
func ConfidenceBand(v float64) string {
	v = Clamp01(v)
	switch {
	case v >= 0.90:
		return BandHigh
	case v >= 0.75:
		return BandMed
	default:
		return BandLow
	}
}
