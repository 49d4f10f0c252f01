package engine

// RiskBand is the coarse classification derived from a risk composite score.
type RiskBand string

const (
	RiskLow      RiskBand = "LOW"
	RiskMedium   RiskBand = "MEDIUM"
	RiskHigh     RiskBand = "HIGH"
	RiskCritical RiskBand = "CRITICAL"
)

// BandFor maps accumulated risk points to a band. Boundaries are exact >=
// cutoffs with no hysteresis.
func BandFor(points float64) RiskBand {
	switch {
	case points >= 80:
		return RiskCritical
	case points >= 60:
		return RiskHigh
	case points >= 30:
		return RiskMedium
	default:
		return RiskLow
	}
}
