package domain

// SeverityForConfidence maps a fall-detection confidence score to a
// severity tier. Tier lower bounds are inclusive: 0.90 is high, 0.70 is
// medium, everything below 0.70 is low.
func SeverityForConfidence(confidence float64) Severity {
	switch {
	case confidence >= 0.9:
		return SeverityHigh
	case confidence >= 0.7:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
