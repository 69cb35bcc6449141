package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityForConfidence_Tiers(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		want       Severity
	}{
		{"certain fall", 1.0, SeverityHigh},
		{"high tier", 0.95, SeverityHigh},
		{"high lower bound inclusive", 0.90, SeverityHigh},
		{"just below high", 0.8999, SeverityMedium},
		{"medium tier", 0.75, SeverityMedium},
		{"medium lower bound inclusive", 0.70, SeverityMedium},
		{"just below medium", 0.6999, SeverityLow},
		{"low tier", 0.3, SeverityLow},
		{"zero confidence", 0.0, SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SeverityForConfidence(tt.confidence))
		})
	}
}

func TestParseActivityKind(t *testing.T) {
	for _, valid := range []string{"standing", "walking", "sitting", "sleeping", "unknown"} {
		kind, ok := ParseActivityKind(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, ActivityKind(valid), kind)
	}

	for _, invalid := range []string{"", "running", "STANDING", "fall"} {
		_, ok := ParseActivityKind(invalid)
		assert.False(t, ok, invalid)
	}
}
