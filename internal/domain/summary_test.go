package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyImpact(t *testing.T) {
	tests := []struct {
		mt   float64
		want string
	}{
		{2e8, "Extinction Event (K-T level)"},
		{2e6, "Global Catastrophe"},
		{2e4, "Continental Disaster"},
		{2000, "Regional Catastrophe"},
		{500, "Major Regional Impact"},
		{100, "Significant Local Impact"},
		{50, "Significant Local Impact"},
		{5, "Moderate Local Impact"},
		{1, "Minor Impact"},
		{0, "Minor Impact"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyImpact(tt.mt), "%g Mt", tt.mt)
	}
}

func TestSummarize_Regional(t *testing.T) {
	s := mustAssess(t, ImpactRequest{Diameter: 500, Velocity: 20}).Summary

	assert.Equal(t, []string{
		"Crater: 21.2 km diameter, 4.2 km deep",
		"Seismic: Magnitude 7.2 earthquake",
		"Total vaporization within 10.6 km",
	}, s.ImmediateEffects)
	assert.Equal(t, []string{
		"Severe blast damage out to ~25 km",
		"Thermal burns within ~12.5 km",
		"Ejecta blanket extends 53 km",
	}, s.RegionalEffects)
	assert.Equal(t, []string{
		"Climate disruption: Regional climate disruption",
		"Duration: 1.0 years",
		"Global agricultural disruption",
		"Potential mass extinction event",
	}, s.GlobalEffects)
}

func TestSummarize_TsunamiArrival(t *testing.T) {
	s := mustAssess(t, ImpactRequest{Diameter: 450, Velocity: 18.5, TargetType: "water"}).Summary
	require.NotEmpty(t, s.RegionalEffects)
	assert.Equal(t, "Tsunami waves reach coastlines in 0.1 hours", s.RegionalEffects[len(s.RegionalEffects)-1])
}

func TestSummarize_SmallImpact(t *testing.T) {
	s := mustAssess(t, ImpactRequest{Diameter: 20, Velocity: 19.2, Density: ptr(3300.0), Angle: ptr(18.0)}).Summary

	assert.Equal(t, "Minor Impact", s.Classification)
	assert.Equal(t, "Severe blast damage out to ~1 km", s.RegionalEffects[0])
	assert.Empty(t, s.GlobalEffects)
	assert.NotNil(t, s.GlobalEffects)
	assert.Equal(t, CasualtyEstimate{Immediate: "1,000 - 1 million", Total: "10,000 - 10 million", Note: "Significant local impact"}, s.Casualties)
	assert.Equal(t, EconomicImpact{CostUSD: "$100 billion - $1 trillion", Note: "Major disaster"}, s.EconomicImpact)
}

func TestSummarize_NoSevereBlast(t *testing.T) {
	s := mustAssess(t, ImpactRequest{Diameter: 5, Velocity: 12, Angle: ptr(20.0)}).Summary
	assert.Equal(t, "No severe blast damage beyond 1 km", s.RegionalEffects[0])
}

func TestEstimateBands(t *testing.T) {
	tests := []struct {
		mt       float64
		note     string
		economic string
	}{
		{2e6, "Extinction-level event", "Incalculable"},
		{2e4, "Global catastrophe", "$100+ trillion"},
		{2000, "Depends heavily on impact location", "$10-100 trillion"},
		{200, "Major regional disaster", "$1-10 trillion"},
		{50, "Significant local impact", "$100 billion - $1 trillion"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.note, estimateCasualties(tt.mt).Note)
		assert.Equal(t, tt.economic, estimateEconomicImpact(tt.mt).CostUSD)
	}
}
