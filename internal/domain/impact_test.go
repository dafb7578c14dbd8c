package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func mustAssess(t *testing.T, r ImpactRequest) ImpactAssessment {
	t.Helper()
	a, err := EvaluateImpact(r)
	require.NoError(t, err)
	return a
}

func TestEvaluateImpact_RegionalScenario(t *testing.T) {
	// 500 m rocky body at 20 km/s and 45° onto land.
	a := mustAssess(t, ImpactRequest{Diameter: 500, Velocity: 20, Density: ptr(3000.0), Angle: ptr(45.0), TargetType: "land"})
	c := a.Calculations

	assert.InEpsilon(t, 1.9634954e11, c.Mass, 1e-6)
	assert.InEpsilon(t, 9385.733, c.KineticEnergyMegatons, 1e-6)
	assert.InEpsilon(t, 6636.716, c.EffectiveMegatons, 1e-6)
	assert.InEpsilon(t, c.KineticEnergyMegatons/0.015, c.HiroshimaEquivalent, 1e-12)
	assert.InEpsilon(t, 21.1553, c.CraterDiameterKM, 1e-4)
	assert.InEpsilon(t, c.CraterDiameterKM/5, c.CraterDepthKM, 1e-12)
	assert.InEpsilon(t, c.CraterDiameterKM*1000, c.CraterDiameterM, 1e-12)
	assert.InEpsilon(t, 1487.23, c.CraterVolumeKM3, 1e-4)
	assert.InEpsilon(t, 7.1572, c.SeismicMagnitude, 1e-4)
	assert.Nil(t, c.Tsunami)

	// The sin(45°) yield lands in the 10³–10⁴ Mt band.
	assert.Equal(t, "Regional Catastrophe", a.Summary.Classification)
	assert.Equal(t, "Regional climate disruption", c.CoolingEffect)
	assert.Equal(t, 1.0, c.ClimateDisruptionYears)
	assert.Equal(t, "$10-100 trillion", a.Summary.EconomicImpact.CostUSD)
	assert.Equal(t, "1-100 million", a.Summary.Casualties.Immediate)

	assert.Equal(t, ImpactParameters{Diameter: 500, Velocity: 20, Density: 3000, Angle: 45, TargetType: TargetLand}, a.Parameters)
}

func TestEvaluateImpact_Defaults(t *testing.T) {
	a := mustAssess(t, ImpactRequest{Diameter: 100, Velocity: 17})
	assert.Equal(t, 3000.0, a.Parameters.Density)
	assert.Equal(t, 45.0, a.Parameters.Angle)
	assert.Equal(t, TargetLand, a.Parameters.TargetType)
}

func TestEvaluateImpact_Rejects(t *testing.T) {
	tests := []struct {
		name string
		req  ImpactRequest
	}{
		{"zero diameter", ImpactRequest{Diameter: 0, Velocity: 20}},
		{"negative velocity", ImpactRequest{Diameter: 100, Velocity: -1}},
		{"explicit zero density", ImpactRequest{Diameter: 100, Velocity: 20, Density: ptr(0.0)}},
		{"unknown target", ImpactRequest{Diameter: 100, Velocity: 20, TargetType: "lava"}},
		{"latitude out of range", ImpactRequest{Diameter: 100, Velocity: 20, Location: &Geo{Lat: 91}}},
		{"energy overflows", ImpactRequest{Diameter: 1e110, Velocity: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := EvaluateImpact(tt.req)
			require.ErrorIs(t, err, ErrInvalidParameter)
			assert.Equal(t, ImpactAssessment{}, a)
		})
	}
}

func TestCraterDiameter(t *testing.T) {
	t.Run("monotonic in yield", func(t *testing.T) {
		prev := 0.0
		for _, mt := range []float64{0.01, 1, 10, 100, 1e4, 1e8} {
			d := CraterDiameterKM(mt, TargetLand)
			assert.Greater(t, d, prev)
			prev = d
		}
	})

	t.Run("water crater exceeds land crater", func(t *testing.T) {
		for _, mt := range []float64{0.5, 50, 5000} {
			land := CraterDiameterKM(mt, TargetLand)
			for _, tgt := range []TargetType{TargetWater, TargetOcean, TargetCoast} {
				water := CraterDiameterKM(mt, tgt)
				assert.Greater(t, water, land)
				assert.InEpsilon(t, 2.2/1.8, water/land, 1e-12)
			}
		}
	})
}

func TestSeismicIntensities(t *testing.T) {
	c := mustAssess(t, ImpactRequest{Diameter: 500, Velocity: 20}).Calculations
	require.Len(t, c.SeismicIntensities, 6)

	want := []SeismicIntensity{
		{DistanceKM: 10, Intensity: 12, Label: "XII (Total destruction)"},
		{DistanceKM: 50, Label: "VI-VII (Strong - 6.1)"},
		{DistanceKM: 100, Label: "IV-V (Moderate - 5.7)"},
		{DistanceKM: 500, Label: "IV-V (Moderate - 4.6)"},
		{DistanceKM: 1000, Label: "IV-V (Moderate - 4.2)"},
		{DistanceKM: 5000, Label: "I-III (Minor - 3.1)"},
	}
	for i, w := range want {
		got := c.SeismicIntensities[i]
		assert.Equal(t, w.DistanceKM, got.DistanceKM)
		assert.Equal(t, w.Label, got.Label)
		assert.GreaterOrEqual(t, got.Intensity, 0.0)
		assert.LessOrEqual(t, got.Intensity, 12.0)
	}

	t.Run("clamped at zero far away", func(t *testing.T) {
		small := mustAssess(t, ImpactRequest{Diameter: 20, Velocity: 19.2, Density: ptr(3300.0), Angle: ptr(18.0)}).Calculations
		last := small.SeismicIntensities[len(small.SeismicIntensities)-1]
		assert.Zero(t, last.Intensity)
		assert.Equal(t, "I-III (Minor - 0.0)", last.Label)
	})
}

func TestSeismicMagnitude(t *testing.T) {
	assert.Zero(t, SeismicMagnitude(0))
	assert.Zero(t, SeismicMagnitude(-1))
	assert.Zero(t, SeismicMagnitude(10)) // 0.67 - 5.87 < 0
	assert.InEpsilon(t, 0.67*15-5.87, SeismicMagnitude(1e15), 1e-12)
}

func TestBlastEffects(t *testing.T) {
	c := mustAssess(t, ImpactRequest{Diameter: 500, Velocity: 20}).Calculations

	wantPSI := []float64{100, 20, 10, 5, 2, 1, 0.1, 0.1}
	require.Len(t, c.BlastEffects, len(wantPSI))
	for i, b := range c.BlastEffects {
		assert.Equal(t, blastDistancesKM[i], b.DistanceKM)
		assert.Equal(t, wantPSI[i], b.OverpressurePSI, "distance %g", b.DistanceKM)
		if i > 0 {
			assert.LessOrEqual(t, b.OverpressurePSI, c.BlastEffects[i-1].OverpressurePSI)
		}
	}
	assert.Equal(t, "Complete annihilation", c.BlastEffects[0].Effect)
	assert.Equal(t, "Minor damage", c.BlastEffects[7].Effect)
	assert.Equal(t, 25.0, SevereBlastRadiusKM(c.BlastEffects))
}

func TestOverpressureTiers(t *testing.T) {
	tests := []struct {
		scaled float64
		psi    float64
		effect string
	}{
		{0.05, 100, "Complete annihilation"},
		{0.1, 20, "Reinforced concrete destroyed"},
		{0.7, 10, "Heavy damage to buildings"},
		{1.5, 5, "Most buildings collapse"},
		{3, 2, "Moderate damage to structures"},
		{7, 1, "Window breakage"},
		{10, 0.1, "Minor damage"},
		{math.Inf(1), 0.1, "Minor damage"},
	}
	for _, tt := range tests {
		psi, effect := overpressureTier(tt.scaled)
		assert.Equal(t, tt.psi, psi, "scaled %g", tt.scaled)
		assert.Equal(t, tt.effect, effect)
	}
}

func TestThermalEffects(t *testing.T) {
	c := mustAssess(t, ImpactRequest{Diameter: 20, Velocity: 19.2, Density: ptr(3300.0), Angle: ptr(18.0)}).Calculations
	require.Len(t, c.ThermalEffects, 7)

	thermalMt := c.EffectiveMegatons * 0.3
	for _, e := range c.ThermalEffects {
		want := thermalMt * 1e6 / (4 * math.Pi * e.DistanceKM * e.DistanceKM)
		assert.InEpsilon(t, want, e.ThermalFluxCalCM, 1e-12)
	}
	assert.Equal(t, "Everything ignites, vaporization", c.ThermalEffects[0].Effect)
	assert.Equal(t, "Third-degree burns, fires", c.ThermalEffects[1].Effect)
	assert.Equal(t, "Second-degree burns", c.ThermalEffects[2].Effect)
	assert.Equal(t, "Pain, minor burns", c.ThermalEffects[3].Effect)
	assert.Equal(t, "No significant burns", c.ThermalEffects[4].Effect)
}

func TestTsunami_OnlyForWaterTargets(t *testing.T) {
	tests := []struct {
		target string
		want   bool
	}{
		{"", false},
		{"land", false},
		{"LAND", false},
		{"water", true},
		{"ocean", true},
		{"coast", true},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			c := mustAssess(t, ImpactRequest{Diameter: 300, Velocity: 20, TargetType: tt.target}).Calculations
			assert.Equal(t, tt.want, c.Tsunami != nil)

			body, err := json.Marshal(c)
			require.NoError(t, err)
			var fields map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(body, &fields))
			_, present := fields["tsunami"]
			assert.Equal(t, tt.want, present)
		})
	}
}

func TestTsunami_Propagation(t *testing.T) {
	c := mustAssess(t, ImpactRequest{Diameter: 450, Velocity: 18.5, TargetType: "water"}).Calculations
	require.NotNil(t, c.Tsunami)
	ts := c.Tsunami

	assert.InEpsilon(t, 0.1*math.Sqrt(c.EffectiveMegatons*1000), ts.InitialHeightM, 1e-12)
	assert.InEpsilon(t, 713.127, ts.SpeedKMH, 1e-6)
	require.Len(t, ts.Effects, 5)

	wantHazard := []string{
		"Catastrophic - mega-tsunami",
		"Extreme - regional devastation",
		"Extreme - regional devastation",
		"Severe - major coastal damage",
		"Severe - major coastal damage",
	}
	for i, e := range ts.Effects {
		assert.InEpsilon(t, ts.InitialHeightM*math.Sqrt(100/e.DistanceKM), e.WaveHeightM, 1e-12)
		assert.InEpsilon(t, e.DistanceKM/ts.SpeedKMH, e.ArrivalTimeHours, 1e-12)
		assert.Equal(t, wantHazard[i], e.HazardLevel)
	}
}

func TestAtmosphereAndEjecta(t *testing.T) {
	c := mustAssess(t, ImpactRequest{Diameter: 500, Velocity: 20}).Calculations

	assert.InEpsilon(t, c.CraterVolumeKM3*2.5e12, c.EjectaMassKG, 1e-12)
	assert.InEpsilon(t, c.EjectaMassKG*0.001, c.AtmosphericDustKG, 1e-12)
	assert.InEpsilon(t, c.CraterDiameterKM*2.5, c.EjectaBlanketRadiusKM, 1e-12)

	// Blanket radius ~52.9 km keeps 10 and 50 km, drops 100 and 500 km.
	require.Len(t, c.EjectaEffects, 2)
	assert.Equal(t, 10.0, c.EjectaEffects[0].DistanceKM)
	assert.Equal(t, "Severe damage from ejecta", c.EjectaEffects[0].Effect)
	assert.Equal(t, 50.0, c.EjectaEffects[1].DistanceKM)
	assert.Equal(t, "Moderate ejecta damage", c.EjectaEffects[1].Effect)

	t.Run("small impact leaves no sampled ejecta", func(t *testing.T) {
		small := mustAssess(t, ImpactRequest{Diameter: 20, Velocity: 19.2}).Calculations
		assert.Empty(t, small.EjectaEffects)
		assert.NotNil(t, small.EjectaEffects)
	})
}

func TestClimateTier(t *testing.T) {
	tests := []struct {
		mt    float64
		label string
		years float64
	}{
		{2e6, "Extinction-level event", 10},
		{2e4, "Global winter", 3},
		{2000, "Regional climate disruption", 1},
		{200, "Temporary cooling", 0.1},
		{100, "Negligible", 0},
	}
	for _, tt := range tests {
		label, years := climateTier(tt.mt)
		assert.Equal(t, tt.label, label)
		assert.Equal(t, tt.years, years)
	}
}

func TestGrazingImpactIsFinite(t *testing.T) {
	a := mustAssess(t, ImpactRequest{Diameter: 100, Velocity: 20, Angle: ptr(0.0), TargetType: "water"})
	c := a.Calculations

	assert.Zero(t, c.EffectiveEnergy)
	assert.Zero(t, c.CraterDiameterKM)
	assert.Zero(t, c.SeismicMagnitude)
	assert.Equal(t, "Minor Impact", a.Summary.Classification)
	for _, b := range c.BlastEffects {
		assert.Equal(t, 0.1, b.OverpressurePSI)
	}
	_, err := json.Marshal(a)
	require.NoError(t, err, "all fields must be JSON-encodable")
}

func TestEvaluateImpact_Idempotent(t *testing.T) {
	req := ImpactRequest{Diameter: 340, Velocity: 28.5, Density: ptr(2800.0), Angle: ptr(60.0), TargetType: "ocean"}
	first := mustAssess(t, req)
	second := mustAssess(t, req)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated evaluation differs (-first +second):\n%s", diff)
	}
}
