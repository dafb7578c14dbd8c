package domain

import (
	"fmt"
	"math"
)

const (
	earthGravity = 9.81 // m/s²

	// oceanDepthM is the mean ocean depth assumed for deep-water tsunami speed.
	oceanDepthM = 4000.0

	// ejectaDensityKgPerKM3 converts excavated crater volume to ejecta mass.
	ejectaDensityKgPerKM3 = 2.5e12

	// stratosphericDustFraction is the share of ejecta lofted into the stratosphere.
	stratosphericDustFraction = 0.001

	// thermalFraction is the share of effective yield radiated as heat.
	thermalFraction = 0.3

	landCraterConstant  = 1.8 // km per Mt^0.28, hard rock
	waterCraterConstant = 2.2 // km per Mt^0.28, transient seafloor crater
	craterExponent      = 0.28
	blastExponent       = 0.33
)

// Sample distance ladders, in km, ascending.
var (
	seismicDistancesKM = []float64{10, 50, 100, 500, 1000, 5000}
	blastDistancesKM   = []float64{1, 5, 10, 25, 50, 100, 250, 500}
	thermalDistancesKM = []float64{1, 5, 10, 25, 50, 100, 250}
	tsunamiDistancesKM = []float64{100, 500, 1000, 2000, 5000}
	ejectaDistancesKM  = []float64{10, 50, 100, 500}
)

// ImpactRequest is the impact evaluation input. Density, angle and target type
// are optional and default to a rocky body at 45° striking land.
type ImpactRequest struct {
	Diameter   float64  `json:"diameter"`
	Velocity   float64  `json:"velocity"`
	Density    *float64 `json:"density,omitempty"`
	Angle      *float64 `json:"angle,omitempty"`
	TargetType string   `json:"target_type,omitempty"`
	Location   *Geo     `json:"location,omitempty"`
}

// Scenario validates the request and applies defaults.
func (r ImpactRequest) Scenario() (ImpactScenario, error) {
	density := RockyDensity
	if r.Density != nil {
		density = *r.Density
	}
	angle := DefaultImpactAngle
	if r.Angle != nil {
		angle = *r.Angle
	}
	imp, err := NewImpactor(r.Diameter, r.Velocity, density, angle)
	if err != nil {
		return ImpactScenario{}, err
	}
	target, err := ParseTargetType(r.TargetType)
	if err != nil {
		return ImpactScenario{}, err
	}
	if r.Location != nil {
		if err := validateGeo(*r.Location); err != nil {
			return ImpactScenario{}, err
		}
	}
	return ImpactScenario{Impactor: imp, Target: target, Location: r.Location}, nil
}

// EvaluateImpact validates the request and runs the consequence calculator.
// On error no assessment is returned.
func EvaluateImpact(r ImpactRequest) (ImpactAssessment, error) {
	s, err := r.Scenario()
	if err != nil {
		return ImpactAssessment{}, err
	}
	return AssessImpact(s), nil
}

// AssessImpact computes the hazard record and its summary for a scenario.
func AssessImpact(s ImpactScenario) ImpactAssessment {
	effects := CalculateEffects(s)
	imp := s.Impactor
	return ImpactAssessment{
		Parameters: ImpactParameters{
			Diameter:   imp.Diameter(),
			Velocity:   imp.Velocity(),
			Density:    imp.Density(),
			Angle:      imp.Angle(),
			TargetType: s.Target,
			Location:   s.Location,
		},
		Calculations: effects,
		Summary:      Summarize(effects),
	}
}

// CalculateEffects runs the single-pass hazard pipeline: energy, crater,
// seismic, blast, thermal, tsunami, atmosphere and ejecta.
func CalculateEffects(s ImpactScenario) ImpactEffects {
	imp := s.Impactor
	e := ImpactEffects{
		Mass:                imp.Mass(),
		KineticEnergyJoules: imp.KineticEnergy(),
		EffectiveEnergy:     imp.ObliqueEnergy(),
		VerticalEnergy:      imp.VerticalEnergy(),
	}
	e.KineticEnergyMegatons = Megatons(e.KineticEnergyJoules)
	e.EffectiveMegatons = Megatons(e.EffectiveEnergy)
	e.VerticalMegatons = Megatons(e.VerticalEnergy)
	e.HiroshimaEquivalent = e.KineticEnergyMegatons / hiroshimaMegatons

	applyCrater(&e, s.Target)
	applySeismic(&e)
	e.BlastEffects = blastEffects(e.EffectiveMegatons)
	e.ThermalEffects = thermalEffects(e.EffectiveMegatons)
	if s.Target.IsWaterLike() {
		t := tsunami(e.EffectiveMegatons)
		e.Tsunami = &t
	}
	applyAtmosphere(&e)
	applyEjecta(&e)
	return e
}

// CraterDiameterKM applies the crater scaling law for the given target.
func CraterDiameterKM(effectiveMegatons float64, target TargetType) float64 {
	c := landCraterConstant
	if target.IsWaterLike() {
		c = waterCraterConstant
	}
	return c * math.Pow(effectiveMegatons, craterExponent)
}

func applyCrater(e *ImpactEffects, target TargetType) {
	d := CraterDiameterKM(e.EffectiveMegatons, target)
	depth := d / 5
	e.CraterDiameterKM = d
	e.CraterDiameterM = d * 1000
	e.CraterDepthKM = depth
	e.CraterDepthM = depth * 1000
	e.CraterVolumeKM3 = (math.Pi / 4) * d * d * depth
}

// SeismicMagnitude is the Richter magnitude for an energy in joules, never negative.
func SeismicMagnitude(joules float64) float64 {
	if joules <= 0 {
		return 0
	}
	return math.Max(0, 0.67*math.Log10(joules)-5.87)
}

func applySeismic(e *ImpactEffects) {
	m := SeismicMagnitude(e.EffectiveEnergy)
	craterRadius := e.CraterDiameterKM / 2

	out := make([]SeismicIntensity, 0, len(seismicDistancesKM))
	for _, d := range seismicDistancesKM {
		if d < craterRadius {
			out = append(out, SeismicIntensity{DistanceKM: d, Intensity: 12, Label: "XII (Total destruction)"})
			continue
		}
		v := clamp(m-1.5*math.Log10(d/craterRadius), 0, 12)
		out = append(out, SeismicIntensity{DistanceKM: d, Intensity: v, Label: mercalliLabel(v)})
	}
	e.SeismicMagnitude = m
	e.SeismicIntensities = out
}

func mercalliLabel(v float64) string {
	switch {
	case v >= 10:
		return fmt.Sprintf("X-XII (Extreme - %.1f)", v)
	case v >= 8:
		return fmt.Sprintf("VIII-IX (Severe - %.1f)", v)
	case v >= 6:
		return fmt.Sprintf("VI-VII (Strong - %.1f)", v)
	case v >= 4:
		return fmt.Sprintf("IV-V (Moderate - %.1f)", v)
	default:
		return fmt.Sprintf("I-III (Minor - %.1f)", v)
	}
}

// overpressureTier buckets a yield-scaled distance (km/Mt^0.33) into a peak
// overpressure and the structural damage it causes.
func overpressureTier(scaled float64) (psi float64, effect string) {
	switch {
	case scaled < 0.1:
		return 100, "Complete annihilation"
	case scaled < 0.5:
		return 20, "Reinforced concrete destroyed"
	case scaled < 1:
		return 10, "Heavy damage to buildings"
	case scaled < 2:
		return 5, "Most buildings collapse"
	case scaled < 5:
		return 2, "Moderate damage to structures"
	case scaled < 10:
		return 1, "Window breakage"
	default:
		return 0.1, "Minor damage"
	}
}

func blastEffects(megatons float64) []BlastEffect {
	yieldScale := math.Pow(megatons, blastExponent)
	out := make([]BlastEffect, 0, len(blastDistancesKM))
	for _, d := range blastDistancesKM {
		psi, effect := overpressureTier(d / yieldScale)
		out = append(out, BlastEffect{DistanceKM: d, OverpressurePSI: psi, Effect: effect})
	}
	return out
}

func burnSeverity(flux float64) string {
	switch {
	case flux > 500:
		return "Everything ignites, vaporization"
	case flux > 100:
		return "Third-degree burns, fires"
	case flux > 40:
		return "Second-degree burns"
	case flux > 10:
		return "First-degree burns"
	case flux > 5:
		return "Pain, minor burns"
	default:
		return "No significant burns"
	}
}

func thermalEffects(megatons float64) []ThermalEffect {
	thermalMt := megatons * thermalFraction
	out := make([]ThermalEffect, 0, len(thermalDistancesKM))
	for _, d := range thermalDistancesKM {
		flux := (thermalMt * 1e6) / (4 * math.Pi * d * d)
		out = append(out, ThermalEffect{DistanceKM: d, ThermalFluxCalCM: flux, Effect: burnSeverity(flux)})
	}
	return out
}

func tsunamiHazard(heightM float64) string {
	switch {
	case heightM > 100:
		return "Catastrophic - mega-tsunami"
	case heightM > 50:
		return "Extreme - regional devastation"
	case heightM > 20:
		return "Severe - major coastal damage"
	case heightM > 10:
		return "High - significant flooding"
	case heightM > 3:
		return "Moderate - coastal flooding"
	default:
		return "Low - minor effects"
	}
}

func tsunami(megatons float64) Tsunami {
	h0 := 0.1 * math.Sqrt(megatons*1000)
	speedKMH := math.Sqrt(earthGravity*oceanDepthM) * 3.6

	effects := make([]TsunamiEffect, 0, len(tsunamiDistancesKM))
	for _, d := range tsunamiDistancesKM {
		h := h0 * math.Sqrt(100/d)
		effects = append(effects, TsunamiEffect{
			DistanceKM:       d,
			WaveHeightM:      h,
			ArrivalTimeHours: d / speedKMH,
			HazardLevel:      tsunamiHazard(h),
		})
	}
	return Tsunami{InitialHeightM: h0, SpeedKMH: speedKMH, Effects: effects}
}

// climateTier classifies the global effect of a yield and estimates how many
// years the disruption lasts.
func climateTier(megatons float64) (string, float64) {
	switch {
	case megatons > 1e6:
		return "Extinction-level event", 10
	case megatons > 1e4:
		return "Global winter", 3
	case megatons > 1000:
		return "Regional climate disruption", 1
	case megatons > 100:
		return "Temporary cooling", 0.1
	default:
		return "Negligible", 0
	}
}

func applyAtmosphere(e *ImpactEffects) {
	e.EjectaMassKG = e.CraterVolumeKM3 * ejectaDensityKgPerKM3
	e.AtmosphericDustKG = e.EjectaMassKG * stratosphericDustFraction
	e.CoolingEffect, e.ClimateDisruptionYears = climateTier(e.EffectiveMegatons)
}

func ejectaDamage(thicknessM float64) string {
	switch {
	case thicknessM > 100:
		return "Buried under debris"
	case thicknessM > 10:
		return "Severe damage from ejecta"
	case thicknessM > 1:
		return "Moderate ejecta damage"
	default:
		return "Light ejecta fallout"
	}
}

func applyEjecta(e *ImpactEffects) {
	radius := e.CraterDiameterKM * 2.5
	out := make([]EjectaEffect, 0, len(ejectaDistancesKM))
	for _, d := range ejectaDistancesKM {
		if d >= radius {
			continue
		}
		t := e.CraterDiameterKM * 10 / (d + 1)
		out = append(out, EjectaEffect{DistanceKM: d, ThicknessM: t, Effect: ejectaDamage(t)})
	}
	e.EjectaBlanketRadiusKM = radius
	e.EjectaEffects = out
}

func validateGeo(g Geo) error {
	if math.IsNaN(g.Lat) || g.Lat < -90 || g.Lat > 90 {
		return invalidParameter("latitude must be within [-90,90], got %g", g.Lat)
	}
	if math.IsNaN(g.Lon) || g.Lon < -180 || g.Lon > 180 {
		return invalidParameter("longitude must be within [-180,180], got %g", g.Lon)
	}
	return nil
}
