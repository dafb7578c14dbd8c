package domain

import (
	"cmp"
	"math"
	"slices"
)

const (
	lunarDistanceKM = 384_400.0

	// threatScreenCutoff is the score an approach must exceed to be reported.
	threatScreenCutoff = 0.5

	assessmentWarningYears = 10.0
	assessmentHorizonDays  = 10 * 365
	assessmentMissionYears = DefaultMissionDurationYears
)

// Threat levels, from miss distance in Earth radii.
const (
	ThreatCritical = "CRITICAL"
	ThreatHigh     = "HIGH"
	ThreatModerate = "MODERATE"
	ThreatLow      = "LOW"
)

// CloseApproach is a normalized close-approach record supplied by a feed.
type CloseApproach struct {
	Name           string  `json:"name"`
	DiameterM      float64 `json:"diameter_m"`
	VelocityKMS    float64 `json:"velocity_kms"`
	MissDistanceKM float64 `json:"miss_distance_km"`
	ApproachDate   string  `json:"close_approach_date,omitempty"`
}

func (a CloseApproach) validate() error {
	if !positiveFinite(a.DiameterM) {
		return invalidParameter("diameter must be positive, got %g", a.DiameterM)
	}
	if !positiveFinite(a.VelocityKMS) {
		return invalidParameter("velocity must be positive, got %g", a.VelocityKMS)
	}
	if a.MissDistanceKM < 0 || math.IsNaN(a.MissDistanceKM) {
		return invalidParameter("miss distance must be non-negative, got %g", a.MissDistanceKM)
	}
	return nil
}

// ThreatLevel buckets a miss distance by Earth radii: CRITICAL under 10,
// HIGH under 50, MODERATE under 100.
func ThreatLevel(missKM float64) string {
	switch {
	case missKM < 10*earthRadiusKM:
		return ThreatCritical
	case missKM < 50*earthRadiusKM:
		return ThreatHigh
	case missKM < 100*earthRadiusKM:
		return ThreatModerate
	default:
		return ThreatLow
	}
}

// ThreatResponse is the operational response to a threat level.
type ThreatResponse struct {
	Priority   string `json:"priority"`
	Action     string `json:"action"`
	Timeframe  string `json:"timeframe"`
	Monitoring string `json:"monitoring"`
}

func threatResponse(level string) ThreatResponse {
	switch level {
	case ThreatCritical:
		return ThreatResponse{
			Priority:   "URGENT",
			Action:     "Immediate deflection mission required",
			Timeframe:  "Launch within 1-2 years",
			Monitoring: "Continuous tracking essential",
		}
	case ThreatHigh:
		return ThreatResponse{
			Priority:   "HIGH",
			Action:     "Prepare deflection mission contingency",
			Timeframe:  "Mission readiness within 3-5 years",
			Monitoring: "Daily tracking updates",
		}
	default:
		return ThreatResponse{
			Priority:   "MODERATE",
			Action:     "Continue monitoring",
			Timeframe:  "Regular orbital updates",
			Monitoring: "Weekly tracking sufficient",
		}
	}
}

// OrbitalData describes the approach geometry.
type OrbitalData struct {
	MissDistanceKM    float64 `json:"miss_distance_km"`
	MissDistanceLunar float64 `json:"miss_distance_lunar"`
	VelocityKMS       float64 `json:"velocity_kms"`
	ApproachDate      string  `json:"close_approach_date,omitempty"`
}

// ThreatAssessment combines the threat level, the consequences of a land
// impact and the deflection options with ten years of warning.
type ThreatAssessment struct {
	Name              string             `json:"name"`
	ThreatLevel       string             `json:"threat_level"`
	OrbitalData       OrbitalData        `json:"orbital_data"`
	DiameterM         float64            `json:"diameter_m"`
	EstimatedMassKG   float64            `json:"estimated_mass_kg"`
	ImpactPotential   ImpactAssessment   `json:"impact_potential"`
	DeflectionOptions StrategyComparison `json:"deflection_options"`
	Recommendation    ThreatResponse     `json:"recommendation"`
}

// AssessThreat evaluates one close approach as if it were on a collision
// course ten years from now.
func AssessThreat(a CloseApproach) (ThreatAssessment, error) {
	if err := a.validate(); err != nil {
		return ThreatAssessment{}, err
	}
	imp, err := NewImpactor(a.DiameterM, a.VelocityKMS, RockyDensity, DefaultImpactAngle)
	if err != nil {
		return ThreatAssessment{}, err
	}
	impact := AssessImpact(ImpactScenario{Impactor: imp, Target: TargetLand})

	duration := assessmentMissionYears
	impactDate := clock.Now().UTC().AddDate(0, 0, assessmentHorizonDays)
	options, err := CompareRequest(DeflectionRequest{
		AsteroidDiameter:     a.DiameterM,
		AsteroidVelocity:     a.VelocityKMS,
		WarningYears:         assessmentWarningYears,
		ImpactDate:           Date{Time: impactDate},
		MissionDurationYears: &duration,
	})
	if err != nil {
		return ThreatAssessment{}, err
	}

	level := ThreatLevel(a.MissDistanceKM)
	name := a.Name
	if name == "" {
		name = "Unknown"
	}
	return ThreatAssessment{
		Name:        name,
		ThreatLevel: level,
		OrbitalData: OrbitalData{
			MissDistanceKM:    a.MissDistanceKM,
			MissDistanceLunar: a.MissDistanceKM / lunarDistanceKM,
			VelocityKMS:       a.VelocityKMS,
			ApproachDate:      a.ApproachDate,
		},
		DiameterM:         a.DiameterM,
		EstimatedMassKG:   impact.Calculations.Mass,
		ImpactPotential:   impact,
		DeflectionOptions: options,
		Recommendation:    threatResponse(level),
	}, nil
}

// ThreatScore normalizes size (capped at 1 km), speed (capped at 70 km/s)
// and proximity (within 7.5 million km) into a weighted score in [0,1].
func ThreatScore(diameterM, velocityKMS, missKM float64) float64 {
	size := math.Min(1, diameterM/1000)
	speed := math.Min(1, velocityKMS/70)
	proximity := math.Max(0, 1-missKM/7.5e6)
	return 0.4*size + 0.3*speed + 0.3*proximity
}

func monitoringAdvice(score float64) string {
	switch {
	case score > 0.8:
		return "Immediate attention required - Potential impact threat"
	case score > 0.6:
		return "High priority monitoring recommended"
	case score > 0.4:
		return "Regular observation suggested"
	default:
		return "Standard monitoring protocol"
	}
}

// ScreenedThreat is a close approach that cleared the screening cutoff.
type ScreenedThreat struct {
	Name           string  `json:"name"`
	ThreatScore    float64 `json:"threat_score"`
	DiameterM      float64 `json:"diameter_m"`
	VelocityKMS    float64 `json:"velocity_kms"`
	MissDistanceKM float64 `json:"miss_distance_km"`
	Recommendation string  `json:"recommendation"`
}

// ScreenApproaches scores every approach and keeps those above the cutoff,
// highest score first. Malformed approaches are skipped.
func ScreenApproaches(approaches []CloseApproach) []ScreenedThreat {
	out := []ScreenedThreat{}
	for _, a := range approaches {
		if a.validate() != nil {
			continue
		}
		score := ThreatScore(a.DiameterM, a.VelocityKMS, a.MissDistanceKM)
		if score <= threatScreenCutoff {
			continue
		}
		out = append(out, ScreenedThreat{
			Name:           a.Name,
			ThreatScore:    score,
			DiameterM:      a.DiameterM,
			VelocityKMS:    a.VelocityKMS,
			MissDistanceKM: a.MissDistanceKM,
			Recommendation: monitoringAdvice(score),
		})
	}
	slices.SortStableFunc(out, func(a, b ScreenedThreat) int {
		return cmp.Compare(b.ThreatScore, a.ThreatScore)
	})
	return out
}
