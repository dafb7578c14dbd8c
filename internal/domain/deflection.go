package domain

import (
	"fmt"
	"math"
	"time"
)

const (
	secondsPerYear = 365.25 * 24 * 3600

	// maxWarningYears bounds schedules so year spans stay representable as a
	// time.Duration.
	maxWarningYears = 250.0

	gravitationalConstant = 6.674e-11 // m³/(kg·s²)
)

// Strategy names one of the five deflection techniques.
type Strategy string

const (
	KineticImpactor Strategy = "kinetic_impactor"
	GravityTractor  Strategy = "gravity_tractor"
	Nuclear         Strategy = "nuclear"
	LaserAblation   Strategy = "laser_ablation"
	IonBeam         Strategy = "ion_beam"
)

// Strategies lists every strategy in canonical evaluation order.
var Strategies = []Strategy{KineticImpactor, GravityTractor, Nuclear, LaserAblation, IonBeam}

// ParseStrategy validates a strategy tag.
func ParseStrategy(s string) (Strategy, error) {
	st := Strategy(s)
	for _, known := range Strategies {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownStrategy, s)
}

// DeflectionMission describes one mission against one asteroid. Mission
// duration only matters to the continuous-thrust strategies.
type DeflectionMission struct {
	Strategy             Strategy
	LaunchDate           time.Time
	AsteroidDiameter     float64 // m
	AsteroidVelocity     float64 // km/s
	AsteroidMass         float64 // kg
	WarningYears         float64
	MissionDurationYears float64
}

// Validate rejects missions no model can evaluate.
func (m DeflectionMission) Validate() error {
	if !positiveFinite(m.AsteroidDiameter) {
		return invalidParameter("asteroid diameter must be positive, got %g", m.AsteroidDiameter)
	}
	if !positiveFinite(m.AsteroidVelocity) {
		return invalidParameter("asteroid velocity must be positive, got %g", m.AsteroidVelocity)
	}
	if !positiveFinite(m.AsteroidMass) {
		return invalidParameter("asteroid mass must be positive, got %g", m.AsteroidMass)
	}
	if !positiveFinite(m.WarningYears) {
		return invalidSchedule("warning time must be positive, got %g years", m.WarningYears)
	}
	if m.WarningYears > maxWarningYears {
		return invalidSchedule("warning time must not exceed %g years, got %g", maxWarningYears, m.WarningYears)
	}
	if m.MissionDurationYears < 0 || math.IsNaN(m.MissionDurationYears) || math.IsInf(m.MissionDurationYears, 0) {
		return invalidParameter("mission duration must be non-negative, got %g years", m.MissionDurationYears)
	}
	return nil
}

func (m DeflectionMission) warningSeconds() float64  { return m.WarningYears * secondsPerYear }
func (m DeflectionMission) durationSeconds() float64 { return m.MissionDurationYears * secondsPerYear }

// DeflectionResult is the outcome of one strategy model.
type DeflectionResult struct {
	DeltaVMS             float64  `json:"delta_v_ms"`
	DeflectionDistanceKM float64  `json:"deflection_distance_km"`
	SuccessProbability   float64  `json:"success_probability"`
	FragmentationRisk    *float64 `json:"fragmentation_risk,omitempty"`
	MissionCostMillion   float64  `json:"mission_cost_million_usd"`
	PreparationYears     float64  `json:"preparation_time_years"`
	MissionDurationYears *float64 `json:"mission_duration_years,omitempty"`
	TechnologyReadiness  string   `json:"technology_readiness"`
	Advantages           []string `json:"advantages"`
	Disadvantages        []string `json:"disadvantages"`
	RecommendedFor       string   `json:"recommended_for"`
	Warning              string   `json:"warning,omitempty"`
}

// DeflectionModel evaluates one strategy. The set of implementations is closed.
type DeflectionModel interface {
	Strategy() Strategy
	Evaluate(m DeflectionMission) DeflectionResult
	deflectionModel()
}

// ModelFor returns the model for a strategy tag.
func ModelFor(s Strategy) (DeflectionModel, error) {
	switch s {
	case KineticImpactor:
		return kineticImpactor{}, nil
	case GravityTractor:
		return gravityTractor{}, nil
	case Nuclear:
		return nuclearStandoff{}, nil
	case LaserAblation:
		return laserAblation{}, nil
	case IonBeam:
		return ionBeam{}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownStrategy, s)
	}
}

// EvaluateStrategy validates the mission and runs the model for its strategy.
func EvaluateStrategy(m DeflectionMission) (DeflectionResult, error) {
	model, err := ModelFor(m.Strategy)
	if err != nil {
		return DeflectionResult{}, err
	}
	if err := m.Validate(); err != nil {
		return DeflectionResult{}, err
	}
	return model.Evaluate(m), nil
}

// deflectionDistanceKM extrapolates a velocity change over the warning time.
func deflectionDistanceKM(deltaV float64, m DeflectionMission) float64 {
	return deltaV * m.warningSeconds() / 1000
}

// newResult fills the fields every model derives the same way.
func newResult(deltaV float64, m DeflectionMission) DeflectionResult {
	return DeflectionResult{
		DeltaVMS:             deltaV,
		DeflectionDistanceKM: deflectionDistanceKM(deltaV, m),
	}
}

func continuousDuration(m DeflectionMission) *float64 {
	d := m.MissionDurationYears
	return &d
}

// kineticImpactor is a DART-style momentum transfer.
type kineticImpactor struct{}

const (
	impactorMassKG  = 500.0
	impactorSpeedMS = 10_000.0
	momentumBeta    = 3.5
)

func (kineticImpactor) deflectionModel()   {}
func (kineticImpactor) Strategy() Strategy { return KineticImpactor }

func (kineticImpactor) Evaluate(m DeflectionMission) DeflectionResult {
	dv := momentumBeta * impactorMassKG * impactorSpeedMS / m.AsteroidMass
	r := newResult(dv, m)

	switch d := m.AsteroidDiameter; {
	case d < 100:
		r.SuccessProbability = 0.95
	case d < 300:
		r.SuccessProbability = 0.85
	case d < 500:
		r.SuccessProbability = 0.70
	default:
		r.SuccessProbability = 0.50
	}
	r.MissionCostMillion = 300 + m.AsteroidDiameter/10
	r.PreparationYears = 3 + m.AsteroidDiameter/200
	r.TechnologyReadiness = "High (DART proven)"
	r.Advantages = []string{
		"Proven technology (NASA DART)",
		"Relatively low cost",
		"Fast deployment",
		"No radioactive materials",
	}
	r.Disadvantages = []string{
		"Single attempt",
		"Less effective on large asteroids",
		"Requires precise targeting",
		"Limited by launch windows",
	}
	r.RecommendedFor = "Small to medium asteroids (<500m) with 5+ years warning"
	return r
}

// gravityTractor tows the asteroid with a hovering spacecraft's own gravity.
type gravityTractor struct{}

const (
	tractorMassKG    = 1000.0
	tractorStandoffM = 100.0
)

func (gravityTractor) deflectionModel()   {}
func (gravityTractor) Strategy() Strategy { return GravityTractor }

func (gravityTractor) Evaluate(m DeflectionMission) DeflectionResult {
	accel := gravitationalConstant * tractorMassKG / (tractorStandoffM * tractorStandoffM)
	r := newResult(accel*m.durationSeconds(), m)

	switch w := m.WarningYears; {
	case w > 10:
		r.SuccessProbability = 0.90
	case w > 5:
		r.SuccessProbability = 0.75
	default:
		r.SuccessProbability = 0.50
	}
	r.MissionCostMillion = 1000 + m.MissionDurationYears*200
	r.PreparationYears = 5
	r.MissionDurationYears = continuousDuration(m)
	r.TechnologyReadiness = "Medium (requires development)"
	r.Advantages = []string{
		"Precise control",
		"Adjustable in real-time",
		"No physical contact needed",
		"Works on any asteroid type",
	}
	r.Disadvantages = []string{
		"Extremely slow",
		"Very expensive",
		"Requires decades of warning",
		"Complex station-keeping",
	}
	r.RecommendedFor = "Any size asteroid with 15+ years warning"
	return r
}

// nuclearStandoff couples part of a 1 Mt detonation into the asteroid.
type nuclearStandoff struct{}

const (
	nuclearYieldMt  = 1.0
	nuclearCoupling = 0.15
)

func (nuclearStandoff) deflectionModel()   {}
func (nuclearStandoff) Strategy() Strategy { return Nuclear }

func (nuclearStandoff) Evaluate(m DeflectionMission) DeflectionResult {
	energy := nuclearYieldMt * JoulesPerMegaton
	dv := math.Sqrt(2*nuclearCoupling*energy*m.AsteroidMass) / m.AsteroidMass
	r := newResult(dv, m)

	var fragmentation float64
	switch d := m.AsteroidDiameter; {
	case d < 200:
		r.SuccessProbability, fragmentation = 0.85, 0.60
	case d < 500:
		r.SuccessProbability, fragmentation = 0.75, 0.30
	default:
		r.SuccessProbability, fragmentation = 0.65, 0.10
	}
	r.FragmentationRisk = &fragmentation
	r.MissionCostMillion = 5000
	r.PreparationYears = 2
	r.TechnologyReadiness = "High (but untested in space)"
	r.Advantages = []string{
		"Most powerful option",
		"Effective on large asteroids",
		"Can be deployed quickly",
		"Multiple devices possible",
	}
	r.Disadvantages = []string{
		"Risk of fragmentation",
		"International treaty concerns",
		"Radioactive contamination",
		"Political challenges",
	}
	r.RecommendedFor = "Last resort for large asteroids (>500m) or short warning time"
	r.Warning = "Risk of creating multiple dangerous fragments"
	return r
}

// laserAblation vaporizes surface material to produce thrust.
type laserAblation struct{}

const (
	laserPowerMW        = 10.0
	ablationKGPerSPerMW = 0.001
	ablationExhaustMS   = 1000.0

	// maxAblatedFraction keeps the rocket-equation logarithm finite when a
	// long mission would otherwise ablate the entire body.
	maxAblatedFraction = 0.99
)

func (laserAblation) deflectionModel()   {}
func (laserAblation) Strategy() Strategy { return LaserAblation }

func (laserAblation) Evaluate(m DeflectionMission) DeflectionResult {
	ablated := laserPowerMW * ablationKGPerSPerMW * m.durationSeconds()
	ablated = math.Min(ablated, maxAblatedFraction*m.AsteroidMass)
	dv := ablationExhaustMS * math.Log(m.AsteroidMass/(m.AsteroidMass-ablated))
	r := newResult(dv, m)

	r.SuccessProbability = 0.65
	r.MissionCostMillion = 2000 + m.MissionDurationYears*300
	r.PreparationYears = 8
	r.MissionDurationYears = continuousDuration(m)
	r.TechnologyReadiness = "Low (requires significant development)"
	r.Advantages = []string{
		"Continuous thrust",
		"Precise control",
		"No physical contact",
		"Scalable power",
	}
	r.Disadvantages = []string{
		"Unproven technology",
		"Requires large power source",
		"Very expensive",
		"Slow deflection",
	}
	r.RecommendedFor = "Future missions with 20+ years warning"
	return r
}

// ionBeam pushes the asteroid with a shepherd spacecraft's exhaust plume.
type ionBeam struct{}

const ionThrustN = 0.5

func (ionBeam) deflectionModel()   {}
func (ionBeam) Strategy() Strategy { return IonBeam }

func (ionBeam) Evaluate(m DeflectionMission) DeflectionResult {
	r := newResult(ionThrustN/m.AsteroidMass*m.durationSeconds(), m)

	r.SuccessProbability = 0.60
	if m.WarningYears > 10 {
		r.SuccessProbability = 0.85
	}
	r.MissionCostMillion = 1500 + m.MissionDurationYears*250
	r.PreparationYears = 6
	r.MissionDurationYears = continuousDuration(m)
	r.TechnologyReadiness = "Medium (ion drives proven)"
	r.Advantages = []string{
		"More efficient than gravity tractor",
		"Proven ion drive technology",
		"Precise control",
		"No contact needed",
	}
	r.Disadvantages = []string{
		"Slow deflection",
		"Expensive",
		"Long mission duration",
		"Requires decades of warning",
	}
	r.RecommendedFor = "Medium asteroids with 10+ years warning"
	return r
}
