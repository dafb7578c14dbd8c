package domain

import "strings"

// TargetType is the surface an impactor strikes.
type TargetType string

const (
	TargetLand  TargetType = "land"
	TargetWater TargetType = "water"
	TargetOcean TargetType = "ocean"
	TargetCoast TargetType = "coast"
)

// ParseTargetType normalizes a target type. An empty string means land.
func ParseTargetType(s string) (TargetType, error) {
	switch t := TargetType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return TargetLand, nil
	case TargetLand, TargetWater, TargetOcean, TargetCoast:
		return t, nil
	default:
		return "", invalidParameter("unknown target type %q", s)
	}
}

// IsWaterLike reports whether the target generates a tsunami.
func (t TargetType) IsWaterLike() bool {
	switch t {
	case TargetWater, TargetOcean, TargetCoast:
		return true
	}
	return false
}

// Geo is a WGS-84 latitude/longitude pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ImpactScenario is one impactor striking one target.
type ImpactScenario struct {
	Impactor Impactor
	Target   TargetType
	Location *Geo
}

// ImpactParameters echoes the normalized inputs of an evaluation.
type ImpactParameters struct {
	Diameter   float64    `json:"diameter"`
	Velocity   float64    `json:"velocity"`
	Density    float64    `json:"density"`
	Angle      float64    `json:"angle"`
	TargetType TargetType `json:"target_type"`
	Location   *Geo       `json:"location,omitempty"`
}

// SeismicIntensity is the shaking felt at one sample distance.
type SeismicIntensity struct {
	DistanceKM float64 `json:"distance_km"`
	Intensity  float64 `json:"intensity"`
	Label      string  `json:"label"`
}

// BlastEffect is the peak overpressure at one sample distance.
type BlastEffect struct {
	DistanceKM      float64 `json:"distance_km"`
	OverpressurePSI float64 `json:"overpressure_psi"`
	Effect          string  `json:"effect"`
}

// ThermalEffect is the radiant exposure at one sample distance.
type ThermalEffect struct {
	DistanceKM       float64 `json:"distance_km"`
	ThermalFluxCalCM float64 `json:"thermal_flux_cal_cm2"`
	Effect           string  `json:"effect"`
}

// TsunamiEffect is the wave reaching one sample distance.
type TsunamiEffect struct {
	DistanceKM       float64 `json:"distance_km"`
	WaveHeightM      float64 `json:"wave_height_m"`
	ArrivalTimeHours float64 `json:"arrival_time_hours"`
	HazardLevel      string  `json:"hazard_level"`
}

// Tsunami is only produced for water-like targets.
type Tsunami struct {
	InitialHeightM float64         `json:"initial_height_m"`
	SpeedKMH       float64         `json:"speed_kmh"`
	Effects        []TsunamiEffect `json:"effects"`
}

// EjectaEffect is the debris layer at one sample distance inside the blanket.
type EjectaEffect struct {
	DistanceKM float64 `json:"distance_km"`
	ThicknessM float64 `json:"thickness_m"`
	Effect     string  `json:"effect"`
}

// ImpactEffects is the full hazard record for one scenario. Every
// distance-indexed slice is ordered by ascending distance.
type ImpactEffects struct {
	Mass                  float64 `json:"mass"`
	KineticEnergyJoules   float64 `json:"kinetic_energy_joules"`
	KineticEnergyMegatons float64 `json:"kinetic_energy_megatons"`
	EffectiveEnergy       float64 `json:"effective_energy"`
	EffectiveMegatons     float64 `json:"effective_megatons"`
	VerticalEnergy        float64 `json:"vertical_energy"`
	VerticalMegatons      float64 `json:"vertical_megatons"`
	HiroshimaEquivalent   float64 `json:"hiroshima_equivalent"`

	CraterDiameterKM float64 `json:"crater_diameter_km"`
	CraterDiameterM  float64 `json:"crater_diameter_m"`
	CraterDepthKM    float64 `json:"crater_depth_km"`
	CraterDepthM     float64 `json:"crater_depth_m"`
	CraterVolumeKM3  float64 `json:"crater_volume_km3"`

	SeismicMagnitude   float64            `json:"seismic_magnitude"`
	SeismicIntensities []SeismicIntensity `json:"seismic_intensities"`

	BlastEffects   []BlastEffect   `json:"blast_effects"`
	ThermalEffects []ThermalEffect `json:"thermal_effects"`

	Tsunami *Tsunami `json:"tsunami,omitempty"`

	EjectaMassKG           float64 `json:"ejecta_mass_kg"`
	AtmosphericDustKG      float64 `json:"atmospheric_dust_kg"`
	CoolingEffect          string  `json:"cooling_effect"`
	ClimateDisruptionYears float64 `json:"climate_disruption_years"`

	EjectaBlanketRadiusKM float64        `json:"ejecta_blanket_radius_km"`
	EjectaEffects         []EjectaEffect `json:"ejecta_effects"`
}

// CasualtyEstimate is a coarse casualty band keyed to yield.
type CasualtyEstimate struct {
	Immediate string `json:"immediate"`
	Total     string `json:"total"`
	Note      string `json:"note"`
}

// EconomicImpact is a coarse cost band keyed to yield.
type EconomicImpact struct {
	CostUSD string `json:"cost_usd"`
	Note    string `json:"note"`
}

// ImpactSummary is the human-readable digest of ImpactEffects.
type ImpactSummary struct {
	Classification   string           `json:"impact_classification"`
	ImmediateEffects []string         `json:"immediate_effects"`
	RegionalEffects  []string         `json:"regional_effects"`
	GlobalEffects    []string         `json:"global_effects"`
	Casualties       CasualtyEstimate `json:"casualties_estimate"`
	EconomicImpact   EconomicImpact   `json:"economic_impact"`
}

// ImpactAssessment is the response of the impact evaluation contract.
type ImpactAssessment struct {
	Parameters   ImpactParameters `json:"parameters"`
	Calculations ImpactEffects    `json:"calculations"`
	Summary      ImpactSummary    `json:"summary"`
}
