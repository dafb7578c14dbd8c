package domain

import "time"

// PresetParameters are the physical inputs of a catalogued scenario. Location
// is the descriptive surface; Target is how the calculator treats it.
type PresetParameters struct {
	Diameter    float64    `json:"diameter"`
	Velocity    float64    `json:"velocity"`
	Density     float64    `json:"density"`
	Angle       float64    `json:"angle"`
	Location    string     `json:"location"`
	Target      TargetType `json:"target_type"`
	Composition string     `json:"composition"`
}

// PresetScenario is a catalogued historical or hypothetical impact.
type PresetScenario struct {
	Key                    string           `json:"key"`
	Name                   string           `json:"name"`
	Description            string           `json:"description"`
	Parameters             PresetParameters `json:"parameters"`
	ThreatLevel            string           `json:"threat_level"`
	DiscoveryCircumstances string           `json:"discovery_circumstances"`
}

// Request converts the preset into an impact evaluation input.
func (p PresetScenario) Request() ImpactRequest {
	density, angle := p.Parameters.Density, p.Parameters.Angle
	return ImpactRequest{
		Diameter:   p.Parameters.Diameter,
		Velocity:   p.Parameters.Velocity,
		Density:    &density,
		Angle:      &angle,
		TargetType: string(p.Parameters.Target),
	}
}

// PresetScenarios returns the scenario catalog in display order.
func PresetScenarios() []PresetScenario {
	return []PresetScenario{
		{
			Key:         "impactor_2025",
			Name:        "Impactor-2025",
			Description: "Hypothetical 340m asteroid with 28.5 km/s velocity",
			Parameters: PresetParameters{
				Diameter: 340, Velocity: 28.5, Density: 2800, Angle: 60,
				Location: "ocean", Target: TargetOcean, Composition: "stony",
			},
			ThreatLevel:            "high",
			DiscoveryCircumstances: "Discovered 2 years before impact",
		},
		{
			Key:         "chelyabinsk_2013",
			Name:        "Chelyabinsk Event (2013)",
			Description: "Real event - 20m meteor over Russia",
			Parameters: PresetParameters{
				Diameter: 20, Velocity: 19.2, Density: 3300, Angle: 18,
				Location: "land", Target: TargetLand, Composition: "chondrite",
			},
			ThreatLevel:            "moderate",
			DiscoveryCircumstances: "Undetected until entry",
		},
		{
			Key:         "tunguska_1908",
			Name:        "Tunguska Event (1908)",
			Description: "Historical airburst over Siberia",
			Parameters: PresetParameters{
				Diameter: 60, Velocity: 27.0, Density: 1000, Angle: 45,
				Location: "forest", Target: TargetLand, Composition: "comet",
			},
			ThreatLevel:            "high",
			DiscoveryCircumstances: "Historical event",
		},
		{
			Key:         "chicxulub",
			Name:        "Chicxulub Impactor",
			Description: "Dinosaur extinction event - 66 million years ago",
			Parameters: PresetParameters{
				Diameter: 10000, Velocity: 20.0, Density: 2500, Angle: 60,
				Location: "coast", Target: TargetCoast, Composition: "carbonaceous",
			},
			ThreatLevel:            "extinction",
			DiscoveryCircumstances: "Geological evidence",
		},
	}
}

// PresetByKey looks up a catalogued scenario.
func PresetByKey(key string) (PresetScenario, bool) {
	for _, p := range PresetScenarios() {
		if p.Key == key {
			return p, true
		}
	}
	return PresetScenario{}, false
}

// Impactor-2025 briefing constants.
const (
	impactor2025Diameter     = 450.0
	impactor2025Velocity     = 18.5
	impactor2025WarningYears = 10.0
	impactor2025MissionYears = 3.0
	impactor2025Probability  = 0.87
	impactor2025RotationHrs  = 8.4
)

var impactor2025ImpactDate = time.Date(2035, time.August, 22, 0, 0, 0, 0, time.UTC)

// PhysicalCharacteristics describes the body in a briefing.
type PhysicalCharacteristics struct {
	DiameterM           float64 `json:"diameter_m"`
	EstimatedMassKG     float64 `json:"estimated_mass_kg"`
	Composition         string  `json:"composition"`
	RotationPeriodHours float64 `json:"rotation_period_hours"`
}

// BriefingStory is the narrative attached to a briefing.
type BriefingStory struct {
	Discovery         string `json:"discovery"`
	InitialAssessment string `json:"initial_assessment"`
	ThreatLevel       string `json:"threat_level"`
	DecisionPoint     string `json:"decision_point"`
	PublicStatus      string `json:"public_status"`
}

// Lines returns the story items in telling order.
func (s BriefingStory) Lines() []string {
	return []string{s.Discovery, s.InitialAssessment, s.ThreatLevel, s.DecisionPoint, s.PublicStatus}
}

// Briefing is the fixed Impactor-2025 threat scenario with its impact and
// deflection analyses.
type Briefing struct {
	AsteroidID              string                  `json:"asteroid_id"`
	Name                    string                  `json:"name"`
	DiscoveryDate           Date                    `json:"discovery_date"`
	ImpactProbability       float64                 `json:"impact_probability"`
	PredictedImpactDate     Date                    `json:"predicted_impact_date"`
	WarningTimeYears        float64                 `json:"warning_time_years"`
	PhysicalCharacteristics PhysicalCharacteristics `json:"physical_characteristics"`
	VelocityKMS             float64                 `json:"velocity_kms"`
	ImpactAngleDegrees      float64                 `json:"impact_angle_degrees"`
	PredictedLocation       ImpactLocation          `json:"predicted_location"`
	LocationName            string                  `json:"location_name"`
	ImpactAnalysis          ImpactAssessment        `json:"impact_analysis"`
	DeflectionOptions       StrategyComparison      `json:"deflection_options"`
	Status                  string                  `json:"status"`
	RecommendedAction       string                  `json:"recommended_action"`
	Story                   BriefingStory           `json:"story"`
}

// Impactor2025Briefing builds the Impactor-2025 scenario: a 450 m rocky body
// at 18.5 km/s striking water on 2035-08-22 after ten years of warning.
func Impactor2025Briefing() (Briefing, error) {
	impact, err := EvaluateImpact(ImpactRequest{
		Diameter:   impactor2025Diameter,
		Velocity:   impactor2025Velocity,
		TargetType: string(TargetWater),
	})
	if err != nil {
		return Briefing{}, err
	}
	duration := impactor2025MissionYears
	deflection, err := CompareRequest(DeflectionRequest{
		AsteroidDiameter:     impactor2025Diameter,
		AsteroidVelocity:     impactor2025Velocity,
		WarningYears:         impactor2025WarningYears,
		ImpactDate:           Date{Time: impactor2025ImpactDate},
		MissionDurationYears: &duration,
	})
	if err != nil {
		return Briefing{}, err
	}

	return Briefing{
		AsteroidID:          "IMPACTOR-2025",
		Name:                "Impactor-2025 (Fictional Scenario)",
		DiscoveryDate:       Date{Time: time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)},
		ImpactProbability:   impactor2025Probability,
		PredictedImpactDate: Date{Time: impactor2025ImpactDate},
		WarningTimeYears:    impactor2025WarningYears,
		PhysicalCharacteristics: PhysicalCharacteristics{
			DiameterM:           impactor2025Diameter,
			EstimatedMassKG:     impact.Calculations.Mass,
			Composition:         "Rocky (S-type)",
			RotationPeriodHours: impactor2025RotationHrs,
		},
		VelocityKMS:        impactor2025Velocity,
		ImpactAngleDegrees: impact.Parameters.Angle,
		PredictedLocation:  ImpactLocation{Latitude: 35.6762, Longitude: 139.6503, Type: TargetWater},
		LocationName:       "Tokyo Bay, Pacific Ocean",
		ImpactAnalysis:     impact,
		DeflectionOptions:  deflection,
		Status:             "ACTIVE THREAT",
		RecommendedAction:  "IMMEDIATE DEFLECTION MISSION REQUIRED",
		Story: BriefingStory{
			Discovery:         "Discovered by Pan-STARRS telescope on January 15, 2025",
			InitialAssessment: "Orbital refinement over 90 days increased impact probability from 3% to 87%",
			ThreatLevel:       "Regional catastrophe if impact occurs",
			DecisionPoint:     "International space agencies must decide on deflection strategy within 6 months",
			PublicStatus:      "Information released to public after confirmation",
		},
	}, nil
}
