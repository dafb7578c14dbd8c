package domain

import "time"

// ScenarioRequest places an impact at a location and date.
type ScenarioRequest struct {
	ImpactRequest
	AsteroidID string  `json:"asteroid_id,omitempty"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	ImpactDate *Date   `json:"impact_date,omitempty"`
}

// ImpactLocation is where a scenario strikes.
type ImpactLocation struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Type      TargetType `json:"type"`
}

// AffectedRegion is the ring at one blast sample distance.
type AffectedRegion struct {
	DistanceKM float64 `json:"distance_km"`
	Effect     string  `json:"effect"`
	Severity   string  `json:"severity"`
}

// EvacuationZone is a concentric zone sized from the crater radius.
type EvacuationZone struct {
	Zone               string  `json:"zone"`
	RadiusKM           float64 `json:"radius_km"`
	Action             string  `json:"action"`
	Timeframe          string  `json:"timeframe"`
	ExpectedCasualties string  `json:"expected_casualties"`
}

// ScenarioReport is an impact assessment with its regional response plan.
type ScenarioReport struct {
	AsteroidID      string           `json:"asteroid_id"`
	ImpactLocation  ImpactLocation   `json:"impact_location"`
	ImpactDate      Date             `json:"impact_date"`
	Physics         ImpactAssessment `json:"physics"`
	AffectedRegions []AffectedRegion `json:"affected_regions"`
	EvacuationZones []EvacuationZone `json:"evacuation_zones"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// BuildScenario assesses an impact at a location. A missing asteroid id
// becomes "Unknown" and a missing date becomes today.
func BuildScenario(r ScenarioRequest) (ScenarioReport, error) {
	geo := Geo{Lat: r.Latitude, Lon: r.Longitude}
	req := r.ImpactRequest
	req.Location = &geo
	s, err := req.Scenario()
	if err != nil {
		return ScenarioReport{}, err
	}

	now := clock.Now().UTC()
	date := Date{Time: now.Truncate(24 * time.Hour)}
	if r.ImpactDate != nil && !r.ImpactDate.IsZero() {
		date = *r.ImpactDate
	}
	id := r.AsteroidID
	if id == "" {
		id = "Unknown"
	}

	assessment := AssessImpact(s)
	return ScenarioReport{
		AsteroidID:      id,
		ImpactLocation:  ImpactLocation{Latitude: geo.Lat, Longitude: geo.Lon, Type: s.Target},
		ImpactDate:      date,
		Physics:         assessment,
		AffectedRegions: AffectedRegions(assessment.Calculations.BlastEffects),
		EvacuationZones: EvacuationZones(assessment.Calculations.CraterDiameterKM),
		GeneratedAt:     now,
	}, nil
}

// AffectedRegions grades each blast ring by its overpressure.
func AffectedRegions(blast []BlastEffect) []AffectedRegion {
	out := make([]AffectedRegion, 0, len(blast))
	for _, b := range blast {
		severity := "moderate"
		switch {
		case b.OverpressurePSI > 10:
			severity = "extreme"
		case b.OverpressurePSI > 5:
			severity = "high"
		}
		out = append(out, AffectedRegion{DistanceKM: b.DistanceKM, Effect: b.Effect, Severity: severity})
	}
	return out
}

// EvacuationZones returns the red, orange and yellow zones at 5, 15 and 50
// crater radii.
func EvacuationZones(craterDiameterKM float64) []EvacuationZone {
	r := craterDiameterKM / 2
	return []EvacuationZone{
		{Zone: "Red Zone", RadiusKM: r * 5, Action: "Immediate evacuation required", Timeframe: "24-48 hours", ExpectedCasualties: "90-100%"},
		{Zone: "Orange Zone", RadiusKM: r * 15, Action: "Evacuation recommended", Timeframe: "48-72 hours", ExpectedCasualties: "50-90%"},
		{Zone: "Yellow Zone", RadiusKM: r * 50, Action: "Shelter in place, prepare for evacuation", Timeframe: "1 week", ExpectedCasualties: "10-50%"},
	}
}
