package domain

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	earthRadiusKM = 6371.0

	// SafeMissDistanceKM is the miss distance a deflection must guarantee.
	SafeMissDistanceKM = 10 * earthRadiusKM

	// DefaultMissionDurationYears applies when a comparison omits mission duration.
	DefaultMissionDurationYears = 5.0

	dateLayout = "2006-01-02"
)

// Recommendation statuses, ordered by how little time remains.
const (
	StatusInsufficient = "INSUFFICIENT"
	StatusUrgent       = "URGENT"
	StatusAdequate     = "ADEQUATE"
	StatusOptimal      = "OPTIMAL"
)

// Date is a calendar date. It decodes from "2006-01-02" or RFC 3339 and
// encodes as "2006-01-02".
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(bytes.TrimSpace(b)) == "null" {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: date must be a string", ErrInvalidParameter)
	}
	s = strings.TrimSpace(s)
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return invalidParameter("unparseable date %q", s)
}

// DeflectionRequest is the deflection comparison input.
type DeflectionRequest struct {
	AsteroidDiameter     float64  `json:"asteroid_diameter"`
	AsteroidVelocity     float64  `json:"asteroid_velocity"`
	WarningYears         float64  `json:"warning_years"`
	ImpactDate           Date     `json:"impact_date"`
	MissionDurationYears *float64 `json:"mission_duration_years,omitempty"`
}

// Mission derives the mission descriptor: a rocky sphere launched warning
// years before the impact date.
func (r DeflectionRequest) Mission(s Strategy) (DeflectionMission, error) {
	duration := DefaultMissionDurationYears
	if r.MissionDurationYears != nil {
		duration = *r.MissionDurationYears
	}
	if r.ImpactDate.IsZero() {
		return DeflectionMission{}, invalidSchedule("impact date is required")
	}
	m := DeflectionMission{
		Strategy:             s,
		AsteroidDiameter:     r.AsteroidDiameter,
		AsteroidVelocity:     r.AsteroidVelocity,
		AsteroidMass:         SphereMass(r.AsteroidDiameter, RockyDensity),
		WarningYears:         r.WarningYears,
		MissionDurationYears: duration,
	}
	if err := m.Validate(); err != nil {
		return DeflectionMission{}, err
	}
	m.LaunchDate = r.ImpactDate.Add(-yearsToDuration(r.WarningYears))
	return m, nil
}

func yearsToDuration(years float64) time.Duration {
	return time.Duration(years * secondsPerYear * float64(time.Second))
}

// RequiredDeltaV is the velocity change in m/s needed to move the asteroid
// SafeMissDistanceKM over the time between launch and impact. It also
// returns that time in years.
func RequiredDeltaV(launch, impact time.Time) (deltaV, years float64, err error) {
	years = impact.Sub(launch).Seconds() / secondsPerYear
	if years <= 0 {
		return 0, 0, invalidSchedule("impact date %s is not after launch date %s",
			impact.Format(time.RFC3339), launch.Format(time.RFC3339))
	}
	return SafeMissDistanceKM / years / secondsPerYear * 1000, years, nil
}

// StrategyResults maps every strategy to its result. It encodes in canonical
// strategy order.
type StrategyResults map[Strategy]DeflectionResult

func (sr StrategyResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, s := range Strategies {
		r, ok := sr[s]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, _ := json.Marshal(string(s))
		val, err := json.Marshal(r)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Ranking scores one strategy against the required velocity change.
type Ranking struct {
	Strategy           Strategy         `json:"strategy"`
	Score              float64          `json:"score"`
	IsSufficient       bool             `json:"is_sufficient"`
	EffectivenessRatio float64          `json:"effectiveness_ratio"`
	Data               DeflectionResult `json:"data"`
}

// Recommendation is the policy outcome of a comparison.
type Recommendation struct {
	Status           string     `json:"status"`
	Message          string     `json:"message"`
	PrimaryStrategy  Strategy   `json:"primary_strategy,omitempty"`
	BackupStrategies []Strategy `json:"backup_strategies,omitempty"`
	Timeline         string     `json:"timeline,omitempty"`
	CostEstimate     float64    `json:"cost_estimate_million_usd,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	Options          []string   `json:"options,omitempty"`
}

// StrategyComparison is the response of the deflection comparison contract.
type StrategyComparison struct {
	RequiredDeflectionMS float64         `json:"required_deflection_ms"`
	WarningTimeYears     float64         `json:"warning_time_years"`
	Strategies           StrategyResults `json:"strategies"`
	Rankings             []Ranking       `json:"rankings"`
	Recommendations      Recommendation  `json:"recommendations"`
}

// CompareRequest validates the request and compares all strategies.
func CompareRequest(r DeflectionRequest) (StrategyComparison, error) {
	m, err := r.Mission(KineticImpactor)
	if err != nil {
		return StrategyComparison{}, err
	}
	return CompareStrategies(m, r.ImpactDate.Time)
}

// CompareStrategies runs every model against the mission, ranks them and
// derives a recommendation. The mission's own strategy is ignored.
func CompareStrategies(m DeflectionMission, impact time.Time) (StrategyComparison, error) {
	if err := m.Validate(); err != nil {
		return StrategyComparison{}, err
	}
	required, _, err := RequiredDeltaV(m.LaunchDate, impact)
	if err != nil {
		return StrategyComparison{}, err
	}

	results := make(StrategyResults, len(Strategies))
	rankings := make([]Ranking, 0, len(Strategies))
	for _, s := range Strategies {
		model, err := ModelFor(s)
		if err != nil {
			return StrategyComparison{}, err
		}
		r := model.Evaluate(m)
		results[s] = r
		rankings = append(rankings, rank(s, r, required))
	}
	slices.SortStableFunc(rankings, func(a, b Ranking) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return StrategyComparison{
		RequiredDeflectionMS: required,
		WarningTimeYears:     m.WarningYears,
		Strategies:           results,
		Rankings:             rankings,
		Recommendations:      Recommend(rankings, m.WarningYears),
	}, nil
}

// Score weighs effectiveness, success probability, cost efficiency and
// deployment speed.
func Score(r DeflectionResult, ratio float64) float64 {
	return 0.3*ratio +
		0.3*r.SuccessProbability +
		0.2*(1000/r.MissionCostMillion) +
		0.2*(1/max(r.PreparationYears, 1))
}

func rank(s Strategy, r DeflectionResult, required float64) Ranking {
	ratio := r.DeltaVMS / required
	return Ranking{
		Strategy:           s,
		Score:              Score(r, ratio),
		IsSufficient:       ratio >= 1.0,
		EffectivenessRatio: ratio,
		Data:               r,
	}
}

var insufficientOptions = []string{
	"Launch multiple kinetic impactors",
	"Combine kinetic impactor with gravity tractor",
	"Nuclear option as last resort",
	"Focus on impact zone evacuation and preparation",
}

// Recommend applies the fixed policy rules to rankings sorted by descending
// score. The warning-time buckets override raw score order for the primary
// and backups, while the ADEQUATE and OPTIMAL cost estimates quote the
// top-ranked strategy.
func Recommend(rankings []Ranking, warningYears float64) Recommendation {
	idx := slices.IndexFunc(rankings, func(r Ranking) bool { return r.IsSufficient })
	if idx < 0 {
		return Recommendation{
			Status:  StatusInsufficient,
			Message: "No single strategy sufficient. Consider multiple missions or evacuation.",
			Options: slices.Clone(insufficientOptions),
		}
	}

	switch {
	case warningYears < 5:
		primary := KineticImpactor
		msg := "URGENT: Deploy kinetic impactor mission immediately"
		if rankings[idx].Strategy == Nuclear {
			primary = Nuclear
			msg = "CRITICAL: Nuclear deflection recommended due to short warning time"
		}
		return Recommendation{
			Status:           StatusUrgent,
			Message:          msg,
			PrimaryStrategy:  primary,
			BackupStrategies: runnersUp(rankings, 2),
			Timeline:         "Immediate action required",
			CostEstimate:     costOf(rankings, primary),
		}
	case warningYears < 15:
		return Recommendation{
			Status:           StatusAdequate,
			Message:          "Multiple options available. Kinetic impactor recommended.",
			PrimaryStrategy:  KineticImpactor,
			BackupStrategies: []Strategy{IonBeam, Nuclear},
			Timeline:         "Launch within 2-3 years",
			CostEstimate:     rankings[0].Data.MissionCostMillion,
			Notes:            "Time for careful mission planning and preparation",
		}
	default:
		return Recommendation{
			Status:           StatusOptimal,
			Message:          "Ample time for precise deflection. Gravity tractor or ion beam recommended.",
			PrimaryStrategy:  GravityTractor,
			BackupStrategies: []Strategy{IonBeam, KineticImpactor},
			Timeline:         "Launch within 5 years, operate for extended period",
			CostEstimate:     rankings[0].Data.MissionCostMillion,
			Notes:            "Ideal conditions for controlled, precise deflection",
		}
	}
}

// runnersUp returns the strategies ranked second through n+1, whether or not
// one of them is also the primary.
func runnersUp(rankings []Ranking, n int) []Strategy {
	out := make([]Strategy, 0, n)
	for _, r := range rankings[1:min(n+1, len(rankings))] {
		out = append(out, r.Strategy)
	}
	return out
}

func costOf(rankings []Ranking, s Strategy) float64 {
	for _, r := range rankings {
		if r.Strategy == s {
			return r.Data.MissionCostMillion
		}
	}
	return 0
}

// DeflectionSimulation is one selected strategy in the context of the full comparison.
type DeflectionSimulation struct {
	Strategy   Strategy           `json:"strategy"`
	Selected   DeflectionResult   `json:"selected"`
	Comparison StrategyComparison `json:"comparison"`
}

// SimulateDeflection evaluates one strategy and the comparison it sits in.
func SimulateDeflection(r DeflectionRequest, s Strategy) (DeflectionSimulation, error) {
	if _, err := ModelFor(s); err != nil {
		return DeflectionSimulation{}, err
	}
	m, err := r.Mission(s)
	if err != nil {
		return DeflectionSimulation{}, err
	}
	comparison, err := CompareStrategies(m, r.ImpactDate.Time)
	if err != nil {
		return DeflectionSimulation{}, err
	}
	return DeflectionSimulation{
		Strategy:   s,
		Selected:   comparison.Strategies[s],
		Comparison: comparison,
	}, nil
}
