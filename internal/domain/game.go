package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// RandomSource is the randomness the defend-earth game draws from. A
// *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

const (
	gameMissionYears = 3.0
	gameDaysPerYear  = 365

	defaultLaunchTiming = 5.0
	defaultGameBudget   = 500.0

	// minBudgetShare is the fraction of mission cost a player must fund.
	minBudgetShare = 0.8
)

// Game outcomes.
const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)

// GameChallenge is the player's move.
type GameChallenge struct {
	PlayerName   string   `json:"player_name,omitempty"`
	Strategy     Strategy `json:"strategy,omitempty"`
	LaunchTiming *float64 `json:"launch_timing,omitempty"`
	Budget       *float64 `json:"budget_million_usd,omitempty"`
}

// GameAsteroid is the randomly drawn threat.
type GameAsteroid struct {
	DiameterM    float64 `json:"diameter_m"`
	VelocityKMS  float64 `json:"velocity_kms"`
	WarningYears float64 `json:"warning_years"`
}

// GameChoices echoes the normalized challenge.
type GameChoices struct {
	Strategy          Strategy `json:"strategy"`
	LaunchTimingYears float64  `json:"launch_timing_years"`
	BudgetMillion     float64  `json:"budget_million_usd"`
}

// GameDetails are the mission figures behind an outcome.
type GameDetails struct {
	RequiredBudget       float64 `json:"required_budget"`
	SuccessProbability   float64 `json:"success_probability"`
	DeflectionAchievedKM float64 `json:"deflection_achieved"`
}

// GameResult is the outcome of one round.
type GameResult struct {
	GameID           string       `json:"game_id"`
	PlayerName       string       `json:"player_name"`
	Outcome          string       `json:"outcome"`
	Message          string       `json:"message"`
	Score            int          `json:"score"`
	Scenario         GameAsteroid `json:"scenario"`
	PlayerChoices    GameChoices  `json:"player_choices"`
	TechnicalDetails GameDetails  `json:"technical_details"`
	PlayedAt         time.Time    `json:"played_at"`
}

func (c GameChallenge) normalize() (GameChoices, string, error) {
	name := c.PlayerName
	if name == "" {
		name = "Commander"
	}
	s := c.Strategy
	if s == "" {
		s = KineticImpactor
	}
	if _, err := ParseStrategy(string(s)); err != nil {
		return GameChoices{}, "", err
	}
	launch := defaultLaunchTiming
	if c.LaunchTiming != nil {
		launch = *c.LaunchTiming
	}
	budget := defaultGameBudget
	if c.Budget != nil {
		budget = *c.Budget
	}
	if budget < 0 || math.IsNaN(budget) || math.IsInf(budget, 0) {
		return GameChoices{}, "", invalidParameter("budget must be non-negative, got %g", budget)
	}
	return GameChoices{Strategy: s, LaunchTimingYears: launch, BudgetMillion: budget}, name, nil
}

// DrawGameAsteroid samples a threat: diameter 100..800 m, velocity 12..30 km/s
// and 3..20 years of warning.
func DrawGameAsteroid(rng RandomSource) GameAsteroid {
	return GameAsteroid{
		DiameterM:    float64(100 + rng.IntN(701)),
		VelocityKMS:  12 + 18*rng.Float64(),
		WarningYears: 3 + 17*rng.Float64(),
	}
}

// PlayDefendEarth runs one round. All randomness comes from rng; the
// comparison itself stays deterministic.
func PlayDefendEarth(c GameChallenge, rng RandomSource) (GameResult, error) {
	choices, name, err := c.normalize()
	if err != nil {
		return GameResult{}, err
	}
	asteroid := DrawGameAsteroid(rng)
	now := clock.Now().UTC()

	duration := gameMissionYears
	sim, err := SimulateDeflection(DeflectionRequest{
		AsteroidDiameter:     asteroid.DiameterM,
		AsteroidVelocity:     asteroid.VelocityKMS,
		WarningYears:         choices.LaunchTimingYears,
		ImpactDate:           Date{Time: now.Add(time.Duration(asteroid.WarningYears * gameDaysPerYear * 24 * float64(time.Hour)))},
		MissionDurationYears: &duration,
	}, choices.Strategy)
	if err != nil {
		return GameResult{}, err
	}

	selected := sim.Selected
	cost, p := selected.MissionCostMillion, selected.SuccessProbability
	res := GameResult{
		PlayerName:    name,
		Outcome:       OutcomeFailure,
		Scenario:      asteroid,
		PlayerChoices: choices,
		TechnicalDetails: GameDetails{
			RequiredBudget:       cost,
			SuccessProbability:   p,
			DeflectionAchievedKM: selected.DeflectionDistanceKM,
		},
		PlayedAt: now,
	}

	switch {
	case choices.BudgetMillion < cost*minBudgetShare:
		res.Message = fmt.Sprintf("Insufficient budget! Need $%.0fM minimum.", cost)
	case choices.LaunchTimingYears > asteroid.WarningYears:
		res.Message = "Launch timing too late! Asteroid already impacted."
	case rng.Float64() < p:
		res.Outcome = OutcomeSuccess
		res.Message = "Earth saved! Asteroid deflected successfully!"
		res.Score = int(p * 1000 * (choices.BudgetMillion / cost))
	default:
		res.Message = fmt.Sprintf("Mission failed despite best efforts. Success probability was %.1f%%", p*100)
		res.Score = int(p * 500)
	}

	body, err := json.Marshal(struct {
		Player   string       `json:"player"`
		Asteroid GameAsteroid `json:"asteroid"`
		Choices  GameChoices  `json:"choices"`
		At       time.Time    `json:"at"`
	}{name, asteroid, choices, now})
	if err != nil {
		return GameResult{}, fmt.Errorf("hash game: %w", err)
	}
	res.GameID = generateID("game", body)
	return res, nil
}
