package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/spf13/cobra"
)

type app struct {
	out      io.Writer
	jsonOut  bool
	seedFunc func() uint64
}

func newRootCommand(out io.Writer) *cobra.Command {
	a := &app{
		out:      out,
		seedFunc: func() uint64 { return uint64(time.Now().UnixNano()) },
	}

	cmd := &cobra.Command{
		Use:          "impactctl",
		Short:        "Asteroid impact consequences and deflection planning",
		SilenceUsage: true,
	}
	cmd.SetOut(out)
	cmd.PersistentFlags().BoolVarP(&a.jsonOut, "json", "j", false, "print results as JSON")

	cmd.AddCommand(
		newImpactCmd(a),
		newPresetsCmd(a),
		newCompareCmd(a),
		newSimulateCmd(a),
		newThreatCmd(a),
		newBriefingCmd(a),
		newGameCmd(a),
	)
	return cmd
}

func newImpactCmd(a *app) *cobra.Command {
	var (
		req            domain.ImpactRequest
		density, angle float64
	)
	cmd := &cobra.Command{
		Use:   "impact",
		Short: "Calculate the consequences of an impact",
		Example: `  impactctl impact --diameter 500 --velocity 20
  impactctl impact --diameter 450 --velocity 18.5 --target water --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("density") {
				req.Density = &density
			}
			if cmd.Flags().Changed("angle") {
				req.Angle = &angle
			}
			assessment, err := domain.EvaluateImpact(req)
			if err != nil {
				return err
			}
			return a.render(assessment, func(w io.Writer) { printImpact(w, assessment) })
		},
	}
	cmd.Flags().Float64Var(&req.Diameter, "diameter", 0, "impactor diameter in meters")
	cmd.Flags().Float64Var(&req.Velocity, "velocity", 0, "impact velocity in km/s")
	cmd.Flags().Float64Var(&density, "density", domain.RockyDensity, "impactor density in kg/m³")
	cmd.Flags().Float64Var(&angle, "angle", 45, "entry angle in degrees from horizontal")
	cmd.Flags().StringVar(&req.TargetType, "target", "land", "target surface: land, water, ocean or coast")
	_ = cmd.MarkFlagRequired("diameter")
	_ = cmd.MarkFlagRequired("velocity")
	return cmd
}

func newPresetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets [key]",
		Short: "List preset scenarios, or assess one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				presets := domain.PresetScenarios()
				return a.render(presets, func(w io.Writer) {
					for _, p := range presets {
						fmt.Fprintf(w, "%-18s %-26s %s\n", p.Key, p.Name, p.Description)
					}
				})
			}
			p, ok := domain.PresetByKey(args[0])
			if !ok {
				return fmt.Errorf("unknown preset %q", args[0])
			}
			assessment, err := domain.EvaluateImpact(p.Request())
			if err != nil {
				return err
			}
			return a.render(assessment, func(w io.Writer) {
				fmt.Fprintf(w, "%s: %s\n\n", p.Name, p.Description)
				printImpact(w, assessment)
			})
		},
	}
}

// deflectionFlags registers the comparison input shared by compare and simulate.
func deflectionFlags(cmd *cobra.Command, req *domain.DeflectionRequest, impactDate *string, duration *float64) {
	cmd.Flags().Float64Var(&req.AsteroidDiameter, "diameter", 0, "asteroid diameter in meters")
	cmd.Flags().Float64Var(&req.AsteroidVelocity, "velocity", 0, "asteroid velocity in km/s")
	cmd.Flags().Float64Var(&req.WarningYears, "warning", 0, "years between launch and impact")
	cmd.Flags().StringVar(impactDate, "impact-date", "", "predicted impact date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(duration, "duration", domain.DefaultMissionDurationYears, "mission duration in years")
	for _, name := range []string{"diameter", "velocity", "warning", "impact-date"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

func completeDeflection(cmd *cobra.Command, req *domain.DeflectionRequest, impactDate string, duration float64) error {
	if err := req.ImpactDate.UnmarshalJSON([]byte(strconv.Quote(impactDate))); err != nil {
		return err
	}
	if cmd.Flags().Changed("duration") {
		req.MissionDurationYears = &duration
	}
	return nil
}

func newCompareCmd(a *app) *cobra.Command {
	var (
		req        domain.DeflectionRequest
		impactDate string
		duration   float64
	)
	cmd := &cobra.Command{
		Use:     "compare",
		Short:   "Compare every deflection strategy and recommend one",
		Example: "  impactctl compare --diameter 450 --velocity 18.5 --warning 10 --impact-date 2035-08-22",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := completeDeflection(cmd, &req, impactDate, duration); err != nil {
				return err
			}
			comparison, err := domain.CompareRequest(req)
			if err != nil {
				return err
			}
			return a.render(comparison, func(w io.Writer) { printComparison(w, comparison) })
		},
	}
	deflectionFlags(cmd, &req, &impactDate, &duration)
	return cmd
}

func newSimulateCmd(a *app) *cobra.Command {
	var (
		req        domain.DeflectionRequest
		impactDate string
		duration   float64
		strategy   string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Evaluate one deflection strategy against the full comparison",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := domain.ParseStrategy(strategy)
			if err != nil {
				return err
			}
			if err := completeDeflection(cmd, &req, impactDate, duration); err != nil {
				return err
			}
			sim, err := domain.SimulateDeflection(req, s)
			if err != nil {
				return err
			}
			return a.render(sim, func(w io.Writer) {
				printStrategy(w, sim.Strategy, sim.Selected)
				fmt.Fprintln(w)
				printComparison(w, sim.Comparison)
			})
		},
	}
	deflectionFlags(cmd, &req, &impactDate, &duration)
	cmd.Flags().StringVar(&strategy, "strategy", string(domain.KineticImpactor), "strategy to simulate")
	return cmd
}

func newThreatCmd(a *app) *cobra.Command {
	var approach domain.CloseApproach
	cmd := &cobra.Command{
		Use:   "threat",
		Short: "Assess a close approach as a potential impactor",
		RunE: func(_ *cobra.Command, _ []string) error {
			assessment, err := domain.AssessThreat(approach)
			if err != nil {
				return err
			}
			return a.render(assessment, func(w io.Writer) {
				r := assessment.Recommendation
				fmt.Fprintf(w, "%s: %s threat (%.1f lunar distances)\n",
					assessment.Name, assessment.ThreatLevel, assessment.OrbitalData.MissDistanceLunar)
				fmt.Fprintf(w, "Priority:   %s\nAction:     %s\nTimeframe:  %s\nMonitoring: %s\n\n",
					r.Priority, r.Action, r.Timeframe, r.Monitoring)
				printImpact(w, assessment.ImpactPotential)
				fmt.Fprintln(w)
				printComparison(w, assessment.DeflectionOptions)
			})
		},
	}
	cmd.Flags().StringVar(&approach.Name, "name", "unnamed", "object designation")
	cmd.Flags().Float64Var(&approach.DiameterM, "diameter", 0, "estimated diameter in meters")
	cmd.Flags().Float64Var(&approach.VelocityKMS, "velocity", 0, "relative velocity in km/s")
	cmd.Flags().Float64Var(&approach.MissDistanceKM, "miss-distance", 0, "miss distance in km")
	for _, name := range []string{"diameter", "velocity", "miss-distance"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newBriefingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "briefing",
		Short: "Show the Impactor-2025 threat briefing",
		RunE: func(_ *cobra.Command, _ []string) error {
			b, err := domain.Impactor2025Briefing()
			if err != nil {
				return err
			}
			return a.render(b, func(w io.Writer) {
				fmt.Fprintf(w, "%s (%s)\n", b.Name, b.AsteroidID)
				fmt.Fprintf(w, "Impact %s near %s, probability %.0f%%, %s\n\n",
					b.PredictedImpactDate.Format("2006-01-02"), b.LocationName, b.ImpactProbability*100, b.Status)
				for _, line := range b.Story.Lines() {
					fmt.Fprintln(w, line)
				}
				fmt.Fprintln(w)
				printImpact(w, b.ImpactAnalysis)
				fmt.Fprintln(w)
				printComparison(w, b.DeflectionOptions)
			})
		},
	}
}

func newGameCmd(a *app) *cobra.Command {
	var (
		challenge      domain.GameChallenge
		strategy       string
		launch, budget float64
		seed           uint64
	)
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Play one round of Defend Earth",
		RunE: func(cmd *cobra.Command, _ []string) error {
			challenge.Strategy = domain.Strategy(strategy)
			if cmd.Flags().Changed("launch") {
				challenge.LaunchTiming = &launch
			}
			if cmd.Flags().Changed("budget") {
				challenge.Budget = &budget
			}
			if seed == 0 {
				seed = a.seedFunc()
			}
			result, err := domain.PlayDefendEarth(challenge, rand.New(rand.NewPCG(seed, seed)))
			if err != nil {
				return err
			}
			return a.render(result, func(w io.Writer) {
				s := result.Scenario
				fmt.Fprintf(w, "Asteroid: %.0f m at %.1f km/s, %.1f years out\n", s.DiameterM, s.VelocityKMS, s.WarningYears)
				fmt.Fprintf(w, "%s: %s\nScore: %d\n", result.Outcome, result.Message, result.Score)
			})
		},
	}
	cmd.Flags().StringVar(&challenge.PlayerName, "player", "", "player name")
	cmd.Flags().StringVar(&strategy, "strategy", "", "deflection strategy (default kinetic_impactor)")
	cmd.Flags().Float64Var(&launch, "launch", 5, "launch timing in years before impact")
	cmd.Flags().Float64Var(&budget, "budget", 500, "mission budget in millions of USD")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	return cmd
}

// render writes v as indented JSON when --json is set, otherwise as text.
func (a *app) render(v any, text func(io.Writer)) error {
	if a.jsonOut {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(a.out)
	return nil
}

func printImpact(w io.Writer, a domain.ImpactAssessment) {
	c, s := a.Calculations, a.Summary
	fmt.Fprintf(w, "Classification:   %s\n", s.Classification)
	fmt.Fprintf(w, "Energy:           %.4g Mt (%.4g Hiroshima)\n", c.KineticEnergyMegatons, c.HiroshimaEquivalent)
	fmt.Fprintf(w, "Crater:           %.2f km wide, %.2f km deep\n", c.CraterDiameterKM, c.CraterDepthKM)
	fmt.Fprintf(w, "Seismic:          magnitude %.1f\n", c.SeismicMagnitude)
	if c.Tsunami != nil {
		fmt.Fprintf(w, "Tsunami:          %.1f m initial wave\n", c.Tsunami.InitialHeightM)
	}
	fmt.Fprintf(w, "Casualties:       %s\n", s.Casualties.Immediate)
	fmt.Fprintf(w, "Economic cost:    %s\n", s.EconomicImpact.CostUSD)
	if len(s.ImmediateEffects) > 0 {
		fmt.Fprintf(w, "Immediate:        %s\n", strings.Join(s.ImmediateEffects, "; "))
	}
}

func printComparison(w io.Writer, c domain.StrategyComparison) {
	r := c.Recommendations
	fmt.Fprintf(w, "Required delta-v: %.4g m/s over %.1f years\n", c.RequiredDeflectionMS, c.WarningTimeYears)
	fmt.Fprintf(w, "Status:           %s\n", r.Status)
	fmt.Fprintf(w, "Recommendation:   %s\n", r.Message)
	if r.PrimaryStrategy != "" {
		fmt.Fprintf(w, "Primary:          %s\n", r.PrimaryStrategy)
	}
	if r.CostEstimate > 0 {
		fmt.Fprintf(w, "Cost estimate:    $%.0fM\n", r.CostEstimate)
	}
	fmt.Fprintln(w)
	for i, rk := range c.Rankings {
		sufficient := " "
		if rk.IsSufficient {
			sufficient = "*"
		}
		fmt.Fprintf(w, "%d. %s %-17s score %.3f  Δv %.4g m/s  $%.0fM\n",
			i+1, sufficient, rk.Strategy, rk.Score, rk.Data.DeltaVMS, rk.Data.MissionCostMillion)
	}
}

func printStrategy(w io.Writer, s domain.Strategy, r domain.DeflectionResult) {
	fmt.Fprintf(w, "Strategy:         %s (%s)\n", s, r.TechnologyReadiness)
	fmt.Fprintf(w, "Delta-v:          %.4g m/s\n", r.DeltaVMS)
	fmt.Fprintf(w, "Deflection:       %.4g km\n", r.DeflectionDistanceKM)
	fmt.Fprintf(w, "Success:          %.0f%%\n", r.SuccessProbability*100)
	fmt.Fprintf(w, "Cost:             $%.0fM\n", r.MissionCostMillion)
	if r.Warning != "" {
		fmt.Fprintf(w, "Warning:          %s\n", r.Warning)
	}
}
