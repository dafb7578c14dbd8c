package domain

import "fmt"

// ClassifyImpact maps effective yield in megatons onto the eight severity tiers.
func ClassifyImpact(megatons float64) string {
	switch {
	case megatons > 1e8:
		return "Extinction Event (K-T level)"
	case megatons > 1e6:
		return "Global Catastrophe"
	case megatons > 1e4:
		return "Continental Disaster"
	case megatons > 1000:
		return "Regional Catastrophe"
	case megatons > 100:
		return "Major Regional Impact"
	case megatons > 10:
		return "Significant Local Impact"
	case megatons > 1:
		return "Moderate Local Impact"
	default:
		return "Minor Impact"
	}
}

// Summarize renders the human-readable digest of a hazard record.
func Summarize(e ImpactEffects) ImpactSummary {
	return ImpactSummary{
		Classification:   ClassifyImpact(e.EffectiveMegatons),
		ImmediateEffects: immediateEffects(e),
		RegionalEffects:  regionalEffects(e),
		GlobalEffects:    globalEffects(e),
		Casualties:       estimateCasualties(e.EffectiveMegatons),
		EconomicImpact:   estimateEconomicImpact(e.EffectiveMegatons),
	}
}

func immediateEffects(e ImpactEffects) []string {
	return []string{
		fmt.Sprintf("Crater: %.1f km diameter, %.1f km deep", e.CraterDiameterKM, e.CraterDepthKM),
		fmt.Sprintf("Seismic: Magnitude %.1f earthquake", e.SeismicMagnitude),
		fmt.Sprintf("Total vaporization within %.1f km", e.CraterDiameterKM/2),
	}
}

// SevereBlastRadiusKM is the farthest sampled distance still seeing at least
// 5 psi, or 0 when no sample reaches that level.
func SevereBlastRadiusKM(blast []BlastEffect) float64 {
	var r float64
	for _, b := range blast {
		if b.OverpressurePSI >= 5 {
			r = b.DistanceKM
		}
	}
	return r
}

func regionalEffects(e ImpactEffects) []string {
	var out []string
	if r := SevereBlastRadiusKM(e.BlastEffects); r > 0 {
		out = append(out,
			fmt.Sprintf("Severe blast damage out to ~%g km", r),
			fmt.Sprintf("Thermal burns within ~%g km", r/2),
		)
	} else {
		out = append(out, "No severe blast damage beyond 1 km")
	}
	out = append(out, fmt.Sprintf("Ejecta blanket extends %.0f km", e.EjectaBlanketRadiusKM))
	if e.Tsunami != nil && len(e.Tsunami.Effects) > 0 {
		out = append(out, fmt.Sprintf("Tsunami waves reach coastlines in %.1f hours", e.Tsunami.Effects[0].ArrivalTimeHours))
	}
	return out
}

func globalEffects(e ImpactEffects) []string {
	out := []string{}
	if e.ClimateDisruptionYears > 0 {
		out = append(out,
			"Climate disruption: "+e.CoolingEffect,
			fmt.Sprintf("Duration: %.1f years", e.ClimateDisruptionYears),
		)
	}
	switch mt := e.EffectiveMegatons; {
	case mt > 1000:
		out = append(out, "Global agricultural disruption", "Potential mass extinction event")
	case mt > 100:
		out = append(out, "Regional agricultural failure", "Global economic disruption")
	}
	return out
}

func estimateCasualties(megatons float64) CasualtyEstimate {
	switch {
	case megatons > 1e6:
		return CasualtyEstimate{Immediate: "1+ billion", Total: "Majority of human population", Note: "Extinction-level event"}
	case megatons > 1e4:
		return CasualtyEstimate{Immediate: "100+ million", Total: "1+ billion", Note: "Global catastrophe"}
	case megatons > 1000:
		return CasualtyEstimate{Immediate: "1-100 million", Total: "10-500 million", Note: "Depends heavily on impact location"}
	case megatons > 100:
		return CasualtyEstimate{Immediate: "100,000 - 10 million", Total: "1-50 million", Note: "Major regional disaster"}
	default:
		return CasualtyEstimate{Immediate: "1,000 - 1 million", Total: "10,000 - 10 million", Note: "Significant local impact"}
	}
}

func estimateEconomicImpact(megatons float64) EconomicImpact {
	switch {
	case megatons > 1e6:
		return EconomicImpact{CostUSD: "Incalculable", Note: "End of civilization"}
	case megatons > 1e4:
		return EconomicImpact{CostUSD: "$100+ trillion", Note: "Global economic collapse"}
	case megatons > 1000:
		return EconomicImpact{CostUSD: "$10-100 trillion", Note: "Continental devastation"}
	case megatons > 100:
		return EconomicImpact{CostUSD: "$1-10 trillion", Note: "Regional catastrophe"}
	default:
		return EconomicImpact{CostUSD: "$100 billion - $1 trillion", Note: "Major disaster"}
	}
}
