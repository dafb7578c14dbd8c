// Package domain models the consequences of an asteroid impact and the
// deflection missions that could prevent it.
//
// # Units
//
// Inputs follow the conventions of close-approach feeds:
//
//	diameter   metres
//	velocity   km/s (converted to m/s before any energy calculation)
//	density    kg/m³ (presets: rocky 3000, metallic 8000, icy 1000)
//	angle      degrees from horizontal, clamped to [0,90], default 45
//	energy     joules; 1 Mt TNT = 4.184e15 J
//
// # Angle conventions
//
// Two angle adjustments coexist and are never unified:
//
//	oblique  (KE·sin θ)   feeds crater, seismic, blast, thermal, tsunami
//	                      and climate scaling; reported as effective_*
//	vertical (KE·cos² θ)  the vertical-component model; reported as
//	                      vertical_* and by [Impactor.TNTEquivalent]
//
// # Hazard ladders
//
// Every distance-indexed effect is sampled on a fixed ascending ladder (km):
//
//	seismic  10 50 100 500 1000 5000
//	blast    1 5 10 25 50 100 250 500
//	thermal  1 5 10 25 50 100 250
//	tsunami  100 500 1000 2000 5000   (water, ocean, coast targets only)
//	ejecta   10 50 100 500            (only inside the blanket radius)
//
// Severity classification by effective yield (Mt):
//
//	>1e8 Extinction Event | >1e6 Global Catastrophe | >1e4 Continental Disaster
//	>1e3 Regional Catastrophe | >100 Major Regional Impact
//	>10 Significant Local Impact | >1 Moderate Local Impact | else Minor Impact
//
// # Deflection
//
// Five closed [DeflectionModel] implementations evaluate a [DeflectionMission].
// Velocity change is always extrapolated over the warning time, not the
// mission duration. [CompareStrategies] ranks them by
//
//	0.3·(Δv/Δv_required) + 0.3·p + 0.2·(1000/cost) + 0.2/max(prep,1)
//
// and [Recommend] buckets the outcome by warning time:
//
//	no sufficient strategy  INSUFFICIENT
//	< 5 years               URGENT    (nuclear if it is the top sufficient, else kinetic)
//	5-15 years              ADEQUATE  (kinetic; ion beam, nuclear)
//	>= 15 years             OPTIMAL   (gravity tractor; ion beam, kinetic)
//
// # Errors
//
// Validation failures wrap [ErrInvalidParameter] or [ErrInvalidSchedule] and
// no partial result is returned.
//
// # ID Generation
//
// Evaluation ids are SHA-256 hashes of the request kind and canonical request
// JSON, so replaying a request yields the same id. See [generateID].
package domain
