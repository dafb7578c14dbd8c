package domain

import (
	"math"
	"strings"
)

const (
	// JoulesPerMegaton is the energy of one megaton of TNT.
	JoulesPerMegaton = 4.184e15

	// hiroshimaMegatons is the yield of the Hiroshima bomb (~15 kt), used only
	// for human-scale framing.
	hiroshimaMegatons = 0.015

	// DefaultImpactAngle is the most probable impact angle, in degrees from horizontal.
	DefaultImpactAngle = 45.0
)

// Composition is a typed density preset for an impactor.
type Composition string

const (
	CompositionRocky    Composition = "rocky"
	CompositionMetallic Composition = "metallic"
	CompositionIcy      Composition = "icy"
)

// Density returns the preset bulk density in kg/m³, or 0 for an unknown composition.
func (c Composition) Density() float64 {
	switch Composition(strings.ToLower(string(c))) {
	case CompositionRocky:
		return 3000
	case CompositionMetallic:
		return 8000
	case CompositionIcy:
		return 1000
	default:
		return 0
	}
}

// RockyDensity is the density assumed when a caller supplies none.
var RockyDensity = CompositionRocky.Density()

// Impactor is an immutable asteroid body. Construct it with NewImpactor; the
// zero value is not valid.
type Impactor struct {
	diameter float64 // m
	velocity float64 // km/s
	density  float64 // kg/m³
	angle    float64 // degrees from horizontal, clamped to [0,90]
}

// NewImpactor validates and builds an Impactor. Diameter (m), velocity (km/s)
// and density (kg/m³) must be positive and finite, and so must the kinetic
// energy they produce. The angle is clamped into [0,90]; only a non-finite
// angle is rejected.
func NewImpactor(diameter, velocity, density, angle float64) (Impactor, error) {
	if !positiveFinite(diameter) {
		return Impactor{}, invalidParameter("diameter must be positive, got %g", diameter)
	}
	if !positiveFinite(velocity) {
		return Impactor{}, invalidParameter("velocity must be positive, got %g", velocity)
	}
	if !positiveFinite(density) {
		return Impactor{}, invalidParameter("density must be positive, got %g", density)
	}
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return Impactor{}, invalidParameter("angle must be finite, got %g", angle)
	}
	i := Impactor{
		diameter: diameter,
		velocity: velocity,
		density:  density,
		angle:    clamp(angle, 0, 90),
	}
	if ke := i.KineticEnergy(); !positiveFinite(ke) {
		return Impactor{}, invalidParameter("kinetic energy out of range, got %g J", ke)
	}
	return i, nil
}

// NewImpactorOfComposition builds an Impactor whose density comes from a preset.
func NewImpactorOfComposition(diameter, velocity float64, c Composition, angle float64) (Impactor, error) {
	density := c.Density()
	if density == 0 {
		return Impactor{}, invalidParameter("unknown composition %q", c)
	}
	return NewImpactor(diameter, velocity, density, angle)
}

func (i Impactor) Diameter() float64 { return i.diameter }
func (i Impactor) Velocity() float64 { return i.velocity }
func (i Impactor) Density() float64  { return i.density }
func (i Impactor) Angle() float64    { return i.angle }
func (i Impactor) Radius() float64   { return i.diameter / 2 }

// Mass is the mass of a uniform sphere, in kg.
func (i Impactor) Mass() float64 {
	return SphereMass(i.diameter, i.density)
}

// KineticEnergy is ½·m·v² in joules, with velocity converted to m/s.
func (i Impactor) KineticEnergy() float64 {
	v := i.velocity * 1000
	return 0.5 * i.Mass() * v * v
}

// ObliqueEnergy scales kinetic energy by sin(angle). Crater, blast, thermal,
// tsunami and climate scaling all start from this value.
func (i Impactor) ObliqueEnergy() float64 {
	return i.KineticEnergy() * math.Sin(degToRad(i.angle))
}

// VerticalEnergy scales kinetic energy by cos²(angle), the vertical-component
// model. It is kept separate from ObliqueEnergy; the two do not agree.
func (i Impactor) VerticalEnergy() float64 {
	c := math.Cos(degToRad(i.angle))
	return i.KineticEnergy() * c * c
}

// TNTEquivalent is the vertical-component energy in megatons of TNT.
func (i Impactor) TNTEquivalent() float64 {
	return Megatons(i.VerticalEnergy())
}

// Megatons converts joules to megatons of TNT.
func Megatons(joules float64) float64 {
	return joules / JoulesPerMegaton
}

// SphereMass returns (4/3)·π·(d/2)³·ρ.
func SphereMass(diameter, density float64) float64 {
	r := diameter / 2
	return (4.0 / 3.0) * math.Pi * r * r * r * density
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
