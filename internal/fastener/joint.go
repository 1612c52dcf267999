package fastener

import (
	"errors"
	"math"

	"github.com/alexiusacademia/gosteel/internal/units"
)

const (
	// frustumAngle is the pressure cone half-angle of a through-bolted joint.
	frustumAngle = 30 * math.Pi / 180
	// DefaultNutFactor is the torque coefficient for dry steel.
	DefaultNutFactor = 0.2
	// DefaultPreloadFraction of proof load for reusable connections.
	DefaultPreloadFraction = 0.75
)

// JointGeometry describes a preloaded bolted joint.
type JointGeometry struct {
	Grip        units.Quantity // clamped thickness
	HeadBearing units.Quantity // head or washer diameter
	Hole        units.Quantity // through-hole diameter
	Bolts       int
}

// Joint is a preloaded tension joint made of identical bolts.
type Joint struct {
	Bolt    Bolt
	Geom    JointGeometry
	BoltE   units.Quantity
	MemberE units.Quantity

	kb, km float64 // N/m
}

// JointLoad is the response of the joint to an external tensile load.
type JointLoad struct {
	BoltLoad         units.Quantity
	MemberLoad       units.Quantity // remaining clamp force
	BoltStress       units.Quantity
	SeparationFactor float64 // +Inf when there is no external load
	YieldFactor      float64
	StiffnessRatio   float64
}

// NewJoint computes bolt and member stiffness for a joint.
func NewJoint(b Bolt, g JointGeometry, boltE, memberE units.Quantity) (*Joint, error) {
	if g.Bolts <= 0 {
		g.Bolts = 1
	}
	grip := g.Grip.SI()
	if grip <= 0 || g.Hole.SI() <= 0 || g.HeadBearing.SI() <= 0 {
		return nil, errors.New("joint geometry must be positive")
	}
	if boltE.Dim() != units.Stress || memberE.Dim() != units.Stress {
		return nil, units.ErrDimensionMismatch
	}

	j := &Joint{Bolt: b, Geom: g, BoltE: boltE, MemberE: memberE}
	j.kb = b.Thread.StressArea.SI() * boltE.SI() / grip

	dh, dw := g.Hole.SI(), g.HeadBearing.SI()
	dsub := math.Min(dh, dw) + grip*math.Tan(frustumAngle)
	area := math.Pi * (dsub*dsub - dh*dh) / 4
	if area <= 0 {
		area = math.Pi * dh * dh / 4
	}
	j.km = area * memberE.SI() / grip
	return j, nil
}

// BoltStiffness returns k_b.
func (j *Joint) BoltStiffness() float64 { return j.kb }

// MemberStiffness returns k_m.
func (j *Joint) MemberStiffness() float64 { return j.km }

// StiffnessRatio returns C = k_b / (k_b + k_m), the share of external load
// taken by the bolt.
func (j *Joint) StiffnessRatio() float64 {
	return j.kb / (j.kb + j.km)
}

// PreloadFromTorque returns F = T / (K d).
func (j *Joint) PreloadFromTorque(torque units.Quantity, nutFactor float64) units.Quantity {
	if nutFactor <= 0 {
		nutFactor = DefaultNutFactor
	}
	return torque.Div(j.Bolt.Thread.Diameter).Scale(1 / nutFactor)
}

// RecommendedPreload returns fraction·Sy·As.
func (j *Joint) RecommendedPreload(fraction float64) units.Quantity {
	if fraction <= 0 {
		fraction = DefaultPreloadFraction
	}
	return j.Bolt.Material.Fy.Mul(j.Bolt.Thread.StressArea).Scale(fraction)
}

// Analyze distributes an external tensile load between bolts and members.
func (j *Joint) Analyze(preload, external units.Quantity) (JointLoad, error) {
	if preload.Dim() != units.Force || external.Dim() != units.Force {
		return JointLoad{}, units.ErrDimensionMismatch
	}
	c := j.StiffnessRatio()
	p := external.Scale(1 / float64(j.Geom.Bolts))

	bolt, _ := preload.Add(p.Scale(c))
	member, _ := preload.Sub(p.Scale(1 - c))
	stress := bolt.Div(j.Bolt.Thread.StressArea)

	sep := math.Inf(1)
	if p.SI() > 0 {
		sep = preload.SI() / ((1 - c) * p.SI())
	}
	return JointLoad{
		BoltLoad:         bolt,
		MemberLoad:       member,
		BoltStress:       stress,
		SeparationFactor: sep,
		YieldFactor:      j.Bolt.Material.Fy.SI() / stress.SI(),
		StiffnessRatio:   c,
	}, nil
}
