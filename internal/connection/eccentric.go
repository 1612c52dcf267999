package connection

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gosteel/internal/limitstate"
	"github.com/alexiusacademia/gosteel/internal/units"
)

// Position locates a bolt in the plane of the connection.
type Position struct {
	X, Y units.Quantity
}

// BoltForce is the resultant shear on one bolt of an eccentric group.
type BoltForce struct {
	Position
	Fx, Fy    units.Quantity
	Resultant units.Quantity
}

// EccentricResult holds the elastic distribution of an eccentric load.
type EccentricResult struct {
	Forces   []BoltForce
	Critical int // index of the most loaded bolt
	Moment   units.Quantity
	Polar    units.Quantity // Σr² about the group centroid
}

// EccentricShear distributes a load P acting along x, at eccentricity e from
// the bolt group centroid, by the elastic method: a direct share P/n along x
// plus a torsional share M·r/Σr² perpendicular to the radius.
func EccentricShear(p, e units.Quantity, bolts []Position) (*EccentricResult, error) {
	if len(bolts) == 0 {
		return nil, fmt.Errorf("%w: no bolts", limitstate.ErrInvalidInput)
	}
	if p.Dim() != units.Force {
		return nil, fmt.Errorf("%w: load must be a force", units.ErrDimensionMismatch)
	}
	if e.Dim() != units.Length {
		return nil, fmt.Errorf("%w: eccentricity must be a length", units.ErrDimensionMismatch)
	}
	for i, b := range bolts {
		if b.X.Dim() != units.Length || b.Y.Dim() != units.Length {
			return nil, fmt.Errorf("%w: bolt %d position must be a length", units.ErrDimensionMismatch, i+1)
		}
	}

	n := float64(len(bolts))
	var cx, cy float64
	for _, b := range bolts {
		cx += b.X.SI()
		cy += b.Y.SI()
	}
	cx, cy = cx/n, cy/n

	var polar float64
	for _, b := range bolts {
		dx, dy := b.X.SI()-cx, b.Y.SI()-cy
		polar += dx*dx + dy*dy
	}

	moment := p.Mul(e)
	m := moment.SI()
	if polar == 0 && m != 0 {
		return nil, fmt.Errorf("%w: bolt group has no torsional resistance", limitstate.ErrInvalidInput)
	}

	res := &EccentricResult{
		Forces: make([]BoltForce, len(bolts)),
		Moment: moment,
		Polar:  units.New(polar, units.M2),
	}
	direct := p.SI() / n
	best := -1.0
	for i, b := range bolts {
		dx, dy := b.X.SI()-cx, b.Y.SI()-cy
		fx, fy := direct, 0.0
		if m != 0 {
			fx -= m * dy / polar
			fy += m * dx / polar
		}
		r := math.Hypot(fx, fy)
		res.Forces[i] = BoltForce{
			Position:  b,
			Fx:        units.New(fx, units.N),
			Fy:        units.New(fy, units.N),
			Resultant: units.New(r, units.N),
		}
		if r > best {
			best = r
			res.Critical = i
		}
	}
	return res, nil
}

// Max returns the resultant on the critical bolt.
func (r *EccentricResult) Max() units.Quantity {
	return r.Forces[r.Critical].Resultant
}
