package section

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
)

// steelDensity is used to derive the linear weight of a built-up outline (kg/m³).
const steelDensity = 7850.0

// plasticStrips is the number of strips used to locate the plastic neutral
// axis and integrate the plastic modulus.
const plasticStrips = 2000

// Point represents a 2D outline vertex (mm)
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline is a built-up section defined by its boundary vertices.
// The outline is defined in a local coordinate system where:
// - Y-axis points upward (strong-axis bending about X)
// - X-axis points to the right
// Vertices should be counter-clockwise and form a simple polygon.
type Outline struct {
	Name     string  `json:"name"`
	Vertices []Point `json:"vertices"`
}

// Properties holds gross geometric properties of an outline (mm units)
type Properties struct {
	Width  float64
	Height float64
	Area   float64

	CentroidX float64
	CentroidY float64

	Ix, Iy float64 // about centroidal axes (mm⁴)
	Sx, Sy float64 // elastic moduli (mm³)
	Zx, Zy float64 // plastic moduli (mm³)
	Rx, Ry float64 // radii of gyration (mm)

	MinX, MaxX float64
	MinY, MaxY float64
}

// LoadOutline reads an outline definition from a JSON file
func LoadOutline(path string) (*Outline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var o Outline
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// Validate checks if the outline definition is valid
func (o *Outline) Validate() error {
	if o.Name == "" {
		return &ValidationError{"outline must have a name"}
	}
	if len(o.Vertices) < 3 {
		return &ValidationError{"outline must have at least 3 vertices"}
	}
	if a, _, _ := o.areaAndCentroid(); a <= 0 {
		return &ValidationError{"outline encloses no area"}
	}
	return nil
}

// CalculateProperties computes the gross properties of the outline
func (o *Outline) CalculateProperties() *Properties {
	p := &Properties{}
	if len(o.Vertices) < 3 {
		return p
	}

	p.MinX, p.MaxX = o.Vertices[0].X, o.Vertices[0].X
	p.MinY, p.MaxY = o.Vertices[0].Y, o.Vertices[0].Y
	for _, v := range o.Vertices {
		p.MinX = math.Min(p.MinX, v.X)
		p.MaxX = math.Max(p.MaxX, v.X)
		p.MinY = math.Min(p.MinY, v.Y)
		p.MaxY = math.Max(p.MaxY, v.Y)
	}
	p.Width = p.MaxX - p.MinX
	p.Height = p.MaxY - p.MinY

	p.Area, p.CentroidX, p.CentroidY = o.areaAndCentroid()
	if p.Area <= 0 {
		return p
	}

	ixo, iyo := o.originMoments()
	p.Ix = ixo - p.Area*p.CentroidY*p.CentroidY
	p.Iy = iyo - p.Area*p.CentroidX*p.CentroidX
	p.Sx = p.Ix / math.Max(p.MaxY-p.CentroidY, p.CentroidY-p.MinY)
	p.Sy = p.Iy / math.Max(p.MaxX-p.CentroidX, p.CentroidX-p.MinX)
	p.Rx = math.Sqrt(p.Ix / p.Area)
	p.Ry = math.Sqrt(p.Iy / p.Area)

	p.Zx = o.plasticModulus(p.MinY, p.MaxY)
	p.Zy = o.transposed().plasticModulus(p.MinX, p.MaxX)
	return p
}

// Record converts the outline into a built-up shape record in database units.
func (o *Outline) Record() (*Record, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	p := o.CalculateProperties()
	return NewRecord(o.Name, "", TypeBuiltUp, map[string]float64{
		"A":  p.Area,
		"d":  p.Height,
		"bf": p.Width,
		"Ix": p.Ix / 1e6,
		"Iy": p.Iy / 1e6,
		"Sx": p.Sx / 1e3,
		"Sy": p.Sy / 1e3,
		"Zx": p.Zx / 1e3,
		"Zy": p.Zy / 1e3,
		"rx": p.Rx,
		"ry": p.Ry,
		"W":  p.Area * 1e-6 * steelDensity,
	})
}

// areaAndCentroid uses the shoelace formula
func (o *Outline) areaAndCentroid() (area, cx, cy float64) {
	n := len(o.Vertices)
	if n < 3 {
		return 0, 0, 0
	}

	var signedArea float64
	var sumX, sumY float64

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := o.Vertices[i].X*o.Vertices[j].Y - o.Vertices[j].X*o.Vertices[i].Y
		signedArea += cross
		sumX += (o.Vertices[i].X + o.Vertices[j].X) * cross
		sumY += (o.Vertices[i].Y + o.Vertices[j].Y) * cross
	}

	signedArea /= 2
	area = math.Abs(signedArea)

	if area > 0 {
		cx = sumX / (6 * signedArea)
		cy = sumY / (6 * signedArea)
	}

	return area, cx, cy
}

// originMoments returns the second moments about the coordinate axes.
func (o *Outline) originMoments() (ix, iy float64) {
	n := len(o.Vertices)
	var signedArea float64
	for i := 0; i < n; i++ {
		a, b := o.Vertices[i], o.Vertices[(i+1)%n]
		cross := a.X*b.Y - b.X*a.Y
		signedArea += cross
		ix += (a.Y*a.Y + a.Y*b.Y + b.Y*b.Y) * cross
		iy += (a.X*a.X + a.X*b.X + b.X*b.X) * cross
	}
	if signedArea < 0 {
		ix, iy = -ix, -iy
	}
	return ix / 12, iy / 12
}

// plasticModulus integrates |y - yp| over horizontal strips, where yp splits
// the area in half.
func (o *Outline) plasticModulus(minY, maxY float64) float64 {
	dy := (maxY - minY) / plasticStrips
	widths := make([]float64, plasticStrips)
	var total float64
	for i := range widths {
		widths[i] = o.widthAtY(minY + (float64(i)+0.5)*dy)
		total += widths[i] * dy
	}

	yp := minY
	var below float64
	for i, w := range widths {
		dA := w * dy
		if below+dA >= total/2 {
			yp = minY + float64(i)*dy
			if dA > 0 {
				yp += (total/2 - below) / w
			}
			break
		}
		below += dA
	}

	var z float64
	for i, w := range widths {
		z += w * dy * math.Abs(minY+(float64(i)+0.5)*dy-yp)
	}
	return z
}

func (o *Outline) transposed() *Outline {
	t := &Outline{Name: o.Name, Vertices: make([]Point, len(o.Vertices))}
	for i, v := range o.Vertices {
		t.Vertices[i] = Point{X: v.Y, Y: v.X}
	}
	return t
}

// widthAtY calculates the width at a specific Y coordinate
func (o *Outline) widthAtY(y float64) float64 {
	intersections := o.findIntersectionsAtY(y)

	if len(intersections) < 2 {
		return 0
	}

	// Sort intersections by X coordinate
	sort.Float64s(intersections)

	// Total width is the sum of all segments
	var totalWidth float64
	for i := 0; i+1 < len(intersections); i += 2 {
		totalWidth += intersections[i+1] - intersections[i]
	}

	return totalWidth
}

// findIntersectionsAtY finds all X coordinates where a horizontal line at Y intersects the polygon
func (o *Outline) findIntersectionsAtY(y float64) []float64 {
	var intersections []float64
	n := len(o.Vertices)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		v1, v2 := o.Vertices[i], o.Vertices[j]

		// Check if the edge crosses the Y level
		if (v1.Y <= y && v2.Y > y) || (v2.Y <= y && v1.Y > y) {
			t := (y - v1.Y) / (v2.Y - v1.Y)
			intersections = append(intersections, v1.X+t*(v2.X-v1.X))
		}
	}

	return intersections
}

func (p *Properties) String() string {
	return fmt.Sprintf("A=%.0f mm², Ix=%.4g mm⁴, Iy=%.4g mm⁴, rx=%.1f mm, ry=%.1f mm",
		p.Area, p.Ix, p.Iy, p.Rx, p.Ry)
}
