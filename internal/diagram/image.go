// Package diagram draws capacity curves and section outlines, as terminal
// charts or as image files.
package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gosteel/internal/section"
)

var (
	curveColor  = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	markerColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	fillColor   = color.RGBA{R: 100, G: 149, B: 237, A: 150}
)

// save writes p to filename; the extension selects png, svg or pdf.
func save(p *plot.Plot, filename string, width, height vg.Length) error {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".png", ".svg", ".pdf":
	default:
		return fmt.Errorf("unsupported image format %q (want .png, .svg or .pdf)", ext)
	}
	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return p.Save(width, height, filename)
}

// Export draws a capacity curve to an image file.
func Export(c Curve, filename string) error {
	if len(c.Points) < 2 {
		return fmt.Errorf("curve %q has too few points", c.Title)
	}
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(c.Points))
	maxY := 0.0
	for i, pt := range c.Points {
		pts[i] = plotter.XY{X: pt.X, Y: pt.Y}
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = curveColor
	p.Add(line)
	p.Legend.Add(c.YLabel, line)

	for _, m := range c.Markers {
		ml, err := plotter.NewLine(plotter.XYs{{X: m.X, Y: 0}, {X: m.X, Y: maxY * 1.05}})
		if err != nil {
			return err
		}
		ml.LineStyle.Width = vg.Points(1)
		ml.LineStyle.Color = markerColor
		ml.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(ml)

		lbl, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: m.X, Y: maxY * 1.05}},
			Labels: []string{m.Label},
		})
		if err != nil {
			return err
		}
		p.Add(lbl)
	}

	return save(p, filename, 8*vg.Inch, 6*vg.Inch)
}

// ExportOutline draws a built-up section outline with its centroidal axes.
func ExportOutline(o *section.Outline, filename string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	props := o.CalculateProperties()

	p := plot.New()
	p.Title.Text = o.Name
	p.X.Label.Text = "x (mm)"
	p.Y.Label.Text = "y (mm)"

	pts := make(plotter.XYs, len(o.Vertices))
	for i, v := range o.Vertices {
		pts[i] = plotter.XY{X: v.X, Y: v.Y}
	}
	poly, err := plotter.NewPolygon(pts)
	if err != nil {
		return err
	}
	poly.Color = fillColor
	poly.LineStyle.Width = vg.Points(2)
	poly.LineStyle.Color = color.Black
	p.Add(poly)

	margin := 0.1 * max(props.Width, props.Height)
	axes := []plotter.XYs{
		{{X: props.MinX - margin, Y: props.CentroidY}, {X: props.MaxX + margin, Y: props.CentroidY}},
		{{X: props.CentroidX, Y: props.MinY - margin}, {X: props.CentroidX, Y: props.MaxY + margin}},
	}
	for _, a := range axes {
		l, err := plotter.NewLine(a)
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = markerColor
		l.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(l)
	}

	c, err := plotter.NewScatter(plotter.XYs{{X: props.CentroidX, Y: props.CentroidY}})
	if err != nil {
		return err
	}
	c.GlyphStyle.Color = markerColor
	c.GlyphStyle.Radius = vg.Points(4)
	c.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(c)

	lbl, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: props.MaxX + margin, Y: props.CentroidY}},
		Labels: []string{fmt.Sprintf("A=%.0fmm² Ix=%.3gmm⁴", props.Area, props.Ix)},
	})
	if err != nil {
		return err
	}
	p.Add(lbl)

	return save(p, filename, 6*vg.Inch, 6*vg.Inch)
}
