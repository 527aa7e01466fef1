package export

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	figureWidth  = 6 * vg.Inch
	figureHeight = 4 * vg.Inch
	heatLevels   = 32
)

// ProfilePNG draws a temperature profile u(x) and saves it to path. The image
// format follows the file extension (png, svg, pdf).
func ProfilePNG(path string, x, u []float64, title string) error {
	if len(x) != len(u) {
		return fmt.Errorf("profile: %d coordinates for %d values", len(x), len(u))
	}
	if len(u) == 0 {
		return fmt.Errorf("profile: empty field")
	}

	pts := make(plotter.XYs, len(u))
	for i := range u {
		pts[i].X = x[i]
		pts[i].Y = u[i]
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "T (K)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)

	return p.Save(figureWidth, figureHeight, path)
}

// HeatmapPNG draws a square plate field stored row-major (index j·n+i) with
// cell spacing dx and saves it to path.
func HeatmapPNG(path string, field []float64, n int, dx float64, title string) error {
	if n < 2 || len(field) != n*n {
		return fmt.Errorf("heatmap: %d values do not form a %dx%d grid", len(field), n, n)
	}

	grid := &denseGrid{m: mat.NewDense(n, n, field), dx: dx}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	hm := plotter.NewHeatMap(grid, palette.Heat(heatLevels, 1))
	if hm.Max == hm.Min {
		// uniform field, e.g. the initial state
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	return p.Save(figureHeight, figureHeight, path)
}

// denseGrid adapts a row-major matrix to plotter.GridXYZ: column c is x and
// row r is y.
type denseGrid struct {
	m  *mat.Dense
	dx float64
}

func (g *denseGrid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g *denseGrid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g *denseGrid) X(c int) float64    { return float64(c) * g.dx }
func (g *denseGrid) Y(r int) float64    { return float64(r) * g.dx }
