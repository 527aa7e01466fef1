package dynamo

// Interval is the closed span [Lo·L/Parts, Hi·L/Parts] of a domain of length
// L. Scale multiplies the base source amplitude tmax·f² inside the span.
type Interval struct {
	Lo    float64
	Hi    float64
	Parts float64
	Scale float64
}

// Contains reports whether x lies inside the span for a domain of length l.
func (iv Interval) Contains(x, l float64) bool {
	return x >= iv.Lo*l/iv.Parts && x <= iv.Hi*l/iv.Parts
}

// Rect is an axis-aligned square source region of the plate. The amplitude
// scale is taken from X.
type Rect struct {
	X Interval
	Y Interval
}

func (r Rect) Contains(x, y, l float64) bool {
	return r.X.Contains(x, l) && r.Y.Contains(y, l)
}

// Source regions of the bar, in tenths of its length.
var BarSources = []Interval{
	{Lo: 1, Hi: 2, Parts: 10, Scale: 1},
	{Lo: 5, Hi: 6, Parts: 10, Scale: 0.75},
}

var (
	plateLow  = Interval{Lo: 1, Hi: 2, Parts: 6, Scale: 1}
	plateHigh = Interval{Lo: 4, Hi: 5, Parts: 6, Scale: 1}
)

// Source regions of the plate, in sixths of its side: one square near each corner.
var PlateSources = []Rect{
	{X: plateLow, Y: plateLow},
	{X: plateHigh, Y: plateLow},
	{X: plateLow, Y: plateHigh},
	{X: plateHigh, Y: plateHigh},
}

// SourceAmplitude is the base heat-source density tmax·f².
func SourceAmplitude(tmax, f float64) float64 {
	return tmax * f * f
}

// BuildSource1D samples the regions at x_i = i·dx. The first region that
// contains a point decides its value.
func BuildSource1D(g Grid, f float64, regions []Interval) []float64 {
	amp := SourceAmplitude(g.TMax, f)
	src := make([]float64, g.N)
	for i := range src {
		x := g.X(i)
		for _, iv := range regions {
			if iv.Contains(x, g.Length) {
				src[i] = iv.Scale * amp
				break
			}
		}
	}
	return src
}

// BuildSource2D samples the rectangles at (x_i, y_j) into a row-major grid
// (index j·n+i).
func BuildSource2D(g Grid, f float64, rects []Rect) []float64 {
	amp := SourceAmplitude(g.TMax, f)
	n := g.N
	src := make([]float64, n*n)
	for j := 0; j < n; j++ {
		y := g.X(j)
		for i := 0; i < n; i++ {
			x := g.X(i)
			for _, r := range rects {
				if r.Contains(x, y, g.Length) {
					src[j*n+i] = r.X.Scale * amp
					break
				}
			}
		}
	}
	return src
}
