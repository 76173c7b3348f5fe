package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
)

// TimeSeries renders one trajectory channel as an ascii line graph.
func TimeSeries(data []float64, caption string) string {
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

// PhasePortrait draws the (position, velocity) orbit onto a braille
// canvas of w x h character cells, connecting consecutive samples.
func PhasePortrait(positions, velocities []float64, w, h int) string {
	c := NewCanvas(w, h)
	if len(positions) < 2 || len(positions) != len(velocities) {
		return c.String()
	}

	minX, maxX := bounds(positions)
	minY, maxY := bounds(velocities)

	// keep a degenerate orbit (fixed point) drawable
	if maxX-minX < 1e-12 {
		minX, maxX = minX-1, maxX+1
	}
	if maxY-minY < 1e-12 {
		minY, maxY = minY-1, maxY+1
	}

	px := float64(w*2 - 1)
	py := float64(h*4 - 1)
	toPixel := func(x, y float64) (int, int) {
		sx := (x - minX) / (maxX - minX) * px
		// velocity axis points up
		sy := (1 - (y-minY)/(maxY-minY)) * py
		return int(sx), int(sy)
	}

	x0, y0 := toPixel(positions[0], velocities[0])
	for i := 1; i < len(positions); i++ {
		x1, y1 := toPixel(positions[i], velocities[i])
		c.Line(x0, y0, x1, y1)
		x0, y0 = x1, y1
	}

	return c.String()
}

func bounds(data []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
