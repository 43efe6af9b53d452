package heatsim

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Stats summarizes a field.
type Stats struct {
	Min, Max, Mean float64
}

// Summarize computes min, max and mean over the committed buffer.
func Summarize[T Scalar](g *Grid[T]) Stats {
	vals := toFloat64(g.Cells())
	return Stats{
		Min:  floats.Min(vals),
		Max:  floats.Max(vals),
		Mean: floats.Sum(vals) / float64(len(vals)),
	}
}

// AutoRange returns the largest distance of any cell from base, which makes
// the hottest (or coldest) cell land exactly on its palette anchor. A flat
// field returns 1 so the result is always usable as a color range.
func AutoRange[T Scalar](g *Grid[T], base float64) float64 {
	st := Summarize(g)
	rng := math.Max(math.Abs(st.Max-base), math.Abs(st.Min-base))
	if !(rng > 0) {
		return 1
	}
	return rng
}

func toFloat64[T Scalar](cells []T) []float64 {
	if f, ok := any(cells).([]float64); ok {
		return f
	}
	out := make([]float64, len(cells))
	for i, v := range cells {
		out[i] = float64(v)
	}
	return out
}
