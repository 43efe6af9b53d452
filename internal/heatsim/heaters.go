package heatsim

import "fmt"

// HeatSource pins one cell to a fixed temperature for the whole run.
type HeatSource[T Scalar] struct {
	Row, Col int
	Temp     T
}

// Sources is the ordered heat source set. It is loaded once before the run
// and never modified afterwards.
type Sources[T Scalar] []HeatSource[T]

// Validate checks every source against a cols x rows grid.
func (s Sources[T]) Validate(cols, rows int) error {
	for i, h := range s {
		if h.Row < 0 || h.Row >= rows || h.Col < 0 || h.Col >= cols {
			return fmt.Errorf("%w: #%d at (row=%d, col=%d) is outside %dx%d grid", ErrInvalidHeatSource, i, h.Row, h.Col, cols, rows)
		}
	}
	return nil
}

// Apply writes every source temperature into the committed buffer,
// overwriting whatever diffusion computed there. Sources are applied in list
// order, so the last one wins when two share a cell.
func (s Sources[T]) Apply(g *Grid[T]) {
	cells := g.current()
	for _, h := range s {
		cells[g.idx(h.Row, h.Col)] = h.Temp
	}
}
