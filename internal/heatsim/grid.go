package heatsim

import "fmt"

// Scalar is the cell type of a grid. It is picked once per run, the whole
// simulation is instantiated for it and no per-cell dispatch happens.
type Scalar interface {
	~float32 | ~float64
}

// Grid is a rows x cols temperature field. The simulation is not in-place,
// so the grid carries a second buffer that the stepper writes into before
// the two swap roles.
type Grid[T Scalar] struct {
	cols, rows int
	base       T
	bufs       [2][]T // row-major: buf[col + row*cols]
	cur        int    // index of the committed buffer in bufs
}

// NewGrid allocates both buffers and fills the committed one with base.
func NewGrid[T Scalar](cols, rows int, base T) (*Grid[T], error) {
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("%w: grid must be 1x1 or greater, got %dx%d", ErrInvalidDimension, cols, rows)
	}
	g := &Grid[T]{
		cols: cols,
		rows: rows,
		base: base,
	}
	g.bufs[0] = make([]T, cols*rows)
	g.bufs[1] = make([]T, cols*rows)
	for i := range g.bufs[0] {
		g.bufs[0][i] = base
	}
	DebugLog("Created grid %dx%d, base=%v", cols, rows, base)
	return g, nil
}

func (g *Grid[T]) Cols() int { return g.cols }
func (g *Grid[T]) Rows() int { return g.rows }
func (g *Grid[T]) Base() T   { return g.base }

// At returns the committed value at (row, col).
func (g *Grid[T]) At(row, col int) T {
	return g.bufs[g.cur][g.idx(row, col)]
}

// Set overwrites the committed value at (row, col). It must not be called
// while a step is running.
func (g *Grid[T]) Set(row, col int, v T) {
	g.bufs[g.cur][g.idx(row, col)] = v
}

// InBounds reports whether (row, col) addresses a cell of the grid.
func (g *Grid[T]) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Cells returns the committed buffer in row-major order. The slice is only
// valid until the next swap; callers must treat it as read-only.
func (g *Grid[T]) Cells() []T {
	return g.bufs[g.cur]
}

// Clone copies the committed state into a fresh grid.
func (g *Grid[T]) Clone() *Grid[T] {
	c := &Grid[T]{cols: g.cols, rows: g.rows, base: g.base}
	c.bufs[0] = append([]T(nil), g.bufs[g.cur]...)
	c.bufs[1] = make([]T, len(c.bufs[0]))
	return c
}

func (g *Grid[T]) current() []T { return g.bufs[g.cur] }
func (g *Grid[T]) next() []T    { return g.bufs[g.cur^1] }

// swap hands the freshly written buffer over as the committed one.
func (g *Grid[T]) swap() {
	g.cur ^= 1
}

func (g *Grid[T]) idx(row, col int) int {
	return col + row*g.cols
}
