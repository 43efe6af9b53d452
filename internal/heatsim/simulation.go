package heatsim

import (
	"fmt"
	"math"
)

// Documented bounds of the transfer rate. The upper bound carries a little
// slack so that 1.1 parsed into a float32 still passes.
const (
	TransferMin = 1.0
	TransferMax = 1.1000001
)

// Params describes one simulation run.
type Params[T Scalar] struct {
	Cols, Rows int
	Base       T
	K          T // transfer rate
	Timesteps  int
	Threads    int
}

// Validate reports the first invalid parameter.
func (p Params[T]) Validate() error {
	if p.Threads < 1 {
		return fmt.Errorf("%w: must be > 0, got %d", ErrInvalidThreadCount, p.Threads)
	}
	if p.Cols < 1 || p.Rows < 1 {
		return fmt.Errorf("%w: grid must be 1x1 or greater, got %dx%d", ErrInvalidDimension, p.Cols, p.Rows)
	}
	if p.Timesteps < 1 {
		return fmt.Errorf("%w: must be > 0, got %d", ErrInvalidTimestepCount, p.Timesteps)
	}
	k := float64(p.K)
	if math.IsNaN(k) || k < TransferMin || k > TransferMax {
		return fmt.Errorf("%w: must be between 1 and 1.1 (inclusive), got %v", ErrInvalidTransferRate, k)
	}
	return nil
}

// Reporter observes progress of the step loop. It must not touch the grid.
type Reporter interface {
	Report(step, total int)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(step, total int)

func (f ReporterFunc) Report(step, total int) { f(step, total) }

// Option tweaks a Simulation.
type Option[T Scalar] func(*Simulation[T])

// WithReporter reports after every completed step.
func WithReporter[T Scalar](r Reporter) Option[T] {
	return func(s *Simulation[T]) { s.reporter = r }
}

// WithSnapshot calls fn with the grid every n completed steps (heat sources
// already reapplied). fn must not keep the grid past its return.
func WithSnapshot[T Scalar](n int, fn func(step int, g *Grid[T])) Option[T] {
	return func(s *Simulation[T]) {
		s.snapEvery = n
		s.snap = fn
	}
}

// Simulation owns the grid for the duration of a run. It is not safe for
// concurrent use; Advance is the only thing that mutates the grid.
type Simulation[T Scalar] struct {
	Params  Params[T]
	Grid    *Grid[T]
	Sources Sources[T]
	Step    int // completed timesteps

	stepper   Stepper[T]
	reporter  Reporter
	snapEvery int
	snap      func(step int, g *Grid[T])
}

// NewSimulation validates everything up front, allocates the grid and pins
// the heat sources into the initial state.
func NewSimulation[T Scalar](p Params[T], sources Sources[T], opts ...Option[T]) (*Simulation[T], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := sources.Validate(p.Cols, p.Rows); err != nil {
		return nil, err
	}
	g, err := NewGrid(p.Cols, p.Rows, p.Base)
	if err != nil {
		return nil, err
	}
	s := &Simulation[T]{
		Params:  p,
		Grid:    g,
		Sources: sources,
		stepper: Stepper[T]{K: p.K, Base: p.Base, Threads: p.Threads},
	}
	for _, opt := range opts {
		opt(s)
	}
	sources.Apply(g)
	return s, nil
}

// Advance runs one timestep and pins the heat sources again.
func (s *Simulation[T]) Advance() {
	s.stepper.Step(s.Grid)
	s.Sources.Apply(s.Grid)
	s.Step++
	if s.snap != nil && s.snapEvery > 0 && s.Step%s.snapEvery == 0 {
		s.snap(s.Step, s.Grid)
	}
	if s.reporter != nil {
		s.reporter.Report(s.Step, s.Params.Timesteps)
	}
}

// Run advances until Params.Timesteps steps are done and returns the grid.
func (s *Simulation[T]) Run() *Grid[T] {
	timer := StartPhases()
	for s.Step < s.Params.Timesteps {
		s.Advance()
	}
	DebugLog("Simulated %d steps of %dx%d in %v", s.Step, s.Params.Cols, s.Params.Rows, timer.Since())
	return s.Grid
}

// RunSimulation is the batch entry point: validate, step Timesteps times
// with sources reapplied after each step, return the final grid.
func RunSimulation[T Scalar](p Params[T], sources Sources[T], opts ...Option[T]) (*Grid[T], error) {
	s, err := NewSimulation(p, sources, opts...)
	if err != nil {
		return nil, err
	}
	return s.Run(), nil
}

// ExportHeatmap colors the grid relative to base and resamples it to w x h.
func ExportHeatmap[T Scalar](g *Grid[T], base, rng float64, w, h int, p Palette, threads int) (*PixelBuffer, error) {
	m, err := NewMapper(base, rng, p)
	if err != nil {
		return nil, err
	}
	timer := StartPhases()
	pb, err := Resample(g, w, h, m, threads)
	if err != nil {
		return nil, err
	}
	DebugLog("Heatmap %dx%d rendered in %v", w, h, timer.Since())
	return pb, nil
}

// ImageSize picks heatmap dimensions for a cols x rows grid: size on the
// short side, the long side stretched to keep the aspect ratio. Lopsided
// grids whose long side would exceed size*maxMult yield
// ErrAspectRatioOverflow; that is not fatal, the caller just skips the image.
func ImageSize(cols, rows, size, maxMult int) (w, h int, err error) {
	if cols < 1 || rows < 1 || size < 1 {
		return 0, 0, fmt.Errorf("%w: grid %dx%d, image size %d", ErrInvalidDimension, cols, rows, size)
	}
	w, h = size, size
	if cols > rows {
		w = int(float64(size) * (float64(cols) / float64(rows)))
	} else if rows > cols {
		h = int(float64(size) * (float64(rows) / float64(cols)))
	}
	limit := size * maxMult
	if w > limit || h > limit {
		return w, h, fmt.Errorf("%w: %dx%d image exceeds %d pixels per side", ErrAspectRatioOverflow, w, h, limit)
	}
	return w, h, nil
}
