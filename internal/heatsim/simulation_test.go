package heatsim

import (
	"errors"
	"math"
	"testing"
)

func validParams() Params[float32] {
	return Params[float32]{Cols: 3, Rows: 3, Base: 0, K: 1, Timesteps: 1, Threads: 1}
}

func TestParamsValidate(t *testing.T) {
	if err := validParams().Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}
	cases := []struct {
		name   string
		modify func(*Params[float32])
		want   error
	}{
		{"zero threads", func(p *Params[float32]) { p.Threads = 0 }, ErrInvalidThreadCount},
		{"zero cols", func(p *Params[float32]) { p.Cols = 0 }, ErrInvalidDimension},
		{"negative rows", func(p *Params[float32]) { p.Rows = -2 }, ErrInvalidDimension},
		{"zero steps", func(p *Params[float32]) { p.Timesteps = 0 }, ErrInvalidTimestepCount},
		{"k too small", func(p *Params[float32]) { p.K = 0.99 }, ErrInvalidTransferRate},
		{"k too large", func(p *Params[float32]) { p.K = 1.2 }, ErrInvalidTransferRate},
	}
	for _, c := range cases {
		p := validParams()
		c.modify(&p)
		if err := p.Validate(); !errors.Is(err, c.want) {
			t.Fatalf("%s: want %v, got %v", c.name, c.want, err)
		}
	}
	// Both documented bounds are inclusive, also after float32 rounding.
	for _, k := range []float32{1, 1.1} {
		p := validParams()
		p.K = k
		if err := p.Validate(); err != nil {
			t.Fatalf("k=%v rejected: %v", k, err)
		}
	}
}

func TestRunSimulationSingleHeater(t *testing.T) {
	src := Sources[float32]{{Row: 1, Col: 1, Temp: 100}}
	g, err := RunSimulation(validParams(), src)
	if err != nil {
		t.Fatal(err)
	}
	// The heater is pinned again after the step.
	if g.At(1, 1) != 100 {
		t.Fatalf("heater cell = %v, want 100", g.At(1, 1))
	}
	for _, rc := range [][2]int{{0, 0}, {0, 2}, {2, 0}, {2, 2}, {0, 1}, {1, 0}} {
		v := g.At(rc[0], rc[1])
		if !(v > 0 && v < 100) || v != 6.25 {
			t.Fatalf("cell %v = %v, want 6.25", rc, v)
		}
	}
}

func TestSimulationAdvanceBeforeReapply(t *testing.T) {
	src := Sources[float64]{{Row: 1, Col: 1, Temp: 100}}
	p := Params[float64]{Cols: 3, Rows: 3, K: 1, Timesteps: 1, Threads: 1}
	var snapCenter float64
	sim, err := NewSimulation(p, src, WithSnapshot(1, func(step int, g *Grid[float64]) {
		snapCenter = g.At(1, 1)
	}))
	if err != nil {
		t.Fatal(err)
	}
	if sim.Grid.At(1, 1) != 100 {
		t.Fatal("sources not applied to the initial state")
	}
	sim.stepper.Step(sim.Grid)
	if got := sim.Grid.At(1, 1); got != 50 {
		t.Fatalf("center after diffusion = %v, want 50", got)
	}
	sim.Sources.Apply(sim.Grid)
	sim.Advance()
	if snapCenter != 100 {
		t.Fatalf("snapshot saw center %v, want reapplied 100", snapCenter)
	}
}

func TestRunSimulationReportsEveryStep(t *testing.T) {
	p := validParams()
	p.Timesteps = 7
	var calls []int
	rep := ReporterFunc(func(step, total int) {
		if total != 7 {
			t.Fatalf("total = %d", total)
		}
		calls = append(calls, step)
	})
	var snaps []int
	_, err := RunSimulation(p, nil,
		WithReporter[float32](rep),
		WithSnapshot(3, func(step int, g *Grid[float32]) { snaps = append(snaps, step) }),
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(calls) != 7 || calls[0] != 1 || calls[6] != 7 {
		t.Fatalf("reporter calls: %v", calls)
	}
	if len(snaps) != 2 || snaps[0] != 3 || snaps[1] != 6 {
		t.Fatalf("snapshots: %v", snaps)
	}
}

func TestRunSimulationRejectsBadInput(t *testing.T) {
	src := Sources[float32]{{Row: 3, Col: 0, Temp: 1}}
	if _, err := RunSimulation(validParams(), src); !errors.Is(err, ErrInvalidHeatSource) {
		t.Fatalf("want ErrInvalidHeatSource, got %v", err)
	}
	p := validParams()
	p.Timesteps = 0
	if _, err := RunSimulation(p, nil); !errors.Is(err, ErrInvalidTimestepCount) {
		t.Fatalf("want ErrInvalidTimestepCount, got %v", err)
	}
}

func TestRunSimulationConservesSymmetry(t *testing.T) {
	p := Params[float64]{Cols: 9, Rows: 9, Base: 10, K: 1.05, Timesteps: 25, Threads: 4}
	g, err := RunSimulation(p, Sources[float64]{{Row: 4, Col: 4, Temp: 500}})
	if err != nil {
		t.Fatal(err)
	}
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			// Neighbors are summed in a different order on mirrored cells.
			v := g.At(r, c)
			if math.Abs(v-g.At(8-r, 8-c)) > 1e-9 || math.Abs(v-g.At(c, r)) > 1e-9 {
				t.Fatalf("field not symmetric at (%d,%d)", r, c)
			}
		}
	}
}

func TestExportHeatmapFourByFour(t *testing.T) {
	g, _ := NewGrid[float32](4, 4, 0)
	for i := range g.Cells() {
		g.Cells()[i] = 100
	}
	pb, err := ExportHeatmap(g, 0, 100, 2, 2, grayPalette, 2)
	if err != nil {
		t.Fatal(err)
	}
	if pb.Width != 2 || pb.Height != 2 || len(pb.Pix) != 4 {
		t.Fatalf("wrong buffer shape %dx%d", pb.Width, pb.Height)
	}
	for i, c := range pb.Pix {
		if c != gray(200) {
			t.Fatalf("pixel %d = %+v", i, c)
		}
	}
	if _, err := ExportHeatmap(g, 0, 0, 2, 2, grayPalette, 1); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("want ErrInvalidRange, got %v", err)
	}
}

func TestImageSize(t *testing.T) {
	cases := []struct {
		cols, rows int
		w, h       int
	}{
		{100, 100, 1024, 1024},
		{2000, 1000, 2048, 1024},
		{300, 900, 1024, 3072},
		{5, 1, 5120, 1024},
	}
	for _, c := range cases {
		w, h, err := ImageSize(c.cols, c.rows, ImageDefault, ImageMaxMult)
		if err != nil {
			t.Fatalf("%dx%d: %v", c.cols, c.rows, err)
		}
		if w != c.w || h != c.h {
			t.Fatalf("%dx%d: got %dx%d, want %dx%d", c.cols, c.rows, w, h, c.w, c.h)
		}
	}
	if _, _, err := ImageSize(6, 1, ImageDefault, ImageMaxMult); !errors.Is(err, ErrAspectRatioOverflow) {
		t.Fatalf("want ErrAspectRatioOverflow, got %v", err)
	}
	if _, _, err := ImageSize(1, 0, ImageDefault, ImageMaxMult); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("want ErrInvalidDimension, got %v", err)
	}
}
