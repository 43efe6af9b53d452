package main

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"heatsim/internal/heatsim"
)

var (
	renderTime = 0.0
	simTime    = 0.0
)

type Scene struct {
	// Raw data sent to the GPU
	frameBuffer   []byte
	sim           *heatsim.Simulation[float64]
	mapper        heatsim.Mapper
	threads       int
	stepsPerFrame int
	width, height int
}

func newScene(opt options, heaters heatsim.Sources[float64], palette heatsim.Palette) (*Scene, error) {
	// The viewer runs until the window is closed, so the step budget is
	// effectively unbounded.
	p := heatsim.Params[float64]{
		Cols:      opt.cols,
		Rows:      opt.rows,
		Base:      opt.base,
		K:         opt.k,
		Timesteps: math.MaxInt32,
		Threads:   opt.threads,
	}
	sim, err := heatsim.NewSimulation(p, heaters)
	if err != nil {
		return nil, err
	}
	mapper, err := heatsim.NewMapper(opt.base, opt.rng, palette)
	if err != nil {
		return nil, err
	}
	w, h, err := heatsim.ImageSize(opt.cols, opt.rows, windowSize, heatsim.ImageMaxMult)
	if err != nil {
		return nil, err
	}
	s := &Scene{
		sim:           sim,
		mapper:        mapper,
		threads:       opt.threads,
		stepsPerFrame: max(1, opt.stepsPerFrame),
		width:         w,
		height:        h,
	}
	s.frameBuffer = make([]byte, w*h*4)
	return s, nil
}

// Prioritizes displaying every frame over
// running at a consistent speed, so this is unused
func (s *Scene) Update() error {
	return nil
}

func (s *Scene) Draw(screen *ebiten.Image) {
	debugInfo := ""
	timer := heatsim.StartPhases()
	s.simStep()
	// Exponential moving average so the number isn't super spazzy and useless
	simTime = simTime*0.9 + timer.Lap("").Seconds()*0.1
	if err := s.render(screen); err != nil {
		debugInfo += fmt.Sprintf("Render error: %v\n", err)
	}
	renderTime = renderTime*0.9 + timer.Lap("").Seconds()*0.1
	st := heatsim.Summarize(s.sim.Grid)
	debugInfo += fmt.Sprintf("FPS: %0.4g\n", ebiten.ActualFPS())
	debugInfo += fmt.Sprintf("Step: %d\n", s.sim.Step)
	debugInfo += fmt.Sprintf("Min/Max: %.1f / %.1f\n", st.Min, st.Max)
	debugInfo += fmt.Sprintf("Simulation time: %0.3f\n", simTime)
	debugInfo += fmt.Sprintf("Render time: %0.3f\n", renderTime)
	ebitenutil.DebugPrint(screen, debugInfo)
}

// cellAt maps a screen position to the grid cell drawn there.
func (s *Scene) cellAt(x, y int) (row, col int) {
	g := s.sim.Grid
	return y * g.Rows() / s.height, x * g.Cols() / s.width
}

func (s *Scene) simStep() {
	// Heat up a disc around the mouse when clicking. This happens between
	// steps, never while one is running.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g := s.sim.Grid
		row, col := s.cellAt(ebiten.CursorPosition())
		for dy := -clickRadius; dy <= clickRadius; dy++ {
			for dx := -clickRadius; dx <= clickRadius; dx++ {
				if dx*dx+dy*dy > clickRadius*clickRadius || !g.InBounds(row+dy, col+dx) {
					continue
				}
				g.Set(row+dy, col+dx, g.Base()+clickHeat)
			}
		}
	}
	for i := 0; i < s.stepsPerFrame; i++ {
		s.sim.Advance()
	}
}

func (s *Scene) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return s.width, s.height
}

func (s *Scene) render(screen *ebiten.Image) error {
	pb, err := heatsim.Resample(s.sim.Grid, s.width, s.height, s.mapper, s.threads)
	if err != nil {
		return err
	}
	pb.WritePixels(s.frameBuffer)
	screen.WritePixels(s.frameBuffer)
	return nil
}
