package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"heatsim/internal/heatio"
	"heatsim/internal/heatsim"
)

const (
	// Window short side; the long side follows the grid aspect ratio
	windowSize = 512
	// Makes the window bigger than the heatmap because small grids are tiny
	windowScale = 2
	// Heat injected by clicking, relative to base
	clickHeat = 200
	// Radius in cells of the clicked spot
	clickRadius = 3
)

type options struct {
	cols, rows    int
	base, k       float64
	threads       int
	stepsPerFrame int
	rng           float64
	cfgPath       string
}

func main() {
	opt := options{}
	cmd := &cobra.Command{
		Use:           "heatview [heaterFile]",
		Short:         "Watch heat diffuse live; click to inject heat",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, a []string) error {
			var heaters heatsim.Sources[float64]
			if len(a) == 1 {
				var err error
				if heaters, err = heatio.LoadHeaters[float64](a[0]); err != nil {
					return err
				}
			}
			palette := heatsim.DefaultPalette
			if opt.cfgPath != "" {
				cfg, err := heatsim.LoadConfig(opt.cfgPath)
				if err != nil {
					return err
				}
				if palette, err = cfg.Palette.Build(); err != nil {
					return err
				}
			}
			scene, err := newScene(opt, heaters, palette)
			if err != nil {
				return err
			}
			ebiten.SetWindowSize(scene.width*windowScale, scene.height*windowScale)
			ebiten.SetWindowTitle("Heat diffusion")
			return ebiten.RunGame(scene)
		},
	}
	f := cmd.Flags()
	f.IntVar(&opt.cols, "cols", 256, "grid columns")
	f.IntVar(&opt.rows, "rows", 256, "grid rows")
	f.Float64Var(&opt.base, "base", 0, "base temperature")
	f.Float64Var(&opt.k, "k", 1.05, "transfer rate, between 1 and 1.1")
	f.IntVar(&opt.threads, "threads", 8, "worker threads")
	f.IntVar(&opt.stepsPerFrame, "steps", 1, "timesteps per frame")
	f.Float64Var(&opt.rng, "range", heatsim.RangeDefault, "temperature distance from base that saturates the palette")
	f.StringVar(&opt.cfgPath, "config", "", "JSON config file for the palette")

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
