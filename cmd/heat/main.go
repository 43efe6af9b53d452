package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strconv"

	"github.com/spf13/cobra"

	"heatsim/internal/heatio"
	"heatsim/internal/heatsim"
	"heatsim/internal/progress"
)

const barWidth = 50

// args holds the eight positional arguments.
type args struct {
	threads, rows, cols int
	base, k             float64
	timesteps           int
	heaterFile, outFile string
}

func parseArgs(a []string) (args, error) {
	var out args
	var err error
	ints := []struct {
		dst  *int
		src  string
		name string
	}{
		{&out.threads, a[0], "numThreads"},
		{&out.rows, a[1], "numRows"},
		{&out.cols, a[2], "numCols"},
		{&out.timesteps, a[5], "timesteps"},
	}
	for _, it := range ints {
		if *it.dst, err = strconv.Atoi(it.src); err != nil {
			return out, fmt.Errorf("%s: %q is not an integer", it.name, it.src)
		}
	}
	if out.base, err = strconv.ParseFloat(a[3], 64); err != nil {
		return out, fmt.Errorf("baseTemp: %q is not a number", a[3])
	}
	if out.k, err = strconv.ParseFloat(a[4], 64); err != nil {
		return out, fmt.Errorf("k: %q is not a number", a[4])
	}
	out.heaterFile, out.outFile = a[6], a[7]
	return out, nil
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		profile string
		cfg     = heatsim.DefaultConfig()
	)
	cmd := &cobra.Command{
		Use:   "heat numThreads numRows numCols baseTemp k timesteps heaterFile outputFile",
		Short: "Simulate heat diffusion from pinned heaters and export a CSV field and a heatmap",
		Example: "  heat 8 1000 1000 20 1.05 500 heaters.txt out.csv\n" +
			"  heat --format png --auto-range 4 300 600 0 1.1 200 heaters.txt out.csv",
		Args:          cobra.ExactArgs(8),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			a, err := parseArgs(positional)
			if err != nil {
				return err
			}
			if cfgPath != "" {
				fileCfg, err := heatsim.LoadConfig(cfgPath)
				if err != nil {
					return err
				}
				mergeFlags(cmd, fileCfg, cfg)
				cfg = fileCfg
			}
			cfg.ApplyDefaults()
			if err := cfg.Validate(); err != nil {
				return err
			}
			if profile != "" {
				f, err := os.Create(profile)
				if err != nil {
					return err
				}
				if err := pprof.StartCPUProfile(f); err != nil {
					f.Close()
					return err
				}
				defer func() {
					pprof.StopCPUProfile()
					_ = f.Close()
				}()
			}
			if cfg.Double {
				return run[float64](a, cfg)
			}
			return run[float32](a, cfg)
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfgPath, "config", "", "JSON config file; explicit flags override it")
	f.StringVar(&profile, "cpuprofile", "", "write a CPU profile to this file")
	f.IntVar(&cfg.ImageSize, "img-size", heatsim.ImageDefault, "heatmap short side in pixels")
	f.IntVar(&cfg.MaxAspect, "img-max-mult", heatsim.ImageMaxMult, "skip the heatmap when its long side exceeds img-size times this")
	f.Float64Var(&cfg.Range, "range", heatsim.RangeDefault, "temperature distance from base that saturates the palette")
	f.BoolVar(&cfg.AutoRange, "auto-range", false, "use the largest distance from base in the final field as range")
	f.StringVar(&cfg.Format, "format", heatsim.FormatDefault, "heatmap format: bmp or png")
	f.StringVar(&cfg.GIFOut, "gif", "", "also write an animated GIF of the run to this file")
	f.IntVar(&cfg.GIFEvery, "gif-every", 0, "steps between GIF frames (defaults to ~100 frames per run)")
	f.IntVar(&cfg.GIFDelay, "gif-delay", heatsim.GIFDelay, "GIF frame delay in 100ths of a second")
	f.IntVar(&cfg.GIFSize, "gif-size", heatsim.GIFSize, "GIF frame short side in pixels")
	f.BoolVar(&cfg.Double, "double", false, "simulate in float64 instead of float32")
	return cmd
}

// mergeFlags copies every flag the user set explicitly from flagCfg over the
// values loaded from the config file.
func mergeFlags(cmd *cobra.Command, dst, flagCfg *heatsim.Config) {
	set := cmd.Flags().Changed
	if set("img-size") {
		dst.ImageSize = flagCfg.ImageSize
	}
	if set("img-max-mult") {
		dst.MaxAspect = flagCfg.MaxAspect
	}
	if set("range") {
		dst.Range = flagCfg.Range
	}
	if set("auto-range") {
		dst.AutoRange = flagCfg.AutoRange
	}
	if set("format") {
		dst.Format = flagCfg.Format
	}
	if set("gif") {
		dst.GIFOut = flagCfg.GIFOut
	}
	if set("gif-every") {
		dst.GIFEvery = flagCfg.GIFEvery
	}
	if set("gif-delay") {
		dst.GIFDelay = flagCfg.GIFDelay
	}
	if set("gif-size") {
		dst.GIFSize = flagCfg.GIFSize
	}
	if set("double") {
		dst.Double = flagCfg.Double
	}
}

func run[T heatsim.Scalar](a args, cfg *heatsim.Config) error {
	p := heatsim.Params[T]{
		Cols:      a.cols,
		Rows:      a.rows,
		Base:      T(a.base),
		K:         T(a.k),
		Timesteps: a.timesteps,
		Threads:   a.threads,
	}
	// Cheap checks first, before the heater file is even opened.
	if err := p.Validate(); err != nil {
		return err
	}
	palette, err := cfg.Palette.Build()
	if err != nil {
		return err
	}
	heaters, err := heatio.LoadHeaters[T](a.heaterFile)
	if err != nil {
		return err
	}

	bar := progress.New(os.Stdout, barWidth)
	opts := []heatsim.Option[T]{heatsim.WithReporter[T](bar)}

	var rec *heatio.GIFRecorder
	if cfg.GIFOut != "" {
		rec = heatio.NewGIFRecorder(cfg.GIFDelay)
		every := cfg.GIFEvery
		if every == 0 {
			every = max(1, a.timesteps/100)
		}
		gw, gh, err := heatsim.ImageSize(a.cols, a.rows, cfg.GIFSize, cfg.MaxAspect)
		switch {
		case errors.Is(err, heatsim.ErrAspectRatioOverflow):
			fmt.Printf("GIF skipped: %v\n", err)
			rec = nil
		case err != nil:
			return err
		default:
			// GIF frames use the fixed range: an auto range is only known at the end.
			mapper, err := heatsim.NewMapper(a.base, cfg.Range, palette)
			if err != nil {
				return err
			}
			opts = append(opts, heatsim.WithSnapshot(every, func(step int, g *heatsim.Grid[T]) {
				pb, err := heatsim.Resample(g, gw, gh, mapper, a.threads)
				if err != nil {
					log.Printf("GIF frame at step %d: %v", step, err)
					return
				}
				rec.Add(pb)
			}))
		}
	}

	sim, err := heatsim.NewSimulation(p, heaters, opts...)
	if err != nil {
		return err
	}
	bar.Draw()
	timer := heatsim.StartPhases()
	grid := sim.Run()
	bar.Finish()
	timer.Lap("simulate")

	if err := heatio.SaveField(a.outFile, grid); err != nil {
		return fmt.Errorf("write field: %w", err)
	}
	st := heatsim.Summarize(grid)
	fmt.Printf("\nHeat dispersion complete.\n")
	fmt.Printf("Field min/mean/max:\t%.2f / %.2f / %.2f\n", st.Min, st.Mean, st.Max)
	fmt.Printf("CSV format file saved to:\t%s\n", a.outFile)

	if rec != nil && rec.Len() > 0 {
		if err := rec.Save(cfg.GIFOut); err != nil {
			return fmt.Errorf("write gif: %w", err)
		}
		fmt.Printf("GIF with %d frames saved to:\t%s\n", rec.Len(), cfg.GIFOut)
	}

	w, h, err := heatsim.ImageSize(a.cols, a.rows, cfg.ImageSize, cfg.MaxAspect)
	if errors.Is(err, heatsim.ErrAspectRatioOverflow) {
		fmt.Printf("\nImage could not be generated. This is likely due to the matrix being extremely lopsided.\n")
		fmt.Printf("A very lopsided matrix will result in aspect ratio preservation being too extreme.\n")
		return nil
	}
	if err != nil {
		return err
	}
	rng := cfg.Range
	if cfg.AutoRange {
		rng = heatsim.AutoRange(grid, a.base)
	}
	pb, err := heatsim.ExportHeatmap(grid, a.base, rng, w, h, palette, a.threads)
	if err != nil {
		return err
	}
	imgPath := heatio.ImagePath(a.outFile, cfg.Format)
	if err := heatio.SaveImage(imgPath, cfg.Format, pb); err != nil {
		return fmt.Errorf("write heatmap: %w", err)
	}
	timer.Lap("export")
	heatsim.DebugLog("Phases: %v", timer)
	fmt.Printf("%s heatmap image saved to:\t%s\n", cfg.Format, imgPath)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
