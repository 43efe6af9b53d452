package heatio

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"

	"heatsim/internal/heatsim"
)

// GIFRecorder collects heatmap frames and writes them as one looping GIF.
type GIFRecorder struct {
	Delay  int // 100ths of a second per frame
	frames *gif.GIF
}

// NewGIFRecorder returns an empty looping recorder with the given frame delay.
func NewGIFRecorder(delay int) *GIFRecorder {
	return &GIFRecorder{
		Delay:  delay,
		frames: &gif.GIF{LoopCount: 0},
	}
}

// Add quantizes one frame to the Plan9 palette with Floyd-Steinberg
// dithering and appends it.
func (r *GIFRecorder) Add(pb *heatsim.PixelBuffer) {
	rgba := pb.RGBA()
	pimg := image.NewPaletted(rgba.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), rgba, image.Point{})
	r.frames.Image = append(r.frames.Image, pimg)
	r.frames.Delay = append(r.frames.Delay, r.Delay)
}

// Len returns the number of recorded frames.
func (r *GIFRecorder) Len() int { return len(r.frames.Image) }

// Save writes all frames to path.
func (r *GIFRecorder) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, r.frames)
}
