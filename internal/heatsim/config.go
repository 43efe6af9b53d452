package heatsim

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Defaults for everything the command line does not pin down.
const (
	ImageDefault  = 1024 // heatmap short side in pixels
	ImageMaxMult  = 5    // long side may be at most ImageDefault*ImageMaxMult
	RangeDefault  = 100  // degrees from base to a saturated palette anchor
	FormatDefault = "bmp"
	GIFDelay      = 5 // 100ths of a second per frame
	GIFSize       = 256
)

// AnchorCfg is one palette anchor, given either as RGB bytes or as HSV
// (hue in degrees, saturation and value in [0, 1]).
type AnchorCfg struct {
	RGB *[3]uint8   `json:"rgb,omitempty"`
	HSV *[3]float64 `json:"hsv,omitempty"`
}

// Color resolves the anchor; an empty anchor falls back to def.
func (a AnchorCfg) Color(def Color) (Color, error) {
	switch {
	case a.RGB != nil && a.HSV != nil:
		return def, fmt.Errorf("anchor sets both rgb and hsv")
	case a.RGB != nil:
		return Color{R: a.RGB[0], G: a.RGB[1], B: a.RGB[2]}, nil
	case a.HSV != nil:
		return HSVColor(a.HSV[0], a.HSV[1], a.HSV[2])
	}
	return def, nil
}

type PaletteCfg struct {
	Low    AnchorCfg `json:"low"`
	Normal AnchorCfg `json:"normal"`
	High   AnchorCfg `json:"high"`
}

// Build resolves all three anchors on top of DefaultPalette.
func (pc PaletteCfg) Build() (Palette, error) {
	p := DefaultPalette
	var err error
	if p.Low, err = pc.Low.Color(p.Low); err != nil {
		return p, fmt.Errorf("palette low: %w", err)
	}
	if p.Normal, err = pc.Normal.Color(p.Normal); err != nil {
		return p, fmt.Errorf("palette normal: %w", err)
	}
	if p.High, err = pc.High.Color(p.High); err != nil {
		return p, fmt.Errorf("palette high: %w", err)
	}
	return p, nil
}

// Config holds the export settings. Zero fields take their defaults.
type Config struct {
	ImageSize int        `json:"imageSize,omitempty"`
	MaxAspect int        `json:"maxAspect,omitempty"`
	Range     float64    `json:"range"`
	AutoRange bool       `json:"autoRange,omitempty"`
	Palette   PaletteCfg `json:"palette"`
	Format    string     `json:"format,omitempty"` // bmp or png
	GIFOut    string     `json:"gifOut,omitempty"`
	GIFEvery  int        `json:"gifEvery,omitempty"` // steps between frames; 0 aims for about 100 frames
	GIFDelay  int        `json:"gifDelay,omitempty"`
	GIFSize   int        `json:"gifSize,omitempty"` // short side of each frame
	Double    bool       `json:"double,omitempty"`  // simulate in float64 instead of float32
}

// DefaultConfig returns a config with every default filled in.
func DefaultConfig() *Config {
	cfg := &Config{Range: RangeDefault}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero fields. Range is not among them: a zero range is
// a real setting that Validate rejects, its default comes from DefaultConfig.
func (cfg *Config) ApplyDefaults() {
	if cfg.ImageSize <= 0 {
		cfg.ImageSize = ImageDefault
	}
	if cfg.MaxAspect <= 0 {
		cfg.MaxAspect = ImageMaxMult
	}
	if cfg.Format == "" {
		cfg.Format = FormatDefault
	}
	cfg.Format = strings.ToLower(cfg.Format)
	if cfg.GIFDelay <= 0 {
		cfg.GIFDelay = GIFDelay
	}
	if cfg.GIFSize <= 0 {
		cfg.GIFSize = GIFSize
	}
}

// Validate checks the settings that have no sensible default.
func (cfg *Config) Validate() error {
	if cfg.Format != "bmp" && cfg.Format != "png" {
		return fmt.Errorf("unknown image format %q, want bmp or png", cfg.Format)
	}
	if !cfg.AutoRange && !(cfg.Range > 0) {
		return fmt.Errorf("%w: range must be > 0, got %v", ErrInvalidRange, cfg.Range)
	}
	if cfg.GIFEvery < 0 {
		return fmt.Errorf("gifEvery must be >= 0, got %d", cfg.GIFEvery)
	}
	if _, err := cfg.Palette.Build(); err != nil {
		return err
	}
	return nil
}

// LoadConfig reads a JSON config file and applies defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	DebugLog("Loaded config from %s: image=%d maxAspect=%d range=%v auto=%v format=%s", path, cfg.ImageSize, cfg.MaxAspect, cfg.Range, cfg.AutoRange, cfg.Format)
	return cfg, nil
}
