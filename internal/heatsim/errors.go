package heatsim

import "errors"

// Validation failures. All of them are detected before any stepping or
// resampling starts, so callers never see a half-finished grid.
var (
	ErrInvalidDimension     = errors.New("invalid dimension")
	ErrInvalidTimestepCount = errors.New("invalid timestep count")
	ErrInvalidTransferRate  = errors.New("invalid transfer rate")
	ErrInvalidThreadCount   = errors.New("invalid thread count")
	ErrInvalidHeatSource    = errors.New("invalid heat source")
	ErrInvalidRange         = errors.New("invalid color range")
	// Recoverable: the image is skipped but the scalar field is still written.
	ErrAspectRatioOverflow = errors.New("aspect ratio overflow")
)
