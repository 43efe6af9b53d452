package heatio

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"

	"heatsim/internal/heatsim"
)

// EncodeBMP writes the heatmap as a 24-bit BMP: 54-byte header, rows stored
// bottom to top in BGR order and padded to 4 bytes. Grid row 0 ends up as
// the top row of the picture.
func EncodeBMP(w io.Writer, pb *heatsim.PixelBuffer) error {
	return bmp.Encode(w, pb.RGBA())
}

// EncodePNG writes the heatmap as a lossless 8-bit PNG.
func EncodePNG(w io.Writer, pb *heatsim.PixelBuffer) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, pb.RGBA())
}

// ImagePath derives the image file name from the field output path the same
// way for every format: the extension is appended, not substituted.
func ImagePath(fieldPath, format string) string {
	return fieldPath + "." + format
}

// SaveImage encodes pb into path using format ("bmp" or "png").
func SaveImage(path, format string, pb *heatsim.PixelBuffer) error {
	var encode func(io.Writer, *heatsim.PixelBuffer) error
	switch format {
	case "bmp":
		encode = EncodeBMP
	case "png":
		encode = EncodePNG
	default:
		return fmt.Errorf("unknown image format %q", format)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, pb); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
