package heatsim

import (
	"fmt"
	"image"
)

// PixelBuffer is a Width x Height heatmap, row-major with row 0 at the top
// (grid row 0 ends up at the top of the image).
type PixelBuffer struct {
	Width, Height int
	Pix           []Color
}

// NewPixelBuffer allocates a zeroed buffer.
func NewPixelBuffer(w, h int) *PixelBuffer {
	return &PixelBuffer{Width: w, Height: h, Pix: make([]Color, w*h)}
}

// At returns the pixel at column x, row y.
func (pb *PixelBuffer) At(x, y int) Color {
	return pb.Pix[x+y*pb.Width]
}

// fill paints a rectangle of pixels with one color.
func (pb *PixelBuffer) fill(xs, ys Block, c Color) {
	for y := ys.Start; y < ys.End; y++ {
		row := pb.Pix[y*pb.Width : (y+1)*pb.Width]
		for x := xs.Start; x < xs.End; x++ {
			row[x] = c
		}
	}
}

// RGBA copies the buffer into an opaque image the standard encoders accept.
func (pb *PixelBuffer) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, pb.Width, pb.Height))
	pb.WritePixels(img.Pix)
	return img
}

// WritePixels stores the buffer as packed RGBA bytes into dst, which must
// hold at least 4*Width*Height bytes.
func (pb *PixelBuffer) WritePixels(dst []byte) {
	for i, c := range pb.Pix {
		p := i * 4
		dst[p+0] = c.R
		dst[p+1] = c.G
		dst[p+2] = c.B
		dst[p+3] = 255
	}
}

// Downsampling reports whether Resample averages cells (true) or replicates
// them (false) for the given grid and output size. The choice is made for
// both axes together.
func Downsampling(cols, rows, w, h int) bool {
	return cols >= w && rows >= h
}

// Resample renders the committed grid state into a w x h heatmap.
//
// When the grid is at least as large as the image on both axes, every pixel
// covers a block of cells and gets the channel-wise mean of their colors.
// Otherwise every cell covers a block of pixels and its color is replicated
// across it. Blocks come from Partition, so the leftover units always land
// at the start of each axis and the output is reproducible bit for bit.
func Resample[T Scalar](g *Grid[T], w, h int, m Mapper, threads int) (*PixelBuffer, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: image must be 1x1 or greater, got %dx%d", ErrInvalidDimension, w, h)
	}
	if threads < 1 {
		threads = 1
	}
	pb := NewPixelBuffer(w, h)
	if Downsampling(g.cols, g.rows, w, h) {
		DebugLog("Resampling %dx%d grid down to %dx%d", g.cols, g.rows, w, h)
		downsample(g, pb, m, threads)
	} else {
		DebugLog("Resampling %dx%d grid up to %dx%d", g.cols, g.rows, w, h)
		upsample(g, pb, m, threads)
	}
	return pb, nil
}

// downsample: cells per pixel. Output rows are split across workers, each
// worker owns the pixels of its rows.
func downsample[T Scalar](g *Grid[T], pb *PixelBuffer, m Mapper, threads int) {
	xBlocks := Partition(g.cols, pb.Width)
	yBlocks := Partition(g.rows, pb.Height)
	cells := g.current()

	perRowThreaded(pb.Height, threads, func(rb Block) {
		for py := rb.Start; py < rb.End; py++ {
			ys := yBlocks[py]
			for px, xs := range xBlocks {
				pb.Pix[px+py*pb.Width] = avgCellChunk(cells, g.cols, xs, ys, m)
			}
		}
	})
}

// avgCellChunk maps every cell of the block to a color first and then
// averages the colors, truncating like integer division does.
func avgCellChunk[T Scalar](cells []T, cols int, xs, ys Block, m Mapper) Color {
	var r, g, b int
	for y := ys.Start; y < ys.End; y++ {
		for x := xs.Start; x < xs.End; x++ {
			c := m.Map(float64(cells[x+y*cols]))
			r += int(c.R)
			g += int(c.G)
			b += int(c.B)
		}
	}
	total := xs.Len() * ys.Len()
	if total == 0 {
		return Color{}
	}
	return Color{
		R: clampByte(float64(r / total)),
		G: clampByte(float64(g / total)),
		B: clampByte(float64(b / total)),
	}
}

// upsample: pixels per cell. Source rows are split across workers; the
// pixel blocks of distinct source rows never overlap.
func upsample[T Scalar](g *Grid[T], pb *PixelBuffer, m Mapper, threads int) {
	xBlocks := Partition(pb.Width, g.cols)
	yBlocks := Partition(pb.Height, g.rows)
	cells := g.current()

	perRowThreaded(g.rows, threads, func(rb Block) {
		for y := rb.Start; y < rb.End; y++ {
			ys := yBlocks[y]
			if ys.Len() == 0 {
				continue
			}
			for x, xs := range xBlocks {
				if xs.Len() == 0 {
					continue
				}
				pb.fill(xs, ys, m.Map(float64(cells[x+y*g.cols])))
			}
		}
	})
}
