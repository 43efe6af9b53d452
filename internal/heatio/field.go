package heatio

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"heatsim/internal/heatsim"
)

// WriteField serializes the grid row by row. Every value is written with one
// decimal and followed by a comma; every row ends with a newline.
func WriteField[T heatsim.Scalar](w io.Writer, g *heatsim.Grid[T]) error {
	bw := bufio.NewWriterSize(w, 1<<16)
	cells := g.Cells()
	cols := g.Cols()
	buf := make([]byte, 0, 32)
	for row := 0; row < g.Rows(); row++ {
		for _, v := range cells[row*cols : (row+1)*cols] {
			buf = strconv.AppendFloat(buf[:0], float64(v), 'f', 1, 64)
			buf = append(buf, ',')
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveField writes the grid to path, creating parent directories.
func SaveField[T heatsim.Scalar](path string, g *heatsim.Grid[T]) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteField(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
