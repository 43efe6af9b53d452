package heatio

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"

	"heatsim/internal/heatsim"
)

// ReadHeaters parses a heater file: the first token is the number of
// heaters, followed by that many "row col temp" triples separated by
// whitespace. An empty file, a zero count or a short/malformed body is an
// ErrInvalidHeatSource.
func ReadHeaters[T heatsim.Scalar](r io.Reader) (heatsim.Sources[T], error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	next := func(what string) (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("%w: unexpected end of file reading %s", heatsim.ErrInvalidHeatSource, what)
		}
		return sc.Text(), nil
	}

	tok, err := next("heater count")
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return nil, fmt.Errorf("%w: bad heater count %q", heatsim.ErrInvalidHeatSource, tok)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: no heaters in file", heatsim.ErrInvalidHeatSource)
	}

	heaters := make(heatsim.Sources[T], 0, min(n, 1<<16))
	for i := 0; i < n; i++ {
		var h heatsim.HeatSource[T]
		if tok, err = next("row"); err != nil {
			return nil, err
		}
		if h.Row, err = strconv.Atoi(tok); err != nil {
			return nil, fmt.Errorf("%w: heater #%d: bad row %q", heatsim.ErrInvalidHeatSource, i, tok)
		}
		if tok, err = next("col"); err != nil {
			return nil, err
		}
		if h.Col, err = strconv.Atoi(tok); err != nil {
			return nil, fmt.Errorf("%w: heater #%d: bad col %q", heatsim.ErrInvalidHeatSource, i, tok)
		}
		if tok, err = next("temperature"); err != nil {
			return nil, err
		}
		t, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: heater #%d: bad temperature %q", heatsim.ErrInvalidHeatSource, i, tok)
		}
		h.Temp = T(t)
		heaters = append(heaters, h)
	}
	return heaters, nil
}

// LoadHeaters reads a heater file from disk.
func LoadHeaters[T heatsim.Scalar](path string) (heatsim.Sources[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", heatsim.ErrInvalidHeatSource, err)
	}
	defer f.Close()
	heaters, err := ReadHeaters[T](f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	heatsim.DebugLog("Loaded %d heaters from %s", len(heaters), path)
	return heaters, nil
}

// WriteHeaters writes heaters in the format ReadHeaters accepts.
func WriteHeaters[T heatsim.Scalar](w io.Writer, heaters heatsim.Sources[T]) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(heaters))
	for _, h := range heaters {
		fmt.Fprintf(bw, "%d %d %f\n", h.Row, h.Col, float64(h.Temp))
	}
	return bw.Flush()
}

// GenerateHeaters places n heaters uniformly at random on a rows x cols grid
// with temperatures uniform in [tmin, tmax).
func GenerateHeaters(rng *rand.Rand, n int, tmin, tmax float64, rows, cols int) (heatsim.Sources[float64], error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: grid must be 1x1 or greater, got %dx%d", heatsim.ErrInvalidDimension, cols, rows)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative heater count %d", heatsim.ErrInvalidHeatSource, n)
	}
	heaters := make(heatsim.Sources[float64], n)
	for i := range heaters {
		heaters[i] = heatsim.HeatSource[float64]{
			Row:  rng.Intn(rows),
			Col:  rng.Intn(cols),
			Temp: rng.Float64()*(tmax-tmin) + tmin,
		}
	}
	return heaters, nil
}
