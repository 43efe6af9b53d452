package heatsim

import (
	"errors"
	"testing"
)

func TestNewGridInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-3, 4}, {0, 0}} {
		if _, err := NewGrid[float32](dims[0], dims[1], 0); !errors.Is(err, ErrInvalidDimension) {
			t.Fatalf("NewGrid(%d, %d): want ErrInvalidDimension, got %v", dims[0], dims[1], err)
		}
	}
}

func TestNewGridFillsBase(t *testing.T) {
	g, err := NewGrid[float64](3, 2, 21.5)
	if err != nil {
		t.Fatal(err)
	}
	if g.Cols() != 3 || g.Rows() != 2 || g.Base() != 21.5 {
		t.Fatalf("wrong shape/base: %dx%d base=%v", g.Cols(), g.Rows(), g.Base())
	}
	for i, v := range g.Cells() {
		if v != 21.5 {
			t.Fatalf("cell %d = %v, want base", i, v)
		}
	}
}

func TestGridRowMajorAndSwap(t *testing.T) {
	g, _ := NewGrid[float64](3, 2, 0)
	g.Set(1, 2, 7)
	if g.Cells()[2+1*3] != 7 || g.At(1, 2) != 7 {
		t.Fatalf("Set/At not row-major: %v", g.Cells())
	}
	g.next()[0] = 42
	if g.At(0, 0) != 0 {
		t.Fatal("scratch buffer leaked into committed state before swap")
	}
	g.swap()
	if g.At(0, 0) != 42 {
		t.Fatal("swap did not promote the scratch buffer")
	}
	g.swap()
	if g.At(1, 2) != 7 {
		t.Fatal("swap is not an involution")
	}
}

func TestGridClone(t *testing.T) {
	g, _ := NewGrid[float32](2, 2, 1)
	g.Set(0, 1, 5)
	c := g.Clone()
	g.Set(0, 1, 9)
	if c.At(0, 1) != 5 {
		t.Fatalf("clone shares storage: %v", c.At(0, 1))
	}
}

func TestInBounds(t *testing.T) {
	g, _ := NewGrid[float32](4, 3, 0)
	cases := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true}, {2, 3, true}, {3, 0, false}, {0, 4, false}, {-1, 0, false}, {0, -1, false},
	}
	for _, c := range cases {
		if got := g.InBounds(c.row, c.col); got != c.want {
			t.Fatalf("InBounds(%d, %d) = %v", c.row, c.col, got)
		}
	}
}
