package heatsim

import (
	"math/rand"
	"testing"
)

func randomGrid(t *testing.T, cols, rows int, seed int64) *Grid[float64] {
	t.Helper()
	g, err := NewGrid[float64](cols, rows, 20)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range g.Cells() {
		g.Cells()[i] = rng.Float64()*200 - 50
	}
	return g
}

func TestInteriorAndEdgeSumsAgree(t *testing.T) {
	g := randomGrid(t, 9, 7, 1)
	cells := g.Cells()
	for y := 1; y < g.Rows()-1; y++ {
		for x := 1; x < g.Cols()-1; x++ {
			fast := sumInterior(cells, g.Cols(), x, y)
			slow := sumEdge(cells, g.Cols(), g.Rows(), x, y, g.Base())
			if fast != slow {
				t.Fatalf("(%d,%d): interior=%v edge=%v", x, y, fast, slow)
			}
		}
	}
}

func TestEdgeSumSubstitutesBase(t *testing.T) {
	g, _ := NewGrid[float64](3, 3, 0)
	cells := g.Cells()
	for i := range cells {
		cells[i] = 1
	}
	// Corner: 3 real neighbors, 5 outside.
	if got := sumEdge(cells, 3, 3, 0, 0, 10); got != 3+5*10 {
		t.Fatalf("corner sum = %v", got)
	}
	// Edge: 5 real neighbors, 3 outside.
	if got := sumEdge(cells, 3, 3, 1, 0, 10); got != 5+3*10 {
		t.Fatalf("edge sum = %v", got)
	}
	// 1x1 grid: every neighbor is outside.
	if got := sumEdge([]float64{4}, 1, 1, 0, 0, 2); got != 16 {
		t.Fatalf("1x1 sum = %v", got)
	}
}

func TestStepSingleHeaterThreeByThree(t *testing.T) {
	g, _ := NewGrid[float32](3, 3, 0)
	g.Set(1, 1, 100)
	s := Stepper[float32]{K: 1, Base: 0, Threads: 1}
	s.Step(g)

	// Center: (100 + 1*0/8) / 2
	if got := g.At(1, 1); got != 50 {
		t.Fatalf("center = %v, want 50", got)
	}
	// Every other cell sees the center once: (0 + 100/8) / 2
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if row == 1 && col == 1 {
				continue
			}
			got := g.At(row, col)
			if got <= 0 || got >= 100 || got != 6.25 {
				t.Fatalf("(%d,%d) = %v, want 6.25", row, col, got)
			}
		}
	}
}

func TestStepUniformFieldAtBaseIsStable(t *testing.T) {
	g, _ := NewGrid[float64](5, 4, 37)
	s := Stepper[float64]{K: 1, Base: 37, Threads: 3}
	for i := 0; i < 10; i++ {
		s.Step(g)
	}
	for i, v := range g.Cells() {
		if v != 37 {
			t.Fatalf("cell %d drifted to %v", i, v)
		}
	}
}

func TestStepThreadCountDoesNotChangeResult(t *testing.T) {
	ref := randomGrid(t, 33, 29, 7)
	s1 := Stepper[float64]{K: 1.07, Base: 20, Threads: 1}
	for _, threads := range []int{2, 3, 8, 64} {
		a, b := ref.Clone(), ref.Clone()
		sn := Stepper[float64]{K: 1.07, Base: 20, Threads: threads}
		for i := 0; i < 5; i++ {
			s1.Step(a)
			sn.Step(b)
		}
		for i := range a.Cells() {
			if a.Cells()[i] != b.Cells()[i] {
				t.Fatalf("threads=%d: cell %d differs: %v vs %v", threads, i, a.Cells()[i], b.Cells()[i])
			}
		}
	}
}

func TestStepReadsOnlyCommittedBuffer(t *testing.T) {
	g, _ := NewGrid[float64](4, 4, 0)
	g.Set(0, 0, 80)
	// Garbage in the scratch buffer must not leak into the result.
	for i := range g.next() {
		g.next()[i] = 1e9
	}
	s := Stepper[float64]{K: 1, Base: 0, Threads: 2}
	s.Step(g)
	if got := g.At(0, 0); got != 40 {
		t.Fatalf("(0,0) = %v, want 40", got)
	}
	if got := g.At(3, 3); got != 0 {
		t.Fatalf("(3,3) = %v, want 0", got)
	}
}
