package heatsim

// Stepper advances a grid by one timestep. Every cell becomes the mean of
// its old value and the scaled average of its 8 neighbors:
//
//	new = (old + K*sum/8) / 2
//
// Neighbors outside the grid count as Base.
type Stepper[T Scalar] struct {
	K       T
	Base    T
	Threads int
}

// Step computes one timestep from the committed buffer into the scratch
// buffer and then swaps them. Workers only read the committed buffer and
// only write their own rows of the scratch buffer, and the swap happens
// after all of them have joined.
func (s *Stepper[T]) Step(g *Grid[T]) {
	cur, nxt := g.current(), g.next()
	cols, rows := g.cols, g.rows
	perRowThreaded(rows, s.Threads, func(b Block) {
		for y := b.Start; y < b.End; y++ {
			for x := 0; x < cols; x++ {
				i := x + y*cols
				sum := s.neighborSum(cur, cols, rows, x, y)
				nxt[i] = (cur[i] + s.K*sum/8) / 2
			}
		}
	})
	g.swap()
}

func (s *Stepper[T]) neighborSum(cells []T, cols, rows, x, y int) T {
	if x > 0 && x < cols-1 && y > 0 && y < rows-1 {
		return sumInterior(cells, cols, x, y)
	}
	return sumEdge(cells, cols, rows, x, y, s.Base)
}

// sumInterior is the common case: all 8 neighbors exist, so just add them.
// The order matches sumEdge so both paths round identically.
func sumInterior[T Scalar](cells []T, cols, x, y int) T {
	up := (y - 1) * cols
	mid := y * cols
	down := (y + 1) * cols
	var sum T
	sum += cells[x-1+up]
	sum += cells[x+up]
	sum += cells[x+1+up]
	sum += cells[x-1+mid]
	sum += cells[x+1+mid]
	sum += cells[x-1+down]
	sum += cells[x+down]
	sum += cells[x+1+down]
	return sum
}

// sumEdge walks the 3x3 neighborhood and substitutes base for every offset
// that falls outside the grid. Only the perimeter cells go through here.
func sumEdge[T Scalar](cells []T, cols, rows, x, y int, base T) T {
	var sum T
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			sx, sy := x+dx, y+dy
			if sx < 0 || sx >= cols || sy < 0 || sy >= rows {
				sum += base
				continue
			}
			sum += cells[sx+sy*cols]
		}
	}
	return sum
}
