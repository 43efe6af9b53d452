package heatsim

// Block is a half-open [Start, End) range of one axis.
type Block struct {
	Start, End int
}

// Len returns the number of units in the block.
func (b Block) Len() int { return b.End - b.Start }

// Partition splits units into the given number of contiguous blocks. Every
// block gets units/blocks, and the leftover units go one each to the
// earliest blocks, so sizes differ by at most one: Partition(10, 3) yields
// sizes 4, 3, 3.
//
// When blocks > units the trailing blocks are empty. Callers that need every
// block populated have to keep blocks <= units.
func Partition(units, blocks int) []Block {
	if blocks <= 0 {
		return nil
	}
	if units < 0 {
		units = 0
	}
	size := units / blocks
	rem := units - size*blocks

	out := make([]Block, blocks)
	end := 0
	for i := range out {
		start := end
		end = start + size
		if rem > 0 {
			rem--
			end++
		}
		out[i] = Block{Start: start, End: end}
	}
	return out
}
