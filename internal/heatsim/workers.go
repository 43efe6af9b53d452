package heatsim

import "golang.org/x/sync/errgroup"

// perRowThreaded calls fun once per contiguous block of rows, with up to
// threads blocks running in parallel, and returns after all of them are
// done. Blocks never overlap, so fun may write its rows without locking.
func perRowThreaded(rows, threads int, fun func(b Block)) {
	if threads > rows {
		threads = rows
	}
	if threads <= 1 {
		fun(Block{Start: 0, End: rows})
		return
	}
	var wg errgroup.Group
	for _, b := range Partition(rows, threads) {
		b := b
		wg.Go(func() error {
			fun(b)
			return nil
		})
	}
	// Nothing returns an error; Wait is the barrier.
	_ = wg.Wait()
}
