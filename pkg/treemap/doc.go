// Package treemap partitions a rectangle into weighted, non-overlapping tiles.
//
// The layout is a binary space partition. Items are sorted by weight, heaviest
// first, and each group is split in two at the index that keeps the worse of
// the two resulting aspect ratios as close to square as possible. Each half
// receives a share of the box proportional to its weight, cut along the
// longer side. The halves are subdivided the same way until every group holds
// a single item.
//
// # Usage
//
//	rects, err := treemap.Layout(items, treemap.Box{Width: 1600, Height: 800})
//	if err != nil {
//	    return err
//	}
//	for _, r := range rects {
//	    fmt.Println(r.Item.ID, r.X, r.Y, r.Width, r.Height)
//	}
//
// # Output Order
//
// Rectangles come back in pre-order of the partition: everything placed in
// the left (or top) half of a split precedes everything in the right (or
// bottom) half. This is not input order. Use [SortByID] or [Index] when
// callers need to look tiles up by identifier.
//
// # Weights
//
// Negative weights are treated as zero. NaN and infinite weights are rejected
// with [ErrInvalidWeight]. A group whose weights sum to zero is split by item
// count, so a pair of zero-weight items gets two equal halves.
//
// # Leaves
//
// Each leaf is inset by the padding (default 1) on all four sides and its
// width and height are floored at the minimum size (default 10). The floor
// keeps slivers visible, so tiles of very light items may extend past their
// share of the box. Pass [WithPadding](0) and [WithMinSize](0) for an exact
// tiling.
//
// # Concurrency
//
// [Layout] is pure. It allocates its own working state and may be called from
// any number of goroutines.
package treemap
