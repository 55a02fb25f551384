package treemap

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// entry is an item paired with the weight actually used for layout.
type entry struct {
	item   Item
	weight float64
}

// span is a pending group: entries[lo:hi] to be placed inside box.
type span struct {
	lo, hi int
	box    Box
}

// Layout assigns every item a rectangle inside box, sized in proportion to
// its weight. See the package documentation for the algorithm and its output
// order.
//
// An empty items slice yields an empty, non-nil result.
func Layout(items []Item, box Box, opts ...Option) ([]Rect, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := box.Validate(); err != nil {
		return nil, err
	}
	entries, err := prepare(items)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []Rect{}, nil
	}

	// prefix[i] is the total weight of entries[:i].
	prefix := make([]float64, len(entries)+1)
	for i, e := range entries {
		prefix[i+1] = prefix[i] + e.weight
	}

	out := make([]Rect, 0, len(entries))
	stack := []span{{lo: 0, hi: len(entries), box: box}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.hi-s.lo == 1 {
			out = append(out, cfg.leaf(entries[s.lo].item, s.box))
			continue
		}

		g := group{prefix: prefix, lo: s.lo, hi: s.hi}
		k, _ := bestSplit(g, s.box, cfg.maxCandidates(g.len()))
		left, right := splitBox(s.box, g.fraction(k))

		// Right first so left is popped, and emitted, first.
		stack = append(stack,
			span{lo: s.lo + k, hi: s.hi, box: right},
			span{lo: s.lo, hi: s.lo + k, box: left},
		)
	}
	return out, nil
}

// prepare validates weights, clamps negatives to zero and sorts heaviest
// first. Equal weights keep their input order.
func prepare(items []Item) ([]entry, error) {
	entries := make([]entry, len(items))
	for i, it := range items {
		w := it.Weight
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: item %q has weight %v", ErrInvalidWeight, it.ID, w)
		}
		entries[i] = entry{item: it, weight: max(w, 0)}
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		return cmp.Compare(b.weight, a.weight)
	})
	return entries, nil
}

// group is a contiguous run of sorted entries viewed through prefix sums.
type group struct {
	prefix []float64
	lo, hi int
}

func (g group) len() int { return g.hi - g.lo }

func (g group) total() float64 { return g.prefix[g.hi] - g.prefix[g.lo] }

// fraction returns the share of the group's area given to its first k
// entries.
func (g group) fraction(k int) float64 {
	total := g.total()
	if total <= 0 {
		return equalShare(k, g.len())
	}
	return (g.prefix[g.lo+k] - g.prefix[g.lo]) / total
}

// equalShare divides a weightless group by item count.
func equalShare(k, n int) float64 {
	return float64(k) / float64(n)
}

// bestSplit folds over the candidate split points 1..maxK and returns the one
// whose worse half is closest to square, along with that aspect ratio. Ties
// keep the earliest candidate.
func bestSplit(g group, b Box, maxK int) (k int, worst float64) {
	k, worst = 1, math.Inf(1)
	for i := 1; i <= maxK; i++ {
		left, right := splitBox(b, g.fraction(i))
		if r := math.Max(left.AspectRatio(), right.AspectRatio()); r < worst {
			k, worst = i, r
		}
	}
	return k, worst
}

// splitBox cuts b across its longer side, giving the first box frac of it.
// Wide or square boxes are split side by side; tall ones are stacked.
func splitBox(b Box, frac float64) (Box, Box) {
	if b.Width >= b.Height {
		w := b.Width * frac
		return Box{X: b.X, Y: b.Y, Width: w, Height: b.Height},
			Box{X: b.X + w, Y: b.Y, Width: b.Width - w, Height: b.Height}
	}
	h := b.Height * frac
	return Box{X: b.X, Y: b.Y, Width: b.Width, Height: h},
		Box{X: b.X, Y: b.Y + h, Width: b.Width, Height: b.Height - h}
}

func (c config) leaf(it Item, b Box) Rect {
	inner := b.Inset(c.padding)
	inner.Width = math.Max(c.minSize, inner.Width)
	inner.Height = math.Max(c.minSize, inner.Height)
	return Rect{Box: inner, Item: it}
}
