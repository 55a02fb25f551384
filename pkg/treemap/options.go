package treemap

import (
	"fmt"
	"math"
)

const (
	// DefaultPadding is the inset applied to every side of a leaf.
	DefaultPadding = 1.0

	// DefaultMinSize is the floor for leaf width and height.
	DefaultMinSize = 10.0

	// DefaultMaxSplitFraction caps the split search to the first 60% of a
	// group's items. Heavier items sit at the front after sorting, so larger
	// left groups rarely balance better.
	DefaultMaxSplitFraction = 0.6
)

// Option configures [Layout].
type Option func(*config)

type config struct {
	padding  float64
	minSize  float64
	maxSplit float64
}

// WithPadding sets the inset applied to each side of a leaf.
func WithPadding(p float64) Option { return func(c *config) { c.padding = p } }

// WithMinSize sets the floor for leaf width and height.
func WithMinSize(s float64) Option { return func(c *config) { c.minSize = s } }

// WithMaxSplitFraction bounds the split candidates for a group of n items to
// k in [1, min(ceil(f*n), n-1)]. f must be in (0, 1].
func WithMaxSplitFraction(f float64) Option { return func(c *config) { c.maxSplit = f } }

func newConfig(opts []Option) (config, error) {
	c := config{
		padding:  DefaultPadding,
		minSize:  DefaultMinSize,
		maxSplit: DefaultMaxSplitFraction,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	switch {
	case !finiteNonNegative(c.padding):
		return c, fmt.Errorf("%w: padding %v", ErrInvalidOption, c.padding)
	case !finiteNonNegative(c.minSize):
		return c, fmt.Errorf("%w: min size %v", ErrInvalidOption, c.minSize)
	case !(c.maxSplit > 0 && c.maxSplit <= 1):
		return c, fmt.Errorf("%w: split fraction %v not in (0, 1]", ErrInvalidOption, c.maxSplit)
	}
	return c, nil
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// maxCandidates returns the largest split index considered for n items.
func (c config) maxCandidates(n int) int {
	return max(1, min(int(math.Ceil(c.maxSplit*float64(n))), n-1))
}
