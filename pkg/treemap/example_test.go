package treemap_test

import (
	"fmt"

	"github.com/visarcu/heatmap/pkg/treemap"
)

func ExampleLayout() {
	items := []treemap.Item{
		{ID: "AAPL", Weight: 100},
		{ID: "MSFT", Weight: 50},
		{ID: "NVDA", Weight: 50},
	}
	rects, err := treemap.Layout(items, treemap.Box{Width: 300, Height: 100})
	if err != nil {
		panic(err)
	}
	for _, r := range rects {
		fmt.Printf("%s %.0f,%.0f %.0fx%.0f\n", r.Item.ID, r.X, r.Y, r.Width, r.Height)
	}
	// Output:
	// AAPL 1,1 148x98
	// MSFT 151,1 73x98
	// NVDA 226,1 73x98
}

func ExampleLayout_exactTiling() {
	items := []treemap.Item{{ID: "a", Weight: 3}, {ID: "b", Weight: 1}}
	rects, _ := treemap.Layout(items, treemap.Box{Width: 40, Height: 10},
		treemap.WithPadding(0), treemap.WithMinSize(0))
	for _, r := range rects {
		fmt.Printf("%s area=%.0f\n", r.Item.ID, r.Area())
	}
	// Output:
	// a area=300
	// b area=100
}
