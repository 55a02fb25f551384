package cache

import (
	"slices"
	"strings"
)

// Keyer builds cache keys. Implementations must be deterministic: equal
// inputs always produce equal keys.
type Keyer interface {
	// HTTPKey names a raw upstream response.
	HTTPKey(namespace, key string) string

	// QuotesKey names the processed stock list for a universe or symbol set.
	QuotesKey(source string, symbols []string) string

	// LayoutKey names a treemap computed from the given items hash.
	LayoutKey(itemsHash string, opts LayoutKeyOpts) string

	// ArtifactKey names a rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string

	// RenderKey names an artifact stored by the API under an ID.
	RenderKey(id, format string) string
}

// LayoutKeyOpts holds every input besides the items that changes a layout.
type LayoutKeyOpts struct {
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Padding       float64 `json:"padding"`
	MinSize       float64 `json:"min_size"`
	SplitFraction float64 `json:"split_fraction"`
}

// ArtifactKeyOpts holds every render setting that changes an artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Title      string  `json:"title,omitempty"`
	Legend     bool    `json:"legend,omitempty"`
	NoTooltips bool    `json:"no_tooltips,omitempty"`
	Locale     string  `json:"locale,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns "http:<namespace>:<key>". The key is kept readable since
// namespaces are short and keys are URLs.
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// QuotesKey hashes the sorted symbol set so ordering does not matter.
func (DefaultKeyer) QuotesKey(source string, symbols []string) string {
	sorted := slices.Clone(symbols)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	return hashKey("quotes", source, strings.Join(sorted, ","))
}

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(itemsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", itemsHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// RenderKey returns "render:<id>.<format>".
func (DefaultKeyer) RenderKey(id, format string) string {
	return "render:" + id + "." + format
}

var _ Keyer = DefaultKeyer{}
