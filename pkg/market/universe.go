package market

import (
	"slices"
	"strings"

	"github.com/visarcu/heatmap/pkg/errors"
)

// Universe is a named set of symbols with its sector assignment.
type Universe struct {
	Name        string
	DisplayName string
	Symbols     []string
	Sectors     SectorMap
}

// Universe names accepted by LookupUniverse.
const (
	UniverseSP500     = "sp500"
	UniverseNASDAQ100 = "nasdaq100"
	UniverseDAX       = "dax"
)

var universes = map[string]Universe{
	UniverseSP500:     {Name: UniverseSP500, DisplayName: "S&P 500", Symbols: sp500Symbols, Sectors: usSectors},
	UniverseNASDAQ100: {Name: UniverseNASDAQ100, DisplayName: "NASDAQ 100", Symbols: nasdaq100Symbols, Sectors: usSectors},
	UniverseDAX:       {Name: UniverseDAX, DisplayName: "DAX 40", Symbols: daxSymbols, Sectors: daxSectors},
}

var universeAliases = map[string]string{
	"s&p500":  UniverseSP500,
	"s&p 500": UniverseSP500,
	"spx":     UniverseSP500,
	"ndx":     UniverseNASDAQ100,
	"nasdaq":  UniverseNASDAQ100,
	"dax40":   UniverseDAX,
	"dax 40":  UniverseDAX,
}

// LookupUniverse resolves a universe by name or alias, case-insensitively.
// The returned symbol slice is a copy.
func LookupUniverse(name string) (Universe, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := universeAliases[key]; ok {
		key = alias
	}
	u, ok := universes[key]
	if !ok {
		return Universe{}, errors.New(errors.ErrCodeInvalidUniverse,
			"unknown universe %q (want one of %s)", name, strings.Join(UniverseNames(), ", "))
	}
	u.Symbols = slices.Clone(u.Symbols)
	return u, nil
}

// UniverseNames returns the canonical universe names, sorted.
func UniverseNames() []string {
	names := make([]string, 0, len(universes))
	for n := range universes {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// DefaultSectors is the union of all known sector maps, used when symbols
// are given without a universe.
func DefaultSectors() SectorMap {
	return usSectors.Merge(daxSectors)
}
