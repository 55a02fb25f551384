package market

import (
	"cmp"
	"slices"
)

// Sector names as used in the sector maps.
const (
	SectorTechnology            = "Technology"
	SectorConsumerDiscretionary = "Consumer Discretionary"
	SectorHealthCare            = "Health Care"
	SectorFinancials            = "Financials"
	SectorConsumerStaples       = "Consumer Staples"
	SectorCommunicationServices = "Communication Services"
	SectorEnergy                = "Energy"
	SectorIndustrials           = "Industrials"
	SectorUtilities             = "Utilities"
	SectorRealEstate            = "Real Estate"
	SectorMaterials             = "Materials"
	SectorAutomotive            = "Automotive"
	SectorChemicals             = "Chemicals"
	SectorTelecommunications    = "Telecommunications"

	// SectorOther is assigned to symbols missing from a sector map.
	SectorOther = "Other"
)

// SectorMap assigns symbols to sectors.
type SectorMap map[string]string

// Lookup returns the sector for symbol, or SectorOther.
func (m SectorMap) Lookup(symbol string) string {
	if s, ok := m[symbol]; ok {
		return s
	}
	return SectorOther
}

// Merge returns a new map holding m overlaid with others, later maps
// winning.
func (m SectorMap) Merge(others ...SectorMap) SectorMap {
	out := make(SectorMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	for _, o := range others {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

// SectorData aggregates the stocks of one sector.
type SectorData struct {
	Sector         string  `json:"sector"`
	AvgChange      float64 `json:"avg_change"`
	TotalMarketCap float64 `json:"total_market_cap"`
	Count          int     `json:"count"`
	Stocks         []Stock `json:"stocks"`
}

// AggregateSectors groups stocks by sector. Each group keeps the input order
// of its stocks. Groups are sorted by total market cap, largest first.
func AggregateSectors(stocks []Stock) []SectorData {
	index := make(map[string]int)
	var out []SectorData
	for _, s := range stocks {
		i, ok := index[s.Sector]
		if !ok {
			i = len(out)
			index[s.Sector] = i
			out = append(out, SectorData{Sector: s.Sector})
		}
		d := &out[i]
		d.AvgChange += s.ChangePct
		d.TotalMarketCap += s.MarketCap
		d.Count++
		d.Stocks = append(d.Stocks, s)
	}
	for i := range out {
		out[i].AvgChange /= float64(out[i].Count)
	}
	slices.SortStableFunc(out, func(a, b SectorData) int {
		return cmp.Compare(b.TotalMarketCap, a.TotalMarketCap)
	})
	return out
}

// SortByPerformance orders sectors by average change, best first.
func SortByPerformance(sectors []SectorData) {
	slices.SortStableFunc(sectors, func(a, b SectorData) int {
		return cmp.Compare(b.AvgChange, a.AvgChange)
	})
}

// Summary is the market breadth over a set of stocks.
type Summary struct {
	Total          int     `json:"total"`
	Up             int     `json:"up"`
	Down           int     `json:"down"`
	Unchanged      int     `json:"unchanged"`
	AvgChange      float64 `json:"avg_change"`
	TotalMarketCap float64 `json:"total_market_cap"`
	Best           string  `json:"best,omitempty"`
	Worst          string  `json:"worst,omitempty"`
}

// Summarize counts advancers and decliners and averages the change. An
// empty input yields a zero Summary.
func Summarize(stocks []Stock) Summary {
	var s Summary
	if len(stocks) == 0 {
		return s
	}
	best, worst := stocks[0], stocks[0]
	for _, st := range stocks {
		switch {
		case st.ChangePct > 0:
			s.Up++
		case st.ChangePct < 0:
			s.Down++
		default:
			s.Unchanged++
		}
		s.AvgChange += st.ChangePct
		s.TotalMarketCap += st.MarketCap
		if st.ChangePct > best.ChangePct {
			best = st
		}
		if st.ChangePct < worst.ChangePct {
			worst = st
		}
	}
	s.Total = len(stocks)
	s.AvgChange /= float64(len(stocks))
	s.Best, s.Worst = best.Symbol, worst.Symbol
	return s
}
