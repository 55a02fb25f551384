package market

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/visarcu/heatmap/pkg/errors"
)

// Formatter renders numbers for labels and tooltips in one locale.
// German output uses "Bio."/"Mrd."/"Mio." and a trailing dollar sign;
// every other locale uses "T"/"B"/"M" and a leading one.
type Formatter struct {
	tag    language.Tag
	german bool
}

// German is the default formatter.
var German = NewFormatter(language.German)

// NewFormatter returns a Formatter for tag.
func NewFormatter(tag language.Tag) Formatter {
	base, _ := tag.Base()
	return Formatter{tag: tag, german: base.String() == "de"}
}

// ParseLocale parses a BCP 47 tag such as "de" or "en-US".
func ParseLocale(s string) (Formatter, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return Formatter{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid locale %q", s)
	}
	return NewFormatter(tag), nil
}

// Tag returns the formatter's language tag.
func (f Formatter) Tag() language.Tag { return f.tag }

func (f Formatter) printer() *message.Printer {
	return message.NewPrinter(f.tag)
}

// MarketCap abbreviates a market capitalisation: one decimal for trillions
// and billions, none for millions, grouped digits below that.
func (f Formatter) MarketCap(v float64) string {
	p := f.printer()
	t, b, m := "T", "B", "M"
	if f.german {
		t, b, m = "Bio.", "Mrd.", "Mio."
	}
	switch {
	case v >= 1e12:
		return p.Sprintf("%.1f %s", v/1e12, t)
	case v >= 1e9:
		return p.Sprintf("%.1f %s", v/1e9, b)
	case v >= 1e6:
		return p.Sprintf("%.0f %s", v/1e6, m)
	default:
		return p.Sprintf("%d", int64(v))
	}
}

// Price formats a USD price with two decimals.
func (f Formatter) Price(v float64) string {
	if f.german {
		return f.printer().Sprintf("%.2f $", v)
	}
	return f.printer().Sprintf("$%.2f", v)
}

// Percent formats a change with the given number of decimals. Values >= 0
// get a leading plus sign.
func (f Formatter) Percent(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	sign := ""
	if v >= 0 {
		sign = "+"
	}
	return sign + f.printer().Sprintf("%."+strconv.Itoa(decimals)+"f", v) + "%"
}

// Labels holds the captions used in tooltips.
type Labels struct {
	MarketCap string
	Sector    string
	Price     string
	Today     string
}

// Labels returns the tooltip captions for the formatter's language.
func (f Formatter) Labels() Labels {
	if f.german {
		return Labels{MarketCap: "MCap", Sector: "Sektor", Price: "Kurs", Today: "heute"}
	}
	return Labels{MarketCap: "Market cap", Sector: "Sector", Price: "Price", Today: "today"}
}

// Sector returns the display name of a sector in the formatter's language.
func (f Formatter) Sector(sector string) string {
	if f.german {
		return SectorDisplayName(sector)
	}
	return sector
}

var germanSectors = map[string]string{
	SectorTechnology:            "Technologie",
	SectorConsumerDiscretionary: "Nicht-Basiskonsumgüter",
	SectorHealthCare:            "Gesundheitswesen",
	SectorFinancials:            "Finanzdienstleistungen",
	SectorConsumerStaples:       "Basiskonsumgüter",
	SectorCommunicationServices: "Kommunikationsdienste",
	SectorEnergy:                "Energie",
	SectorIndustrials:           "Industrie",
	SectorUtilities:             "Versorgungsunternehmen",
	SectorRealEstate:            "Immobilien",
	SectorMaterials:             "Rohstoffe",
	SectorAutomotive:            "Automobilindustrie",
	SectorChemicals:             "Chemie",
	SectorTelecommunications:    "Telekommunikation",
	SectorOther:                 "Sonstige",
}

// SectorDisplayName returns the German label for sector, or sector itself
// if there is none.
func SectorDisplayName(sector string) string {
	if s, ok := germanSectors[sector]; ok {
		return s
	}
	return sector
}

// FormatMarketCap formats v with the German formatter.
func FormatMarketCap(v float64) string { return German.MarketCap(v) }

// FormatPrice formats v with the German formatter.
func FormatPrice(v float64) string { return German.Price(v) }

// FormatPercent formats v with the German formatter.
func FormatPercent(v float64, decimals int) string { return German.Percent(v, decimals) }
