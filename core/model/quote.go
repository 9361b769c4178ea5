package model

import (
	"fmt"
	"strings"
)

// Segment identifies the commercial relationship with a customer.
type Segment int

const (
	SegmentStandard Segment = iota
	SegmentPremium
	SegmentStrategic
)

// Segments lists every segment in declaration order.
var Segments = []Segment{SegmentStandard, SegmentPremium, SegmentStrategic}

func (s Segment) String() string {
	switch s {
	case SegmentStandard:
		return "Standard"
	case SegmentPremium:
		return "Premium"
	case SegmentStrategic:
		return "Strategic"
	default:
		return fmt.Sprintf("Segment(%d)", int(s))
	}
}

// ParseSegment maps a case-insensitive name to a Segment.
func ParseSegment(s string) (Segment, error) {
	for _, seg := range Segments {
		if strings.EqualFold(strings.TrimSpace(s), seg.String()) {
			return seg, nil
		}
	}
	return 0, fmt.Errorf("unknown customer segment %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Segment) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Segment) UnmarshalText(b []byte) error {
	v, err := ParseSegment(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Category is the product class of a shipment.
type Category int

const (
	CategoryGeneral Category = iota
	CategoryElectronics
	CategoryPerishable
	CategoryHazardous
)

// Categories lists every category in declaration order.
var Categories = []Category{CategoryGeneral, CategoryElectronics, CategoryPerishable, CategoryHazardous}

func (c Category) String() string {
	switch c {
	case CategoryGeneral:
		return "General"
	case CategoryElectronics:
		return "Electronics"
	case CategoryPerishable:
		return "Perishable"
	case CategoryHazardous:
		return "Hazardous"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// ParseCategory maps a case-insensitive name to a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(strings.TrimSpace(s), c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown product category %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Features are the shipment attributes known at quoting time.
type Features struct {
	Segment   Segment
	Category  Category
	Weight    float64
	Volume    float64
	Distance  float64
	FuelIndex float64
}

// QuoteRecord is one simulated historical quote.
type QuoteRecord struct {
	QuoteID     int      `json:"quote_id"`
	Segment     Segment  `json:"customer_segment"`
	Category    Category `json:"product_category"`
	Weight      float64  `json:"weight"`
	Volume      float64  `json:"volume"`
	Distance    float64  `json:"distance"`
	FuelIndex   float64  `json:"fuel_index"`
	Cost        float64  `json:"cost"`
	MarketRate  float64  `json:"market_rate"`
	QuotedPrice float64  `json:"quoted_price"`
	Win         bool     `json:"win"`
}

// Features returns the model inputs of the record.
func (r QuoteRecord) Features() Features {
	return Features{
		Segment:   r.Segment,
		Category:  r.Category,
		Weight:    r.Weight,
		Volume:    r.Volume,
		Distance:  r.Distance,
		FuelIndex: r.FuelIndex,
	}
}
