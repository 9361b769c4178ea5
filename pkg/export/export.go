// Package export writes and reads the historical quote table.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/quote-genie/core/model"
)

// Columns is the header of the tabular artifact, in write order.
var Columns = []string{
	"quote_id",
	"customer_segment",
	"product_category",
	"weight",
	"volume",
	"distance",
	"fuel_index",
	"cost",
	"market_rate",
	"quoted_price",
	"win",
}

// columnAliases maps legacy header names to their canonical column.
var columnAliases = map[string]string{
	"competitor_rate": "market_rate",
}

// ErrUnsupportedFormat is returned for an output path with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// WriteJSON writes the records to w as a JSON array.
func WriteJSON(w io.Writer, recs []model.QuoteRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}

// ReadJSON decodes a JSON array written by WriteJSON.
func ReadJSON(r io.Reader) ([]model.QuoteRecord, error) {
	var recs []model.QuoteRecord
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// WriteCSV writes the records to w with a header row.
func WriteCSV(w io.Writer, recs []model.QuoteRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write(row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(r model.QuoteRecord) []string {
	win := "0"
	if r.Win {
		win = "1"
	}
	return []string{
		strconv.Itoa(r.QuoteID),
		r.Segment.String(),
		r.Category.String(),
		formatFloat(r.Weight),
		formatFloat(r.Volume),
		formatFloat(r.Distance),
		formatFloat(r.FuelIndex),
		formatFloat(r.Cost),
		formatFloat(r.MarketRate),
		formatFloat(r.QuotedPrice),
		win,
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ReadCSV parses a table written by WriteCSV. Columns are matched by header
// name so extra columns are ignored and legacy names are accepted.
func ReadCSV(r io.Reader) ([]model.QuoteRecord, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if canon, ok := columnAliases[name]; ok {
			name = canon
		}
		idx[name] = i
	}
	for _, c := range Columns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}

	var recs []model.QuoteRecord
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec, err := parseRow(fields, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func parseRow(fields []string, idx map[string]int) (model.QuoteRecord, error) {
	var rec model.QuoteRecord
	get := func(name string) string { return strings.TrimSpace(fields[idx[name]]) }

	id, err := strconv.Atoi(get("quote_id"))
	if err != nil {
		return rec, fmt.Errorf("quote_id: %w", err)
	}
	rec.QuoteID = id
	if rec.Segment, err = model.ParseSegment(get("customer_segment")); err != nil {
		return rec, err
	}
	if rec.Category, err = model.ParseCategory(get("product_category")); err != nil {
		return rec, err
	}
	floats := []struct {
		name string
		dst  *float64
	}{
		{"weight", &rec.Weight},
		{"volume", &rec.Volume},
		{"distance", &rec.Distance},
		{"fuel_index", &rec.FuelIndex},
		{"cost", &rec.Cost},
		{"market_rate", &rec.MarketRate},
		{"quoted_price", &rec.QuotedPrice},
	}
	for _, f := range floats {
		v, err := strconv.ParseFloat(get(f.name), 64)
		if err != nil {
			return rec, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}
	switch strings.ToLower(get("win")) {
	case "1", "true":
		rec.Win = true
	case "0", "false":
		rec.Win = false
	default:
		return rec, fmt.Errorf("win: invalid value %q", get("win"))
	}
	return rec, nil
}
