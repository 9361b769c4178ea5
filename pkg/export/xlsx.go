package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/quote-genie/core/model"
)

// SheetName is the worksheet holding the quote table.
const SheetName = "quotes"

// WriteXLSX writes the records as a single-sheet workbook.
func WriteXLSX(w io.Writer, recs []model.QuoteRecord) error {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), SheetName); err != nil {
		return err
	}
	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := xl.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}
	for i, r := range recs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		win := 0
		if r.Win {
			win = 1
		}
		values := []any{
			r.QuoteID, r.Segment.String(), r.Category.String(),
			r.Weight, r.Volume, r.Distance, r.FuelIndex,
			r.Cost, r.MarketRate, r.QuotedPrice, win,
		}
		if err := xl.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	_, err := xl.WriteTo(w)
	return err
}
