package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"reqaudit/internal/logger"
	"reqaudit/pkg/models"
)

// SheetName is the worksheet the records land on.
const SheetName = "Invoices"

// WriteXLSX writes the records as one worksheet at path: a header row with
// the 19 column labels, then one row per record in ledger order.
func WriteXLSX(path string, records []models.InvoiceRecord) error {
	const op = "WriteXLSX"

	log := logger.WithComponent("export")

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("%s: failed to name sheet: %w", op, err)
	}

	columns := Columns()
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := f.SetCellValue(SheetName, cell, col.Label); err != nil {
			return fmt.Errorf("%s: failed to write header: %w", op, err)
		}
	}

	for row, rec := range records {
		for i, col := range columns {
			cell, err := excelize.CoordinatesToCellName(i+1, row+2)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			if err := f.SetCellValue(SheetName, cell, col.Value(rec)); err != nil {
				return fmt.Errorf("%s: failed to write row %d: %w", op, row+1, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%s: failed to save workbook: %w", op, err)
	}

	log.Info().
		Str("file", path).
		Int("rows", len(records)).
		Msg("Exported ledger workbook")
	return nil
}
