package export

import (
	"strings"

	"reqaudit/pkg/models"
)

// TSV renders the records as a tab-separated block in the 19-column
// order, one line per record, no header. The format pastes directly into
// a spreadsheet.
func TSV(records []models.InvoiceRecord) string {
	columns := Columns()

	var b strings.Builder
	for i, rec := range records {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, col := range columns {
			if j > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(col.Value(rec))
		}
	}
	return b.String()
}
