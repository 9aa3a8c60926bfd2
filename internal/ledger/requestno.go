package ledger

import (
	"fmt"
	"strings"

	"reqaudit/pkg/models"
)

// emptyDatePart stands in for records whose proof date was never read.
const emptyDatePart = "000000"

// RequestNo derives the document code "{expenseType}-{YYMMDD}-{suffix}"
// from the record's current expense type, proof date, and identity. The
// suffix is the first four characters of the ID, upper-cased, so the code
// stays stable across unrelated edits.
func RequestNo(rec models.InvoiceRecord) string {
	return fmt.Sprintf("%s-%s-%s", rec.ExpenseType, datePart(rec.ProofDate), idSuffix(rec.ID))
}

// datePart strips the date separators and drops the century, so
// "2024-05-01" becomes "240501". A defaulted or absent proof date maps to
// "000000" rather than guessing a scan date.
//
// Extraction reports proof dates as "YYYY-MM-DD" (the prompt pins the
// format), so the result is six digits for any extracted date. Shorter or
// unseparated input from a manual edit is passed through after the same
// stripping, not padded back to six.
func datePart(proofDate string) string {
	if proofDate == "" || proofDate == DefaultValue {
		return emptyDatePart
	}
	s := strings.NewReplacer("-", "", "/", "").Replace(proofDate)
	if len(s) > 2 {
		s = s[2:]
	}
	if len(s) > 6 {
		s = s[:6]
	}
	return s
}

func idSuffix(id string) string {
	if len(id) > 4 {
		id = id[:4]
	}
	return strings.ToUpper(id)
}
