package ledger

import "reqaudit/pkg/models"

// UnifyEmployee reconciles payee and handler on employee-reimbursement
// records, where both name the same person. If either side was read, both
// take that value; if neither was, both stay at the default. Other expense
// types are untouched. Runs before amount reconciliation so a corrected
// name pair never re-enters the tax math.
func UnifyEmployee(rec *models.InvoiceRecord) {
	if rec.ExpenseType != models.ExpenseEmployee {
		return
	}
	switch {
	case rec.Payee != DefaultValue:
		rec.HandledBy = rec.Payee
	case rec.HandledBy != DefaultValue:
		rec.Payee = rec.HandledBy
	}
}
