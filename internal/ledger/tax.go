package ledger

import "reqaudit/pkg/models"

// The three-way relationship between TotalAmount, Tax and AmountExclTax is
// a cyclic-dependency hazard: recomputing naively from current values
// would let an edit to one side re-trigger the other. The rules below are
// therefore keyed on which field drove the change, never derived from the
// values themselves. Amounts may go negative (over-claimed tax); they are
// propagated unchanged, with no rounding beyond native float64 arithmetic.

// reconcileIngestAmounts establishes the amount invariants on a freshly
// resolved record. AmountInclTax always mirrors TotalAmount. AmountExclTax
// prefers the extraction's own reading; failing that it is TotalAmount
// minus Tax, and when the tax is unknown or zero it collapses to
// TotalAmount (the no-tax shortcut).
func reconcileIngestAmounts(rec *models.InvoiceRecord, raw models.RawResult) {
	rec.AmountInclTax = rec.TotalAmount

	if excl, ok := raw.NumberOK("amountExclTax"); ok && excl != 0 {
		rec.AmountExclTax = excl
		return
	}
	if rec.Tax != 0 {
		rec.AmountExclTax = rec.TotalAmount - rec.Tax
		return
	}
	rec.AmountExclTax = rec.TotalAmount
}

// reconcileEditedAmounts recomputes the fields downstream of a single
// amount edit. Exactly one rule fires per edit: tax and excl-tax are the
// two inverse views of the same equation, so only the side the user
// touched is treated as the driver.
func reconcileEditedAmounts(rec *models.InvoiceRecord, edited Field) {
	switch edited {
	case FieldTotalAmount:
		rec.AmountInclTax = rec.TotalAmount
		if rec.Tax == 0 {
			rec.AmountExclTax = rec.TotalAmount
		}
	case FieldTax:
		rec.AmountExclTax = rec.TotalAmount - rec.Tax
	case FieldAmountExclTax:
		rec.Tax = rec.TotalAmount - rec.AmountExclTax
	}
}
