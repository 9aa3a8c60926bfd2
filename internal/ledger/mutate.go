package ledger

import "reqaudit/pkg/models"

// Field names an editable record field. Edits are tagged with the field
// the user drove so the downstream recomputation is chosen by intent, not
// re-derived from current values.
type Field string

const (
	FieldExpenseType       Field = "expenseType"
	FieldProjectNo         Field = "projectNo"
	FieldProjectName       Field = "projectName"
	FieldCustomer          Field = "customer"
	FieldBankCode          Field = "bankCode"
	FieldBankAccount       Field = "bankAccount"
	FieldPayee             Field = "payee"
	FieldDescription       Field = "description"
	FieldHandledBy         Field = "handledBy"
	FieldProofDate         Field = "proofDate"
	FieldInvoiceNo         Field = "invoiceNo"
	FieldSellerTaxID       Field = "sellerTaxId"
	FieldSubject           Field = "subject"
	FieldPaperReceivedDate Field = "paperReceivedDate"
	FieldPaymentDate       Field = "paymentDate"
	FieldTotalAmount       Field = "totalAmount"
	FieldAmountExclTax     Field = "amountExclTax"
	FieldTax               Field = "tax"
)

// Amount reports whether edits to the field take a numeric value. The
// boundary layer uses this to coerce user input to a float before calling
// Update.
func (f Field) Amount() bool {
	switch f {
	case FieldTotalAmount, FieldAmountExclTax, FieldTax:
		return true
	}
	return false
}

// Update applies a single-field edit to the record with the given id and
// returns a new ledger; the input slice is never modified. An absent id is
// a silent no-op rather than an error, so a row deleted while an edit was
// in flight cannot crash the caller.
//
// After the field is set, exactly the relevant consequences follow: one
// amount rule for a monetary driver, and a request-number regeneration
// when the expense type or proof date changed. No other field is ever
// touched, so a manually corrected project name can never shift amounts
// or the document code.
func Update(prior []models.InvoiceRecord, id string, field Field, value any) []models.InvoiceRecord {
	out := make([]models.InvoiceRecord, len(prior))
	copy(out, prior)

	for i := range out {
		if out[i].ID != id {
			continue
		}
		rec := out[i]
		if !setField(&rec, field, value) {
			return out
		}
		reconcileEditedAmounts(&rec, field)
		if field == FieldExpenseType || field == FieldProofDate {
			rec.RequestNo = RequestNo(rec)
		}
		out[i] = rec
		return out
	}
	return out
}

// Delete removes the record with the given id, preserving the order of
// the rest. An absent id returns an order-preserving copy unchanged.
func Delete(prior []models.InvoiceRecord, id string) []models.InvoiceRecord {
	out := make([]models.InvoiceRecord, 0, len(prior))
	for _, rec := range prior {
		if rec.ID == id {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// setField writes value into the named field. Amount fields expect a
// float64 (the boundary coerces text input first); everything else
// expects a string. An unknown field or mismatched type leaves the record
// untouched.
func setField(rec *models.InvoiceRecord, field Field, value any) bool {
	if field.Amount() {
		n, ok := value.(float64)
		if !ok {
			return false
		}
		switch field {
		case FieldTotalAmount:
			rec.TotalAmount = n
		case FieldAmountExclTax:
			rec.AmountExclTax = n
		case FieldTax:
			rec.Tax = n
		}
		return true
	}

	s, ok := value.(string)
	if !ok {
		return false
	}
	switch field {
	case FieldExpenseType:
		rec.ExpenseType = resolveExpenseType(s)
	case FieldProjectNo:
		rec.ProjectNo = s
	case FieldProjectName:
		rec.ProjectName = s
	case FieldCustomer:
		rec.Customer = s
	case FieldBankCode:
		rec.BankCode = s
	case FieldBankAccount:
		rec.BankAccount = s
	case FieldPayee:
		rec.Payee = s
	case FieldDescription:
		rec.Description = s
	case FieldHandledBy:
		rec.HandledBy = s
	case FieldProofDate:
		rec.ProofDate = s
	case FieldInvoiceNo:
		rec.InvoiceNo = s
	case FieldSellerTaxID:
		rec.SellerTaxID = s
	case FieldSubject:
		rec.Subject = s
	case FieldPaperReceivedDate:
		rec.PaperReceivedDate = s
	case FieldPaymentDate:
		rec.PaymentDate = s
	default:
		return false
	}
	return true
}
