// Package ledger implements the extraction normalization and reconciliation
// engine: it turns raw, loosely-typed extraction results into canonical
// invoice records, enforces the total/tax/excl-tax relationship, derives
// request numbers, sets the audit match verdict, and re-applies the same
// rules when a record is edited.
//
// Every operation is a pure function from (ledger, input) to a new ledger;
// nothing here mutates its input, so a caller holding the previous slice
// never observes a partially-updated record.
package ledger

import "reqaudit/pkg/models"

// DefaultValue is the canonical placeholder for a text field the
// extraction could not read. Records never carry empty strings.
const DefaultValue = "0"

// Resolve converts one raw extraction result into a draft record with
// every field populated: text fields fall back to "0", numeric fields to
// 0, and an unknown expense type to the vendor-payment default. It must
// run before any dependent rule, since those assume total absence of
// missing values.
//
// The draft is not yet canonical: identity, amount reconciliation, the
// request number, and the match verdict are applied by the pipeline.
func Resolve(raw models.RawResult) models.InvoiceRecord {
	return models.InvoiceRecord{
		ExpenseType:       resolveExpenseType(raw.String("expenseType")),
		ProjectNo:         stringOr(raw, "projectNo"),
		ProjectName:       stringOr(raw, "projectName"),
		Customer:          stringOr(raw, "customer"),
		BankCode:          stringOr(raw, "bankCode"),
		BankAccount:       stringOr(raw, "bankAccount"),
		Payee:             stringOr(raw, "payee"),
		Description:       stringOr(raw, "description"),
		HandledBy:         stringOr(raw, "handledBy"),
		ProofDate:         stringOr(raw, "proofDate"),
		InvoiceNo:         stringOr(raw, "invoiceNo"),
		SellerTaxID:       stringOr(raw, "sellerTaxId"),
		Subject:           stringOr(raw, "subject"),
		PaperReceivedDate: stringOr(raw, "paperReceivedDate"),
		PaymentDate:       stringOr(raw, "paymentDate"),
		TotalAmount:       raw.Number("totalAmount"),
		AmountExclTax:     raw.Number("amountExclTax"),
		Tax:               raw.Number("tax"),
		AmountInclTax:     raw.Number("amountInclTax"),
	}
}

func stringOr(raw models.RawResult, key string) string {
	if s := raw.String(key); s != "" {
		return s
	}
	return DefaultValue
}

func resolveExpenseType(s string) models.ExpenseType {
	if t := models.ExpenseType(s); t.Valid() {
		return t
	}
	return models.ExpenseVendor
}
