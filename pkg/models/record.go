package models

// ExpenseType classifies a payment request by who receives the money.
type ExpenseType string

const (
	// ExpenseVendor is a payment to an external vendor.
	ExpenseVendor ExpenseType = "AIM"

	// ExpenseEmployee is an employee filing their own expense. For this
	// type the payee and the handler are the same person.
	ExpenseEmployee ExpenseType = "BIM"

	// ExpenseOutsource is a payment for an outsourced service.
	ExpenseOutsource ExpenseType = "DIM"
)

// Valid reports whether t is one of the three known expense types.
func (t ExpenseType) Valid() bool {
	switch t {
	case ExpenseVendor, ExpenseEmployee, ExpenseOutsource:
		return true
	}
	return false
}

// InvoiceRecord is a canonical ledger row: every field is populated, all
// monetary relationships hold, and the audit verdict is set. Records are
// created by the ingestion pipeline and changed only through ledger edits.
//
// At rest AmountInclTax always equals TotalAmount. AmountExclTax + Tax is
// not required to equal TotalAmount: rows whose tax the extraction could
// not decompose keep AmountExclTax == TotalAmount with Tax == 0, which is
// an intentional accounting simplification.
type InvoiceRecord struct {
	// ID uniquely identifies the record. Immutable once created.
	ID string `json:"id"`

	// RequestNo is the human-readable document code, derived as
	// "{expenseType}-{YYMMDD}-{4-char suffix}". It is regenerated only
	// when ExpenseType or ProofDate changes.
	RequestNo string `json:"requestNo"`

	ExpenseType ExpenseType `json:"expenseType"`

	// Text fields. An absent or invalid extraction value normalizes to
	// the literal "0"; these are never empty.
	ProjectNo         string `json:"projectNo"`
	ProjectName       string `json:"projectName"`
	Customer          string `json:"customer"`
	BankCode          string `json:"bankCode"`
	BankAccount       string `json:"bankAccount"`
	Payee             string `json:"payee"`
	Description       string `json:"description"`
	HandledBy         string `json:"handledBy"`
	ProofDate         string `json:"proofDate"`
	InvoiceNo         string `json:"invoiceNo"`
	SellerTaxID       string `json:"sellerTaxId"`
	Subject           string `json:"subject"`
	PaperReceivedDate string `json:"paperReceivedDate"`
	PaymentDate       string `json:"paymentDate"`

	// Amounts in the ledger's single implicit currency unit. TotalAmount
	// is the source of truth for AmountInclTax.
	TotalAmount   float64 `json:"totalAmount"`
	AmountExclTax float64 `json:"amountExclTax"`
	Tax           float64 `json:"tax"`
	AmountInclTax float64 `json:"amountInclTax"`

	// IsMatched is true iff both audit-hint amounts were detected and
	// agree within the configured tolerance.
	IsMatched bool `json:"isMatched"`
}
