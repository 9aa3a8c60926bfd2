// Package export renders canonical ledger records through the fixed
// 19-column accounting contract, either as an xlsx workbook or as a
// tab-separated block suitable for pasting into a spreadsheet.
package export

import (
	"strconv"

	"reqaudit/pkg/models"
)

// Column is one labeled export column bound to a record field.
type Column struct {
	Label string
	Value func(models.InvoiceRecord) string
}

// Columns returns the export schema: 19 columns, fixed order, mapping 1:1
// to the record's public accounting fields. Consumers must not reorder or
// filter them; downstream finance tooling imports by position.
func Columns() []Column {
	return []Column{
		{"請款單編號", func(r models.InvoiceRecord) string { return r.RequestNo }},
		{"專案編號", func(r models.InvoiceRecord) string { return r.ProjectNo }},
		{"專案名稱", func(r models.InvoiceRecord) string { return r.ProjectName }},
		{"客戶", func(r models.InvoiceRecord) string { return r.Customer }},
		{"收款行代碼", func(r models.InvoiceRecord) string { return r.BankCode }},
		{"收款帳號", func(r models.InvoiceRecord) string { return r.BankAccount }},
		{"支出金額", func(r models.InvoiceRecord) string { return formatAmount(r.TotalAmount) }},
		{"收款人姓名", func(r models.InvoiceRecord) string { return r.Payee }},
		{"說明", func(r models.InvoiceRecord) string { return r.Description }},
		{"經辦人", func(r models.InvoiceRecord) string { return r.HandledBy }},
		{"憑證日期", func(r models.InvoiceRecord) string { return r.ProofDate }},
		{"發票編號", func(r models.InvoiceRecord) string { return r.InvoiceNo }},
		{"賣方統編", func(r models.InvoiceRecord) string { return r.SellerTaxID }},
		{"未稅金額", func(r models.InvoiceRecord) string { return formatAmount(r.AmountExclTax) }},
		{"稅金", func(r models.InvoiceRecord) string { return formatAmount(r.Tax) }},
		{"含稅金額", func(r models.InvoiceRecord) string { return formatAmount(r.AmountInclTax) }},
		{"會計科目", func(r models.InvoiceRecord) string { return r.Subject }},
		{"財務取得紙本日期", func(r models.InvoiceRecord) string { return r.PaperReceivedDate }},
		{"預計出帳日期", func(r models.InvoiceRecord) string { return r.PaymentDate }},
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
