package ledger_test

import (
	"fmt"
	"testing"

	"reqaudit/internal/ledger"
	"reqaudit/pkg/models"
)

// newTestPipeline returns a pipeline with deterministic IDs: seq0000,
// seq0001, ... so request-number suffixes are predictable.
func newTestPipeline() *ledger.Pipeline {
	p := ledger.NewPipeline(0)
	n := 0
	p.NewID = func() string {
		id := fmt.Sprintf("seq%04d", n)
		n++
		return id
	}
	return p
}

func ingestOne(t *testing.T, raw models.RawResult) models.InvoiceRecord {
	t.Helper()
	out := newTestPipeline().Ingest(nil, []models.RawResult{raw})
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	return out[0]
}

func TestIngestFillsEveryField(t *testing.T) {
	rec := ingestOne(t, models.RawResult{"description": "taxi"})

	stringFields := map[string]string{
		"projectNo":         rec.ProjectNo,
		"projectName":       rec.ProjectName,
		"customer":          rec.Customer,
		"bankCode":          rec.BankCode,
		"bankAccount":       rec.BankAccount,
		"payee":             rec.Payee,
		"handledBy":         rec.HandledBy,
		"proofDate":         rec.ProofDate,
		"invoiceNo":         rec.InvoiceNo,
		"sellerTaxId":       rec.SellerTaxID,
		"subject":           rec.Subject,
		"paperReceivedDate": rec.PaperReceivedDate,
		"paymentDate":       rec.PaymentDate,
	}
	for name, got := range stringFields {
		if got != ledger.DefaultValue {
			t.Errorf("%s = %q, want %q", name, got, ledger.DefaultValue)
		}
	}
	if rec.Description != "taxi" {
		t.Errorf("description = %q, want taxi", rec.Description)
	}
	if rec.ExpenseType != models.ExpenseVendor {
		t.Errorf("expenseType = %q, want AIM default", rec.ExpenseType)
	}
	if rec.ID == "" || rec.RequestNo == "" {
		t.Errorf("identity not derived: id=%q requestNo=%q", rec.ID, rec.RequestNo)
	}
}

func TestIngestToleratesMistypedFields(t *testing.T) {
	rec := ingestOne(t, models.RawResult{
		"projectNo":   42.0,      // number where a string belongs
		"totalAmount": "1000",    // quoted amount
		"tax":         true,      // nonsense
		"expenseType": "UNKNOWN", // not one of the three
	})

	if rec.ProjectNo != ledger.DefaultValue {
		t.Errorf("projectNo = %q, want default", rec.ProjectNo)
	}
	if rec.TotalAmount != 1000 {
		t.Errorf("totalAmount = %v, want 1000", rec.TotalAmount)
	}
	if rec.Tax != 0 {
		t.Errorf("tax = %v, want 0", rec.Tax)
	}
	if rec.ExpenseType != models.ExpenseVendor {
		t.Errorf("expenseType = %q, want AIM", rec.ExpenseType)
	}
}

func TestIngestAmountReconciliation(t *testing.T) {
	tests := []struct {
		name     string
		raw      models.RawResult
		wantExcl float64
		wantTax  float64
		wantIncl float64
	}{
		{
			name:     "no tax collapses excl to total",
			raw:      models.RawResult{"totalAmount": 1000.0, "tax": 0.0},
			wantExcl: 1000, wantTax: 0, wantIncl: 1000,
		},
		{
			name:     "excl derived from total minus tax",
			raw:      models.RawResult{"totalAmount": 1050.0, "tax": 50.0},
			wantExcl: 1000, wantTax: 50, wantIncl: 1050,
		},
		{
			name:     "extraction excl wins over derivation",
			raw:      models.RawResult{"totalAmount": 1050.0, "tax": 50.0, "amountExclTax": 999.0},
			wantExcl: 999, wantTax: 50, wantIncl: 1050,
		},
		{
			name:     "incl always mirrors total even when extraction disagrees",
			raw:      models.RawResult{"totalAmount": 500.0, "amountInclTax": 480.0},
			wantExcl: 500, wantTax: 0, wantIncl: 500,
		},
		{
			name:     "everything missing stays zero",
			raw:      models.RawResult{},
			wantExcl: 0, wantTax: 0, wantIncl: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ingestOne(t, tt.raw)
			if rec.AmountExclTax != tt.wantExcl {
				t.Errorf("amountExclTax = %v, want %v", rec.AmountExclTax, tt.wantExcl)
			}
			if rec.Tax != tt.wantTax {
				t.Errorf("tax = %v, want %v", rec.Tax, tt.wantTax)
			}
			if rec.AmountInclTax != tt.wantIncl {
				t.Errorf("amountInclTax = %v, want %v", rec.AmountInclTax, tt.wantIncl)
			}
			if rec.AmountInclTax != rec.TotalAmount {
				t.Errorf("amountInclTax %v != totalAmount %v", rec.AmountInclTax, rec.TotalAmount)
			}
		})
	}
}

func TestIngestEmployeeUnifier(t *testing.T) {
	tests := []struct {
		name       string
		raw        models.RawResult
		wantPayee  string
		wantHandle string
	}{
		{
			name:       "payee fills handler",
			raw:        models.RawResult{"expenseType": "BIM", "payee": "Chen"},
			wantPayee:  "Chen",
			wantHandle: "Chen",
		},
		{
			name:       "handler fills payee",
			raw:        models.RawResult{"expenseType": "BIM", "handledBy": "Lin"},
			wantPayee:  "Lin",
			wantHandle: "Lin",
		},
		{
			name:       "both default stays default",
			raw:        models.RawResult{"expenseType": "BIM"},
			wantPayee:  ledger.DefaultValue,
			wantHandle: ledger.DefaultValue,
		},
		{
			name:       "vendor type is a no-op",
			raw:        models.RawResult{"expenseType": "AIM", "payee": "Acme"},
			wantPayee:  "Acme",
			wantHandle: ledger.DefaultValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ingestOne(t, tt.raw)
			if rec.Payee != tt.wantPayee || rec.HandledBy != tt.wantHandle {
				t.Errorf("payee/handledBy = %q/%q, want %q/%q",
					rec.Payee, rec.HandledBy, tt.wantPayee, tt.wantHandle)
			}
		})
	}
}

func TestIngestMatchVerdict(t *testing.T) {
	tests := []struct {
		name string
		raw  models.RawResult
		want bool
	}{
		{"equal amounts", models.RawResult{"requestFormAmountDetected": 1000.0, "proofAmountDetected": 1000.0}, true},
		{"within tolerance", models.RawResult{"requestFormAmountDetected": 1000.0, "proofAmountDetected": 1000.005}, true},
		{"beyond tolerance", models.RawResult{"requestFormAmountDetected": 1000.0, "proofAmountDetected": 1001.0}, false},
		{"proof hint zero", models.RawResult{"requestFormAmountDetected": 1000.0, "proofAmountDetected": 0.0}, false},
		{"form hint absent", models.RawResult{"proofAmountDetected": 1000.0}, false},
		{"both absent", models.RawResult{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ingestOne(t, tt.raw).IsMatched; got != tt.want {
				t.Errorf("isMatched = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIngestRequestNo(t *testing.T) {
	p := newTestPipeline()
	out := p.Ingest(nil, []models.RawResult{
		{"expenseType": "BIM", "proofDate": "2024-05-01"},
		{"expenseType": "DIM"},
	})

	if got, want := out[0].RequestNo, "BIM-240501-SEQ0"; got != want {
		t.Errorf("requestNo = %q, want %q", got, want)
	}
	if got, want := out[1].RequestNo, "DIM-000000-SEQ0"; got != want {
		t.Errorf("requestNo = %q, want %q", got, want)
	}
}

func TestIngestAppendOnly(t *testing.T) {
	p := newTestPipeline()
	first := p.Ingest(nil, []models.RawResult{{"description": "a"}})

	// Re-scanning a look-alike document appends; it never deduplicates.
	second := p.Ingest(first, []models.RawResult{{"description": "a"}})
	if len(second) != 2 {
		t.Fatalf("expected 2 records after rescan, got %d", len(second))
	}
	if second[0].ID != first[0].ID {
		t.Errorf("prior record replaced: id %q -> %q", first[0].ID, second[0].ID)
	}
	if second[0].ID == second[1].ID {
		t.Error("duplicate scan reused a record id")
	}

	// The prior ledger slice is untouched.
	if len(first) != 1 {
		t.Errorf("prior ledger length changed to %d", len(first))
	}
}

func TestIngestEmptyBatch(t *testing.T) {
	p := newTestPipeline()
	prior := p.Ingest(nil, []models.RawResult{{"description": "a"}})
	out := p.Ingest(prior, nil)

	if len(out) != len(prior) {
		t.Fatalf("empty batch changed ledger length: %d -> %d", len(prior), len(out))
	}
	if out[0] != prior[0] {
		t.Error("empty batch changed ledger contents")
	}
}
