package ledger_test

import (
	"testing"

	"reqaudit/internal/ledger"
	"reqaudit/pkg/models"
)

func TestRequestNoDatePart(t *testing.T) {
	tests := []struct {
		name      string
		proofDate string
		want      string
	}{
		{"dashed full date", "2024-05-01", "AIM-240501-ABCD"},
		{"slashed full date", "2024/05/01", "AIM-240501-ABCD"},
		{"default date", "0", "AIM-000000-ABCD"},
		{"empty date", "", "AIM-000000-ABCD"},
		// Hand-edited short dates are stripped, not padded to six digits.
		{"short manual date", "5/1", "AIM-51-ABCD"},
		{"unseparated date", "240501", "AIM-0501-ABCD"},
		{"timestamp truncated to six", "2024-05-01T12:00", "AIM-240501-ABCD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := models.InvoiceRecord{
				ID:          "abcd1234",
				ExpenseType: models.ExpenseVendor,
				ProofDate:   tt.proofDate,
			}
			if got := ledger.RequestNo(rec); got != tt.want {
				t.Errorf("RequestNo(%q) = %q, want %q", tt.proofDate, got, tt.want)
			}
		})
	}
}
