package ledger

import (
	"math"

	"reqaudit/pkg/models"
)

// DefaultTolerance is the maximum absolute difference under which the
// form-side and receipt-side amounts count as the same figure. One policy
// value per deployment; override through Pipeline.Tolerance.
const DefaultTolerance = 0.01

// Matched compares the two audit-hint amounts detected off the request
// form and the receipt. Both must be present and positive: a missing or
// zero hint means the pair is unverifiable and needs human review, which
// is reported as false rather than as a pass.
func Matched(raw models.RawResult, tolerance float64) bool {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	requestAmt := raw.Number(models.KeyRequestFormAmount)
	proofAmt := raw.Number(models.KeyProofAmount)
	return requestAmt > 0 && proofAmt > 0 && math.Abs(requestAmt-proofAmt) < tolerance
}
