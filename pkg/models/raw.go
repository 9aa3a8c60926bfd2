package models

import "strconv"

// Audit-hint keys carried by a RawResult alongside the canonical fields.
// These are the amounts the extraction service read independently off the
// request form and the supporting receipt; they feed the match verdict and
// are not stored on the ledger row.
const (
	KeyRequestFormAmount = "requestFormAmountDetected"
	KeyProofAmount       = "proofAmountDetected"
)

// RawResult is one untrusted transaction as returned by the extraction
// service. Any entry may be absent, wrongly typed, or an empty string; the
// typed accessors below are the single place that tolerates this, so
// downstream code never touches the dynamic shape directly.
type RawResult map[string]any

// String returns the entry as a string, or "" when it is absent, empty, or
// not string-shaped.
func (r RawResult) String(key string) string {
	if v, ok := r[key]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Number returns the entry as a float64, or 0 when it cannot be read as a
// number. Numeric strings are accepted since extraction output frequently
// quotes amounts.
func (r RawResult) Number(key string) float64 {
	n, _ := r.NumberOK(key)
	return n
}

// NumberOK is Number plus a flag reporting whether the entry was actually
// present and numeric, which lets callers distinguish "extraction said 0"
// from "extraction said nothing".
func (r RawResult) NumberOK(key string) (float64, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
