// Package extraction calls the external vision-capable model that reads a
// payment request form and its supporting receipt. The service returns raw,
// untrusted field sets; all normalization happens in the ledger engine.
//
// Required Environment Variables:
//   - OPENAI_API_KEY: API key for the vision model
//   - OPENAI_MODEL: model name (optional, defaults to gpt-4o)
//
// One scan call covers every image the user selected together, so the
// model can cross-reference the form amount against the receipt amount
// within the same invocation and group multiple document pairs into
// separate transactions.
package extraction

import (
	"context"

	"reqaudit/pkg/models"
)

// Image is one source document photo handed to the extraction service.
type Image struct {
	// MIMEType is the image content type, e.g. "image/jpeg".
	MIMEType string

	// Data is the raw image bytes.
	Data []byte
}

// Service defines the extraction boundary. Implementations must treat a
// zero-transaction response as a valid outcome, not an error.
type Service interface {
	// Scan submits all images as one extraction request and returns one
	// raw result per detected transaction.
	Scan(ctx context.Context, images []Image) ([]models.RawResult, error)
}

// ScanConfig configures the extraction service.
type ScanConfig struct {
	Model       string  // vision-capable chat model
	MaxRetries  int     // attempts before giving up on malformed output
	Temperature float32 // sampling temperature, low for extraction
}

// DefaultScanConfig returns the extraction defaults.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Model:       "gpt-4o",
		MaxRetries:  3,
		Temperature: 0.1,
	}
}
