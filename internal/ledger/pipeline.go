package ledger

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"reqaudit/internal/logger"
	"reqaudit/pkg/models"
)

// Pipeline turns batches of raw extraction results into canonical records
// and appends them to a ledger. Ingestion is append-only: it never
// replaces or deduplicates earlier rows, even when a later scan
// re-describes the same physical document — duplicates are a review
// concern, not a pipeline defect.
type Pipeline struct {
	// Tolerance for the audit match verdict; <= 0 selects
	// DefaultTolerance.
	Tolerance float64

	// NewID supplies record identifiers. Defaults to random UUIDs;
	// tests substitute a deterministic source.
	NewID func() string

	log zerolog.Logger
}

// NewPipeline returns a Pipeline with the given audit tolerance.
func NewPipeline(tolerance float64) *Pipeline {
	return &Pipeline{
		Tolerance: tolerance,
		NewID:     uuid.NewString,
		log:       logger.WithComponent("ledger-pipeline"),
	}
}

// Ingest normalizes each raw result and appends the canonical records to
// prior, returning a new ledger. prior is never modified; an empty batch
// returns it unchanged. The stage order is fixed: defaults, then the
// employee unifier (so a corrected name pair cannot affect tax math),
// then amount reconciliation, then the request number (so the code sees
// the normalized date), then the match verdict.
func (p *Pipeline) Ingest(prior []models.InvoiceRecord, raws []models.RawResult) []models.InvoiceRecord {
	if len(raws) == 0 {
		return prior
	}

	out := make([]models.InvoiceRecord, len(prior), len(prior)+len(raws))
	copy(out, prior)

	for _, raw := range raws {
		rec := Resolve(raw)
		rec.ID = p.newID()
		UnifyEmployee(&rec)
		reconcileIngestAmounts(&rec, raw)
		rec.RequestNo = RequestNo(rec)
		rec.IsMatched = Matched(raw, p.Tolerance)

		p.log.Debug().
			Str("id", rec.ID).
			Str("request_no", rec.RequestNo).
			Float64("total_amount", rec.TotalAmount).
			Bool("matched", rec.IsMatched).
			Msg("Ingested record")

		out = append(out, rec)
	}

	return out
}

func (p *Pipeline) newID() string {
	if p.NewID != nil {
		return p.NewID()
	}
	return uuid.NewString()
}
