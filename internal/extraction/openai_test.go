package extraction_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"reqaudit/internal/extraction"
)

func TestParseRawResults(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantLen int
		wantErr error
	}{
		{
			name:    "plain array",
			body:    `[{"totalAmount": 1000, "description": "taxi"}]`,
			wantLen: 1,
		},
		{
			name:    "fenced json",
			body:    "```json\n[{\"totalAmount\": 1000}, {\"totalAmount\": 200}]\n```",
			wantLen: 2,
		},
		{
			name:    "empty array means zero transactions, not an error",
			body:    `[]`,
			wantLen: 0,
		},
		{
			name:    "bare object wrapped as single transaction",
			body:    `{"totalAmount": 500}`,
			wantLen: 1,
		},
		{
			name:    "prose is unparsable",
			body:    `I could not find any documents.`,
			wantErr: extraction.ErrUnparsableResponse,
		},
		{
			name:    "truncated json is unparsable",
			body:    `[{"totalAmount": 10`,
			wantErr: extraction.ErrUnparsableResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raws, err := extraction.ParseRawResults([]byte(tt.body))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(raws) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(raws), tt.wantLen)
			}
			if raws == nil {
				t.Error("parsed results should never be nil on success")
			}
		})
	}
}

func TestScanStopsRetryingAfterCancellation(t *testing.T) {
	config := extraction.DefaultScanConfig()
	config.MaxRetries = 5
	service := extraction.NewOpenAIServiceWithDeps(openai.NewClient("test-key"), config)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Scan(ctx, []extraction.Image{{MIMEType: "image/png", Data: []byte{0x89}}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	// The cancellation must come back directly, not as a retry-exhaustion
	// error after five instant failures.
	if strings.Contains(err.Error(), "attempts failed") {
		t.Errorf("retries continued after cancellation: %v", err)
	}
}

func TestParseRawResultsKeepsLooseTyping(t *testing.T) {
	raws, err := extraction.ParseRawResults([]byte(`[{"totalAmount": "1000", "projectNo": 7}]`))
	if err != nil {
		t.Fatal(err)
	}

	// Wrong types survive parsing; normalization is the ledger's job.
	if got := raws[0].Number("totalAmount"); got != 1000 {
		t.Errorf("quoted amount read as %v, want 1000", got)
	}
	if got := raws[0].String("projectNo"); got != "" {
		t.Errorf("numeric projectNo read as %q, want empty", got)
	}
}
