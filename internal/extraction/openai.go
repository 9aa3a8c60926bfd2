package extraction

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"reqaudit/internal/logger"
	"reqaudit/pkg/models"
)

// OpenAIService implements Service with an OpenAI vision chat model.
type OpenAIService struct {
	client *openai.Client
	config ScanConfig
	log    zerolog.Logger
}

// NewOpenAIService creates the service from environment configuration.
func NewOpenAIService() (*OpenAIService, error) {
	const op = "NewOpenAIService"

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w (set OPENAI_API_KEY)", op, ErrMissingAPIKey)
	}

	config := DefaultScanConfig()
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		config.Model = model
	}

	return NewOpenAIServiceWithDeps(openai.NewClient(apiKey), config), nil
}

// NewOpenAIServiceWithDeps creates the service with explicit dependencies
func NewOpenAIServiceWithDeps(client *openai.Client, config ScanConfig) *OpenAIService {
	if config.MaxRetries < 1 {
		config.MaxRetries = 1
	}
	return &OpenAIService{
		client: client,
		config: config,
		log:    logger.WithComponent("extraction"),
	}
}

// Scan submits all images in a single request and parses the model's JSON
// transaction array. Malformed output is retried up to MaxRetries; a valid
// but empty array is returned as zero results.
func (s *OpenAIService) Scan(ctx context.Context, images []Image) ([]models.RawResult, error) {
	const op = "Scan"

	if len(images) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoImages)
	}

	parts := make([]openai.ChatMessagePart, 0, len(images)+1)
	for _, img := range images {
		mime := img.MIMEType
		if mime == "" {
			mime = "image/jpeg"
		}
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL: fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(img.Data)),
			},
		})
	}
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeText,
		Text: extractionPrompt,
	})

	s.log.Info().
		Int("images", len(images)).
		Str("model", s.config.Model).
		Msg("Submitting extraction request")

	var lastErr error
	for attempt := 1; attempt <= s.config.MaxRetries; attempt++ {
		resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       s.config.Model,
			Temperature: s.config.Temperature,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:         openai.ChatMessageRoleUser,
					MultiContent: parts,
				},
			},
			MaxTokens: 4000,
		})
		if err != nil {
			lastErr = err
			// A dead context fails every further attempt instantly, so
			// surface the cancellation instead of burning the retries.
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%s: %w", op, ctx.Err())
			}
			s.log.Warn().
				Err(err).
				Int("attempt", attempt).
				Int("max_retries", s.config.MaxRetries).
				Msg("Extraction request failed, retrying")
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = ErrEmptyResponse
			continue
		}

		content := resp.Choices[0].Message.Content
		s.log.Debug().
			Int("response_length", len(content)).
			Int("attempt", attempt).
			Msg("Received extraction response")

		raws, err := ParseRawResults([]byte(content))
		if err != nil {
			lastErr = err
			s.log.Warn().
				Err(err).
				Int("attempt", attempt).
				Msg("Failed to parse extraction response, retrying")
			continue
		}

		s.log.Info().
			Int("transactions", len(raws)).
			Int("attempt", attempt).
			Msg("Extraction completed")
		return raws, nil
	}

	return nil, fmt.Errorf("%s: all %d attempts failed, last error: %w", op, s.config.MaxRetries, lastErr)
}

// ParseRawResults reads a model response body into raw transaction field
// sets. Markdown code fences around the JSON are tolerated since vision
// models add them even when told not to. A valid empty array yields an
// empty, non-nil slice.
func ParseRawResults(body []byte) ([]models.RawResult, error) {
	text := strings.TrimSpace(string(body))
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if i := strings.LastIndex(text, "```"); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
	}

	var raws []models.RawResult
	if err := json.Unmarshal([]byte(text), &raws); err != nil {
		// Some models wrap single transactions in a bare object.
		var single models.RawResult
		if objErr := json.Unmarshal([]byte(text), &single); objErr == nil {
			return []models.RawResult{single}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
	}
	if raws == nil {
		raws = []models.RawResult{}
	}
	return raws, nil
}

const systemPrompt = `You are a professional accounting assistant auditing payment requests.
Each submission contains a payment request form and its supporting receipt or invoice,
photographed together. Extract one JSON object per transaction.

Rules:
1. If data is missing, use 0 for numbers or an empty string for text.
2. For 'BIM' (employee reimbursement) requests, 'payee' and 'handledBy' are usually the same person.
3. TAX LOGIC: if tax information is not clearly separable or cannot be claimed, set 'tax' to 0 and 'amountExclTax' equal to 'totalAmount'.
4. 'amountInclTax' should equal 'totalAmount'.
5. If multiple document pairs are present, group them by transaction.
6. 'requestFormAmountDetected' is the amount as printed on the request form; 'proofAmountDetected' is the amount as printed on the receipt. Read each strictly from its own document; never copy one onto the other.

Return ONLY a valid JSON array with NO text before or after and NO trailing commas.`

const extractionPrompt = `Extract every transaction from the attached documents into a JSON array.
Each element uses these fields:
{
  "expenseType": "AIM (vendor), BIM (employee), or DIM (outsource)",
  "projectNo": "project number",
  "projectName": "project name",
  "customer": "customer name",
  "bankCode": "3-digit bank code",
  "bankAccount": "payee bank account",
  "totalAmount": 0,
  "payee": "payee name",
  "description": "what the expense was for",
  "handledBy": "handler name",
  "proofDate": "YYYY-MM-DD",
  "invoiceNo": "invoice number",
  "sellerTaxId": "8-digit seller tax ID",
  "amountExclTax": 0,
  "tax": 0,
  "amountInclTax": 0,
  "subject": "accounting subject",
  "paperReceivedDate": "YYYY-MM-DD",
  "paymentDate": "YYYY-MM-DD",
  "requestFormAmountDetected": 0,
  "proofAmountDetected": 0
}`
