package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"reqaudit/internal/config"
	"reqaudit/internal/extraction"
	"reqaudit/internal/ledger"
	"reqaudit/internal/logger"
	"reqaudit/pkg/models"
)

// MaxImageSizeBytes caps a single source image at 20MB.
const MaxImageSizeBytes = 20 * 1024 * 1024

var scanCmd = &cobra.Command{
	Use:   "scan [image...]",
	Short: "Scan request form and receipt images into ledger records",
	Long: `Send one or more document images to the vision extraction model and
append the detected transactions to the ledger as canonical records.

All images given to one scan are packaged into a single extraction call so
the model can cross-reference the request form against its receipt. Upload
each form together with its supporting receipt; multiple pairs in one scan
come back as separate rows.

Ingestion is all-or-nothing: if extraction fails, records loaded with --in
are left exactly as they were.

Required environment variables:
  OPENAI_API_KEY - API key for the extraction model
  OPENAI_MODEL   - model name (optional, default gpt-4o)
  AUDIT_TOLERANCE - amount match tolerance (optional, default 0.01)`,
	Example: `  # Scan a form/receipt pair and print the records as JSON
  reqaudit scan form.jpg receipt.jpg

  # Append to records from a previous scan and save
  reqaudit scan -i ledger.json -o ledger.json batch2-*.jpg

  # Also write the 19-column workbook
  reqaudit scan form.jpg receipt.jpg -o ledger.json --xlsx audit.xlsx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringP("in", "i", "", "Existing records file to append to")
	scanCmd.Flags().StringP("output", "o", "", "Records output file (default: stdout)")
	scanCmd.Flags().String("xlsx", "", "Also export the ledger workbook to this path")
	scanCmd.Flags().Int("timeout", 120, "Extraction timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("scan")

	inPath, _ := cmd.Flags().GetString("in")
	outPath, _ := cmd.Flags().GetString("output")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	images, err := loadImages(args, log)
	if err != nil {
		return err
	}

	// Load any prior ledger before touching the network, so a bad --in
	// path fails fast instead of after a paid extraction call.
	priorRecords, err := loadPriorRecords(inPath)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	service, err := extraction.NewOpenAIService()
	if err != nil {
		if errors.Is(err, extraction.ErrMissingAPIKey) {
			log.Error().Err(err).Msg("Extraction model key not configured")
			return fmt.Errorf("missing extraction credentials. Please set OPENAI_API_KEY")
		}
		return fmt.Errorf("failed to create extraction service: %w", err)
	}

	ctx, cancel := scanContext(timeoutSecs, log)
	defer cancel()

	log.Info().
		Int("images", len(images)).
		Int("prior_records", len(priorRecords)).
		Msg("Starting scan")

	startTime := time.Now()
	raws, err := service.Scan(ctx, images)
	if err != nil {
		// No partial writes: the prior ledger is returned untouched by
		// never reaching Ingest.
		return handleScanError(err, log)
	}

	pipeline := ledger.NewPipeline(cfg.AuditTolerance)
	records := pipeline.Ingest(priorRecords, raws)
	appended := len(records) - len(priorRecords)

	log.Info().
		Int("appended", appended).
		Int("total_records", len(records)).
		Dur("duration", time.Since(startTime)).
		Msg("Scan completed")

	if appended == 0 {
		log.Warn().Msg("No transactions detected in the submitted images")
	}

	if xlsxPath != "" {
		if err := exportWorkbook(xlsxPath, records); err != nil {
			return err
		}
	}

	return writeRecords(records, outPath, log)
}

func loadPriorRecords(inPath string) ([]models.InvoiceRecord, error) {
	if inPath == "" {
		return nil, nil
	}
	return loadRecords(inPath)
}

// loadImages validates and reads every source image.
func loadImages(paths []string, log zerolog.Logger) ([]extraction.Image, error) {
	images := make([]extraction.Image, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("image file not found: %s", path)
			}
			return nil, fmt.Errorf("error accessing image file: %w", err)
		}
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("path is not a regular file: %s", path)
		}
		if info.Size() == 0 {
			return nil, fmt.Errorf("image file is empty: %s", path)
		}
		if info.Size() > MaxImageSizeBytes {
			return nil, fmt.Errorf("image file too large (%d bytes). Maximum size is %d bytes (20MB)",
				info.Size(), MaxImageSizeBytes)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read image file %s: %w", path, err)
		}

		mime := imageMIMEType(path)
		if mime == "" {
			log.Warn().
				Str("file", path).
				Msg("Unrecognized image extension, sending as image/jpeg")
			mime = "image/jpeg"
		}

		images = append(images, extraction.Image{MIMEType: mime, Data: data})
	}
	return images, nil
}

func imageMIMEType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	}
	return ""
}

// scanContext creates a context with timeout and interrupt handling.
func scanContext(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling scan")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// handleScanError maps extraction failures to user-facing messages.
func handleScanError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Scan failed; existing records are unchanged")

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("extraction timed out. Try increasing --timeout or scanning fewer images")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("scan was canceled")
	case errors.Is(err, extraction.ErrNoImages):
		return fmt.Errorf("no images were provided")
	case errors.Is(err, extraction.ErrUnparsableResponse):
		return fmt.Errorf("the extraction model returned unusable output. Re-scan with clearer photos of both the request form and the receipt")
	default:
		return fmt.Errorf("extraction failed: %w", err)
	}
}
