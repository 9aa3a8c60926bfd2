package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"reqaudit/pkg/models"
)

// loadRecords reads a ledger snapshot written by a previous scan or edit.
func loadRecords(path string) ([]models.InvoiceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records file %s: %w", path, err)
	}

	var records []models.InvoiceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse records file %s: %w", path, err)
	}
	return records, nil
}

// writeRecords writes the ledger as pretty-printed JSON to path, or to
// stdout when path is empty.
func writeRecords(records []models.InvoiceRecord, path string, log zerolog.Logger) error {
	jsonData, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to create JSON output: %w", err)
	}

	if path == "" {
		if _, err := os.Stdout.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Println()
		return nil
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write records file: %w", err)
	}

	log.Info().
		Str("output_file", path).
		Int("records", len(records)).
		Msg("Ledger records written")
	return nil
}
