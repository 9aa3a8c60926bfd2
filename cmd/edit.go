package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"reqaudit/internal/ledger"
	"reqaudit/internal/logger"
	"reqaudit/pkg/models"
)

var editCmd = &cobra.Command{
	Use:   "edit [records-file]",
	Short: "Apply a single-field edit or a deletion to the ledger",
	Long: `Edit one field of one record, or delete a record, in a records file
written by scan.

Edits keep the record internally consistent: changing totalAmount, tax, or
amountExclTax recomputes exactly the dependent amount, and changing
expenseType or proofDate regenerates the request number. No other field is
ever touched by an edit.

Editing an id that is not in the file is a no-op, not an error, so stale
edits against a deleted row are harmless. Non-numeric input for an amount
field is coerced to 0.`,
	Example: `  # Fill in the tax the extraction could not separate
  reqaudit edit ledger.json --id a1b2c3d --field tax --value 50

  # Correct a payee name
  reqaudit edit ledger.json --id a1b2c3d --field payee --value "Wang"

  # Remove a row
  reqaudit edit ledger.json --delete a1b2c3d`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().String("id", "", "Record id to edit")
	editCmd.Flags().String("field", "", "Field name to change (record JSON key)")
	editCmd.Flags().String("value", "", "New field value")
	editCmd.Flags().String("delete", "", "Record id to delete instead of editing")
	editCmd.Flags().Bool("clear", false, "Remove every record from the ledger")
	editCmd.Flags().StringP("output", "o", "", "Output file (default: overwrite the input file)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("edit")

	recordsPath := args[0]
	id, _ := cmd.Flags().GetString("id")
	fieldName, _ := cmd.Flags().GetString("field")
	value, _ := cmd.Flags().GetString("value")
	deleteID, _ := cmd.Flags().GetString("delete")
	clearAll, _ := cmd.Flags().GetBool("clear")
	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		outPath = recordsPath
	}

	records, err := loadRecords(recordsPath)
	if err != nil {
		return err
	}

	switch {
	case clearAll:
		records = []models.InvoiceRecord{}
		log.Info().Msg("Ledger cleared")

	case deleteID != "":
		records = ledger.Delete(records, deleteID)
		log.Info().
			Str("id", deleteID).
			Int("records", len(records)).
			Msg("Record deleted")

	case id != "" && fieldName != "":
		field := ledger.Field(fieldName)
		records = ledger.Update(records, id, field, coerceValue(field, value))
		log.Info().
			Str("id", id).
			Str("field", fieldName).
			Msg("Record updated")

	default:
		return fmt.Errorf("specify --clear, --delete <id>, or --id with --field and --value")
	}

	return writeRecords(records, outPath, log)
}

// coerceValue converts the flag text into the type the engine expects for
// the field. The engine itself assumes well-typed numeric input, so amount
// text that does not parse becomes 0 here at the boundary.
func coerceValue(field ledger.Field, value string) any {
	if !field.Amount() {
		return value
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0.0
	}
	return n
}
