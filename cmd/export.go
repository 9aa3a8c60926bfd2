package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"reqaudit/internal/export"
	"reqaudit/internal/logger"
	"reqaudit/pkg/models"
)

var exportCmd = &cobra.Command{
	Use:   "export [records-file]",
	Short: "Export ledger records through the 19-column accounting contract",
	Long: `Write the records as an xlsx workbook with the fixed 19-column layout
finance tooling imports by position, or as a tab-separated block that
pastes directly into a spreadsheet.`,
	Example: `  # Write invoice_audit_<date>.xlsx
  reqaudit export ledger.json

  # Choose the workbook path
  reqaudit export ledger.json -o q3-audit.xlsx

  # Print the tab-separated block instead
  reqaudit export ledger.json --tsv`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "Workbook output path (default: invoice_audit_<date>.xlsx)")
	exportCmd.Flags().Bool("tsv", false, "Print tab-separated rows to stdout instead of writing a workbook")
}

func runExport(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("output")
	asTSV, _ := cmd.Flags().GetBool("tsv")

	records, err := loadRecords(args[0])
	if err != nil {
		return err
	}

	if asTSV {
		fmt.Println(export.TSV(records))
		return nil
	}

	if outPath == "" {
		outPath = fmt.Sprintf("invoice_audit_%s.xlsx", time.Now().Format("2006-01-02"))
	}
	return exportWorkbook(outPath, records)
}

func exportWorkbook(path string, records []models.InvoiceRecord) error {
	log := logger.WithComponent("export")

	if err := export.WriteXLSX(path, records); err != nil {
		log.Error().
			Err(err).
			Str("file", path).
			Msg("Workbook export failed")
		return err
	}
	return nil
}
