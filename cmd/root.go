package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"reqaudit/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "reqaudit",
	Short: "Payment-request audit CLI - scan document pairs into a reconciled ledger",
	Long: `reqaudit turns photographed payment request forms and their supporting
receipts into a clean accounting ledger.

A scan sends all selected images to a vision-capable extraction model in a
single call, normalizes the raw output into canonical ledger rows, checks
that the form-side and receipt-side amounts agree, and derives a stable
request number per row. Rows can then be edited field by field without
breaking the total/tax/excl-tax relationship, and exported through the
fixed 19-column accounting contract.`,
	Version: version,
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
