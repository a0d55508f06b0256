package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractCmd = &cobra.Command{
	Use:   "extract <report.pdf>",
	Short: "Extract structured intake data from a police report PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pdf, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "read %s", args[0])
		}

		extractor := initExtractor()

		result, err := extractor.ExtractReport(cmd.Context(), pdf)
		if err != nil {
			return eris.Wrap(err, "extract report")
		}

		zap.L().Info("extraction complete",
			zap.String("file", args[0]),
			zap.String("report_number", result.ReportNumber),
			zap.Int("parties", len(result.Parties)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
