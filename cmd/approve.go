package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/richards-law/intake-cli/internal/model"
)

var approveMatterID int64

var approveCmd = &cobra.Command{
	Use:   "approve <extraction.json>",
	Short: "Run the approval pipeline for a verified extraction",
	Long:  "Reads an extraction result from a JSON file (as produced by extract) and pushes it through the full Clio pipeline: contact, matter, custom fields, stage, retainer, calendar deadline, client email.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "read %s", args[0])
		}

		var ex model.ExtractionResult
		if err := json.Unmarshal(data, &ex); err != nil {
			return eris.Wrap(err, "parse extraction JSON")
		}

		p := initPipeline(initClio())
		result := p.Run(cmd.Context(), &ex, approveMatterID)

		printResult(os.Stdout, result)

		if !result.Success {
			return eris.New("pipeline completed with errors")
		}
		return nil
	},
}

func printResult(w io.Writer, result *model.PipelineResult) {
	fmt.Fprintln(w)
	for i, s := range result.Steps {
		marker := " "
		switch s.Status {
		case model.StepSuccess:
			marker = "+"
		case model.StepSkipped:
			marker = "-"
		case model.StepError:
			marker = "!"
		}
		fmt.Fprintf(w, "  %s %d/%d %-22s %-8s %s\n", marker, i+1, len(result.Steps), s.Name, s.Status, s.Detail)
	}
	fmt.Fprintln(w)

	if result.MatterID != 0 {
		fmt.Fprintf(w, "  Matter: %s\n", result.MatterURL)
	}
	if result.Success {
		fmt.Fprintln(w, "  Pipeline completed successfully.")
	} else {
		fmt.Fprintln(w, "  Pipeline completed with errors.")
	}
}

func init() {
	approveCmd.Flags().Int64Var(&approveMatterID, "matter", 0, "update an existing matter instead of creating one")
	rootCmd.AddCommand(approveCmd)
}
