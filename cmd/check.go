package main

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/richards-law/intake-cli/pkg/clio"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify Clio connectivity and deployment configuration",
	Long:  "Runs a read-only smoke test against Clio Manage: identity, custom field definitions, practice areas, workflow stages, document templates and calendars.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client := initClio()

		failures := 0
		report := func(name string, err error, detail string) {
			if err != nil {
				failures++
				fmt.Printf("  ! %-18s %v\n", name, err)
				return
			}
			fmt.Printf("  + %-18s %s\n", name, detail)
		}

		fmt.Println()

		user, err := client.WhoAmI(ctx)
		if err != nil {
			report("who_am_i", err, "")
			fmt.Println("\n  Cannot reach Clio; skipping remaining checks.")
			return eris.New("connectivity check failed")
		}
		report("who_am_i", nil, fmt.Sprintf("%s (id=%d)", user.Name, user.ID))

		fields, err := client.CustomFields(ctx)
		report("custom_fields", err, fmt.Sprintf("%d matter fields defined", len(fields)))

		fieldMap, err := client.FieldIDMap(ctx)
		report("field_map", err, fmt.Sprintf("%d fields mapped", len(fieldMap)))

		areas, err := client.PracticeAreas(ctx)
		report("practice_areas", err, fmt.Sprintf("%d areas", len(areas)))

		checkStage(ctx, client, areas, report)

		templates, err := client.DocumentTemplates(ctx)
		report("templates", err, fmt.Sprintf("%d document templates", len(templates)))

		calendars, err := client.Calendars(ctx)
		report("calendars", err, fmt.Sprintf("%d calendars", len(calendars)))

		fmt.Println()
		if failures > 0 {
			return eris.Errorf("%d check(s) failed", failures)
		}
		fmt.Println("  All checks passed.")
		return nil
	},
}

// checkStage looks for the "Data Verified" stage the pipeline advances new
// matters to, scoped to the first practice area.
func checkStage(ctx context.Context, client clio.Client, areas []clio.PracticeArea, report func(string, error, string)) {
	var areaID int64
	for _, a := range areas {
		if a.ID != 0 {
			areaID = a.ID
			break
		}
	}
	if areaID == 0 {
		report("stage", eris.New("no practice areas to scope stage lookup"), "")
		return
	}

	stage, err := client.StageByName(ctx, "Data Verified", areaID)
	if err != nil {
		report("stage", err, "")
		return
	}
	if stage == nil {
		report("stage", eris.New(`stage "Data Verified" not found`), "")
		return
	}
	report("stage", nil, fmt.Sprintf("%q (id=%d)", stage.Name, stage.ID))
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
