package docgen

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richards-law/intake-cli/internal/config"
	"github.com/richards-law/intake-cli/internal/model"
)

var testFirm = config.FirmConfig{
	Name:    "Richards & Law",
	Address: "118-35 Queens Blvd Suite 400, Forest Hills, NY 11375",
	Phone:   "(718) 530-4040",
}

func sampleExtraction() *model.ExtractionResult {
	return &model.ExtractionResult{
		ReportNumber:        "NY-2024-001234",
		AccidentDate:        "2024-03-15",
		AccidentLocation:    "Main St and 5th Ave, Brooklyn, NY",
		AccidentDescription: "Vehicle 2 ran a red light and struck Vehicle 1.",
		Parties: []model.Party{
			{
				Role:        model.FieldValue{Value: "plaintiff"},
				FullName:    model.FieldValue{Value: "DOE, JANE"},
				Address:     "1 Main St, Brooklyn, NY",
				DateOfBirth: "1990-01-02",
				Phone:       "555-0100",
				VehicleYear: "2019",
				VehicleMake: "Honda",
				Injuries:    model.FieldValue{Value: "Neck pain"},
			},
			{
				Role:             model.FieldValue{Value: "defendant"},
				FullName:         model.FieldValue{Value: "ROE, RICHARD"},
				InsuranceCompany: model.FieldValue{Value: "Geico"},
			},
		},
	}
}

func TestStatuteDate(t *testing.T) {
	tests := []struct {
		name     string
		accident string
		years    int
		want     string
	}{
		{"plain date", "2024-03-15", 8, "2032-03-15"},
		{"leap day to leap year", "2020-02-29", 8, "2028-02-29"},
		{"february 28 carries unchanged", "2023-02-28", 8, "2031-02-28"},
		{"leap day clamps not rolls", "2024-02-29", 3, "2027-02-28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accident, err := ParseISODate(tt.accident)
			require.NoError(t, err)
			got := StatuteDate(accident, tt.years)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
			if accident.Month() == time.February {
				assert.Equal(t, time.February, got.Month(), "deadline must never slip into March")
			}
		})
	}
}

func TestFormatLongDate(t *testing.T) {
	d := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "March 5, 2024", FormatLongDate(d))
}

func TestReplacementMap(t *testing.T) {
	m := ReplacementMap(sampleExtraction(), "00042-Doe", "Dana Richards", "jane@example.com", testFirm, 8)

	assert.Equal(t, "DOE, JANE", m["<<Matter.CustomField.Plaintiff Name>>"])
	assert.Equal(t, "ROE, RICHARD", m["<<Matter.CustomField.Defendant Name>>"])
	assert.Equal(t, "Geico", m["<<Matter.CustomField.Defendant Insurance>>"])
	assert.Equal(t, "2019 Honda", m["<<Matter.CustomField.Plaintiff Vehicle>>"])
	assert.Equal(t, "March 15, 2024", m["<<Matter.CustomField.Accident Date>>"])
	assert.Equal(t, "March 15, 2032", m["<<Matter.CustomField.Statute of Limitations Date>>"])
	assert.Equal(t, "00042-Doe", m["<<Matter.DisplayNumber>>"])
	assert.Equal(t, "Dana Richards", m["<<Matter.ResponsibleAttorney.Name>>"])

	// Missing values fall back rather than leaking raw tags.
	assert.Equal(t, "N/A", m["<<Matter.CustomField.Defendant Vehicle>>"])
	assert.Equal(t, "N/A", m["<<Matter.CustomField.Defendant Policy Number>>"])
}

func TestReplacementMap_Defaults(t *testing.T) {
	ex := &model.ExtractionResult{}
	m := ReplacementMap(ex, "", "", "", testFirm, 8)

	assert.Equal(t, "N/A", m["<<Matter.DisplayNumber>>"])
	assert.Equal(t, testFirm.Name, m["<<Matter.ResponsibleAttorney.Name>>"])
	assert.Equal(t, "Unknown", m["<<Matter.CustomField.Plaintiff Name>>"])
	assert.Equal(t, "N/A", m["<<Matter.CustomField.Accident Date>>"])
	assert.Equal(t, "N/A", m["<<Matter.CustomField.Statute of Limitations Date>>"])
}

func TestFillTemplate_NoTagsLeak(t *testing.T) {
	m := ReplacementMap(sampleExtraction(), "00042-Doe", "Dana Richards", "jane@example.com", testFirm, 8)
	filled := FillTemplate(defaultTemplate, m)

	assert.NotContains(t, filled, "<<")
	assert.NotContains(t, filled, ">>")
	assert.Contains(t, filled, "DOE, JANE")
	assert.Contains(t, filled, "RETAINER AGREEMENT")
	assert.Contains(t, filled, "March 15, 2032")
}

func TestWrapLines(t *testing.T) {
	long := strings.Repeat("word ", 40)
	lines := wrapLines("short\n\n"+long, 40)

	assert.Equal(t, "short", lines[0])
	assert.Equal(t, "", lines[1])
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 40)
	}
	assert.Greater(t, len(lines), 4)
}

func TestRenderPDF(t *testing.T) {
	pdf, err := RenderPDF("RETAINER AGREEMENT\n\nThis is a test body line.\n")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))
}

func TestRenderPDF_BlankContent(t *testing.T) {
	for _, text := range []string{"", "   \n\t\n  "} {
		_, err := RenderPDF(text)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nothing to render")
	}
}

func TestGenerateLocally(t *testing.T) {
	pdf, err := GenerateLocally(sampleExtraction(), "00042-Doe", "Dana Richards", "jane@example.com", testFirm, 8, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))
}

func TestLoadTemplate_FallsBackToEmbedded(t *testing.T) {
	assert.Equal(t, defaultTemplate, LoadTemplate(""))
	assert.Equal(t, defaultTemplate, LoadTemplate("/does/not/exist.tmpl"))
}
