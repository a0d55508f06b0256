package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/richards-law/intake-cli/internal/model"
	"github.com/richards-law/intake-cli/pkg/clio"
)

func fullFieldMap() map[string]int64 {
	names := []string{
		"Accident Date", "Accident Location", "Accident Description",
		"Police Report Number", "Weather Conditions", "Reporting Officer",
		"Plaintiff Name", "Plaintiff Address", "Plaintiff DOB",
		"Plaintiff Phone", "Plaintiff Vehicle", "Injuries Reported",
		"Defendant Name", "Defendant Address", "Defendant Insurance",
		"Defendant Policy Number", "Defendant Vehicle",
		"Statute of Limitations Date",
	}
	m := make(map[string]int64, len(names))
	for i, n := range names {
		m[n] = int64(i + 1)
	}
	return m
}

func valueByID(values []clio.CustomFieldValue, id int64) (string, bool) {
	for _, v := range values {
		if v.CustomField.ID == id {
			return v.Value, true
		}
	}
	return "", false
}

func TestBuildFieldValues(t *testing.T) {
	ex := testExtraction()
	ex.WeatherConditions = "Clear"
	ex.ReportingOfficerName = "SGT SMITH"
	ex.ReportingOfficerBadge = "4521"
	ex.Parties[0].VehicleYear = "2019"
	ex.Parties[0].VehicleMake = "Honda"
	ex.Parties[0].VehicleModel = "Civic"
	ex.Parties[1].InsuranceCompany = model.FieldValue{Value: "Geico"}

	fm := fullFieldMap()
	plaintiff := ex.PartyByRole(model.RolePlaintiff)
	defendant := ex.PartyByRole(model.RoleDefendant)

	values := BuildFieldValues(ex, fm, plaintiff, defendant, "2032-03-15")

	got, ok := valueByID(values, fm["Reporting Officer"])
	assert.True(t, ok)
	assert.Equal(t, "SGT SMITH (Badge #4521)", got)

	got, _ = valueByID(values, fm["Plaintiff Vehicle"])
	assert.Equal(t, "2019 Honda Civic", got)

	got, _ = valueByID(values, fm["Defendant Insurance"])
	assert.Equal(t, "Geico", got)

	got, _ = valueByID(values, fm["Statute of Limitations Date"])
	assert.Equal(t, "2032-03-15", got)

	// Empty values are never emitted.
	_, ok = valueByID(values, fm["Plaintiff DOB"])
	assert.False(t, ok)
	_, ok = valueByID(values, fm["Defendant Vehicle"])
	assert.False(t, ok)
}

func TestBuildFieldValues_UnknownFieldsSkipped(t *testing.T) {
	ex := testExtraction()
	fm := map[string]int64{"Accident Date": 1}

	values := BuildFieldValues(ex, fm, ex.PartyByRole(model.RolePlaintiff), nil, "2032-03-15")

	assert.Len(t, values, 1)
	assert.Equal(t, int64(1), values[0].CustomField.ID)
	assert.Equal(t, "2024-03-15", values[0].Value)
}

func TestBuildFieldValues_NilParties(t *testing.T) {
	ex := &model.ExtractionResult{AccidentDate: "2024-03-15"}
	values := BuildFieldValues(ex, fullFieldMap(), nil, nil, "")

	assert.Len(t, values, 1)
}

func TestBuildFieldValues_BadgeWithoutName(t *testing.T) {
	ex := &model.ExtractionResult{ReportingOfficerBadge: "4521"}
	fm := fullFieldMap()

	values := BuildFieldValues(ex, fm, nil, nil, "")
	got, ok := valueByID(values, fm["Reporting Officer"])
	assert.True(t, ok)
	assert.Equal(t, "(Badge #4521)", got)
}
