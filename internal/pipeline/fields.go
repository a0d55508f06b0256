package pipeline

import (
	"fmt"
	"strings"

	"github.com/richards-law/intake-cli/internal/model"
	"github.com/richards-law/intake-cli/pkg/clio"
)

// BuildFieldValues maps extraction data onto the deployment's custom field
// definitions. A field is emitted only when it exists in the field map AND
// the extracted value is non-empty; unknown fields are silently skipped so
// the same build works against differently configured deployments.
func BuildFieldValues(
	ex *model.ExtractionResult,
	fieldMap map[string]int64,
	plaintiff, defendant *model.Party,
	statuteDate string,
) []clio.CustomFieldValue {
	var values []clio.CustomFieldValue

	add := func(name, value string) {
		id, ok := fieldMap[name]
		if !ok || value == "" {
			return
		}
		values = append(values, clio.CustomFieldValue{
			CustomField: clio.CustomFieldRef{ID: id},
			Value:       value,
		})
	}

	add("Accident Date", ex.AccidentDate)
	add("Accident Location", ex.AccidentLocation)
	add("Accident Description", ex.AccidentDescription)
	add("Police Report Number", ex.ReportNumber)
	add("Weather Conditions", ex.WeatherConditions)

	officer := ex.ReportingOfficerName
	if ex.ReportingOfficerBadge != "" {
		officer = strings.TrimSpace(fmt.Sprintf("%s (Badge #%s)", officer, ex.ReportingOfficerBadge))
	}
	add("Reporting Officer", officer)

	if plaintiff != nil {
		add("Plaintiff Name", plaintiff.DisplayName())
		add("Plaintiff Address", plaintiff.Address)
		add("Plaintiff DOB", plaintiff.DateOfBirth)
		add("Plaintiff Phone", plaintiff.Phone)
		add("Plaintiff Vehicle", plaintiff.VehicleDescription())
		add("Injuries Reported", plaintiff.Injuries.Value)
	}

	if defendant != nil {
		add("Defendant Name", defendant.DisplayName())
		add("Defendant Address", defendant.Address)
		add("Defendant Insurance", defendant.InsuranceCompany.Value)
		add("Defendant Policy Number", defendant.InsurancePolicyNumber.Value)
		add("Defendant Vehicle", defendant.VehicleDescription())
	}

	add("Statute of Limitations Date", statuteDate)

	return values
}
