package model

import (
	"fmt"
	"strings"
)

// Confidence grades how certain the extraction model was about a value.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Source records where an extracted value came from.
type Source string

const (
	SourceExplicit Source = "explicit"  // Read directly off the form
	SourceInferred Source = "inferred"  // Deduced from narrative/context
	SourceNotFound Source = "not_found" // Absent from the report
)

// FieldValue is a single extracted field with confidence metadata.
// Note is only populated when confidence is medium or low. A not_found
// source implies an empty Value and does not itself lower confidence.
type FieldValue struct {
	Value      string     `json:"value,omitempty"`
	Confidence Confidence `json:"confidence,omitempty"`
	Source     Source     `json:"source,omitempty"`
	Note       string     `json:"note,omitempty"`
}

// PartyRole classifies a party's position in the accident.
type PartyRole string

const (
	RolePlaintiff PartyRole = "plaintiff"
	RoleDefendant PartyRole = "defendant"
	RoleWitness   PartyRole = "witness"
	RoleOther     PartyRole = "other"
)

// Occupant is a non-driver associated with one of the vehicles.
type Occupant struct {
	FullName      string `json:"full_name,omitempty"`
	VehicleNumber int    `json:"vehicle_number,omitempty"`
	Role          string `json:"role,omitempty"` // driver, passenger, pedestrian, other
	Injuries      string `json:"injuries,omitempty"`
}

// Party holds everything extracted about one party to the accident.
// Fields that are routinely ambiguous on police reports carry confidence
// metadata; the rest are plain values that are either present or not.
type Party struct {
	Role                  FieldValue `json:"role"`
	FullName              FieldValue `json:"full_name"`
	VehicleColor          FieldValue `json:"vehicle_color"`
	InsuranceCompany      FieldValue `json:"insurance_company"`
	InsurancePolicyNumber FieldValue `json:"insurance_policy_number"`
	Injuries              FieldValue `json:"injuries"`

	Address        string `json:"address,omitempty"`
	DateOfBirth    string `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	Phone          string `json:"phone,omitempty"`
	DriverLicense  string `json:"driver_license,omitempty"`
	VehicleYear    string `json:"vehicle_year,omitempty"`
	VehicleMake    string `json:"vehicle_make,omitempty"`
	VehicleModel   string `json:"vehicle_model,omitempty"`
	CitationIssued string `json:"citation_issued,omitempty"`

	VehicleNumber int        `json:"vehicle_number,omitempty"` // Which vehicle section (1, 2, 3) on the form
	Occupants     []Occupant `json:"occupants,omitempty"`
}

// DisplayName returns the party's name, or "Unknown" when the extraction
// found none.
func (p *Party) DisplayName() string {
	if p == nil || p.FullName.Value == "" {
		return "Unknown"
	}
	return p.FullName.Value
}

// VehicleDescription builds a "Year Make Model" string, omitting blanks.
func (p *Party) VehicleDescription() string {
	if p == nil {
		return ""
	}
	var parts []string
	for _, s := range []string{p.VehicleYear, p.VehicleMake, p.VehicleModel} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// ExtractionMetadata describes the extraction process and its quality.
type ExtractionMetadata struct {
	FormType            string   `json:"form_type,omitempty"` // e.g. "MV-104", "MV-104A"
	TotalPages          int      `json:"total_pages"`
	FieldsExtracted     int      `json:"fields_extracted"`
	FieldsInferred      int      `json:"fields_inferred"`
	FieldsNotFound      int      `json:"fields_not_found"`
	LowConfidenceFields []string `json:"low_confidence_fields,omitempty"`
	IsAmended           bool     `json:"is_amended"`
	ReviewDate          string   `json:"review_date,omitempty"`
	FilingInfo          string   `json:"filing_info,omitempty"`
}

// ExtractionResult is the structured record pulled from a scanned accident
// report. It is immutable input to the approval pipeline.
type ExtractionResult struct {
	ReportNumber          string             `json:"report_number,omitempty"`
	AccidentDate          string             `json:"accident_date,omitempty"` // YYYY-MM-DD
	AccidentTime          string             `json:"accident_time,omitempty"` // HH:MM
	AccidentLocation      string             `json:"accident_location,omitempty"`
	AccidentDescription   string             `json:"accident_description,omitempty"`
	WeatherConditions     string             `json:"weather_conditions,omitempty"`
	RoadConditions        string             `json:"road_conditions,omitempty"`
	NumberOfVehicles      int                `json:"number_of_vehicles,omitempty"`
	ReportingOfficerName  string             `json:"reporting_officer_name,omitempty"`
	ReportingOfficerBadge string             `json:"reporting_officer_badge,omitempty"`
	Parties               []Party            `json:"parties"`
	Metadata              ExtractionMetadata `json:"extraction_metadata"`
}

// PartyByRole returns the first party whose role matches, or nil.
func (e *ExtractionResult) PartyByRole(role PartyRole) *Party {
	for i := range e.Parties {
		if PartyRole(e.Parties[i].Role.Value) == role {
			return &e.Parties[i]
		}
	}
	return nil
}

// taggedFields lists the confidence-tracked fields on a Party, in form order.
func (p *Party) taggedFields() []struct {
	Name string
	FieldValue
} {
	return []struct {
		Name string
		FieldValue
	}{
		{"role", p.Role},
		{"full_name", p.FullName},
		{"vehicle_color", p.VehicleColor},
		{"insurance_company", p.InsuranceCompany},
		{"insurance_policy_number", p.InsurancePolicyNumber},
		{"injuries", p.Injuries},
	}
}

// ConfidenceNotes builds a human-readable summary of everything the
// extraction was unsure about, for the review UI.
func (e *ExtractionResult) ConfidenceNotes() string {
	var notes []string

	if len(e.Metadata.LowConfidenceFields) > 0 {
		notes = append(notes, fmt.Sprintf("Low confidence on: %s.",
			strings.Join(e.Metadata.LowConfidenceFields, ", ")))
	}
	if e.Metadata.FieldsInferred > 0 {
		notes = append(notes, fmt.Sprintf("%d field(s) were inferred from context.", e.Metadata.FieldsInferred))
	}

	for i := range e.Parties {
		p := &e.Parties[i]
		for _, tf := range p.taggedFields() {
			if tf.Note == "" {
				continue
			}
			label := fmt.Sprintf("Party %d", i+1)
			if p.FullName.Value != "" {
				label = p.FullName.Value
			}
			notes = append(notes, fmt.Sprintf("%s, %s: %s", label, tf.Name, tf.Note))
		}
	}

	if e.Metadata.FilingInfo != "" {
		notes = append(notes, "Filing info: "+e.Metadata.FilingInfo)
	}
	if e.Metadata.IsAmended {
		notes = append(notes, "This is an AMENDED report.")
	}

	return strings.Join(notes, " | ")
}

// ComputeMetadataStats tallies extracted/inferred/not-found counts and
// collects the low-confidence field names. Called once after extraction.
func (e *ExtractionResult) ComputeMetadataStats(totalPages int) {
	m := &e.Metadata
	m.TotalPages = totalPages

	var extracted, inferred, notFound int
	var lowConfidence []string

	countPlain := func(values ...string) {
		for _, v := range values {
			if v != "" {
				extracted++
			} else {
				notFound++
			}
		}
	}

	countPlain(
		e.ReportNumber, e.AccidentDate, e.AccidentTime, e.AccidentLocation,
		e.AccidentDescription, e.WeatherConditions, e.RoadConditions,
		e.ReportingOfficerName, e.ReportingOfficerBadge,
	)
	if e.NumberOfVehicles > 0 {
		extracted++
	} else {
		notFound++
	}

	for i := range e.Parties {
		p := &e.Parties[i]
		label := p.FullName.Value
		if label == "" {
			label = fmt.Sprintf("party_%d", i+1)
		}

		for _, tf := range p.taggedFields() {
			switch tf.Source {
			case SourceNotFound:
				notFound++
			case SourceInferred:
				inferred++
				extracted++
			default:
				if tf.Value != "" {
					extracted++
				} else {
					notFound++
				}
			}
			if tf.Confidence == ConfidenceLow || tf.Confidence == ConfidenceMedium {
				lowConfidence = append(lowConfidence, label+"."+tf.Name)
			}
		}

		countPlain(
			p.Address, p.DateOfBirth, p.Phone, p.DriverLicense,
			p.VehicleYear, p.VehicleMake, p.VehicleModel, p.CitationIssued,
		)
	}

	m.FieldsExtracted = extracted
	m.FieldsInferred = inferred
	m.FieldsNotFound = notFound
	m.LowConfidenceFields = lowConfidence
}
