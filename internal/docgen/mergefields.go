package docgen

import (
	"strings"
	"time"

	"github.com/richards-law/intake-cli/internal/config"
	"github.com/richards-law/intake-cli/internal/model"
)

// notAvailable fills tags whose source data is missing so no raw merge
// tag ever reaches a signed document.
const notAvailable = "N/A"

// ReplacementMap builds the merge-tag substitution table for a retainer
// agreement. Tag names follow the case-management system's document
// template conventions so the same template works for both the hosted
// and the local generation path.
func ReplacementMap(
	ex *model.ExtractionResult,
	displayNumber string,
	attorneyName string,
	clientEmail string,
	firm config.FirmConfig,
	statuteYears int,
) map[string]string {
	plaintiff := ex.PartyByRole(model.RolePlaintiff)
	defendant := ex.PartyByRole(model.RoleDefendant)

	accidentDate := ex.AccidentDate
	statuteDate := ""
	if t, err := ParseISODate(ex.AccidentDate); err == nil {
		accidentDate = FormatLongDate(t)
		statuteDate = FormatLongDate(StatuteDate(t, statuteYears))
	}

	if attorneyName == "" {
		attorneyName = firm.Name
	}
	if displayNumber == "" {
		displayNumber = notAvailable
	}

	m := make(map[string]string, 24)
	m["<<Today>>"] = FormatLongDate(time.Now())
	m["<<Firm.Name>>"] = firm.Name
	m["<<Firm.Address>>"] = firm.Address
	m["<<Firm.Phone>>"] = firm.Phone
	m["<<Matter.ResponsibleAttorney.Name>>"] = attorneyName
	m["<<Matter.DisplayNumber>>"] = displayNumber
	m["<<Matter.Client.Email>>"] = orNA(clientEmail)

	m["<<Matter.CustomField.Plaintiff Name>>"] = plaintiff.DisplayName()
	m["<<Matter.CustomField.Plaintiff Address>>"] = partyField(plaintiff, func(p *model.Party) string { return p.Address })
	m["<<Matter.CustomField.Plaintiff DOB>>"] = partyField(plaintiff, func(p *model.Party) string { return p.DateOfBirth })
	m["<<Matter.CustomField.Plaintiff Phone>>"] = partyField(plaintiff, func(p *model.Party) string { return p.Phone })
	m["<<Matter.CustomField.Plaintiff Vehicle>>"] = orNA(plaintiff.VehicleDescription())
	m["<<Matter.CustomField.Injuries Reported>>"] = partyField(plaintiff, func(p *model.Party) string { return p.Injuries.Value })

	m["<<Matter.CustomField.Defendant Name>>"] = defendant.DisplayName()
	m["<<Matter.CustomField.Defendant Address>>"] = partyField(defendant, func(p *model.Party) string { return p.Address })
	m["<<Matter.CustomField.Defendant Insurance>>"] = partyField(defendant, func(p *model.Party) string { return p.InsuranceCompany.Value })
	m["<<Matter.CustomField.Defendant Policy Number>>"] = partyField(defendant, func(p *model.Party) string { return p.InsurancePolicyNumber.Value })
	m["<<Matter.CustomField.Defendant Vehicle>>"] = orNA(defendant.VehicleDescription())

	m["<<Matter.CustomField.Accident Date>>"] = orNA(accidentDate)
	m["<<Matter.CustomField.Accident Location>>"] = orNA(ex.AccidentLocation)
	m["<<Matter.CustomField.Accident Description>>"] = orNA(ex.AccidentDescription)
	m["<<Matter.CustomField.Police Report Number>>"] = orNA(ex.ReportNumber)

	m["<<Matter.CustomField.Statute of Limitations Date>>"] = orNA(statuteDate)
	return m
}

// FillTemplate applies a replacement map to template text.
func FillTemplate(tmpl string, replacements map[string]string) string {
	pairs := make([]string, 0, len(replacements)*2)
	for tag, value := range replacements {
		pairs = append(pairs, tag, value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func partyField(p *model.Party, get func(*model.Party) string) string {
	if p == nil {
		return notAvailable
	}
	return orNA(get(p))
}
