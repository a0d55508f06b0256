// Package docgen fills retainer agreement merge fields and renders the
// result to PDF when the hosted document pipeline cannot deliver one.
package docgen

import (
	_ "embed"
	"os"

	"go.uber.org/zap"

	"github.com/richards-law/intake-cli/internal/config"
	"github.com/richards-law/intake-cli/internal/model"
)

//go:embed retainer_agreement.tmpl
var defaultTemplate string

// LoadTemplate reads the retainer template from disk, falling back to the
// embedded default when the path is unset or unreadable.
func LoadTemplate(path string) string {
	if path == "" {
		return defaultTemplate
	}
	data, err := os.ReadFile(path)
	if err != nil {
		zap.L().Warn("retainer template not readable, using embedded default",
			zap.String("path", path),
			zap.Error(err),
		)
		return defaultTemplate
	}
	return string(data)
}

// GenerateLocally fills the retainer template from extraction data and
// renders it to PDF bytes.
func GenerateLocally(
	ex *model.ExtractionResult,
	displayNumber string,
	attorneyName string,
	clientEmail string,
	firm config.FirmConfig,
	statuteYears int,
	templatePath string,
) ([]byte, error) {
	replacements := ReplacementMap(ex, displayNumber, attorneyName, clientEmail, firm, statuteYears)
	filled := FillTemplate(LoadTemplate(templatePath), replacements)

	pdf, err := RenderPDF(filled)
	if err != nil {
		return nil, err
	}

	zap.L().Info("generated retainer locally",
		zap.String("display_number", displayNumber),
		zap.Int("bytes", len(pdf)),
	)
	return pdf, nil
}
