// Package extraction turns scanned accident-report PDFs into structured
// intake data using Claude's vision API.
package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/richards-law/intake-cli/internal/model"
)

const defaultMaxTokens = 8192

// Extractor converts a police report PDF into an ExtractionResult.
type Extractor interface {
	ExtractReport(ctx context.Context, pdf []byte) (*model.ExtractionResult, error)
}

type claudeExtractor struct {
	client    Client
	model     string
	maxTokens int64
}

// NewExtractor builds an Extractor on top of a vision Client.
func NewExtractor(client Client, modelName string, maxTokens int64) Extractor {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &claudeExtractor{
		client:    client,
		model:     modelName,
		maxTokens: maxTokens,
	}
}

// ValidatePDF checks that the bytes are a readable PDF and returns its
// page count. Relaxed validation tolerates the malformed xref tables that
// police department scanners routinely produce.
func ValidatePDF(pdf []byte) (int, error) {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	pages, err := api.PageCount(bytes.NewReader(pdf), conf)
	if err != nil {
		return 0, eris.Wrap(err, "extraction: not a readable PDF")
	}
	if pages == 0 {
		return 0, eris.New("extraction: PDF contains no pages")
	}
	return pages, nil
}

func (e *claudeExtractor) ExtractReport(ctx context.Context, pdf []byte) (*model.ExtractionResult, error) {
	pages, err := ValidatePDF(pdf)
	if err != nil {
		return nil, err
	}

	zap.L().Info("starting report extraction",
		zap.Int("bytes", len(pdf)),
		zap.Int("pages", pages),
		zap.String("model", e.model),
	)

	resp, err := e.client.ExtractDocument(ctx, DocumentRequest{
		Model:     e.model,
		MaxTokens: e.maxTokens,
		PDF:       pdf,
		Prompt:    extractionPrompt,
	})
	if err != nil {
		return nil, eris.Wrap(err, "extraction: vision request")
	}
	resp.Usage.LogCost(e.model)

	result, err := parseResult(resp.Text)
	if err != nil {
		zap.L().Error("failed to parse extraction response",
			zap.Error(err),
			zap.String("raw_prefix", prefix(resp.Text, 2000)),
		)
		return nil, err
	}

	result.ComputeMetadataStats(pages)

	meta := result.Metadata
	zap.L().Info("extraction complete",
		zap.String("report_number", result.ReportNumber),
		zap.Int("parties", len(result.Parties)),
		zap.String("form_type", meta.FormType),
		zap.Int("fields_extracted", meta.FieldsExtracted),
		zap.Int("fields_inferred", meta.FieldsInferred),
		zap.Int("fields_not_found", meta.FieldsNotFound),
		zap.Int("low_confidence", len(meta.LowConfidenceFields)),
	)
	return result, nil
}

// parseResult decodes the model's JSON answer, tolerating markdown fences.
func parseResult(text string) (*model.ExtractionResult, error) {
	cleaned := cleanJSON(text)

	var result model.ExtractionResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, eris.Wrap(err, "extraction: invalid JSON in response")
	}
	return &result, nil
}

// cleanJSON attempts to extract a JSON object from text that may contain
// markdown code fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	// Strip markdown code fences.
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	// Find first { and last }.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
