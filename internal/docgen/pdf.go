package docgen

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rotisserie/eris"
)

// Letter-size page geometry, one text primitive per line.
const (
	pdfLeftX     = 72.0
	pdfTopY      = 720.0
	pdfLeading   = 13.0
	linesPerPage = 48
	maxLineChars = 92
	pdfFontName  = "Helvetica"
	pdfFontSize  = 10
)

// RenderPDF lays filled agreement text onto Letter pages and renders them
// through pdfcpu's create-from-JSON path, so the local fallback produces a
// real PDF without any external converter.
func RenderPDF(text string) ([]byte, error) {
	lines := wrapLines(text, maxLineChars)
	if !hasText(lines) {
		return nil, eris.New("docgen: nothing to render")
	}

	pages := map[string]any{}
	for pageNo := 1; len(lines) > 0; pageNo++ {
		n := min(linesPerPage, len(lines))
		pages[strconv.Itoa(pageNo)] = pageDescriptor(lines[:n])
		lines = lines[n:]
	}

	descriptor, err := json.Marshal(map[string]any{
		"paper": "Letter",
		"pages": pages,
	})
	if err != nil {
		return nil, eris.Wrap(err, "docgen: marshal page descriptor")
	}

	conf := pdfmodel.NewDefaultConfiguration()
	var buf bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(descriptor), &buf, conf); err != nil {
		return nil, eris.Wrap(err, "docgen: render pdf")
	}
	return buf.Bytes(), nil
}

// hasText reports whether any line carries content. A template that fills
// to nothing but whitespace must error rather than render a blank
// agreement.
func hasText(lines []string) bool {
	for _, line := range lines {
		if line != "" {
			return true
		}
	}
	return false
}

func pageDescriptor(lines []string) map[string]any {
	texts := make([]any, 0, len(lines))
	y := pdfTopY
	for _, line := range lines {
		if line != "" {
			texts = append(texts, map[string]any{
				"value":    line,
				"position": []float64{pdfLeftX, y},
				"font": map[string]any{
					"name": pdfFontName,
					"size": pdfFontSize,
				},
			})
		}
		y -= pdfLeading
	}
	return map[string]any{
		"content": map[string]any{"text": texts},
	}
}

// wrapLines word-wraps each input line to the column limit, preserving
// blank lines.
func wrapLines(text string, limit int) []string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimRight(raw, " \t")
		if len(raw) <= limit {
			out = append(out, raw)
			continue
		}

		var line string
		for _, word := range strings.Fields(raw) {
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) <= limit:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
