package clio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

// DocumentTemplates lists the uploaded merge-field document templates.
func (c *httpClient) DocumentTemplates(ctx context.Context) ([]DocumentTemplate, error) {
	raw, err := c.request(ctx, http.MethodGet, "/api/v4/document_templates", nil, url.Values{
		"fields": {"id,name,filename"},
	})
	if err != nil {
		return nil, eris.Wrap(err, "clio: list document templates")
	}

	var templates []DocumentTemplate
	if err := decodeData(raw, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// FindTemplateByName returns the first template whose name contains the
// given string (case-insensitive), or nil when none matches.
func (c *httpClient) FindTemplateByName(ctx context.Context, name string) (*DocumentTemplate, error) {
	templates, err := c.DocumentTemplates(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(name)
	for i := range templates {
		if strings.Contains(strings.ToLower(templates[i].Name), needle) {
			return &templates[i], nil
		}
	}
	return nil, nil
}

// GenerateDocument creates a document on a matter from a template. The
// record returns synchronously; the binary renders asynchronously, so the
// returned document usually has no version yet.
func (c *httpClient) GenerateDocument(ctx context.Context, matterID, templateID int64, name string) (*Document, error) {
	body := map[string]any{
		"data": map[string]any{
			"name":              name,
			"parent":            map[string]any{"id": matterID, "type": "Matter"},
			"document_template": map[string]any{"id": templateID},
		},
	}

	raw, err := c.request(ctx, http.MethodPost, "/api/v4/documents", body, url.Values{
		"fields": {"id,name,latest_document_version{id}"},
	})
	if err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("clio: generate document from template %d", templateID))
	}

	var doc Document
	if err := decodeData(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetDocument fetches document metadata including the latest version id.
func (c *httpClient) GetDocument(ctx context.Context, id int64) (*Document, error) {
	raw, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/api/v4/documents/%d", id), nil, url.Values{
		"fields": {"id,name,latest_document_version{id}"},
	})
	if err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("clio: get document %d", id))
	}

	var doc Document
	if err := decodeData(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DownloadDocument fetches the rendered binary. Direct download of a fresh
// document can 404 before the version index catches up; in that case the
// latest version id is re-resolved and the download retried against the
// version endpoint.
func (c *httpClient) DownloadDocument(ctx context.Context, id int64) ([]byte, error) {
	data, err := c.download(ctx, fmt.Sprintf("/api/v4/documents/%d/download", id))
	if err == nil {
		return data, nil
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		return nil, eris.Wrap(err, fmt.Sprintf("clio: download document %d", id))
	}

	doc, err := c.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if !doc.Ready() {
		return nil, eris.New(fmt.Sprintf("clio: document %d has no version to download", id))
	}

	data, err = c.download(ctx, fmt.Sprintf("/api/v4/documents/%d/versions/%d/download", id, doc.LatestVersion.ID))
	if err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("clio: download document %d version %d", id, doc.LatestVersion.ID))
	}
	return data, nil
}
