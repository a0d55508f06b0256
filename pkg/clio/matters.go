package clio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

// PracticeAreas lists the practice areas configured on the account.
func (c *httpClient) PracticeAreas(ctx context.Context) ([]PracticeArea, error) {
	raw, err := c.request(ctx, http.MethodGet, "/api/v4/practice_areas", nil, url.Values{
		"fields": {"id,name"},
	})
	if err != nil {
		return nil, eris.Wrap(err, "clio: list practice areas")
	}

	var areas []PracticeArea
	if err := decodeData(raw, &areas); err != nil {
		return nil, err
	}
	return areas, nil
}

// CreateMatter opens a new matter under the given client contact.
func (c *httpClient) CreateMatter(ctx context.Context, req MatterRequest) (*Matter, error) {
	data := map[string]any{
		"client":      map[string]any{"id": req.ClientID},
		"description": req.Description,
		"status":      "Open",
	}
	if req.ResponsibleAttorneyID != 0 {
		data["responsible_attorney"] = map[string]any{"id": req.ResponsibleAttorneyID}
	}
	if req.PracticeAreaID != 0 {
		data["practice_area"] = map[string]any{"id": req.PracticeAreaID}
	}

	raw, err := c.request(ctx, http.MethodPost, "/api/v4/matters", map[string]any{"data": data}, url.Values{
		"fields": {"id,display_number,description,status"},
	})
	if err != nil {
		return nil, eris.Wrap(err, "clio: create matter")
	}

	var matter Matter
	if err := decodeData(raw, &matter); err != nil {
		return nil, err
	}
	return &matter, nil
}

// GetMatter fetches a matter including its current concurrency token (etag).
func (c *httpClient) GetMatter(ctx context.Context, id int64) (*Matter, error) {
	raw, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/api/v4/matters/%d", id), nil, url.Values{
		"fields": {"id,etag,display_number,description,status"},
	})
	if err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("clio: get matter %d", id))
	}

	var matter Matter
	if err := decodeData(raw, &matter); err != nil {
		return nil, err
	}
	return &matter, nil
}

// UpdateMatterCustomFields writes custom field values against the supplied
// etag. Callers re-fetch the etag immediately before this to keep the
// conflict window small.
func (c *httpClient) UpdateMatterCustomFields(ctx context.Context, id int64, etag string, values []CustomFieldValue) error {
	body := map[string]any{
		"data": map[string]any{
			"custom_field_values": values,
		},
		"etag": etag,
	}
	_, err := c.request(ctx, http.MethodPatch, fmt.Sprintf("/api/v4/matters/%d", id), body, nil)
	if err != nil {
		return eris.Wrap(err, fmt.Sprintf("clio: update custom fields on matter %d", id))
	}
	return nil
}

// UpdateMatterStage advances the matter to the given workflow stage.
func (c *httpClient) UpdateMatterStage(ctx context.Context, id int64, etag string, stageID int64) error {
	body := map[string]any{
		"data": map[string]any{
			"matter_stage": map[string]any{"id": stageID},
		},
		"etag": etag,
	}
	_, err := c.request(ctx, http.MethodPatch, fmt.Sprintf("/api/v4/matters/%d", id), body, nil)
	if err != nil {
		return eris.Wrap(err, fmt.Sprintf("clio: update stage on matter %d", id))
	}
	return nil
}

// StageByName finds a workflow stage by exact name, scoped to a practice
// area when one is supplied. Returns nil when no stage matches.
func (c *httpClient) StageByName(ctx context.Context, name string, practiceAreaID int64) (*MatterStage, error) {
	query := url.Values{"fields": {"id,name,order"}}
	if practiceAreaID != 0 {
		query.Set("practice_area_id", fmt.Sprintf("%d", practiceAreaID))
	}

	raw, err := c.request(ctx, http.MethodGet, "/api/v4/matter_stages", nil, query)
	if err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("clio: list stages for %q", name))
	}

	var stages []MatterStage
	if err := decodeData(raw, &stages); err != nil {
		return nil, err
	}
	for i := range stages {
		if strings.EqualFold(stages[i].Name, name) {
			return &stages[i], nil
		}
	}
	return nil, nil
}
