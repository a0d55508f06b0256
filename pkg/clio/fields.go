package clio

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"
)

// CustomFields lists the matter custom field definitions.
func (c *httpClient) CustomFields(ctx context.Context) ([]CustomField, error) {
	raw, err := c.request(ctx, http.MethodGet, "/api/v4/custom_fields", nil, url.Values{
		"fields":      {"id,name,field_type"},
		"parent_type": {"Matter"},
	})
	if err != nil {
		return nil, eris.Wrap(err, "clio: list custom fields")
	}

	var fields []CustomField
	if err := decodeData(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// FieldIDMap returns the name → field-id mapping, fetched once per client
// instance. Concurrent first calls collapse into a single round trip.
func (c *httpClient) FieldIDMap(ctx context.Context) (map[string]int64, error) {
	c.fieldMu.RLock()
	cached := c.fieldMap
	c.fieldMu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := c.fieldFlight.Do("field-map", func() (any, error) {
		fields, err := c.CustomFields(ctx)
		if err != nil {
			return nil, err
		}

		m := make(map[string]int64, len(fields))
		for _, f := range fields {
			m[f.Name] = f.ID
		}

		c.fieldMu.Lock()
		c.fieldMap = m
		c.fieldMu.Unlock()
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]int64), nil
}
