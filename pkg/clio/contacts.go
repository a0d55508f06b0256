package clio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"
)

// WhoAmI fetches the authenticated user.
func (c *httpClient) WhoAmI(ctx context.Context) (*User, error) {
	raw, err := c.request(ctx, http.MethodGet, "/api/v4/users/who_am_i", nil, url.Values{
		"fields": {"id,name,email"},
	})
	if err != nil {
		return nil, eris.Wrap(err, "clio: who am i")
	}

	var user User
	if err := decodeData(raw, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindContactByName searches contacts with a query-style partial match and
// returns the first hit, or nil when nothing matches.
func (c *httpClient) FindContactByName(ctx context.Context, name string) (*Contact, error) {
	raw, err := c.request(ctx, http.MethodGet, "/api/v4/contacts", nil, url.Values{
		"query":  {name},
		"type":   {"Person"},
		"fields": {"id,name"},
	})
	if err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("clio: search contact %q", name))
	}

	var contacts []Contact
	if err := decodeData(raw, &contacts); err != nil {
		return nil, err
	}
	if len(contacts) == 0 {
		return nil, nil
	}
	return &contacts[0], nil
}

// CreateContact creates a new person contact.
func (c *httpClient) CreateContact(ctx context.Context, req ContactRequest) (*Contact, error) {
	person := map[string]any{
		"type":       "Person",
		"first_name": req.FirstName,
		"last_name":  req.LastName,
	}
	if req.Email != "" {
		person["email_addresses"] = []map[string]any{
			{"name": "Home", "address": req.Email, "default_email": true},
		}
	}
	if req.Phone != "" {
		person["phone_numbers"] = []map[string]any{
			{"name": "Home", "number": req.Phone, "default_number": true},
		}
	}
	if req.Address != "" {
		person["addresses"] = []map[string]any{
			{"name": "Home", "street": req.Address},
		}
	}

	raw, err := c.request(ctx, http.MethodPost, "/api/v4/contacts", map[string]any{"data": person}, url.Values{
		"fields": {"id,name"},
	})
	if err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("clio: create contact %s %s", req.FirstName, req.LastName))
	}

	var contact Contact
	if err := decodeData(raw, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}
