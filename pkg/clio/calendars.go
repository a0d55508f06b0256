package clio

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"
)

// Calendars lists the scheduling calendars the user can write to.
func (c *httpClient) Calendars(ctx context.Context) ([]Calendar, error) {
	raw, err := c.request(ctx, http.MethodGet, "/api/v4/calendars", nil, url.Values{
		"fields": {"id,name"},
	})
	if err != nil {
		return nil, eris.Wrap(err, "clio: list calendars")
	}

	var calendars []Calendar
	if err := decodeData(raw, &calendars); err != nil {
		return nil, err
	}
	return calendars, nil
}

// CreateCalendarEntry creates an entry on the given calendar.
func (c *httpClient) CreateCalendarEntry(ctx context.Context, req CalendarEntryRequest) error {
	data := map[string]any{
		"calendar_owner": map[string]any{"id": req.CalendarID},
		"summary":        req.Summary,
		"description":    req.Description,
		"start_at":       req.StartAt,
		"end_at":         req.EndAt,
		"all_day":        req.AllDay,
	}
	if req.MatterID != 0 {
		data["matter"] = map[string]any{"id": req.MatterID}
	}
	if req.AttendeeID != 0 {
		data["attendees"] = []map[string]any{{"id": req.AttendeeID, "type": "User"}}
	}
	if len(req.Reminders) > 0 {
		data["reminders"] = req.Reminders
	}

	_, err := c.request(ctx, http.MethodPost, "/api/v4/calendar_entries", map[string]any{"data": data}, nil)
	if err != nil {
		return eris.Wrap(err, "clio: create calendar entry")
	}
	return nil
}
