package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/richards-law/intake-cli/internal/docgen"
	"github.com/richards-law/intake-cli/pkg/clio"
)

// reminderOffsetMinutes is one week before the deadline.
const reminderOffsetMinutes = 10080

// ResolveCalendar picks the calendar to write the deadline to: the first
// whose name contains the attorney's name, falling back to the first
// calendar in the list.
func ResolveCalendar(ctx context.Context, client clio.Client, attorneyName string) (int64, error) {
	cals, err := client.Calendars(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "calendar: list")
	}
	if len(cals) == 0 {
		return 0, eris.New("no calendars available")
	}

	if attorneyName != "" {
		needle := strings.ToLower(attorneyName)
		for _, c := range cals {
			if strings.Contains(strings.ToLower(c.Name), needle) {
				return c.ID, nil
			}
		}
	}
	return cals[0].ID, nil
}

// CreateStatuteEntry writes the statute-of-limitations deadline to the
// attorney's calendar: an all-day entry on the computed date, with email
// and popup reminders a week ahead.
func CreateStatuteEntry(
	ctx context.Context,
	client clio.Client,
	matterID int64,
	accidentDate string,
	plaintiffName, defendantName string,
	attorneyID int64,
	attorneyName string,
	statuteYears int,
) error {
	accident, err := docgen.ParseISODate(accidentDate)
	if err != nil {
		return eris.Wrapf(err, "calendar: bad accident date %q", accidentDate)
	}
	deadline := docgen.StatuteDate(accident, statuteYears)

	calendarID, err := ResolveCalendar(ctx, client, attorneyName)
	if err != nil {
		return err
	}

	start := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 9, 0, 0, 0, time.Local)
	end := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 17, 0, 0, 0, time.Local)

	req := clio.CalendarEntryRequest{
		CalendarID: calendarID,
		MatterID:   matterID,
		AttendeeID: attorneyID,
		Summary:    fmt.Sprintf("STATUTE OF LIMITATIONS - %s v %s", plaintiffName, defendantName),
		Description: fmt.Sprintf(
			"Statute of limitations deadline for the %s accident. File suit before this date or the claim is barred.",
			docgen.FormatLongDate(accident),
		),
		StartAt: start.Format(time.RFC3339),
		EndAt:   end.Format(time.RFC3339),
		AllDay:  true,
		Reminders: []clio.Reminder{
			{Duration: reminderOffsetMinutes, Method: "email"},
			{Duration: reminderOffsetMinutes, Method: "popup"},
		},
	}

	if err := client.CreateCalendarEntry(ctx, req); err != nil {
		return eris.Wrap(err, "calendar: create entry")
	}

	zap.L().Info("statute deadline scheduled",
		zap.Int64("matter_id", matterID),
		zap.String("deadline", deadline.Format("2006-01-02")),
		zap.Int64("calendar_id", calendarID),
	)
	return nil
}
