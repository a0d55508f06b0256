package mailer

import (
	"time"

	"github.com/richards-law/intake-cli/internal/config"
)

// BookingLink picks the consultation link for an accident month. Warm
// months route to an in-office visit, the rest of the year to a virtual
// one.
func BookingLink(month time.Month, cfg config.BookingConfig) (url, bookingType string) {
	if month >= time.March && month <= time.August {
		return cfg.InOfficeURL, "in-office"
	}
	return cfg.VirtualURL, "virtual"
}
