// Package calendar builds calendar-export links for confirmed bookings.
package calendar

import (
	"fmt"
	"net/url"
	"time"

	"github.com/fairwaylab/studio_scheduler/internal/model"
)

const sessionDuration = time.Hour

// GoogleLink returns a Google Calendar event-template URL for a booking.
// Dates are rendered in UTC basic format as the template API expects.
func GoogleLink(b *model.Booking, location string) string {
	start := time.Date(
		b.ClassDate.Year(), b.ClassDate.Month(), b.ClassDate.Day(),
		b.Hour, 0, 0, 0, time.UTC,
	)
	end := start.Add(sessionDuration)

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", fmt.Sprintf("%s (%s)", b.ClassName, b.Tier))
	q.Set("dates", start.Format("20060102T150405Z")+"/"+end.Format("20060102T150405Z"))
	if location != "" {
		q.Set("location", location)
	}

	return "https://calendar.google.com/calendar/render?" + q.Encode()
}
