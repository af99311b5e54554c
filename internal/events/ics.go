package events

import (
	"bytes"
	"strings"
	"time"

	"ivarberg/internal/calendar"
	"ivarberg/internal/models"
)

// DefaultDuration is assumed for calendar exports since events carry no end time.
const DefaultDuration = 2 * time.Hour

// icsUTCLayout is the RFC 5545 UTC date-time form.
const icsUTCLayout = "20060102T150405Z"

// ICS renders e as a single-event iCalendar file.
func ICS(e models.EventDisplay, now time.Time) []byte {
	start := calendar.Local(e.Date)
	end := start.Add(DefaultDuration)

	status := "CONFIRMED"
	if e.Status == models.StatusCancelled {
		status = "CANCELLED"
	}

	location := e.Location.Address
	if e.Location.HasVenueName {
		location = e.Location.VenueName + ", " + e.Location.Address
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//ivarberg.nu//Event Calendar//SV",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"DTSTART:" + start.UTC().Format(icsUTCLayout),
		"DTEND:" + end.UTC().Format(icsUTCLayout),
		"DTSTAMP:" + now.UTC().Format(icsUTCLayout),
		"SUMMARY:" + icsEscape(e.Title),
		"DESCRIPTION:" + icsEscape(PlainText(e.Description, e.DescriptionFormat)),
		"LOCATION:" + icsEscape(location),
		"UID:" + e.ID + "@ivarberg.nu",
		"STATUS:" + status,
	}
	if e.OrganizerEventURL != "" {
		lines = append(lines, "URL:"+e.OrganizerEventURL)
	}
	lines = append(lines, "END:VEVENT", "END:VCALENDAR")

	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(icsFold(line))
		buf.WriteString("\r\n")
	}
	return buf.Bytes()
}

// ICSFilename derives a download name from the event title.
func ICSFilename(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "event.ics"
	}
	return b.String() + ".ics"
}

var icsEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
)

func icsEscape(s string) string {
	return icsEscaper.Replace(s)
}

// icsFold splits content lines longer than 75 octets without breaking
// multi-byte characters. Continuation lines start with a space.
func icsFold(line string) string {
	const limit = 75
	if len(line) <= limit {
		return line
	}

	var b strings.Builder
	width := 0
	for _, r := range line {
		size := len(string(r))
		if width+size > limit {
			b.WriteString("\r\n ")
			width = 1
		}
		b.WriteRune(r)
		width += size
	}
	return b.String()
}
