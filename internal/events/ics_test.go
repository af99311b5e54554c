package events

import (
	"strings"
	"testing"
	"time"

	"ivarberg/internal/models"
)

func TestICS(t *testing.T) {
	venue := "Varbergs Teater"
	e := models.EventDisplay{
		ID:                "evt-9",
		Title:             "Konsert; live, i kväll",
		Date:              local(2025, time.December, 6, 19, 0),
		Location:          FormatLocation(&venue, "Teatergatan 1, Varberg"),
		Description:       "**Välkommen**\nTa med vänner",
		DescriptionFormat: models.FormatMarkdown,
		Status:            models.StatusPublished,
	}
	now := time.Date(2025, time.November, 1, 8, 0, 0, 0, time.UTC)

	out := string(ICS(e, now))

	for _, want := range []string{
		"BEGIN:VCALENDAR\r\n",
		"DTSTART:20251206T180000Z\r\n",
		"DTEND:20251206T200000Z\r\n",
		"DTSTAMP:20251101T080000Z\r\n",
		`SUMMARY:Konsert\; live\, i kväll`,
		`DESCRIPTION:Välkommen\nTa med vänner`,
		`LOCATION:Varbergs Teater\, Teatergatan 1\, Varberg`,
		"UID:evt-9@ivarberg.nu\r\n",
		"STATUS:CONFIRMED\r\n",
		"END:VCALENDAR\r\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in\n%s", want, out)
		}
	}
}

func TestICSSummerTimeIsUTC(t *testing.T) {
	e := models.EventDisplay{ID: "s", Title: "Midsommar", Date: local(2025, time.June, 20, 12, 0)}
	out := string(ICS(e, time.Now()))

	if !strings.Contains(out, "DTSTART:20250620T100000Z\r\n") {
		t.Fatalf("expected UTC start two hours behind Stockholm summer time in\n%s", out)
	}
	if strings.Contains(out, "TZID") {
		t.Fatalf("unexpected TZID parameter without a VTIMEZONE in\n%s", out)
	}
}

func TestICSFoldsLongLines(t *testing.T) {
	e := models.EventDisplay{ID: "x", Title: strings.Repeat("å", 60), Date: local(2025, time.May, 1, 10, 0)}
	out := string(ICS(e, time.Now()))

	for _, line := range strings.Split(out, "\r\n") {
		if len(line) > 75 {
			t.Fatalf("line exceeds 75 octets: %q", line)
		}
	}
	if !strings.Contains(out, "\r\n ") {
		t.Fatalf("expected folded continuation line")
	}
}

func TestICSFilename(t *testing.T) {
	if got := ICSFilename("Jul på Torget 2025!"); got != "jul_p__torget_2025_.ics" {
		t.Fatalf("unexpected filename %q", got)
	}
	if got := ICSFilename(""); got != "event.ics" {
		t.Fatalf("unexpected fallback %q", got)
	}
}
