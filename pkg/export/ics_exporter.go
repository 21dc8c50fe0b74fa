package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// Event is one weekly recurring calendar entry covering the date range
// [StartDate, EndDate].
type Event struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Weekday     time.Weekday
	StartMin    int
	EndMin      int
	StartDate   time.Time
	EndDate     time.Time
}

// ICSExporter renders weekly events into an iCalendar document.
type ICSExporter struct {
	prodID string
}

// NewICSExporter builds an ICS exporter stamping the given product
// identifier into the calendar header.
func NewICSExporter(prodID string) *ICSExporter {
	return &ICSExporter{prodID: prodID}
}

// Render produces an RFC 5545 document: each event becomes one VEVENT at
// its first occurrence on or after its start date, recurring weekly until
// its end date.
func (e *ICSExporter) Render(events []Event) ([]byte, error) {
	buf := &bytes.Buffer{}
	writeLine(buf, "BEGIN:VCALENDAR")
	writeLine(buf, "VERSION:2.0")
	writeLine(buf, "PRODID:"+e.prodID)
	writeLine(buf, "CALSCALE:GREGORIAN")
	writeLine(buf, "METHOD:PUBLISH")

	for _, event := range events {
		if event.StartDate.IsZero() || event.EndDate.IsZero() {
			return nil, fmt.Errorf("event %s has no date range", event.UID)
		}
		first := firstOccurrence(event.StartDate, event.Weekday)

		writeLine(buf, "BEGIN:VEVENT")
		writeLine(buf, "UID:"+event.UID)
		writeLine(buf, "DTSTART:"+stampAt(first, event.StartMin))
		writeLine(buf, "DTEND:"+stampAt(first, event.EndMin))
		writeLine(buf, "RRULE:FREQ=WEEKLY;UNTIL="+stampAt(event.EndDate, event.EndMin))
		writeLine(buf, "SUMMARY:"+escapeText(event.Summary))
		if event.Description != "" {
			writeLine(buf, "DESCRIPTION:"+escapeText(event.Description))
		}
		if event.Location != "" {
			writeLine(buf, "LOCATION:"+escapeText(event.Location))
		}
		writeLine(buf, "END:VEVENT")
	}

	writeLine(buf, "END:VCALENDAR")
	return buf.Bytes(), nil
}

// Content lines are capped at 75 octets; the overflow continues on the
// next line behind a single space.
const foldLimit = 75

func writeLine(buf *bytes.Buffer, line string) {
	octets := []byte(line)
	limit := foldLimit
	for len(octets) > limit {
		cut := limit
		for cut > 0 && octets[cut]&0xC0 == 0x80 {
			cut--
		}
		buf.Write(octets[:cut])
		buf.WriteString("\r\n ")
		octets = octets[cut:]
		limit = foldLimit - 1
	}
	buf.Write(octets)
	buf.WriteString("\r\n")
}

// firstOccurrence advances from the start date to the first calendar day
// falling on the given weekday.
func firstOccurrence(start time.Time, weekday time.Weekday) time.Time {
	day := start
	for day.Weekday() != weekday {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

// stampAt renders the date with the minute-of-day applied as a UTC
// timestamp in basic format.
func stampAt(date time.Time, minuteOfDay int) string {
	at := time.Date(date.Year(), date.Month(), date.Day(),
		minuteOfDay/60, minuteOfDay%60, 0, 0, time.UTC)
	return at.Format("20060102T150405Z")
}

// escapeText applies RFC 5545 text escaping.
func escapeText(value string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	return replacer.Replace(value)
}
