// Package ical generates the countdown reminder calendar export.
package ical

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateFormat = "20060102"
	stampFmt   = "20060102T150405Z"
	prodID     = "-//adventcal//adventcal//EN"
)

// Reminder describes the countdown to export: one all-day event per calendar
// day from the start date.
type Reminder struct {
	CalendarID    string // used to build stable UIDs
	RecipientName string
	Slug          string
	StartDate     time.Time // midnight in the reference timezone
	DayCount      int
	Now           time.Time // DTSTAMP source, injected for determinism
}

// Format renders the reminder as an iCalendar document.
func Format(r Reminder) string {
	var b strings.Builder

	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:" + prodID + "\r\n")
	writeLine(&b, "X-WR-CALNAME", fmt.Sprintf("%s's advent countdown", r.RecipientName))

	stamp := r.Now.UTC().Format(stampFmt)

	for day := 1; day <= r.DayCount; day++ {
		date := r.StartDate.AddDate(0, 0, day-1)

		b.WriteString("BEGIN:VEVENT\r\n")
		writeLine(&b, "UID", fmt.Sprintf("%s-day-%d@adventcal", r.CalendarID, day))
		b.WriteString("DTSTAMP:" + stamp + "\r\n")
		b.WriteString("DTSTART;VALUE=DATE:" + date.Format(dateFormat) + "\r\n")
		b.WriteString("DTEND;VALUE=DATE:" + date.AddDate(0, 0, 1).Format(dateFormat) + "\r\n")
		writeLine(&b, "SUMMARY", fmt.Sprintf("Open day %d of %s's calendar", day, r.RecipientName))
		writeLine(&b, "DESCRIPTION", fmt.Sprintf("A new surprise is waiting at /%s", r.Slug))
		b.WriteString("END:VEVENT\r\n")
	}

	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

// writeLine writes "NAME:value" with escaping and RFC 5545 line folding.
func writeLine(b *strings.Builder, name, value string) {
	line := name + ":" + escapeText(value)

	// Fold at 75 octets; continuation lines start with a space.
	for len(line) > 75 {
		cut := 75
		// Don't split a multi-byte rune
		for cut > 0 && line[cut]&0xC0 == 0x80 {
			cut--
		}
		b.WriteString(line[:cut] + "\r\n")
		line = " " + line[cut:]
	}
	b.WriteString(line + "\r\n")
}

// escapeText escapes per RFC 5545 section 3.3.11.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\r\n", "\\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
