// Package advent implements the day-unlock rule and the per-day view-model
// projection for a countdown calendar.
//
// Both entry points are pure: the current time is always passed in, never
// read from the wall clock, so callers control "today" and tests need no
// clock mocking.
package advent

import (
	"fmt"
	"time"

	"github.com/instantcheese/adventcal/internal/database"
)

// Role is the closed set of viewer roles. Exactly one applies per request.
type Role int

const (
	// RoleGuestLocked is a visitor without guest access to a protected calendar.
	RoleGuestLocked Role = iota
	// RoleGuestWithAccess is a visitor who presented the guest code
	// (or any visitor, for calendars without one).
	RoleGuestWithAccess
	// RoleAdmin may see every day regardless of date.
	RoleAdmin
)

// String returns the role name for logging.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleGuestWithAccess:
		return "guest"
	default:
		return "locked"
	}
}

// DayView is the visibility-filtered projection of one calendar day.
// Type, Title and Content are populated only when Locked is false; a locked
// day's stored payload never reaches this struct.
type DayView struct {
	Day     int                  `json:"day"`
	Locked  bool                 `json:"locked"`
	Type    database.ContentType `json:"type,omitempty"`
	Title   *string              `json:"title,omitempty"`
	Content *string              `json:"content,omitempty"`
}

// ConfigError reports a calendar whose stored configuration cannot be used.
// It surfaces misconfigured rows loudly instead of substituting defaults.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("calendar config: bad %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("calendar config: bad %s %q", e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// startDateLayout is the stored form of a calendar's day-1 anchor.
const startDateLayout = "2006-01-02"

// ParseStartDate parses a stored start date into a midnight instant in the
// reference timezone. An empty or malformed value is a *ConfigError; there
// is deliberately no fallback date.
func ParseStartDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, &ConfigError{Field: "start_date", Value: s}
	}

	t, err := time.ParseInLocation(startDateLayout, s, loc)
	if err != nil {
		return time.Time{}, &ConfigError{Field: "start_date", Value: s, Err: err}
	}

	return t, nil
}

// Unlocked reports whether dayNumber may be revealed to a non-admin viewer
// at instant now.
//
// Day boundaries follow the local calendar date in the reference timezone,
// not elapsed 24-hour periods: day N unlocks when the local date is N-1
// calendar days past the start date, regardless of the time of day the
// calendar was made.
func Unlocked(dayNumber int, start, now time.Time, loc *time.Location) bool {
	if dayNumber < 1 {
		return false
	}

	elapsed := int(civilDate(now, loc).Sub(civilDate(start, loc)).Hours() / 24)
	return elapsed >= dayNumber-1
}

// civilDate maps t to its calendar date in loc, represented as a UTC
// midnight instant. Differencing two of these counts whole calendar days
// exactly. Local midnights are unusable for this: in zones that shift DST
// at midnight (America/Santiago) the transition day's midnight does not
// exist and normalizes into the previous day.
func civilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Assemble produces the ordered day view-models for a calendar.
//
// The day count is derived from the stored rows: the sequence covers
// 1..max(day_number). Rows are expected contiguous; if a day inside the
// range has no row it is emitted as a locked placeholder rather than an
// error. An empty rows slice yields an empty (non-nil) result.
//
// Visibility per day:
//   - unlockable = role is admin, or the day gate passes for now
//   - unlockable and a row exists: full content from the row
//   - otherwise: locked placeholder with content fields suppressed
//
// The function is a read-only projection: it never mutates rows and returns
// identical output for identical inputs.
func Assemble(rows []database.CalendarDay, start, now time.Time, loc *time.Location, role Role) []DayView {
	total := 0
	byDay := make(map[int]*database.CalendarDay, len(rows))
	for i := range rows {
		n := rows[i].DayNumber
		byDay[n] = &rows[i]
		if n > total {
			total = n
		}
	}

	views := make([]DayView, 0, total)
	for day := 1; day <= total; day++ {
		row := byDay[day]
		unlockable := role == RoleAdmin || Unlocked(day, start, now, loc)

		if unlockable && row != nil {
			views = append(views, DayView{
				Day:     day,
				Locked:  false,
				Type:    row.Type,
				Title:   row.Title,
				Content: row.Content,
			})
			continue
		}

		// Locked, or unlockable with no stored row. Content fields are
		// actively suppressed so a locked day's payload cannot leak.
		views = append(views, DayView{
			Day:    day,
			Locked: true,
			Type:   database.ContentTypeText,
		})
	}

	return views
}
