// Package database provides SQLite persistence for the advent calendar service.
package database

import (
	"time"
)

// Calendar is the top-level configured countdown entity, identified by a slug.
// Access codes are stored as argon2id hashes and never leave this package in
// plaintext; AccessCodeHash is nil for calendars without guest protection.
type Calendar struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	RecipientName  string    `json:"recipient_name"`
	StartDate      string    `json:"start_date"` // ISO 8601: YYYY-MM-DD, day 1 anchor
	AdminCodeHash  string    `json:"-"`
	AccessCodeHash *string   `json:"-"`
	ThemeColor     string    `json:"theme_color"`
	Background     string    `json:"background"` // stored string form, see internal/style
	CardStyle      string    `json:"card_style"` // stored string form, see internal/style
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasAccessCode reports whether the calendar is guest-protected.
func (c *Calendar) HasAccessCode() bool {
	return c.AccessCodeHash != nil && *c.AccessCodeHash != ""
}

// ContentType tags the format of a day's content payload.
type ContentType string

const (
	ContentTypeText    ContentType = "text"
	ContentTypeLetter  ContentType = "letter"
	ContentTypeImage   ContentType = "image"
	ContentTypeVideo   ContentType = "video"
	ContentTypeYouTube ContentType = "youtube"
	ContentTypeAudio   ContentType = "audio"
	ContentTypeLink    ContentType = "link"
	ContentTypeQuiz    ContentType = "quiz"
	ContentTypeMap     ContentType = "map"
	ContentTypeScratch ContentType = "scratch"
)

// ValidContentTypes returns all valid day content types.
func ValidContentTypes() []ContentType {
	return []ContentType{
		ContentTypeText,
		ContentTypeLetter,
		ContentTypeImage,
		ContentTypeVideo,
		ContentTypeYouTube,
		ContentTypeAudio,
		ContentTypeLink,
		ContentTypeQuiz,
		ContentTypeMap,
		ContentTypeScratch,
	}
}

// IsValid checks if a content type is one of the known tags.
func (ct ContentType) IsValid() bool {
	for _, valid := range ValidContentTypes() {
		if ct == valid {
			return true
		}
	}
	return false
}

// CalendarDay is one numbered day's content record belonging to a calendar.
// Title and Content are nullable; the payload format is opaque to this layer
// and depends on ContentType.
type CalendarDay struct {
	ID         int64       `json:"id"`
	CalendarID string      `json:"calendar_id"`
	DayNumber  int         `json:"day_number"`
	Type       ContentType `json:"type"`
	Title      *string     `json:"title"`
	Content    *string     `json:"content"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// GuestbookMessage is one visitor message left on a calendar.
type GuestbookMessage struct {
	ID         string    `json:"id"`
	CalendarID string    `json:"-"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// CalendarStats summarizes stored data, used by the health/ops surface.
type CalendarStats struct {
	TotalCalendars int `json:"total_calendars"`
	TotalDays      int `json:"total_days"`
	TotalMessages  int `json:"total_messages"`
}

// Day count bounds enforced by the creation flow.
const (
	MinDayCount = 2
	MaxDayCount = 30
)
