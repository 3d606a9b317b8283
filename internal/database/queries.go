package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns the zero time if parsing fails.
func parseTimestamp(ns sql.NullString) time.Time {
	if !ns.Valid || ns.String == "" {
		return time.Time{}
	}

	// RFC3339 first (with timezone)
	if t, err := time.Parse(time.RFC3339, ns.String); err == nil {
		return t
	}

	// SQLite datetime format (no timezone)
	if t, err := time.Parse("2006-01-02 15:04:05", ns.String); err == nil {
		return t
	}

	return time.Time{}
}

// nullStr converts a *string to sql.NullString.
func nullStr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// strOrNil converts a sql.NullString to *string.
func strOrNil(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// =============================================================================
// Calendar Queries
// =============================================================================

// CreateCalendar inserts a calendar together with dayCount initialized day
// slots in a single transaction. Slots start as plain text with a default
// title and no content.
//
// Returns ErrDuplicate if the slug is already taken.
func (db *DB) CreateCalendar(ctx context.Context, cal *Calendar, dayCount int) error {
	if dayCount < MinDayCount || dayCount > MaxDayCount {
		return fmt.Errorf("day count must be between %d and %d, got %d",
			MinDayCount, MaxDayCount, dayCount)
	}

	if cal.ID == "" {
		cal.ID = NewID()
	}

	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO calendars (
				id, slug, recipient_name, start_date,
				admin_code_hash, access_code_hash,
				theme_color, background, card_style
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			cal.ID,
			cal.Slug,
			cal.RecipientName,
			cal.StartDate,
			cal.AdminCodeHash,
			nullStr(cal.AccessCodeHash),
			cal.ThemeColor,
			cal.Background,
			cal.CardStyle,
		)
		if err != nil {
			return mapConstraintErr(err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO calendar_days (calendar_id, day_number, content_type, title)
			VALUES (?, ?, 'text', ?)
		`)
		if err != nil {
			return fmt.Errorf("prepare day insert: %w", err)
		}
		defer stmt.Close()

		for day := 1; day <= dayCount; day++ {
			if _, err := stmt.ExecContext(ctx, cal.ID, day, fmt.Sprintf("Day %d", day)); err != nil {
				return fmt.Errorf("insert day %d: %w", day, err)
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return ErrDuplicate
		}
		return fmt.Errorf("create calendar: %w", err)
	}

	return nil
}

// GetCalendarBySlug retrieves a calendar by its slug.
// Returns ErrNotFound if no calendar uses the slug.
func (db *DB) GetCalendarBySlug(ctx context.Context, slug string) (*Calendar, error) {
	query := `
		SELECT
			id, slug, recipient_name, start_date,
			admin_code_hash, access_code_hash,
			theme_color, background, card_style,
			created_at, updated_at
		FROM calendars
		WHERE slug = ?
	`

	var cal Calendar
	var accessHash, createdAt, updatedAt sql.NullString

	err := db.QueryRowContext(ctx, query, slug).Scan(
		&cal.ID,
		&cal.Slug,
		&cal.RecipientName,
		&cal.StartDate,
		&cal.AdminCodeHash,
		&accessHash,
		&cal.ThemeColor,
		&cal.Background,
		&cal.CardStyle,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query calendar by slug: %w", err)
	}

	cal.AccessCodeHash = strOrNil(accessHash)
	cal.CreatedAt = parseTimestamp(createdAt)
	cal.UpdatedAt = parseTimestamp(updatedAt)

	return &cal, nil
}

// UpdateCalendarSettings updates the display settings of a calendar.
// Returns ErrNotFound if the slug doesn't exist.
func (db *DB) UpdateCalendarSettings(ctx context.Context, slug, recipientName, themeColor, background, cardStyle string) error {
	result, err := db.ExecContext(ctx, `
		UPDATE calendars
		SET recipient_name = ?, theme_color = ?, background = ?, card_style = ?,
		    updated_at = datetime('now')
		WHERE slug = ?
	`, recipientName, themeColor, background, cardStyle, slug)
	if err != nil {
		return fmt.Errorf("update calendar settings: %w", err)
	}

	return requireRowChanged(result)
}

// UpdateCalendarCodes rotates the access credentials of a calendar.
// Pass nil accessHash to remove guest protection entirely.
// Returns ErrNotFound if the slug doesn't exist.
func (db *DB) UpdateCalendarCodes(ctx context.Context, slug, adminHash string, accessHash *string) error {
	result, err := db.ExecContext(ctx, `
		UPDATE calendars
		SET admin_code_hash = ?, access_code_hash = ?, updated_at = datetime('now')
		WHERE slug = ?
	`, adminHash, nullStr(accessHash), slug)
	if err != nil {
		return fmt.Errorf("update calendar codes: %w", err)
	}

	return requireRowChanged(result)
}

// =============================================================================
// Calendar Day Queries
// =============================================================================

// GetDaysByCalendar retrieves all day rows of a calendar in ascending
// day-number order. Returns an empty slice when the calendar has no rows.
func (db *DB) GetDaysByCalendar(ctx context.Context, calendarID string) ([]CalendarDay, error) {
	query := `
		SELECT id, calendar_id, day_number, content_type, title, content,
		       created_at, updated_at
		FROM calendar_days
		WHERE calendar_id = ?
		ORDER BY day_number ASC
	`

	rows, err := db.QueryContext(ctx, query, calendarID)
	if err != nil {
		return nil, fmt.Errorf("query calendar days: %w", err)
	}
	defer rows.Close()

	var days []CalendarDay
	for rows.Next() {
		var day CalendarDay
		var title, content, createdAt, updatedAt sql.NullString

		err := rows.Scan(
			&day.ID,
			&day.CalendarID,
			&day.DayNumber,
			&day.Type,
			&title,
			&content,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan day row: %w", err)
		}

		day.Title = strOrNil(title)
		day.Content = strOrNil(content)
		day.CreatedAt = parseTimestamp(createdAt)
		day.UpdatedAt = parseTimestamp(updatedAt)

		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate day rows: %w", err)
	}

	return days, nil
}

// UpdateDay replaces the content of one day slot.
// Returns ErrNotFound if the (calendar, day) pair doesn't exist.
func (db *DB) UpdateDay(ctx context.Context, calendarID string, dayNumber int, contentType ContentType, title, content *string) error {
	if !contentType.IsValid() {
		return fmt.Errorf("invalid content type %q", contentType)
	}

	result, err := db.ExecContext(ctx, `
		UPDATE calendar_days
		SET content_type = ?, title = ?, content = ?, updated_at = datetime('now')
		WHERE calendar_id = ? AND day_number = ?
	`, string(contentType), nullStr(title), nullStr(content), calendarID, dayNumber)
	if err != nil {
		return fmt.Errorf("update day: %w", err)
	}

	return requireRowChanged(result)
}

// =============================================================================
// Guestbook Queries
// =============================================================================

// CreateMessage inserts a guestbook message. The ID is generated when empty.
func (db *DB) CreateMessage(ctx context.Context, msg *GuestbookMessage) error {
	if msg.ID == "" {
		msg.ID = NewID()
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO guestbook_messages (id, calendar_id, sender_name, content)
		VALUES (?, ?, ?, ?)
	`, msg.ID, msg.CalendarID, msg.SenderName, msg.Content)
	if err != nil {
		return fmt.Errorf("create guestbook message: %w", mapConstraintErr(err))
	}

	return nil
}

// GetMessagesByCalendar retrieves guestbook messages oldest-first, capped at
// limit (0 means no cap).
func (db *DB) GetMessagesByCalendar(ctx context.Context, calendarID string, limit int) ([]GuestbookMessage, error) {
	query := `
		SELECT id, calendar_id, sender_name, content, created_at
		FROM guestbook_messages
		WHERE calendar_id = ?
		ORDER BY created_at ASC, id ASC
	`
	args := []any{calendarID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query guestbook messages: %w", err)
	}
	defer rows.Close()

	var msgs []GuestbookMessage
	for rows.Next() {
		var msg GuestbookMessage
		var createdAt sql.NullString

		if err := rows.Scan(&msg.ID, &msg.CalendarID, &msg.SenderName, &msg.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scan guestbook row: %w", err)
		}
		msg.CreatedAt = parseTimestamp(createdAt)

		msgs = append(msgs, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate guestbook rows: %w", err)
	}

	return msgs, nil
}

// =============================================================================
// Stats
// =============================================================================

// GetStats returns row counts for the ops/health surface.
func (db *DB) GetStats(ctx context.Context) (*CalendarStats, error) {
	var stats CalendarStats

	err := db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM calendars),
			(SELECT COUNT(*) FROM calendar_days),
			(SELECT COUNT(*) FROM guestbook_messages)
	`).Scan(&stats.TotalCalendars, &stats.TotalDays, &stats.TotalMessages)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}

	return &stats, nil
}

// requireRowChanged maps a zero-rows-affected result to ErrNotFound.
func requireRowChanged(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
