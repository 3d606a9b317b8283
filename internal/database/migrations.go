package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
// Each migration should be idempotent (safe to run multiple times).
var migrationsSQL = map[int]string{
	1: migrationV1Schema,
}

// migrationV1Schema creates the calendar schema.
//
// Design decisions:
//
//  1. TEXT ULIDs for calendars and guestbook messages. They appear in URLs
//     and client payloads, so opaque sortable ids beat autoincrement ints.
//     Day rows never leave the service by id, so they stay INTEGER PKs.
//
//  2. start_date is TEXT (YYYY-MM-DD). The unlock rule works on local
//     calendar dates in the reference timezone, so a date string is the
//     honest representation; parsing happens in internal/advent.
//
//  3. Access codes are stored argon2id-hashed. access_code_hash is NULL
//     for calendars anyone may view.
//
//  4. background / card_style keep the delimited string form written by
//     existing clients ("custom-bg:...", "custom-card:..."); the structured
//     view is derived at the API layer.
const migrationV1Schema = `
-- Migration 001: calendars, calendar_days, guestbook_messages

CREATE TABLE IF NOT EXISTS calendars (
    id TEXT PRIMARY KEY,

    -- Unique human-readable key used in URLs
    slug TEXT NOT NULL UNIQUE,

    recipient_name TEXT NOT NULL,

    -- Day 1 anchor, ISO 8601 calendar date (YYYY-MM-DD)
    start_date TEXT NOT NULL,

    -- Argon2id hashes; access_code_hash NULL means no guest protection
    admin_code_hash TEXT NOT NULL,
    access_code_hash TEXT,

    -- Visual theme (string-encoded, parsed by internal/style)
    theme_color TEXT NOT NULL DEFAULT '#b91c1c',
    background TEXT NOT NULL DEFAULT 'custom-bg:#450a0a,#14532d',
    card_style TEXT NOT NULL DEFAULT 'custom-card:#7f1d1d',

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_calendars_slug ON calendars(slug);

CREATE TABLE IF NOT EXISTS calendar_days (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    calendar_id TEXT NOT NULL,

    -- 1-based, contiguous within a calendar
    day_number INTEGER NOT NULL CHECK (day_number >= 1),

    content_type TEXT NOT NULL DEFAULT 'text' CHECK (content_type IN (
        'text', 'letter', 'image', 'video', 'youtube',
        'audio', 'link', 'quiz', 'map', 'scratch'
    )),

    title TEXT,
    content TEXT,

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now')),

    FOREIGN KEY (calendar_id) REFERENCES calendars(id) ON DELETE CASCADE,

    -- Exactly one row per (calendar, day)
    UNIQUE (calendar_id, day_number)
);

CREATE INDEX IF NOT EXISTS idx_calendar_days_calendar
    ON calendar_days(calendar_id, day_number);

CREATE TABLE IF NOT EXISTS guestbook_messages (
    id TEXT PRIMARY KEY,

    calendar_id TEXT NOT NULL,
    sender_name TEXT NOT NULL,
    content TEXT NOT NULL,

    created_at TEXT NOT NULL DEFAULT (datetime('now')),

    FOREIGN KEY (calendar_id) REFERENCES calendars(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_guestbook_messages_calendar
    ON guestbook_messages(calendar_id, created_at);
`
