package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instantcheese/adventcal/internal/auth"
	"github.com/instantcheese/adventcal/internal/config"
	"github.com/instantcheese/adventcal/internal/database"
)

// testApp wires a full router against an in-memory database with a frozen
// clock, plus a cookie jar so multi-request flows behave like a browser.
type testApp struct {
	t       *testing.T
	router  http.Handler
	db      *database.DB
	cookies []*http.Cookie
}

func newTestApp(t *testing.T, now time.Time) *testApp {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.Open(database.Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Migrate(context.Background())
	require.NoError(t, err)

	cfg := &config.Config{
		Env:             config.EnvDevelopment,
		SessionHashKey:  "0123456789abcdef0123456789abcdef",
		SessionBlockKey: "0123456789abcdef0123456789abcdef",
		Timezone:        "Asia/Taipei",
	}
	loc := time.FixedZone("UTC+8", 8*3600)

	sessions := auth.NewSessions(cfg).WithClock(func() time.Time { return now })
	handlers := NewHandlers(db, cfg, sessions, loc, logger).WithClock(func() time.Time { return now })

	return &testApp{
		t:      t,
		router: SetupRoutes(handlers, logger),
		db:     db,
	}
}

// do sends a request through the router, carrying and collecting cookies.
func (a *testApp) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range a.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		a.storeCookie(c)
	}
	return rec
}

func (a *testApp) storeCookie(c *http.Cookie) {
	for i, existing := range a.cookies {
		if existing.Name == c.Name {
			if c.MaxAge < 0 {
				a.cookies = append(a.cookies[:i], a.cookies[i+1:]...)
			} else {
				a.cookies[i] = c
			}
			return
		}
	}
	if c.MaxAge >= 0 {
		a.cookies = append(a.cookies, c)
	}
}

func (a *testApp) clearCookies() {
	a.cookies = nil
}

// decode unmarshals the envelope and returns the data payload re-marshaled
// into out.
func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) Response {
	t.Helper()

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	if out != nil && resp.Data != nil {
		data, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, out))
	}
	return resp
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	resp := decode(t, rec, nil)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

// createCalendar runs the creation flow and leaves the admin cookie in the jar.
func (a *testApp) createCalendar(body map[string]any) calendarProfile {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/v1/calendars", body)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var profile calendarProfile
	decode(a.t, rec, &profile)
	return profile
}

func calendarRequest() map[string]any {
	return map[string]any{
		"slug":           "mia-2025",
		"recipient_name": "Mia",
		"start_date":     "2025-12-01",
		"day_count":      10,
		"admin_code":     "golden-key",
		"access_code":    "snowball",
	}
}

var testNow = time.Date(2025, 12, 5, 10, 0, 0, 0, time.UTC)

// -----------------------------------------------------------------
// Health
// -----------------------------------------------------------------

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t, testNow)

	rec := app.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data map[string]any
	resp := decode(t, rec, &data)
	assert.True(t, resp.Success)
	assert.Equal(t, "healthy", data["status"])
}

// -----------------------------------------------------------------
// Calendar creation
// -----------------------------------------------------------------

func TestCreateCalendar(t *testing.T) {
	app := newTestApp(t, testNow)

	profile := app.createCalendar(calendarRequest())

	assert.Equal(t, "mia-2025", profile.Slug)
	assert.Equal(t, "Mia", profile.RecipientName)
	assert.Equal(t, "2025-12-01", profile.StartDate)
	assert.Equal(t, 10, profile.DayCount)
	assert.True(t, profile.HasAccessCode)
	assert.True(t, profile.IsAdmin, "creator should be logged in as admin")
	assert.Equal(t, "#450a0a", profile.Background.ColorFrom)

	// The creation response set an admin cookie scoped to the slug
	var names []string
	for _, c := range app.cookies {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "admin-mia-2025")
}

func TestCreateCalendar_Validation(t *testing.T) {
	app := newTestApp(t, testNow)

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"uppercase slug", func(m map[string]any) { m["slug"] = "Mia-2025" }},
		{"slug with spaces", func(m map[string]any) { m["slug"] = "mia 2025" }},
		{"empty slug", func(m map[string]any) { m["slug"] = "" }},
		{"missing recipient", func(m map[string]any) { m["recipient_name"] = "" }},
		{"day count too small", func(m map[string]any) { m["day_count"] = 1 }},
		{"day count too large", func(m map[string]any) { m["day_count"] = 31 }},
		{"short admin code", func(m map[string]any) { m["admin_code"] = "abc" }},
		{"missing start date", func(m map[string]any) { m["start_date"] = "" }},
		{"malformed start date", func(m map[string]any) { m["start_date"] = "12/01/2025" }},
		{"impossible start date", func(m map[string]any) { m["start_date"] = "2025-02-30" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := calendarRequest()
			tt.mutate(body)

			rec := app.do(http.MethodPost, "/api/v1/calendars", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestCreateCalendar_DuplicateSlug(t *testing.T) {
	app := newTestApp(t, testNow)
	app.createCalendar(calendarRequest())

	rec := app.do(http.MethodPost, "/api/v1/calendars", calendarRequest())
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DUPLICATE", errorCode(t, rec))
}

// -----------------------------------------------------------------
// Calendar profile
// -----------------------------------------------------------------

func TestGetCalendar(t *testing.T) {
	app := newTestApp(t, testNow)
	app.createCalendar(calendarRequest())
	app.clearCookies()

	rec := app.do(http.MethodGet, "/api/v1/calendars/mia-2025", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile calendarProfile
	decode(t, rec, &profile)
	assert.Equal(t, "Mia", profile.RecipientName)
	assert.False(t, profile.IsAdmin)
	assert.False(t, profile.HasAccess)

	// Code hashes must never leave the server
	assert.NotContains(t, rec.Body.String(), "argon2id")
	assert.NotContains(t, rec.Body.String(), "hash")
}

func TestGetCalendar_NotFound(t *testing.T) {
	app := newTestApp(t, testNow)

	rec := app.do(http.MethodGet, "/api/v1/calendars/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// -----------------------------------------------------------------
// Day views and gating
// -----------------------------------------------------------------

type daysPayload struct {
	Slug string `json:"slug"`
	Role string `json:"role"`
	Days []struct {
		Day     int     `json:"day"`
		Locked  bool    `json:"locked"`
		Type    string  `json:"type,omitempty"`
		Title   *string `json:"title"`
		Content *string `json:"content"`
		HTML    string  `json:"html,omitempty"`
	} `json:"days"`
}

func TestGetDays_ProtectedWithoutAccess(t *testing.T) {
	app := newTestApp(t, testNow)
	app.createCalendar(calendarRequest())
	app.clearCookies()

	rec := app.do(http.MethodGet, "/api/v1/calendars/mia-2025/days", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "ACCESS_REQUIRED", errorCode(t, rec))
}

func TestGetDays_PublicCalendar(t *testing.T) {
	app := newTestApp(t, testNow)
	body := calendarRequest()
	delete(body, "access_code")
	app.createCalendar(body)
	app.clearCookies()

	// No cookies at all: a public calendar is viewable by anyone
	rec := app.do(http.MethodGet, "/api/v1/calendars/mia-2025/days", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload daysPayload
	decode(t, rec, &payload)
	assert.Equal(t, "guest_with_access", payload.Role)
	require.Len(t, payload.Days, 10)

	// Start 2025-12-01, clock frozen at 2025-12-05 18:00 UTC+8: days 1-5 open
	for _, d := range payload.Days {
		if d.Day <= 5 {
			assert.False(t, d.Locked, "day %d should be unlocked", d.Day)
		} else {
			assert.True(t, d.Locked, "day %d should be locked", d.Day)
		}
	}
}

func TestGetDays_AccessCodeFlow(t *testing.T) {
	app := newTestApp(t, testNow)
	app.createCalendar(calendarRequest())
	app.clearCookies()

	// Wrong code is rejected and grants nothing
	rec := app.do(http.MethodPost, "/api/v1/calendars/mia-2025/access", map[string]any{"code": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, app.cookies)

	// Correct code grants the guest cookie
	rec = app.do(http.MethodPost, "/api/v1/calendars/mia-2025/access", map[string]any{"code": "snowball"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, "/api/v1/calendars/mia-2025/days", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload daysPayload
	decode(t, rec, &payload)
	assert.Equal(t, "guest_with_access", payload.Role)
}

func TestGetDays_LockedContentSuppressed(t *testing.T) {
	app := newTestApp(t, testNow)
	app.createCalendar(calendarRequest())

	// Admin writes content into a day far in the future
	rec := app.do(http.MethodPut, "/api/v1/calendars/mia-2025/days/9", map[string]any{
		"type":    "text",
		"title":   "The big secret",
		"content": "We are going to Paris!",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Guest view: day 9 is locked and carries none of the content
	app.clearCookies()
	rec = app.do(http.MethodPost, "/api/v1/calendars/mia-2025/access", map[string]any{"code": "snowball"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, "/api/v1/calendars/mia-2025/days", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload daysPayload
	decode(t, rec, &payload)
	day9 := payload.Days[8]
	assert.True(t, day9.Locked)
	assert.Nil(t, day9.Title)
	assert.Nil(t, day9.Content)

	// The serialized body must not leak the text anywhere
	assert.NotContains(t, rec.Body.String(), "Paris")
	assert.NotContains(t, rec.Body.String(), "big secret")
}

func TestGetDays_AdminSeesEverything(t *testing.T) {
	app := newTestApp(t, testNow)
	app.createCalendar(calendarRequest())

	rec := app.do(http.MethodPut, "/api/v1/calendars/mia-2025/days/9", map[string]any{
		"type":    "text",
		"title":   "The big secret",
		"content": "We are going to Paris!",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, "/api/v1/calendars/mia-2025/days", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload daysPayload
	decode(t, rec, &payload)
	assert.Equal(t, "admin", payload.Role)

	day9 := payload.Days[8]
	assert.False(t, day9.Locked, "admin preview ignores the day gate")
	require.NotNil(t, day9.Content)
	assert.Equal(t, "We are going to Paris!", *day9.Content)
}

func TestGetDays_MarkdownRendered(t *testing.T) {
	app := newTestApp(t, testNow)
	app.createCalendar(calendarRequest())

	rec := app.do(http.MethodPut, "/api/v1/calendars/mia-2025/days/1", map[string]any{
		"type":    "letter",
		"title":   "Dear Mia",
		"content": "You are **wonderful**.",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, "/api/v1/calendars/mia-2025/days", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload daysPayload
	decode(t, rec, &payload)
	assert.Contains(t, payload.Days[0].HTML, "<strong>wonderful</strong>")
}

// -----------------------------------------------------------------
// Admin endpoints
// -----------------------------------------------------------------

func TestUpdateDay_RequiresAdmin(t *testing.T) {
	app := newTestApp(t, testNow)
	app.createCalendar(calendarRequest())
	app.clearCookies()

	rec := app.do(http.MethodPut, "/api/v1/calendars/mia-2025/days/1", map[string]any{
		"type": "text", "title": "x", "content": "y",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "ADMIN_REQUIRED", errorCode(t, rec))

	// A guest session is not enough either
	rec = app.do(http.MethodPost, "/api/v1/calendars/mia-2025/access", map[string]any{"code": "snowball"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodPut, "/api/v1/calendars/mia-2025/days/1", map[string]any{
		"type": "text", "title": "x", "content": "y",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateDay_Validation(t *testing.T) {
	app := newTestApp(t, testNow)
	app.createCalendar(calendarRequest())

	rec := app.do(http.MethodPut, "/api/v1/calendars/mia-2025/days/1", map[string]any{
		"type": "hologram",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodPut, "/api/v1/calendars/mia-2025/days/0", map[string]any{
		"type": "text",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodPut, "/api/v1/calendars/mia-2025/days/11", map[string]any{
		"type": "text",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateSettings(t *testing.T) {
	app := newTestApp(t, testNow)
	app.createCalendar(calendarRequest())

	rec := app.do(http.MethodPut, "/api/v1/calendars/mia-2025/settings", map[string]any{
		"recipient_name": "Mia & Max",
		"theme_color":    "#0f172a",
		"background": map[string]any{
			"color_from": "#0f172a",
			"color_to":   "#1e293b",
			"pattern":    "❄",
			"quantity":   30,
			"size":       1.5,
			"rotation":   0,
			"animation":  "fall",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.do(http.MethodGet, "/api/v1/calendars/mia-2025", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile calendarProfile
	decode(t, rec, &profile)
	assert.Equal(t, "Mia & Max", profile.RecipientName)
	assert.Equal(t, "#0f172a", profile.ThemeColor)
	assert.Equal(t, "❄", profile.Background.Pattern)
	assert.Equal(t, 30, profile.Background.Quantity)
	// Card style untouched
	assert.Equal(t, "#7f1d1d", profile.CardStyle.Color)
}

func TestUpdateCodes_RemovesProtection(t *testing.T) {
	app := newTestApp(t, testNow)
	app.createCalendar(calendarRequest())

	// Rotate the admin code and drop the access code
	rec := app.do(http.MethodPut, "/api/v1/calendars/mia-2025/codes", map[string]any{
		"admin_code": "new-golden-key",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Now anyone can view the days without a cookie
	app.clearCookies()
	rec = app.do(http.MethodGet, "/api/v1/calendars/mia-2025/days", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Old admin code no longer works, the new one does
	rec = app.do(http.MethodPost, "/api/v1/calendars/mia-2025/admin", map[string]any{"code": "golden-key"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodPost, "/api/v1/calendars/mia-2025/admin", map[string]any{"code": "new-golden-key"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

// -----------------------------------------------------------------
// Admin verification and logout
// -----------------------------------------------------------------

func TestVerifyAdmin(t *testing.T) {
	app := newTestApp(t, testNow)
	app.createCalendar(calendarRequest())
	app.clearCookies()

	rec := app.do(http.MethodPost, "/api/v1/calendars/mia-2025/admin", map[string]any{"code": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodPost, "/api/v1/calendars/mia-2025/admin", map[string]any{"code": "golden-key"})
	require.Equal(t, http.StatusOK, rec.Code)

	// The granted session passes the admin check
	rec = app.do(http.MethodPut, "/api/v1/calendars/mia-2025/days/1", map[string]any{
		"type": "text", "title": "hello", "content": "world",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogout(t *testing.T) {
	app := newTestApp(t, testNow)
	app.createCalendar(calendarRequest())

	rec := app.do(http.MethodPost, "/api/v1/calendars/mia-2025/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The expired cookies were dropped from the jar; admin access is gone
	rec = app.do(http.MethodPut, "/api/v1/calendars/mia-2025/days/1", map[string]any{
		"type": "text", "title": "x", "content": "y",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// -----------------------------------------------------------------
// Guestbook
// -----------------------------------------------------------------

func TestGuestbook_Flow(t *testing.T) {
	app := newTestApp(t, testNow)
	app.createCalendar(calendarRequest())
	app.clearCookies()

	// Protected calendar: both guestbook operations need access
	rec := app.do(http.MethodGet, "/api/v1/calendars/mia-2025/guestbook", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodPost, "/api/v1/calendars/mia-2025/guestbook", map[string]any{
		"sender_name": "Max", "content": "hi",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodPost, "/api/v1/calendars/mia-2025/access", map[string]any{"code": "snowball"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodPost, "/api/v1/calendars/mia-2025/guestbook", map[string]any{
		"sender_name": "Max",
		"content":     "Merry Christmas, Mia!",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.do(http.MethodGet, "/api/v1/calendars/mia-2025/guestbook", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Messages []database.GuestbookMessage `json:"messages"`
	}
	decode(t, rec, &payload)
	require.Len(t, payload.Messages, 1)
	assert.Equal(t, "Max", payload.Messages[0].SenderName)
	assert.Equal(t, "Merry Christmas, Mia!", payload.Messages[0].Content)
}

func TestGuestbook_SanitizesInput(t *testing.T) {
	app := newTestApp(t, testNow)
	app.createCalendar(calendarRequest())

	rec := app.do(http.MethodPost, "/api/v1/calendars/mia-2025/guestbook", map[string]any{
		"sender_name": "  Max  ",
		"content":     `nice <script>alert("x")</script> calendar`,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var msg database.GuestbookMessage
	decode(t, rec, &msg)
	assert.Equal(t, "Max", msg.SenderName)
	assert.Equal(t, "nice  calendar", msg.Content)
}

func TestGuestbook_MultibyteLimits(t *testing.T) {
	app := newTestApp(t, testNow)
	app.createCalendar(calendarRequest())

	// Limits count characters: a 60-rune CJK name is at the cap even though
	// it is 180 bytes
	rec := app.do(http.MethodPost, "/api/v1/calendars/mia-2025/guestbook", map[string]any{
		"sender_name": strings.Repeat("雪", 60),
		"content":     strings.Repeat("聖誕快樂", 250),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.do(http.MethodPost, "/api/v1/calendars/mia-2025/guestbook", map[string]any{
		"sender_name": strings.Repeat("雪", 61),
		"content":     "hi",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodPost, "/api/v1/calendars/mia-2025/guestbook", map[string]any{
		"sender_name": "Max",
		"content":     strings.Repeat("聖誕快樂!", 201),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGuestbook_Validation(t *testing.T) {
	app := newTestApp(t, testNow)
	app.createCalendar(calendarRequest())

	tests := []struct {
		name string
		body map[string]any
	}{
		{"empty sender", map[string]any{"sender_name": "", "content": "hi"}},
		{"markup-only sender", map[string]any{"sender_name": "<b></b>", "content": "hi"}},
		{"empty message", map[string]any{"sender_name": "Max", "content": "  "}},
		{"message too long", map[string]any{"sender_name": "Max", "content": strings.Repeat("x", 1001)}},
		{"sender too long", map[string]any{"sender_name": strings.Repeat("m", 61), "content": "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(http.MethodPost, "/api/v1/calendars/mia-2025/guestbook", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

// -----------------------------------------------------------------
// Reminder export
// -----------------------------------------------------------------

func TestGetReminder(t *testing.T) {
	app := newTestApp(t, testNow)
	app.createCalendar(calendarRequest())
	app.clearCookies()

	rec := app.do(http.MethodGet, "/api/v1/calendars/mia-2025/reminder.ics", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "mia-2025-countdown.ics")

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR"))
	assert.Equal(t, 10, strings.Count(body, "BEGIN:VEVENT"))
	assert.Contains(t, body, "DTSTART;VALUE=DATE:20251201")
	assert.Contains(t, body, "DTSTART;VALUE=DATE:20251210")
}
