package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/instantcheese/adventcal/internal/advent"
	"github.com/instantcheese/adventcal/internal/auth"
	"github.com/instantcheese/adventcal/internal/config"
	"github.com/instantcheese/adventcal/internal/content"
	"github.com/instantcheese/adventcal/internal/database"
	"github.com/instantcheese/adventcal/internal/ical"
	"github.com/instantcheese/adventcal/internal/logger"
	"github.com/instantcheese/adventcal/internal/style"
)

// Input limits for visitor-supplied guestbook fields.
const (
	maxSenderNameLen = 60
	maxMessageLen    = 1000
	guestbookLimit   = 200
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db       *database.DB
	cfg      *config.Config
	sessions *auth.Sessions
	loc      *time.Location
	logger   *slog.Logger
	now      func() time.Time // injected clock; the day gate never reads the wall clock itself
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, cfg *config.Config, sessions *auth.Sessions, loc *time.Location, logger *slog.Logger) *Handlers {
	return &Handlers{
		db:       db,
		cfg:      cfg,
		sessions: sessions,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the clock, for tests.
func (h *Handlers) WithClock(now func() time.Time) *Handlers {
	h.now = now
	return h
}

// log returns the handler logger tagged with the request id, when one is in
// the request context.
func (h *Handlers) log(r *http.Request) *slog.Logger {
	if id := logger.RequestID(r.Context()); id != "" {
		return h.logger.With(slog.String("request_id", id))
	}
	return h.logger
}

// =============================================================================
// Health
// =============================================================================

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Health(ctx); err != nil {
		h.log(r).Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	stats, err := h.db.GetStats(ctx)
	if err != nil {
		h.log(r).Warn("health stats failed", slog.Any("error", err))
		WriteSuccess(w, map[string]string{"status": "healthy"})
		return
	}

	WriteSuccess(w, map[string]any{
		"status": "healthy",
		"stats":  stats,
	})
}

// =============================================================================
// Calendar creation and profile
// =============================================================================

type createCalendarRequest struct {
	Slug          string `json:"slug"`
	RecipientName string `json:"recipient_name"`
	StartDate     string `json:"start_date"` // YYYY-MM-DD
	DayCount      int    `json:"day_count"`
	AdminCode     string `json:"admin_code"`
	AccessCode    string `json:"access_code,omitempty"` // empty: anyone may view
	ThemeColor    string `json:"theme_color,omitempty"`
	Background    string `json:"background,omitempty"`
	CardStyle     string `json:"card_style,omitempty"`
}

// calendarProfile is the public view of a calendar. Code hashes never
// appear here; styles are returned structured (clients should not re-split
// the stored strings).
type calendarProfile struct {
	ID            string           `json:"id"`
	Slug          string           `json:"slug"`
	RecipientName string           `json:"recipient_name"`
	StartDate     string           `json:"start_date"`
	DayCount      int              `json:"day_count"`
	HasAccessCode bool             `json:"has_access_code"`
	ThemeColor    string           `json:"theme_color"`
	Background    style.Background `json:"background"`
	CardStyle     style.Card       `json:"card_style"`
	IsAdmin       bool             `json:"is_admin"`
	HasAccess     bool             `json:"has_access"`
}

// CreateCalendar handles POST /api/v1/calendars
func (h *Handlers) CreateCalendar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createCalendarRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if !slugPattern.MatchString(req.Slug) || len(req.Slug) > 64 {
		WriteBadRequest(w, "slug must be lowercase letters, digits and hyphens")
		return
	}
	if req.RecipientName == "" {
		WriteBadRequest(w, "recipient_name is required")
		return
	}
	if req.DayCount < database.MinDayCount || req.DayCount > database.MaxDayCount {
		WriteBadRequest(w, fmt.Sprintf("day_count must be between %d and %d",
			database.MinDayCount, database.MaxDayCount))
		return
	}
	if len(req.AdminCode) < 4 {
		WriteBadRequest(w, "admin_code must be at least 4 characters")
		return
	}
	if _, err := advent.ParseStartDate(req.StartDate, h.loc); err != nil {
		WriteBadRequest(w, fmt.Sprintf("start_date must be a YYYY-MM-DD date, got %q", req.StartDate))
		return
	}

	adminHash, err := auth.HashCode(req.AdminCode)
	if err != nil {
		h.log(r).Error("hash admin code", slog.Any("error", err))
		WriteInternalError(w, "Failed to create calendar")
		return
	}

	var accessHash *string
	if req.AccessCode != "" {
		hash, err := auth.HashCode(req.AccessCode)
		if err != nil {
			h.log(r).Error("hash access code", slog.Any("error", err))
			WriteInternalError(w, "Failed to create calendar")
			return
		}
		accessHash = &hash
	}

	cal := &database.Calendar{
		Slug:           req.Slug,
		RecipientName:  req.RecipientName,
		StartDate:      req.StartDate,
		AdminCodeHash:  adminHash,
		AccessCodeHash: accessHash,
		ThemeColor:     defaultStr(req.ThemeColor, "#b91c1c"),
		Background:     style.ParseBackground(defaultStr(req.Background, style.DefaultBackground)).Encode(),
		CardStyle:      style.ParseCard(defaultStr(req.CardStyle, style.DefaultCard)).Encode(),
	}

	if err := h.db.CreateCalendar(ctx, cal, req.DayCount); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			WriteConflict(w, fmt.Sprintf("Slug %q is already taken", req.Slug))
			return
		}
		h.log(r).Error("create calendar", slog.Any("error", err))
		WriteInternalError(w, "Failed to create calendar")
		return
	}

	// The creator is the admin; log them in right away.
	if err := h.sessions.GrantAdmin(w, cal.Slug); err != nil {
		h.log(r).Error("grant admin session", slog.Any("error", err))
	}

	h.log(r).Info("calendar created",
		slog.String("slug", cal.Slug),
		slog.Int("day_count", req.DayCount),
	)

	WriteCreated(w, h.profile(cal, req.DayCount, true, false))
}

// GetCalendar handles GET /api/v1/calendars/{slug}
func (h *Handlers) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cal, ok := h.calendarFromRequest(w, r)
	if !ok {
		return
	}

	days, err := h.db.GetDaysByCalendar(ctx, cal.ID)
	if err != nil {
		h.log(r).Error("get calendar days", slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve calendar")
		return
	}

	isAdmin := h.sessions.IsAdmin(r, cal.Slug)
	hasAccess := h.sessions.HasGuestAccess(r, cal.Slug)

	WriteSuccess(w, h.profile(cal, len(days), isAdmin, hasAccess))
}

func (h *Handlers) profile(cal *database.Calendar, dayCount int, isAdmin, hasAccess bool) calendarProfile {
	return calendarProfile{
		ID:            cal.ID,
		Slug:          cal.Slug,
		RecipientName: cal.RecipientName,
		StartDate:     cal.StartDate,
		DayCount:      dayCount,
		HasAccessCode: cal.HasAccessCode(),
		ThemeColor:    cal.ThemeColor,
		Background:    style.ParseBackground(cal.Background),
		CardStyle:     style.ParseCard(cal.CardStyle),
		IsAdmin:       isAdmin,
		HasAccess:     hasAccess,
	}
}

// =============================================================================
// Day views
// =============================================================================

// dayResponse augments the core view-model with rendered HTML for the
// Markdown content types. HTML is only ever present on unlocked days.
type dayResponse struct {
	advent.DayView
	HTML string `json:"html,omitempty"`
}

// GetDays handles GET /api/v1/calendars/{slug}/days
func (h *Handlers) GetDays(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cal, ok := h.calendarFromRequest(w, r)
	if !ok {
		return
	}

	role := h.sessions.Role(r, cal.Slug, cal.HasAccessCode())
	if role == advent.RoleGuestLocked {
		WriteUnauthorized(w, "This calendar requires an access code", "ACCESS_REQUIRED")
		return
	}

	start, err := advent.ParseStartDate(cal.StartDate, h.loc)
	if err != nil {
		// A stored calendar with a bad start date is a data problem we want
		// surfaced, not papered over with a default.
		h.log(r).Error("calendar misconfigured",
			slog.String("slug", cal.Slug),
			slog.Any("error", err),
		)
		WriteError(w, http.StatusInternalServerError, "Calendar is misconfigured", "CONFIG_ERROR")
		return
	}

	rows, err := h.db.GetDaysByCalendar(ctx, cal.ID)
	if err != nil {
		h.log(r).Error("get calendar days", slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve days")
		return
	}

	views := advent.Assemble(rows, start, h.now(), h.loc, role)

	resp := make([]dayResponse, 0, len(views))
	for _, v := range views {
		item := dayResponse{DayView: v}
		if !v.Locked && v.Content != nil && content.IsMarkdownType(v.Type) {
			html, err := content.RenderMarkdown(*v.Content)
			if err != nil {
				h.log(r).Warn("render day content",
					slog.Int("day", v.Day),
					slog.Any("error", err),
				)
			} else {
				item.HTML = html
			}
		}
		resp = append(resp, item)
	}

	WriteSuccess(w, map[string]any{
		"slug": cal.Slug,
		"role": role.String(),
		"days": resp,
	})
}

// UpdateDay handles PUT /api/v1/calendars/{slug}/days/{day}
func (h *Handlers) UpdateDay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cal, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	dayNumber, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil || dayNumber < 1 {
		WriteBadRequest(w, "day must be a positive integer")
		return
	}

	var req struct {
		Type    database.ContentType `json:"type"`
		Title   *string              `json:"title"`
		Content *string              `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if !req.Type.IsValid() {
		WriteBadRequest(w, fmt.Sprintf("Unknown content type %q", req.Type))
		return
	}

	if err := h.db.UpdateDay(ctx, cal.ID, dayNumber, req.Type, req.Title, req.Content); err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, fmt.Sprintf("Day %d does not exist on this calendar", dayNumber))
			return
		}
		h.log(r).Error("update day", slog.Any("error", err))
		WriteInternalError(w, "Failed to update day")
		return
	}

	WriteSuccess(w, map[string]any{"slug": cal.Slug, "day": dayNumber})
}

// =============================================================================
// Settings
// =============================================================================

// UpdateSettings handles PUT /api/v1/calendars/{slug}/settings
func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cal, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req struct {
		RecipientName string            `json:"recipient_name"`
		ThemeColor    string            `json:"theme_color"`
		Background    *style.Background `json:"background"`
		CardStyle     *style.Card       `json:"card_style"`
	}
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if req.RecipientName == "" {
		WriteBadRequest(w, "recipient_name is required")
		return
	}

	background := cal.Background
	if req.Background != nil {
		background = req.Background.Encode()
	}
	cardStyle := cal.CardStyle
	if req.CardStyle != nil {
		cardStyle = req.CardStyle.Encode()
	}

	err := h.db.UpdateCalendarSettings(ctx, cal.Slug,
		req.RecipientName,
		defaultStr(req.ThemeColor, cal.ThemeColor),
		background,
		cardStyle,
	)
	if err != nil {
		h.log(r).Error("update calendar settings", slog.Any("error", err))
		WriteInternalError(w, "Failed to update settings")
		return
	}

	WriteSuccess(w, map[string]string{"slug": cal.Slug})
}

// UpdateCodes handles PUT /api/v1/calendars/{slug}/codes
func (h *Handlers) UpdateCodes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cal, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req struct {
		AdminCode  string `json:"admin_code"`
		AccessCode string `json:"access_code"` // empty removes guest protection
	}
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if len(req.AdminCode) < 4 {
		WriteBadRequest(w, "admin_code must be at least 4 characters")
		return
	}

	adminHash, err := auth.HashCode(req.AdminCode)
	if err != nil {
		h.log(r).Error("hash admin code", slog.Any("error", err))
		WriteInternalError(w, "Failed to update codes")
		return
	}

	var accessHash *string
	if req.AccessCode != "" {
		hash, err := auth.HashCode(req.AccessCode)
		if err != nil {
			h.log(r).Error("hash access code", slog.Any("error", err))
			WriteInternalError(w, "Failed to update codes")
			return
		}
		accessHash = &hash
	}

	if err := h.db.UpdateCalendarCodes(ctx, cal.Slug, adminHash, accessHash); err != nil {
		h.log(r).Error("update calendar codes", slog.Any("error", err))
		WriteInternalError(w, "Failed to update codes")
		return
	}

	h.log(r).Info("calendar codes rotated", slog.String("slug", cal.Slug))
	WriteSuccess(w, map[string]any{
		"slug":            cal.Slug,
		"has_access_code": accessHash != nil,
	})
}

// =============================================================================
// Role verification
// =============================================================================

type verifyRequest struct {
	Code string `json:"code"`
}

// VerifyAccess handles POST /api/v1/calendars/{slug}/access
func (h *Handlers) VerifyAccess(w http.ResponseWriter, r *http.Request) {
	cal, ok := h.calendarFromRequest(w, r)
	if !ok {
		return
	}

	var req verifyRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if !cal.HasAccessCode() {
		// Nothing to verify; the calendar is public.
		WriteSuccess(w, map[string]bool{"granted": true})
		return
	}

	match, err := auth.VerifyCode(req.Code, *cal.AccessCodeHash)
	if err != nil {
		h.log(r).Error("verify access code", slog.String("slug", cal.Slug), slog.Any("error", err))
		WriteInternalError(w, "Failed to verify code")
		return
	}
	if !match {
		h.log(r).Warn("access code rejected",
			slog.String("slug", cal.Slug),
			slog.String("remote_addr", r.RemoteAddr),
		)
		WriteUnauthorized(w, "Wrong access code")
		return
	}

	if err := h.sessions.GrantGuest(w, cal.Slug); err != nil {
		h.log(r).Error("grant guest session", slog.Any("error", err))
		WriteInternalError(w, "Failed to create session")
		return
	}

	WriteSuccess(w, map[string]bool{"granted": true})
}

// VerifyAdmin handles POST /api/v1/calendars/{slug}/admin
func (h *Handlers) VerifyAdmin(w http.ResponseWriter, r *http.Request) {
	cal, ok := h.calendarFromRequest(w, r)
	if !ok {
		return
	}

	var req verifyRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	match, err := auth.VerifyCode(req.Code, cal.AdminCodeHash)
	if err != nil {
		h.log(r).Error("verify admin code", slog.String("slug", cal.Slug), slog.Any("error", err))
		WriteInternalError(w, "Failed to verify code")
		return
	}
	if !match {
		h.log(r).Warn("admin code rejected",
			slog.String("slug", cal.Slug),
			slog.String("remote_addr", r.RemoteAddr),
		)
		WriteUnauthorized(w, "Wrong admin code")
		return
	}

	if err := h.sessions.GrantAdmin(w, cal.Slug); err != nil {
		h.log(r).Error("grant admin session", slog.Any("error", err))
		WriteInternalError(w, "Failed to create session")
		return
	}

	WriteSuccess(w, map[string]bool{"granted": true})
}

// Logout handles POST /api/v1/calendars/{slug}/logout
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	cal, ok := h.calendarFromRequest(w, r)
	if !ok {
		return
	}

	h.sessions.Clear(w, cal.Slug)
	WriteSuccess(w, map[string]string{"slug": cal.Slug})
}

// =============================================================================
// Guestbook
// =============================================================================

// GetGuestbook handles GET /api/v1/calendars/{slug}/guestbook
func (h *Handlers) GetGuestbook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cal, ok := h.calendarFromRequest(w, r)
	if !ok {
		return
	}

	if role := h.sessions.Role(r, cal.Slug, cal.HasAccessCode()); role == advent.RoleGuestLocked {
		WriteUnauthorized(w, "This calendar requires an access code", "ACCESS_REQUIRED")
		return
	}

	msgs, err := h.db.GetMessagesByCalendar(ctx, cal.ID, guestbookLimit)
	if err != nil {
		h.log(r).Error("get guestbook messages", slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve guestbook")
		return
	}

	WriteSuccess(w, map[string]any{
		"slug":     cal.Slug,
		"messages": msgs,
	})
}

// AddGuestbookMessage handles POST /api/v1/calendars/{slug}/guestbook
func (h *Handlers) AddGuestbookMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cal, ok := h.calendarFromRequest(w, r)
	if !ok {
		return
	}

	if role := h.sessions.Role(r, cal.Slug, cal.HasAccessCode()); role == advent.RoleGuestLocked {
		WriteUnauthorized(w, "This calendar requires an access code", "ACCESS_REQUIRED")
		return
	}

	var req struct {
		SenderName string `json:"sender_name"`
		Content    string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Visitor input: strip markup, then enforce limits on what's left.
	// Limits count characters, not bytes.
	sender := content.SanitizeText(req.SenderName)
	body := content.SanitizeText(req.Content)

	if sender == "" || utf8.RuneCountInString(sender) > maxSenderNameLen {
		WriteBadRequest(w, fmt.Sprintf("sender_name must be 1-%d characters", maxSenderNameLen))
		return
	}
	if body == "" || utf8.RuneCountInString(body) > maxMessageLen {
		WriteBadRequest(w, fmt.Sprintf("content must be 1-%d characters", maxMessageLen))
		return
	}

	msg := &database.GuestbookMessage{
		CalendarID: cal.ID,
		SenderName: sender,
		Content:    body,
	}
	if err := h.db.CreateMessage(ctx, msg); err != nil {
		h.log(r).Error("create guestbook message", slog.Any("error", err))
		WriteInternalError(w, "Failed to save message")
		return
	}

	WriteCreated(w, msg)
}

// =============================================================================
// Reminder export
// =============================================================================

// GetReminder handles GET /api/v1/calendars/{slug}/reminder.ics
func (h *Handlers) GetReminder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cal, ok := h.calendarFromRequest(w, r)
	if !ok {
		return
	}

	start, err := advent.ParseStartDate(cal.StartDate, h.loc)
	if err != nil {
		h.log(r).Error("calendar misconfigured",
			slog.String("slug", cal.Slug),
			slog.Any("error", err),
		)
		WriteError(w, http.StatusInternalServerError, "Calendar is misconfigured", "CONFIG_ERROR")
		return
	}

	days, err := h.db.GetDaysByCalendar(ctx, cal.ID)
	if err != nil {
		h.log(r).Error("get calendar days", slog.Any("error", err))
		WriteInternalError(w, "Failed to build reminder")
		return
	}

	ics := ical.Format(ical.Reminder{
		CalendarID:    cal.ID,
		RecipientName: cal.RecipientName,
		Slug:          cal.Slug,
		StartDate:     start,
		DayCount:      len(days),
		Now:           h.now(),
	})

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", cal.Slug+"-countdown.ics"))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(ics))
}

// =============================================================================
// Helpers
// =============================================================================

// calendarFromRequest loads the calendar named by the slug URL parameter,
// writing a 404 when it doesn't exist.
func (h *Handlers) calendarFromRequest(w http.ResponseWriter, r *http.Request) (*database.Calendar, bool) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		WriteBadRequest(w, "slug is required")
		return nil, false
	}

	cal, err := h.db.GetCalendarBySlug(r.Context(), slug)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Calendar not found")
			return nil, false
		}
		h.log(r).Error("get calendar", slog.String("slug", slug), slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve calendar")
		return nil, false
	}

	return cal, true
}

// requireAdmin loads the calendar and checks the admin session, writing the
// error response itself when either fails.
func (h *Handlers) requireAdmin(w http.ResponseWriter, r *http.Request) (*database.Calendar, bool) {
	cal, ok := h.calendarFromRequest(w, r)
	if !ok {
		return nil, false
	}

	if !h.sessions.IsAdmin(r, cal.Slug) {
		WriteUnauthorized(w, "Admin session required", "ADMIN_REQUIRED")
		return nil, false
	}

	return cal, true
}

// decodeJSON decodes a JSON request body.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	defer r.Body.Close()

	return json.NewDecoder(r.Body).Decode(v)
}

// defaultStr returns s, or fallback when s is empty.
func defaultStr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
