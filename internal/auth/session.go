package auth

import (
	"crypto/rand"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/instantcheese/adventcal/internal/advent"
	"github.com/instantcheese/adventcal/internal/config"
)

// Cookie name prefixes. Sessions are scoped per slug: holding the admin
// cookie for one calendar grants nothing on another.
const (
	adminCookiePrefix  = "admin-"
	accessCookiePrefix = "access-"
)

// claim is the sealed cookie payload.
type claim struct {
	Slug      string `json:"slug"`
	Role      string `json:"role"` // "admin" or "guest"
	ExpiresAt int64  `json:"exp"`  // unix seconds
}

// Sessions seals and verifies the per-slug role cookies.
type Sessions struct {
	sc     *securecookie.SecureCookie
	secure bool             // set the Secure flag on issued cookies
	now    func() time.Time // injected for tests
}

// NewSessions builds a session manager from configuration. Missing keys
// (development only; Validate enforces them in production) are replaced with
// random per-process keys, so sessions reset on restart.
func NewSessions(cfg *config.Config) *Sessions {
	hashKey := []byte(cfg.SessionHashKey)
	if len(hashKey) == 0 {
		hashKey = randomKey(32)
	}
	blockKey := []byte(cfg.SessionBlockKey)
	if len(blockKey) == 0 {
		blockKey = randomKey(32)
	}

	sc := securecookie.New(hashKey, blockKey)
	sc.SetSerializer(securecookie.JSONEncoder{})

	return &Sessions{
		sc:     sc,
		secure: cfg.IsProduction(),
		now:    time.Now,
	}
}

// WithClock replaces the clock, for tests.
func (s *Sessions) WithClock(now func() time.Time) *Sessions {
	s.now = now
	return s
}

// GrantAdmin issues the admin cookie for slug.
func (s *Sessions) GrantAdmin(w http.ResponseWriter, slug string) error {
	return s.grant(w, adminCookiePrefix+slug, slug, "admin", config.AdminSessionTTL)
}

// GrantGuest issues the guest access cookie for slug.
func (s *Sessions) GrantGuest(w http.ResponseWriter, slug string) error {
	return s.grant(w, accessCookiePrefix+slug, slug, "guest", config.GuestSessionTTL)
}

func (s *Sessions) grant(w http.ResponseWriter, name, slug, role string, ttl time.Duration) error {
	c := claim{
		Slug:      slug,
		Role:      role,
		ExpiresAt: s.now().Add(ttl).Unix(),
	}

	encoded, err := s.sc.Encode(name, c)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires both role cookies for slug.
func (s *Sessions) Clear(w http.ResponseWriter, slug string) {
	for _, name := range []string{adminCookiePrefix + slug, accessCookiePrefix + slug} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// IsAdmin reports whether the request carries a valid admin cookie for slug.
func (s *Sessions) IsAdmin(r *http.Request, slug string) bool {
	return s.valid(r, adminCookiePrefix+slug, slug, "admin")
}

// HasGuestAccess reports whether the request carries a valid guest cookie
// for slug.
func (s *Sessions) HasGuestAccess(r *http.Request, slug string) bool {
	return s.valid(r, accessCookiePrefix+slug, slug, "guest")
}

func (s *Sessions) valid(r *http.Request, name, slug, role string) bool {
	cookie, err := r.Cookie(name)
	if err != nil {
		return false
	}

	var c claim
	if err := s.sc.Decode(name, cookie.Value, &c); err != nil {
		return false
	}

	if c.Slug != slug || c.Role != role {
		return false
	}
	return s.now().Unix() < c.ExpiresAt
}

// Role derives the single viewer role for a request. Admin wins over guest;
// for unprotected calendars every visitor is a guest with access.
func (s *Sessions) Role(r *http.Request, slug string, protected bool) advent.Role {
	switch {
	case s.IsAdmin(r, slug):
		return advent.RoleAdmin
	case !protected, s.HasGuestAccess(r, slug):
		return advent.RoleGuestWithAccess
	default:
		return advent.RoleGuestLocked
	}
}

func randomKey(n int) []byte {
	key := make([]byte, n)
	if _, err := rand.Read(key); err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// nothing sensible to do but stop.
		panic("auth: cannot read random key: " + err.Error())
	}
	return key
}
