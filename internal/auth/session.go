package auth

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"

	"salesacademy/internal/models"
)

const (
	// CookieName is the fixed session cookie name.
	CookieName = "sf_token"

	sessionMaxAge = 30 * 24 * time.Hour
)

// Claims is everything a session token carries. Authorization is a pure
// function of these claims; there is no server-side revocation.
type Claims struct {
	UserID uint        `json:"user_id"`
	Role   models.Role `json:"role"`
}

// SessionManager signs and verifies stateless session cookies.
type SessionManager struct {
	sc       *securecookie.SecureCookie
	isSecure bool
	maxAge   time.Duration
}

// NewSessionManager builds a manager from the configured keys. Cookies
// carry a 30-day absolute expiry enforced at decode time.
func NewSessionManager(hashKey, blockKey []byte, isSecure bool) *SessionManager {
	return newSessionManager(hashKey, blockKey, isSecure, sessionMaxAge)
}

func newSessionManager(hashKey, blockKey []byte, isSecure bool, maxAge time.Duration) *SessionManager {
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(maxAge.Seconds()))

	return &SessionManager{
		sc:       sc,
		isSecure: isSecure,
		maxAge:   maxAge,
	}
}

// SetSession issues a signed session cookie for the given claims.
func (sm *SessionManager) SetSession(w http.ResponseWriter, claims Claims) error {
	encoded, err := sm.sc.Encode(CookieName, claims)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(sm.maxAge.Seconds()),
		Secure:   sm.isSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Identity reads and verifies the session cookie. A missing cookie, a bad
// signature and an expired token all come back as plain nil; callers
// cannot tell the cases apart.
func (sm *SessionManager) Identity(r *http.Request) *Claims {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}

	var claims Claims
	if err := sm.sc.Decode(CookieName, cookie.Value, &claims); err != nil {
		return nil
	}

	return &claims
}

// ClearSession removes the session cookie.
func (sm *SessionManager) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   sm.isSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
