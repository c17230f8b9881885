package auth

import (
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salesacademy/internal/models"
)

func testKeys(t *testing.T) ([]byte, []byte) {
	t.Helper()
	hashKey := make([]byte, 32)
	blockKey := make([]byte, 32)
	if _, err := rand.Read(hashKey); err != nil {
		t.Fatal(err)
	}
	if _, err := rand.Read(blockKey); err != nil {
		t.Fatal(err)
	}
	return hashKey, blockKey
}

func sessionRequest(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			sessionCookie = c
			break
		}
	}
	if sessionCookie == nil {
		t.Fatal("session cookie not found")
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(sessionCookie)
	return req
}

func TestSessionManager_SetAndReadClaims(t *testing.T) {
	hashKey, blockKey := testKeys(t)
	sm := NewSessionManager(hashKey, blockKey, false)

	w := httptest.NewRecorder()
	if err := sm.SetSession(w, Claims{UserID: 123, Role: models.RoleAdmin}); err != nil {
		t.Fatalf("SetSession() error = %v", err)
	}

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			sessionCookie = c
			break
		}
	}
	if sessionCookie == nil {
		t.Fatal("session cookie not found")
	}
	if !sessionCookie.HttpOnly {
		t.Error("cookie should be httpOnly")
	}
	if sessionCookie.SameSite != http.SameSiteLaxMode {
		t.Error("cookie should be SameSite=Lax")
	}
	if sessionCookie.Path != "/" {
		t.Errorf("cookie path = %q, want /", sessionCookie.Path)
	}
	if sessionCookie.MaxAge != 30*24*60*60 {
		t.Errorf("cookie MaxAge = %d, want 30 days", sessionCookie.MaxAge)
	}

	claims := sm.Identity(sessionRequest(t, w))
	if claims == nil {
		t.Fatal("Identity() = nil for valid cookie")
	}
	if claims.UserID != 123 {
		t.Errorf("UserID = %d, want 123", claims.UserID)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("Role = %s, want ADMIN", claims.Role)
	}
}

func TestSessionManager_NoCookie(t *testing.T) {
	hashKey, blockKey := testKeys(t)
	sm := NewSessionManager(hashKey, blockKey, false)

	req := httptest.NewRequest("GET", "/", nil)
	if claims := sm.Identity(req); claims != nil {
		t.Error("Identity() should be nil without cookie")
	}
}

func TestSessionManager_InvalidCookie(t *testing.T) {
	hashKey, blockKey := testKeys(t)
	sm := NewSessionManager(hashKey, blockKey, false)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "invalid-cookie-value"})

	if claims := sm.Identity(req); claims != nil {
		t.Error("Identity() should be nil for garbage cookie")
	}
}

func TestSessionManager_WrongKeys(t *testing.T) {
	hashKey, blockKey := testKeys(t)
	sm := NewSessionManager(hashKey, blockKey, false)

	w := httptest.NewRecorder()
	if err := sm.SetSession(w, Claims{UserID: 1, Role: models.RoleUser}); err != nil {
		t.Fatalf("SetSession() error = %v", err)
	}

	otherHash, otherBlock := testKeys(t)
	other := NewSessionManager(otherHash, otherBlock, false)

	if claims := other.Identity(sessionRequest(t, w)); claims != nil {
		t.Error("Identity() should reject a cookie signed with different keys")
	}
}

func TestSessionManager_Expiry(t *testing.T) {
	hashKey, blockKey := testKeys(t)
	sm := newSessionManager(hashKey, blockKey, false, time.Second)

	w := httptest.NewRecorder()
	if err := sm.SetSession(w, Claims{UserID: 1, Role: models.RoleUser}); err != nil {
		t.Fatalf("SetSession() error = %v", err)
	}

	req := sessionRequest(t, w)
	if claims := sm.Identity(req); claims == nil {
		t.Fatal("fresh session should verify")
	}

	time.Sleep(2500 * time.Millisecond)

	if claims := sm.Identity(req); claims != nil {
		t.Error("expired session should be rejected despite a valid signature")
	}
}

func TestSessionManager_ClearSession(t *testing.T) {
	hashKey, blockKey := testKeys(t)
	sm := NewSessionManager(hashKey, blockKey, false)

	w := httptest.NewRecorder()
	sm.ClearSession(w)

	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			if c.MaxAge >= 0 {
				t.Error("ClearSession should set MaxAge < 0")
			}
			return
		}
	}

	t.Fatal("session cookie not found in response")
}
