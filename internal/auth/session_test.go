package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type fakeValidator struct {
	calls  int
	claims Claims
	err    error
}

func (f *fakeValidator) ValidateToken(ctx context.Context, token string) (Claims, error) {
	f.calls++
	return f.claims, f.err
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func TestBearerToken(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"Bearer abc":      "abc",
		"bearer abc":      "abc",
		"BEARER  abc ":    "abc",
		"Basic dXNlcjpw":  "",
		"Bearer":          "",
		"Token something": "",
	}
	for header, want := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		if got := BearerToken(r); got != want {
			t.Errorf("BearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestCookieReaders(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "tok"})
	r.AddCookie(&http.Cookie{Name: DecryptedKeyCookie, Value: "abc%2Bdef+%3D%3D"})
	if got := AccessToken(r); got != "tok" {
		t.Errorf("AccessToken = %q", got)
	}
	if got := DecryptedKey(r); got != "abc+def+==" {
		t.Errorf("DecryptedKey = %q, want unescaped value", got)
	}
	if got := TokenFromRequest(r); got != "tok" {
		t.Errorf("TokenFromRequest = %q, want cookie", got)
	}
	r.Header.Set("Authorization", "Bearer header-tok")
	if got := TokenFromRequest(r); got != "header-tok" {
		t.Errorf("TokenFromRequest = %q, want header", got)
	}
	if got := DecryptedKey(httptest.NewRequest(http.MethodGet, "/", nil)); got != "" {
		t.Errorf("missing cookie = %q", got)
	}
}

func TestUnverifiedExpiry(t *testing.T) {
	exp := now.Add(time.Hour)
	got, ok := UnverifiedExpiry(signedToken(t, exp))
	if !ok || !got.Equal(exp) {
		t.Errorf("UnverifiedExpiry = %v, %v; want %v", got, ok, exp)
	}
	if _, ok := UnverifiedExpiry("opaque-token"); ok {
		t.Error("opaque token should not report an expiry")
	}
}

func TestGuardCheck(t *testing.T) {
	v := &fakeValidator{claims: Claims{Subject: "user-1", ExpiresAt: now.Add(time.Hour)}}
	g := &Guard{Validator: v, Now: func() time.Time { return now }}

	r := httptest.NewRequest(http.MethodGet, "/meetings", nil)
	if _, err := g.Check(r); !errors.Is(err, ErrNoToken) {
		t.Errorf("no token: err = %v", err)
	}

	expired := httptest.NewRequest(http.MethodGet, "/meetings", nil)
	expired.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: signedToken(t, now.Add(-time.Minute))})
	if _, err := g.Check(expired); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expired: err = %v", err)
	}
	if v.calls != 0 {
		t.Errorf("validator called %d times for local failures", v.calls)
	}

	ok := httptest.NewRequest(http.MethodGet, "/meetings", nil)
	ok.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "opaque"})
	ok.AddCookie(&http.Cookie{Name: DecryptedKeyCookie, Value: "0123456789abcdef"})
	sess, err := g.Check(ok)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !sess.Authenticated() || sess.Subject != "user-1" || sess.Key != "0123456789abcdef" {
		t.Errorf("session = %+v", sess)
	}

	v.err = ErrUnauthorized
	if _, err := g.Check(ok); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("rejected: err = %v", err)
	}
	if v.calls != 2 {
		t.Errorf("validator calls = %d, want one per navigation", v.calls)
	}
}

func TestGuardPages(t *testing.T) {
	v := &fakeValidator{claims: Claims{Subject: "user-1"}}
	g := &Guard{Validator: v, Now: func() time.Time { return now }}
	var seen Session
	h := g.Pages(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = SessionFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meetings/4?tab=summary", nil))
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?next=%2Fmeetings%2F4%3Ftab%3Dsummary" {
		t.Errorf("Location = %q", loc)
	}

	r := httptest.NewRequest(http.MethodGet, "/meetings", nil)
	r.Header.Set("Authorization", "Bearer opaque")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	if rec.Code != http.StatusOK || seen.Subject != "user-1" {
		t.Errorf("status = %d, session = %+v", rec.Code, seen)
	}

	v.err = errors.New("dial tcp: connection refused")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("backend down: status = %d, want 502", rec.Code)
	}
}

func TestGuardAPI(t *testing.T) {
	g := &Guard{Validator: &fakeValidator{err: ErrUnauthorized}}
	h := g.API(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without a session")
	}))
	r := httptest.NewRequest(http.MethodGet, "/api/meetings", nil)
	r.Header.Set("Authorization", "Bearer opaque")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Errorf("body = %s", rec.Body.String())
	}

	var deniedWith error
	g.Denied = func(w http.ResponseWriter, r *http.Request, err error) {
		deniedWith = err
		w.WriteHeader(http.StatusTeapot)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	if rec.Code != http.StatusTeapot || !errors.Is(deniedWith, ErrUnauthorized) {
		t.Errorf("custom Denied not used: %d %v", rec.Code, deniedWith)
	}
}

func TestIsAuthError(t *testing.T) {
	for _, err := range []error{ErrNoToken, ErrTokenExpired, ErrUnauthorized, ErrNoKey} {
		if !IsAuthError(err) {
			t.Errorf("IsAuthError(%v) = false", err)
		}
	}
	if IsAuthError(errors.New("timeout")) {
		t.Error("IsAuthError(timeout) = true")
	}
}
