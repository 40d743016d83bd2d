package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	// AccessTokenCookie holds the bearer token issued by the backend.
	AccessTokenCookie = "access_token"
	// DecryptedKeyCookie holds the transcript key for the signed-in account.
	DecryptedKeyCookie = "decrypted_key"
)

var (
	// ErrNoToken is returned when the request carries no access token.
	ErrNoToken = errors.New("no access token")
	// ErrTokenExpired is returned when the token's exp claim is in the past.
	ErrTokenExpired = errors.New("access token expired")
	// ErrUnauthorized is returned when the backend rejects the token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNoKey is returned when a transcript is requested without a decryption key.
	ErrNoKey = errors.New("no decryption key")
)

// IsAuthError reports whether err means the user has to sign in again.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNoToken) || errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNoKey)
}

// Claims is what the backend reports about a valid token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Session is the authentication state of one request. It is built by the Guard
// on every navigation and carried in the request context, never kept globally.
type Session struct {
	Token     string
	Key       string
	Subject   string
	ExpiresAt time.Time
}

// Authenticated reports whether the session carries a validated token.
func (s Session) Authenticated() bool { return s.Token != "" }

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session stored by WithSession.
func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

// AccessToken returns the access_token cookie, or "".
func AccessToken(r *http.Request) string { return cookieValue(r, AccessTokenCookie) }

// DecryptedKey returns the decrypted_key cookie, or "".
func DecryptedKey(r *http.Request) string { return cookieValue(r, DecryptedKeyCookie) }

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	v, err := url.PathUnescape(c.Value)
	if err != nil {
		return c.Value
	}
	return v
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// TokenFromRequest prefers the Authorization header over the cookie.
func TokenFromRequest(r *http.Request) string {
	if t := BearerToken(r); t != "" {
		return t
	}
	return AccessToken(r)
}

// UnverifiedExpiry reads the exp claim of a JWT without checking its signature.
// The backend remains the authority on validity; this only avoids a round trip
// for tokens that are already expired. Opaque tokens report ok=false.
func UnverifiedExpiry(token string) (exp time.Time, ok bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// JSONResponse writes a JSON response.
func JSONResponse(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
