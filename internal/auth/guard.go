package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Validator checks an access token with the backend.
type Validator interface {
	ValidateToken(ctx context.Context, token string) (Claims, error)
}

// Guard authenticates each navigation by asking the Validator about the
// request's token.
type Guard struct {
	Validator Validator
	Logger    *slog.Logger
	// LoginPath is where Pages redirects unauthenticated users. Default "/login".
	LoginPath string
	// Denied writes the API failure response. Default: JSON {"error": ...}.
	Denied func(w http.ResponseWriter, r *http.Request, err error)
	Now    func() time.Time
}

// Check builds the Session for r or explains why there is none.
func (g *Guard) Check(r *http.Request) (Session, error) {
	token := TokenFromRequest(r)
	if token == "" {
		return Session{}, ErrNoToken
	}
	if exp, ok := UnverifiedExpiry(token); ok && !exp.After(g.now()) {
		return Session{}, ErrTokenExpired
	}
	claims, err := g.Validator.ValidateToken(r.Context(), token)
	if err != nil {
		return Session{}, err
	}
	return Session{
		Token:     token,
		Key:       DecryptedKey(r),
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// Pages guards page routes: unauthenticated users are redirected to the login
// page with the original path in ?next=.
func (g *Guard) Pages(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := g.Check(r)
		if err != nil {
			if !IsAuthError(err) {
				g.logger().Error("session validation failed", "path", r.URL.Path, "err", err)
				http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
				return
			}
			g.logger().Debug("redirecting to login", "path", r.URL.Path, "reason", err)
			http.Redirect(w, r, g.loginPath()+"?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// API guards JSON routes: failures are answered by Denied instead of redirecting.
func (g *Guard) API(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := g.Check(r)
		if err != nil {
			if !IsAuthError(err) {
				g.logger().Error("session validation failed", "path", r.URL.Path, "err", err)
			}
			g.denied(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

func (g *Guard) denied(w http.ResponseWriter, r *http.Request, err error) {
	if g.Denied != nil {
		g.Denied(w, r, err)
		return
	}
	status := http.StatusBadGateway
	if IsAuthError(err) {
		status = http.StatusUnauthorized
	}
	JSONResponse(w, status, map[string]string{"error": http.StatusText(status)})
}

func (g *Guard) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *Guard) loginPath() string {
	if g.LoginPath != "" {
		return g.LoginPath
	}
	return "/login"
}

func (g *Guard) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}
