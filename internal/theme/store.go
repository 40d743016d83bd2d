package theme

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/voiceflow/transcript-web/internal/crypto"
)

const (
	sessionName = "prefs"
	themeKey    = "theme"
	localeKey   = "locale"
	oneYear     = 365 * 24 * 60 * 60
)

// Store keeps UI preferences in a signed and encrypted cookie.
type Store struct {
	store sessions.Store
}

// NewStore derives the cookie hash and block keys from secret.
func NewStore(secret string, secure bool) (*Store, error) {
	hashKey, err := crypto.DeriveKey([]byte(secret), "prefs-cookie-hash", 32)
	if err != nil {
		return nil, err
	}
	blockKey, err := crypto.DeriveKey([]byte(secret), "prefs-cookie-block", 32)
	if err != nil {
		return nil, err
	}
	cs := sessions.NewCookieStore(hashKey, blockKey)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   oneYear,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{store: cs}, nil
}

// Theme returns the saved theme, or "" when none is saved or the cookie is unreadable.
func (s *Store) Theme(r *http.Request) string {
	return s.value(r, themeKey)
}

// SetTheme saves t.
func (s *Store) SetTheme(w http.ResponseWriter, r *http.Request, t Theme) error {
	return s.set(w, r, themeKey, string(t))
}

// Locale returns the saved locale, or "".
func (s *Store) Locale(r *http.Request) string {
	return s.value(r, localeKey)
}

// SetLocale saves locale.
func (s *Store) SetLocale(w http.ResponseWriter, r *http.Request, locale string) error {
	return s.set(w, r, localeKey, locale)
}

func (s *Store) value(r *http.Request, key string) string {
	// A cookie signed with an old secret yields an error and a fresh session;
	// either way there is no saved value.
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		return ""
	}
	v, _ := sess.Values[key].(string)
	return v
}

func (s *Store) set(w http.ResponseWriter, r *http.Request, key, value string) error {
	// Get returns a usable new session alongside a decode error.
	sess, _ := s.store.Get(r, sessionName)
	sess.Values[key] = value
	return sess.Save(r, w)
}
