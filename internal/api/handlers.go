package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/voiceflow/transcript-web/internal/auth"
	"github.com/voiceflow/transcript-web/internal/codec"
	"github.com/voiceflow/transcript-web/internal/theme"
)

// unavailableMeeting stands in for a list entry that could not be decoded.
type unavailableMeeting struct {
	ID    int64  `json:"id"`
	Error string `json:"error"`
}

// listMeetings returns every meeting of the account, decoded with the
// session's key. One bad envelope does not fail the whole list.
func (s *Server) listMeetings(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFrom(r.Context())
	if sess.Key == "" {
		s.writeError(w, r, auth.ErrNoKey)
		return
	}
	refs, err := s.Meetings.ListMeetings(r.Context(), sess.Token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	unavailable := s.Catalog.T(s.locale(r), "meetingUnavailable", nil)
	out := make([]any, 0, len(refs))
	for _, ref := range refs {
		m, err := s.Codec.Decode(ref.EncryptedData, sess.Key)
		if err != nil {
			s.Logger.Warn("meeting not decodable", "id", ref.ID, "kind", codec.KindOf(err).String())
			out = append(out, unavailableMeeting{ID: ref.ID, Error: unavailable})
			continue
		}
		out = append(out, m)
	}
	auth.JSONResponse(w, http.StatusOK, out)
}

// getMeeting returns one decoded meeting.
func (s *Server) getMeeting(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		s.writeError(w, r, fmt.Errorf("meeting id %q: %w", mux.Vars(r)["id"], errBadRequest))
		return
	}
	sess, _ := auth.SessionFrom(r.Context())
	if sess.Key == "" {
		s.writeError(w, r, auth.ErrNoKey)
		return
	}
	ref, err := s.Meetings.MeetingEnvelope(r.Context(), sess.Token, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.Codec.Decode(ref.EncryptedData, sess.Key)
	if err != nil {
		s.Logger.Warn("meeting not decodable", "id", id, "kind", codec.KindOf(err).String())
		s.writeError(w, r, err)
		return
	}
	auth.JSONResponse(w, http.StatusOK, m)
}

type themeResponse struct {
	Theme theme.Theme `json:"theme"`
	Logo  string      `json:"logo,omitempty"`
}

const prefersColorScheme = "Sec-CH-Prefers-Color-Scheme"

func (s *Server) currentTheme(r *http.Request) theme.Theme {
	return theme.Resolve(s.Prefs.Theme(r), theme.PrefersDark(r.Header.Get(prefersColorScheme)))
}

// getTheme reports the active theme. With ?logo=img/3.png it also returns the
// logo path for that theme.
func (s *Server) getTheme(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Accept-CH", prefersColorScheme)
	w.Header().Add("Vary", prefersColorScheme)
	t := s.currentTheme(r)
	resp := themeResponse{Theme: t}
	if logo := r.URL.Query().Get("logo"); logo != "" {
		resp.Logo = theme.LogoPath(logo, t)
	}
	auth.JSONResponse(w, http.StatusOK, resp)
}

// setTheme saves {"theme": "dark"|"light"}. An empty body toggles the active theme.
func (s *Server) setTheme(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1024))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("read body: %w", errBadRequest))
		return
	}

	var t theme.Theme
	if strings.TrimSpace(string(body)) == "" {
		t = s.currentTheme(r).Toggle()
	} else {
		var req struct {
			Theme string `json:"theme"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			s.writeError(w, r, fmt.Errorf("decode body: %w", errBadRequest))
			return
		}
		if t, err = theme.Parse(req.Theme); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	if err := s.Prefs.SetTheme(w, r, t); err != nil {
		s.writeError(w, r, fmt.Errorf("save theme: %w", err))
		return
	}
	auth.JSONResponse(w, http.StatusOK, themeResponse{Theme: t})
}

type messagesResponse struct {
	Locale   string            `json:"locale"`
	Locales  []string          `json:"locales"`
	Messages map[string]string `json:"messages"`
}

// messages returns the string table for the negotiated locale. A supported
// ?locale= is remembered for later requests.
func (s *Server) messages(w http.ResponseWriter, r *http.Request) {
	locale := s.locale(r)
	if l, ok := s.Catalog.Lookup(r.URL.Query().Get("locale")); ok && l != s.Prefs.Locale(r) {
		if err := s.Prefs.SetLocale(w, r, l); err != nil {
			s.Logger.Warn("failed to save locale", "err", err)
		}
	}
	auth.JSONResponse(w, http.StatusOK, messagesResponse{
		Locale:   locale,
		Locales:  s.Catalog.Locales(),
		Messages: s.Catalog.Messages(locale),
	})
}

// locale picks the response language: ?locale=, then the saved preference,
// then Accept-Language.
func (s *Server) locale(r *http.Request) string {
	preferred := r.URL.Query().Get("locale")
	if _, ok := s.Catalog.Lookup(preferred); !ok {
		preferred = s.Prefs.Locale(r)
	}
	return s.Catalog.Negotiate(r.Header.Get("Accept-Language"), preferred)
}
