// Package api serves the transcript web client: the single page app, the JSON
// endpoints it calls and the admin proxy.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/gorilla/mux"

	"github.com/voiceflow/transcript-web/internal/auth"
	"github.com/voiceflow/transcript-web/internal/codec"
	"github.com/voiceflow/transcript-web/internal/i18n"
	"github.com/voiceflow/transcript-web/internal/models"
	"github.com/voiceflow/transcript-web/internal/theme"
)

// MeetingSource fetches encrypted meeting envelopes for a token.
type MeetingSource interface {
	MeetingEnvelope(ctx context.Context, token string, id int64) (models.MeetingRef, error)
	ListMeetings(ctx context.Context, token string) ([]models.MeetingRef, error)
}

// Server holds what the handlers need. Meetings, Validator and Prefs are required.
type Server struct {
	Meetings  MeetingSource
	Validator auth.Validator
	Codec     *codec.Codec
	Prefs     *theme.Store
	Catalog   *i18n.Catalog
	StaticDir string
	// AdminURL is the upstream for /admin. Nil disables the proxy.
	AdminURL *url.URL
	Logger   *slog.Logger
}

// NewRouter wires every route of s.
func NewRouter(s *Server) *mux.Router {
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	if s.Codec == nil {
		s.Codec = codec.New(codec.WithLogger(s.Logger))
	}
	if s.Catalog == nil {
		s.Catalog = i18n.New("")
	}
	guard := &auth.Guard{Validator: s.Validator, Logger: s.Logger, Denied: s.writeError}

	r := mux.NewRouter()
	r.Use(requestID, accessLog(s.Logger))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)

	index := s.page()
	r.Handle("/", index).Methods(http.MethodGet)
	r.Handle("/login", index).Methods(http.MethodGet)
	for _, path := range []string{"/meetings", "/meetings/{id:[0-9]+}", "/settings"} {
		r.Handle(path, guard.Pages(index)).Methods(http.MethodGet)
	}

	a := r.PathPrefix("/api").Subrouter()
	a.Handle("/meetings", guard.API(http.HandlerFunc(s.listMeetings))).Methods(http.MethodGet)
	a.Handle("/meetings/{id}", guard.API(http.HandlerFunc(s.getMeeting))).Methods(http.MethodGet)
	a.HandleFunc("/theme", s.getTheme).Methods(http.MethodGet)
	a.HandleFunc("/theme", s.setTheme).Methods(http.MethodPost)
	a.HandleFunc("/i18n", s.messages).Methods(http.MethodGet)

	if s.AdminURL != nil {
		proxy := adminProxy(s.AdminURL, s.Logger)
		r.Handle("/admin", proxy)
		r.PathPrefix("/admin/").Handler(proxy)
	}

	assets := http.StripPrefix("/assets/", http.FileServer(http.Dir(filepath.Join(s.StaticDir, "assets"))))
	r.PathPrefix("/assets/").Handler(assets).Methods(http.MethodGet, http.MethodHead)
	return r
}

// page serves the app shell; the client side router renders the view.
func (s *Server) page() http.Handler {
	indexPath := filepath.Join(s.StaticDir, "index.html")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, indexPath)
	})
}
