package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/voiceflow/transcript-web/internal/auth"
	"github.com/voiceflow/transcript-web/internal/backend"
	"github.com/voiceflow/transcript-web/internal/codec"
	"github.com/voiceflow/transcript-web/internal/theme"
)

// errBadRequest marks malformed client input such as a non-numeric meeting id.
var errBadRequest = errors.New("bad request")

// ErrorResponse is the body of every failed API call. Message is localized and
// never carries codec or backend diagnostics.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

// classify maps an error to a status code and a message key.
func classify(err error) (int, string) {
	var se *backend.StatusError
	switch {
	case auth.IsAuthError(err):
		return http.StatusUnauthorized, "sessionExpired"
	case errors.Is(err, backend.ErrNotFound):
		return http.StatusNotFound, "meetingNotFound"
	case codec.KindOf(err) != 0, errors.As(err, new(codec.Kind)):
		return http.StatusUnprocessableEntity, "meetingUnavailable"
	case errors.Is(err, errBadRequest), errors.Is(err, theme.ErrUnknownTheme):
		return http.StatusBadRequest, "unexpectedError"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "unexpectedError"
	case errors.As(err, &se):
		return http.StatusBadGateway, "unexpectedError"
	}
	return http.StatusInternalServerError, "unexpectedError"
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, key := classify(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "path", r.URL.Path, "status", status, "err", err)
	}
	auth.JSONResponse(w, status, ErrorResponse{
		Code:    status,
		Message: s.Catalog.T(s.locale(r), key, nil),
	})
}
