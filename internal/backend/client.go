// Package backend talks to the transcription backend: it validates access
// tokens and fetches encrypted meeting envelopes.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voiceflow/transcript-web/internal/auth"
	"github.com/voiceflow/transcript-web/internal/models"
)

// ErrNotFound is returned when the backend has no such meeting.
var ErrNotFound = errors.New("meeting not found")

// maxBody caps how much of a backend response is read.
const maxBody = 32 << 20

// StatusError is returned for unexpected backend responses.
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s: unexpected status %d", e.Op, e.Status)
}

// Client calls the backend API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *slog.Logger
}

// New returns a Client for baseURL whose requests time out after timeout.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

type validateResponse struct {
	Subject   string `json:"sub"`
	ExpiresAt int64  `json:"exp"`
}

// ValidateToken asks the backend whether token is still valid. It implements
// auth.Validator.
func (c *Client) ValidateToken(ctx context.Context, token string) (auth.Claims, error) {
	var resp validateResponse
	if err := c.get(ctx, "validate", "/auth/validate", token, &resp); err != nil {
		return auth.Claims{}, err
	}
	claims := auth.Claims{Subject: resp.Subject}
	if resp.ExpiresAt > 0 {
		claims.ExpiresAt = time.Unix(resp.ExpiresAt, 0).UTC()
	}
	return claims, nil
}

// MeetingEnvelope fetches the encrypted envelope of one meeting.
func (c *Client) MeetingEnvelope(ctx context.Context, token string, id int64) (models.MeetingRef, error) {
	var ref models.MeetingRef
	path := "/meetings/" + strconv.FormatInt(id, 10)
	if err := c.get(ctx, "meeting", path, token, &ref); err != nil {
		return models.MeetingRef{}, err
	}
	if ref.ID == 0 {
		ref.ID = id
	}
	return ref, nil
}

// ListMeetings fetches the encrypted envelopes of all meetings of the account.
func (c *Client) ListMeetings(ctx context.Context, token string) ([]models.MeetingRef, error) {
	var refs []models.MeetingRef
	if err := c.get(ctx, "list meetings", "/meetings", token, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

func (c *Client) get(ctx context.Context, op, path, token string, out any) error {
	u, err := url.JoinPath(c.BaseURL, path)
	if err != nil {
		return fmt.Errorf("backend %s: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("backend %s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	reqID := RequestID(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("backend %s: %w", op, err)
	}
	defer resp.Body.Close()
	c.Logger.Debug("backend call", "op", op, "status", resp.StatusCode,
		"duration", time.Since(start), "request_id", reqID)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("backend %s: %w", op, auth.ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("backend %s: %w", op, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &StatusError{Op: op, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		return fmt.Errorf("backend %s: decode response: %w", op, err)
	}
	return nil
}
