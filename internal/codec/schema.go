package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/voiceflow/transcript-web/internal/models"
)

const (
	dateLayout    = "2006-01-02"
	defaultLength = "00:00"
)

var lengthPattern = regexp.MustCompile(`^(\d+):([0-5]\d)$`)

// parseMeeting decodes a plaintext JSON object into a Meeting and applies defaults.
func parseMeeting(plain []byte, today string) (models.Meeting, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(plain, &fields); err != nil {
		return models.Meeting{}, newError(SchemaInvalid, "json", "plaintext is not a JSON object", err)
	}
	if fields == nil {
		return models.Meeting{}, newError(SchemaInvalid, "json", "plaintext is not a JSON object", nil)
	}

	var m models.Meeting
	var err error
	if m.ID, err = intField(fields, "id"); err != nil {
		return models.Meeting{}, err
	}
	if m.Name, err = stringField(fields, "name"); err != nil {
		return models.Meeting{}, err
	}
	if m.Date, err = stringField(fields, "date"); err != nil {
		return models.Meeting{}, err
	}
	if m.Transcript, err = stringField(fields, "transcript"); err != nil {
		return models.Meeting{}, err
	}
	if m.Speakers, err = stringsField(fields, "speakers"); err != nil {
		return models.Meeting{}, err
	}
	m.Status = statusField(fields)
	m.Length = lengthField(fields)

	return normalize(m, today)
}

// normalize enforces required fields and fills defaults. It is shared by Decode
// and Encode so both directions agree on what a complete Meeting looks like.
func normalize(m models.Meeting, today string) (models.Meeting, error) {
	if m.ID == 0 {
		return models.Meeting{}, newError(SchemaInvalid, "schema", "id is required and must be non-zero", nil)
	}
	if strings.TrimSpace(m.Name) == "" {
		return models.Meeting{}, newError(SchemaInvalid, "schema", "name is required", nil)
	}
	if m.Date == "" {
		m.Date = today
	}
	if !m.Status.Valid() {
		m.Status = models.StatusNew
	}
	m.Length = normalizeLength(m.Length)
	if len(m.Speakers) == 0 {
		m.Speakers = nil
	}
	return m, nil
}

func present(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	raw, ok := fields[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

func intField(fields map[string]json.RawMessage, name string) (int64, error) {
	raw, ok := present(fields, name)
	if !ok {
		return 0, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, newError(SchemaInvalid, "schema", name+" is not valid JSON", err)
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, newError(SchemaInvalid, "schema", name+" must be an integer", nil)
	}
	i, err := n.Int64()
	if err != nil {
		return 0, newError(SchemaInvalid, "schema", name+" must be an integer", err)
	}
	return i, nil
}

func stringField(fields map[string]json.RawMessage, name string) (string, error) {
	raw, ok := present(fields, name)
	if !ok {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", newError(SchemaInvalid, "schema", name+" must be a string", err)
	}
	return s, nil
}

func stringsField(fields map[string]json.RawMessage, name string) ([]string, error) {
	raw, ok := present(fields, name)
	if !ok {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, newError(SchemaInvalid, "schema", name+" must be a list of strings", err)
	}
	return out, nil
}

// statusField never fails: anything unrecognized becomes "new".
func statusField(fields map[string]json.RawMessage) models.Status {
	raw, ok := present(fields, "status")
	if !ok {
		return models.StatusNew
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return models.StatusNew
	}
	st := models.Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return models.StatusNew
	}
	return st
}

// lengthField accepts "MM:SS" strings or a number of seconds.
func lengthField(fields map[string]json.RawMessage) string {
	raw, ok := present(fields, "length")
	if !ok {
		return defaultLength
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var secs float64
	if err := json.Unmarshal(raw, &secs); err == nil {
		return FormatLength(secs)
	}
	return defaultLength
}

func normalizeLength(s string) string {
	match := lengthPattern.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return defaultLength
	}
	minutes := match[1]
	if len(minutes) == 1 {
		minutes = "0" + minutes
	}
	return minutes + ":" + match[2]
}

// FormatLength renders a duration in seconds as "MM:SS". Minutes are not
// wrapped into hours, so a 90 minute meeting is "90:00".
func FormatLength(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return defaultLength
	}
	total := int64(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
