package models

// Status marks whether a meeting has been opened since it was transcribed.
type Status string

const (
	StatusNew Status = "new"
	StatusOld Status = "old"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusNew || s == StatusOld
}

// Meeting is a decrypted transcript record.
type Meeting struct {
	ID         int64    `json:"id"`
	Date       string   `json:"date"`
	Name       string   `json:"name"`
	Status     Status   `json:"status"`
	Length     string   `json:"length"`
	Transcript string   `json:"transcript,omitempty"`
	Speakers   []string `json:"speakers,omitempty"`
}

// MeetingRef is a meeting as listed by the backend, still encrypted.
type MeetingRef struct {
	ID            int64  `json:"id"`
	EncryptedData string `json:"encrypted_data"`
}
