package codec

import (
	"fmt"
	"strings"
)

// Version identifies an envelope wire layout.
type Version int

const (
	// V1 is IV(16) || AES-CBC-PKCS7 ciphertext. Untagged envelopes are V1.
	V1 Version = 1
	// V2 is nonce(12) || AES-GCM ciphertext || tag(16), always tagged "v2.".
	V2 Version = 2
)

func (v Version) String() string { return fmt.Sprintf("v%d", int(v)) }

// ParseVersion accepts "v1", "v2", "1" or "2".
func ParseVersion(s string) (Version, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "v1", "1", "":
		return V1, nil
	case "v2", "2":
		return V2, nil
	}
	return 0, fmt.Errorf("unsupported envelope version %q", s)
}

// splitVersion separates an optional "vN." tag from the Base64 body. '.' is not
// part of the Base64 alphabet, so any dot marks a tag.
func splitVersion(envelope string) (Version, string, error) {
	i := strings.IndexByte(envelope, '.')
	if i < 0 {
		return V1, envelope, nil
	}
	switch envelope[:i] {
	case "v1":
		return V1, envelope[i+1:], nil
	case "v2":
		return V2, envelope[i+1:], nil
	}
	return 0, "", newError(Malformed, "version", "unsupported envelope version", nil)
}
