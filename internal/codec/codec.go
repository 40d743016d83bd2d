// Package codec decodes encrypted transcript envelopes delivered by the
// transcription backend into Meeting records, and encodes them back for tests
// and tooling.
//
// A v1 envelope is Base64(IV || AES-CBC-PKCS7(JSON)) with a 16 byte IV, keyed by
// the raw UTF-8 bytes of the key text. A v2 envelope is "v2." followed by
// Base64(nonce || AES-GCM(JSON)). Untagged envelopes are v1.
package codec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/voiceflow/transcript-web/internal/crypto"
	"github.com/voiceflow/transcript-web/internal/models"
)

// minV1Envelope is one IV block plus at least one ciphertext block.
const minV1Envelope = 2 * crypto.BlockSize

// Codec is safe for concurrent use; it holds no mutable state.
type Codec struct {
	logger  *slog.Logger
	now     func() time.Time
	version Version
}

// Option configures a Codec.
type Option func(*Codec)

// WithLogger sets the logger used for failure diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Codec) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the clock used for the default meeting date.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// WithVersion selects the wire version Encode produces. Decode accepts every version.
func WithVersion(v Version) Option {
	return func(c *Codec) { c.version = v }
}

// New returns a Codec. Without options it logs nowhere, uses time.Now and encodes v1.
func New(opts ...Option) *Codec {
	c := &Codec{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		version: V1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCodec = New()

// Decode decodes envelope with the default Codec.
func Decode(envelope, key string) (models.Meeting, error) {
	return defaultCodec.Decode(envelope, key)
}

// Encode encodes m with the default Codec.
func Encode(m models.Meeting, key string) (string, error) {
	return defaultCodec.Encode(m, key)
}

// Decode turns an envelope into a Meeting. Every failure is a *Error.
func (c *Codec) Decode(envelope, key string) (models.Meeting, error) {
	m, version, err := c.decode(envelope, key)
	if err != nil {
		c.logFailure("decode", version, len(envelope), err)
		return models.Meeting{}, err
	}
	return m, nil
}

func (c *Codec) decode(envelope, key string) (models.Meeting, Version, error) {
	envelope = strings.TrimSpace(envelope)
	keyBytes, err := checkInput(envelope, key)
	if err != nil {
		return models.Meeting{}, 0, err
	}

	version, body, err := splitVersion(envelope)
	if err != nil {
		return models.Meeting{}, 0, err
	}
	raw, err := decodeBase64(body)
	if err != nil {
		return models.Meeting{}, version, newError(Malformed, "base64", "invalid base64", err)
	}

	var plain []byte
	switch version {
	case V2:
		plain, err = openV2(keyBytes, raw)
	default:
		plain, err = openV1(keyBytes, raw)
	}
	if err != nil {
		return models.Meeting{}, version, err
	}

	if !utf8.Valid(plain) {
		return models.Meeting{}, version, newError(EncodingError, "utf8", "plaintext is not valid UTF-8", nil)
	}
	m, err := parseMeeting(plain, c.today())
	return m, version, err
}

func openV1(key, raw []byte) ([]byte, error) {
	if len(raw) < minV1Envelope {
		return nil, newError(Malformed, "envelope", "envelope too short", nil)
	}
	iv, ciphertext := raw[:crypto.BlockSize], raw[crypto.BlockSize:]
	plain, err := crypto.DecryptCBC(key, iv, ciphertext)
	if err != nil {
		return nil, newError(DecryptionFailed, "decrypt", "cbc decryption failed", err)
	}
	return plain, nil
}

func openV2(key, raw []byte) ([]byte, error) {
	if len(raw) < crypto.GCMOverhead {
		return nil, newError(Malformed, "envelope", "envelope too short", nil)
	}
	plain, err := crypto.DecryptGCM(key, raw)
	if err != nil {
		return nil, newError(DecryptionFailed, "decrypt", "gcm authentication failed", err)
	}
	return plain, nil
}

// Encode validates m, fills its defaults and seals it under key in the Codec's
// wire version. v1 output is untagged, matching what the backend emits.
func (c *Codec) Encode(m models.Meeting, key string) (string, error) {
	out, err := c.encode(m, key)
	if err != nil {
		c.logFailure("encode", c.version, 0, err)
		return "", err
	}
	return out, nil
}

func (c *Codec) encode(m models.Meeting, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", newError(InvalidInput, "input", "key is empty", nil)
	}
	keyBytes := []byte(key)
	if err := crypto.ValidateAESKey(keyBytes); err != nil {
		return "", newError(InvalidKey, "key", "key must be 16, 24 or 32 bytes", err)
	}
	m, err := normalize(m, c.today())
	if err != nil {
		return "", err
	}
	plain, err := json.Marshal(m)
	if err != nil {
		return "", newError(SchemaInvalid, "json", "meeting cannot be marshalled", err)
	}

	switch c.version {
	case V2:
		sealed, err := crypto.EncryptGCM(keyBytes, plain)
		if err != nil {
			return "", newError(DecryptionFailed, "encrypt", "gcm encryption failed", err)
		}
		return V2.String() + "." + base64.StdEncoding.EncodeToString(sealed), nil
	default:
		iv, err := crypto.RandomBytes(crypto.BlockSize)
		if err != nil {
			return "", newError(DecryptionFailed, "encrypt", "iv generation failed", err)
		}
		ct, err := crypto.EncryptCBC(keyBytes, iv, plain)
		if err != nil {
			return "", newError(DecryptionFailed, "encrypt", "cbc encryption failed", err)
		}
		return base64.StdEncoding.EncodeToString(append(iv, ct...)), nil
	}
}

// checkInput validates arguments before the envelope is looked at, so a bad key
// is reported as InvalidKey whatever the envelope contains.
func checkInput(envelope, key string) ([]byte, error) {
	if envelope == "" {
		return nil, newError(InvalidInput, "input", "envelope is empty", nil)
	}
	if strings.TrimSpace(key) == "" {
		return nil, newError(InvalidInput, "input", "key is empty", nil)
	}
	keyBytes := []byte(key)
	if err := crypto.ValidateAESKey(keyBytes); err != nil {
		return nil, newError(InvalidKey, "key", "key must be 16, 24 or 32 bytes", err)
	}
	return keyBytes, nil
}

// decodeBase64 accepts padded or unpadded standard Base64 and ignores embedded
// whitespace, as the browser decoder did.
func decodeBase64(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return nil, errors.New("empty body")
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

func (c *Codec) today() string {
	return c.now().Format(dateLayout)
}

func (c *Codec) logFailure(op string, version Version, envelopeLen int, err error) {
	var e *Error
	if !errors.As(err, &e) {
		return
	}
	attrs := []any{
		"op", op,
		"kind", e.Kind.String(),
		"stage", e.Stage,
		"detail", e.Detail,
		"envelope_chars", envelopeLen,
	}
	if version != 0 {
		attrs = append(attrs, "version", version.String())
	}
	c.logger.Debug("transcript codec failure", attrs...)
}
