package codec

import "errors"

// Kind classifies a codec failure. Kind values are errors themselves, so callers
// can test with errors.Is(err, codec.Malformed).
type Kind int

const (
	InvalidInput Kind = iota + 1
	InvalidKey
	Malformed
	DecryptionFailed
	EncodingError
	SchemaInvalid
)

var kindNames = map[Kind]string{
	InvalidInput:     "invalid input",
	InvalidKey:       "invalid key",
	Malformed:        "malformed envelope",
	DecryptionFailed: "decryption failed",
	EncodingError:    "encoding error",
	SchemaInvalid:    "schema invalid",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

func (k Kind) Error() string { return k.String() }

// Error is the only error type Decode and Encode return.
type Error struct {
	Kind Kind
	// Stage names the step that failed, e.g. "base64" or "schema".
	Stage string
	// Detail is a fixed, operator-facing message. It never contains key
	// material or plaintext.
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := "codec: " + e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches a bare Kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// KindOf returns the Kind carried by err, or 0 if err did not come from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func newError(kind Kind, stage, detail string, cause error) *Error {
	return &Error{Kind: kind, Stage: stage, Detail: detail, Err: cause}
}
