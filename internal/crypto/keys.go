package crypto

import (
	"crypto/aes"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

// ErrInvalidKeyLength is returned when the provided key length is invalid.
var ErrInvalidKeyLength = errors.New("invalid key length")

// RandomBytes generates a slice of random bytes of the given length.
func RandomBytes(length int) ([]byte, error) {
	b := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ValidateAESKey reports ErrInvalidKeyLength unless key is 16, 24 or 32 bytes long.
func ValidateAESKey(key []byte) error {
	switch len(key) {
	case 16, 24, 32:
		return nil
	default:
		return ErrInvalidKeyLength
	}
}

// DeriveKey derives n bytes from secret using HKDF-SHA256 with the given info label.
func DeriveKey(secret []byte, info string, n int) ([]byte, error) {
	if len(secret) == 0 {
		return nil, ErrInvalidKeyLength
	}
	h := hkdf.New(sha256.New, secret, nil, []byte(info))
	out := make([]byte, n)
	if _, err := io.ReadFull(h, out); err != nil {
		return nil, err
	}
	return out, nil
}

const keyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateTextKey returns a random alphanumeric key of size characters. Every
// character is one byte, so the result can be used directly as raw AES key text.
func GenerateTextKey(size int) (string, error) {
	if err := ValidateAESKey(make([]byte, size)); err != nil {
		return "", err
	}
	raw, err := RandomBytes(size)
	if err != nil {
		return "", err
	}
	// Reject bytes above the largest multiple of 62 so every character is equally likely.
	out := make([]byte, 0, size)
	for len(out) < size {
		for _, b := range raw {
			if int(b) >= 256-(256%len(keyAlphabet)) {
				continue
			}
			out = append(out, keyAlphabet[int(b)%len(keyAlphabet)])
			if len(out) == size {
				break
			}
		}
		if raw, err = RandomBytes(size); err != nil {
			return "", err
		}
	}
	return string(out), nil
}

// BlockSize is the AES block size in bytes.
const BlockSize = aes.BlockSize
