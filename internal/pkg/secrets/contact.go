// Package secrets seals job contact details before they are stored, using
// XChaCha20-Poly1305 with a fresh random nonce per record.
package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	ErrInvalidKey        = errors.New("contact key must be 32 bytes of hex")
	ErrInvalidCiphertext = errors.New("invalid contact ciphertext")
)

type ContactSealer struct {
	key []byte
}

// NewContactSealer parses the hex-encoded 256-bit key from configuration.
func NewContactSealer(keyHex string) (*ContactSealer, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, ErrInvalidKey
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, ErrInvalidKey
	}
	return &ContactSealer{key: key}, nil
}

// Seal encrypts a contact string. Output layout: nonce || ciphertext.
func (s *ContactSealer) Seal(contact string) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	return aead.Seal(nonce, nonce, []byte(contact), nil), nil
}

// Open decrypts a sealed contact record.
func (s *ContactSealer) Open(sealed []byte) (string, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", err
	}

	if len(sealed) < aead.NonceSize() {
		return "", ErrInvalidCiphertext
	}
	nonce, ct := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]

	pt, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	return string(pt), nil
}
