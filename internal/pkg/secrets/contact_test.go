package secrets_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"gigboard/internal/pkg/secrets"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestSealOpen_Roundtrip(t *testing.T) {
	s, err := secrets.NewContactSealer(testKeyHex)
	if err != nil {
		t.Fatalf("NewContactSealer: %v", err)
	}

	sealed, err := s.Seal("+62 812 3456 7890")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if bytes.Contains(sealed, []byte("3456")) {
		t.Fatal("sealed record leaks plaintext")
	}

	got, err := s.Open(sealed)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got != "+62 812 3456 7890" {
		t.Fatalf("roundtrip mismatch: %q", got)
	}
}

func TestSeal_FreshNoncePerRecord(t *testing.T) {
	s, err := secrets.NewContactSealer(testKeyHex)
	if err != nil {
		t.Fatalf("NewContactSealer: %v", err)
	}

	a, _ := s.Seal("same contact")
	b, _ := s.Seal("same contact")
	if bytes.Equal(a, b) {
		t.Fatal("sealing the same contact twice must not produce identical records")
	}
}

func TestOpen_RejectsTampering(t *testing.T) {
	s, _ := secrets.NewContactSealer(testKeyHex)
	sealed, _ := s.Seal("secret")
	sealed[len(sealed)-1] ^= 0x01

	if _, err := s.Open(sealed); !errors.Is(err, secrets.ErrInvalidCiphertext) {
		t.Fatalf("expected ErrInvalidCiphertext, got %v", err)
	}
}

func TestNewContactSealer_RejectsBadKeys(t *testing.T) {
	if _, err := secrets.NewContactSealer("not hex"); !errors.Is(err, secrets.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey for non-hex, got %v", err)
	}
	short := hex.EncodeToString([]byte("tooshort"))
	if _, err := secrets.NewContactSealer(short); !errors.Is(err, secrets.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey for short key, got %v", err)
	}
}
