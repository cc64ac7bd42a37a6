package utils

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrCiphertextTooShort is returned when a sealed value is shorter than its nonce.
var ErrCiphertextTooShort = errors.New("ciphertext too short")

// ParseEncryptionKey decodes a base64-encoded 32-byte key.
func ParseEncryptionKey(keyBase64 string) ([]byte, error) {
	if keyBase64 == "" {
		return nil, errors.New("ENCRYPTION_KEY is not set")
	}

	keyBytes, err := base64.StdEncoding.DecodeString(keyBase64)
	if err != nil {
		return nil, errors.New("ENCRYPTION_KEY must be base64-encoded")
	}

	if len(keyBytes) != chacha20poly1305.KeySize {
		return nil, errors.New("ENCRYPTION_KEY must decode to exactly 32 bytes (256 bits)")
	}

	return keyBytes, nil
}

// Sealer encrypts short strings with XChaCha20-Poly1305.
// Sealed values are base64(nonce || ciphertext).
type Sealer struct {
	aead cipher.AEAD
}

func NewSealer(key []byte) (*Sealer, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext. Empty strings stay empty.
func (s *Sealer) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(plaintext)+s.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal.
func (s *Sealer) Open(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}

	nonceSize := s.aead.NonceSize()
	if len(data) < nonceSize {
		return "", ErrCiphertextTooShort
	}

	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}
