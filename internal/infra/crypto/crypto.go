// Package crypto seals checklist blobs stored in git with AES-256-GCM.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

const (
	// NonceSize is the size of the nonce for AES-GCM (12 bytes).
	NonceSize = 12
	// KeySize is the size of the AES-256 key (32 bytes).
	KeySize = 32
)

// header marks sealed blobs so plain and sealed documents can be told apart.
var header = []byte("TICKENC1")

var (
	// ErrInvalidKey is returned when the encryption key is invalid.
	ErrInvalidKey = errors.New("invalid encryption key: must be 32 bytes (64 hex characters)")
	// ErrMissingKey is returned when encryption is enabled but no key is set.
	ErrMissingKey = errors.New("encryption enabled but no key set")
	// ErrDecryptionFailed is returned when decryption fails.
	ErrDecryptionFailed = errors.New("decryption failed: invalid ciphertext or key")
	// ErrNotSealed is returned when opening data that was never sealed.
	ErrNotSealed = errors.New("data is not encrypted")
)

// Cipher seals and opens blobs.
// Sealing the same plaintext twice in a row returns the same ciphertext so an
// unchanged document keeps its blob hash.
// Fields are ordered to minimize memory padding.
type Cipher struct {
	aead    cipher.AEAD
	last    []byte
	mu      sync.Mutex
	lastSum [sha256.Size]byte
}

// New creates a Cipher from a 64 character hex key.
func New(hexKey string) (*Cipher, error) {
	key, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil || len(key) != KeySize {
		return nil, ErrInvalidKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// FromEnv creates a Cipher from the key held in the named environment
// variable. getenv is usually os.Getenv.
func FromEnv(getenv func(string) string, name string) (*Cipher, error) {
	key := getenv(name)
	if key == "" {
		return nil, fmt.Errorf("%w: set %s", ErrMissingKey, name)
	}
	return New(key)
}

// GenerateKey returns a new random hex-encoded key.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return hex.EncodeToString(key), nil
}

// Seal encrypts plaintext.
// Returns: header + nonce (12 bytes) + ciphertext + auth tag
func (c *Cipher) Seal(plaintext []byte) ([]byte, error) {
	sum := sha256.Sum256(plaintext)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.last != nil && sum == c.lastSum {
		return c.last, nil
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, len(header)+NonceSize+len(plaintext)+c.aead.Overhead())
	out = append(out, header...)
	out = append(out, nonce...)
	out = c.aead.Seal(out, nonce, plaintext, nil)

	c.last = out
	c.lastSum = sum
	return out, nil
}

// Open decrypts data produced by Seal.
func (c *Cipher) Open(sealed []byte) ([]byte, error) {
	if !IsSealed(sealed) {
		return nil, ErrNotSealed
	}
	body := sealed[len(header):]
	if len(body) < NonceSize {
		return nil, ErrDecryptionFailed
	}

	plaintext, err := c.aead.Open(nil, body[:NonceSize], body[NonceSize:], nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	c.mu.Lock()
	c.last = sealed
	c.lastSum = sha256.Sum256(plaintext)
	c.mu.Unlock()

	return plaintext, nil
}

// IsSealed reports whether data carries the sealed-blob header.
func IsSealed(data []byte) bool {
	return bytes.HasPrefix(data, header)
}
