package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// EnvKey names the environment variable holding the base64-encoded
// 32-byte AES-256 key used to encrypt credential fields at rest.
const EnvKey = "SOLARKEEPER_ENCRYPTION_KEY"

const keySize = 32

var (
	// ErrKeyNotConfigured means the deployment secret is absent or not a
	// 32-byte key. This is a configuration fault, not a runtime one.
	ErrKeyNotConfigured = errors.New("encryption key not configured")

	// ErrDecryption covers malformed nonce/ciphertext hex and failed
	// authentication-tag checks (tampered data or wrong key).
	ErrDecryption = errors.New("decryption failed")
)

// Envelope is one encrypted field value as stored in the database.
// Nonce and Ciphertext are hex-encoded; a fresh nonce is generated per call
// and the pair must never be reused for a different value.
type Envelope struct {
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

// FieldCipher encrypts and decrypts individual string values with AES-256-GCM.
type FieldCipher struct {
	gcm cipher.AEAD
}

var (
	defaultOnce   sync.Once
	defaultCipher *FieldCipher
	defaultErr    error
)

// Default returns the process-wide cipher, loading the key from the
// environment on first use. Concurrent first calls initialize exactly once;
// every call fails with the same error until the deployment is fixed.
func Default() (*FieldCipher, error) {
	defaultOnce.Do(func() {
		defaultCipher, defaultErr = loadFromEnv()
	})
	return defaultCipher, defaultErr
}

func loadFromEnv() (*FieldCipher, error) {
	encoded := os.Getenv(EnvKey)
	if encoded == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrKeyNotConfigured, EnvKey)
	}

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid base64", ErrKeyNotConfigured, EnvKey)
	}

	return NewFieldCipher(key)
}

// NewFieldCipher builds a cipher from a raw key. The key must be exactly
// 32 bytes; the key material itself never appears in errors or logs.
func NewFieldCipher(key []byte) (*FieldCipher, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", ErrKeyNotConfigured, keySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyNotConfigured, err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyNotConfigured, err)
	}

	return &FieldCipher{gcm: gcm}, nil
}

// Encrypt seals a single value under a fresh random 96-bit nonce.
func (c *FieldCipher) Encrypt(value string) (Envelope, error) {
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return Envelope{}, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := c.gcm.Seal(nil, nonce, []byte(value), nil)

	return Envelope{
		Nonce:      hex.EncodeToString(nonce),
		Ciphertext: hex.EncodeToString(ciphertext),
	}, nil
}

// Decrypt opens a stored envelope. Any malformed input or tag mismatch
// is reported as ErrDecryption without further detail.
func (c *FieldCipher) Decrypt(nonceHex, ciphertextHex string) (string, error) {
	nonce, err := hex.DecodeString(nonceHex)
	if err != nil {
		return "", fmt.Errorf("%w: malformed nonce", ErrDecryption)
	}
	if len(nonce) != c.gcm.NonceSize() {
		return "", fmt.Errorf("%w: bad nonce size", ErrDecryption)
	}

	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "", fmt.Errorf("%w: malformed ciphertext", ErrDecryption)
	}

	plaintext, err := c.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", ErrDecryption)
	}

	return string(plaintext), nil
}
