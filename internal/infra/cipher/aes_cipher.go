// Package cipher provides AES-256-GCM encryption for sensitive stored fields.
package cipher

import (
	"crypto/aes"
	stdcipher "crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"clearpass/config"
	"clearpass/internal/domain/service"

	"github.com/pkg/errors"
)

const keySize = 32 // AES-256

type aesFieldCipher struct {
	aead   stdcipher.AEAD
	logger *slog.Logger
}

// NewAESFieldCipher loads the base64-encoded 256-bit key from the configured
// key file. A missing key file is generated on first start so a fresh
// deployment works out of the box; losing that file makes previously
// encrypted fields unreadable.
func NewAESFieldCipher(cfg *config.Config, logger *slog.Logger) (service.FieldCipher, error) {
	if cfg.Storage == nil || cfg.Storage.CipherKeyFile == "" {
		return nil, errors.New("storage.cipherKeyFile is not configured")
	}

	key, err := loadOrCreateKey(cfg.Storage.CipherKeyFile, logger)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize AES cipher")
	}

	aead, err := stdcipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize GCM mode")
	}

	return &aesFieldCipher{aead: aead, logger: logger}, nil
}

// Encrypt implements service.FieldCipher interface
func (c *aesFieldCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Wrap(err, "failed to generate nonce")
	}

	ciphertext := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt implements service.FieldCipher interface. The bool result reports
// whether the token was a valid ciphertext under the current key.
func (c *aesFieldCipher) Decrypt(token string) (string, bool) {
	if token == "" {
		return "", true
	}

	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", false
	}

	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize {
		return "", false
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", false
	}

	return string(plaintext), true
}

func loadOrCreateKey(path string, logger *slog.Logger) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		key, decErr := base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw)))
		if decErr != nil {
			return nil, errors.Wrapf(decErr, "key file %s must be base64-encoded", path)
		}
		if len(key) != keySize {
			return nil, errors.Errorf("key file %s must decode to exactly %d bytes", path, keySize)
		}

		return key, nil
	}

	if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "failed to read key file %s", path)
	}

	logger.Warn("Cipher key file not found, generating a new key", slog.String("path", path))

	key := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, errors.Wrap(err, "failed to generate cipher key")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, errors.Wrapf(err, "failed to create key directory for %s", path)
	}

	encoded := base64.StdEncoding.EncodeToString(key)
	if err := os.WriteFile(path, []byte(encoded+"\n"), 0o600); err != nil {
		return nil, errors.Wrapf(err, "failed to persist key file %s", path)
	}

	return key, nil
}
