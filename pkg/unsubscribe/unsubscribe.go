// Package unsubscribe turns a recipient email into an opaque token and back,
// and builds the unsubscribe link embedded in digest emails.
package unsubscribe

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keySalt       = "simple-notify-unsubscribe"
	keyIterations = 10000
)

// Encryptor produces tokens with AES-256-GCM. The nonce is derived from the
// plaintext, so the same email always yields the same token.
type Encryptor struct {
	aead   cipher.AEAD
	macKey []byte
}

// NewEncryptor derives the encryption key from passphrase with PBKDF2.
func NewEncryptor(passphrase string) (*Encryptor, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase cannot be empty")
	}

	derived := pbkdf2.Key([]byte(passphrase), []byte(keySalt), keyIterations, 64, sha256.New)

	block, err := aes.NewCipher(derived[:32])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Encryptor{aead: aead, macKey: derived[32:]}, nil
}

// Encrypt returns a URL-safe token for plaintext.
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("plaintext cannot be empty")
	}

	mac := hmac.New(sha256.New, e.macKey)
	mac.Write([]byte(plaintext))
	nonce := mac.Sum(nil)[:e.aead.NonceSize()]

	sealed := e.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func (e *Encryptor) Decrypt(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("token cannot be empty")
	}

	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("failed to decode token: %w", err)
	}

	nonceSize := e.aead.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("token too short")
	}

	plaintext, err := e.aead.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}
	return string(plaintext), nil
}

// URL returns "{webHost}/unsubscribe?token={token}" for email, or "" when
// email is empty.
func (e *Encryptor) URL(webHost, email string) (string, error) {
	if email == "" {
		return "", nil
	}

	token, err := e.Encrypt(email)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(webHost, "/") + "/unsubscribe?token=" + url.QueryEscape(token), nil
}
