/*
 * Copyright (c) 2025, OpenCaseWork (https://opencasework.org).
 *
 * OpenCaseWork licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package crypto turns messy identity input into two different things:
// stable comparison keys for the match-key index, and recoverable
// ciphertext for at-rest PII storage. Plaintext is never persisted.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/opencasework/case-management-service/internal/system/config"
)

const algorithmAESGCM = "AES-256-GCM"

// Keys carries the process-wide secret material. It is injected explicitly
// so tests can supply their own keys and key rotation does not touch call
// sites.
type Keys struct {
	HMACKey []byte
	AESKey  []byte
}

// Service provides the keyed-hash and field-encryption primitives.
type Service struct {
	keys Keys
}

// EncryptedField is the persisted shape of a single encrypted identity
// value. Nonce, ciphertext and auth tag are held separately so tampering
// is detectable per field.
type EncryptedField struct {
	Algorithm  string `json:"algorithm"`
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
	Tag        string `json:"auth_tag"`
}

// DecryptionError signals that a ciphertext could not be authenticated or
// recovered. Callers treat the field as unreadable rather than failing the
// whole response.
type DecryptionError struct {
	Err error
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("field decryption failed: %v", e.Err)
}

func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// New creates a crypto Service from explicit key material.
func New(keys Keys) (*Service, error) {
	if len(keys.HMACKey) == 0 {
		return nil, fmt.Errorf("hmac key must not be empty")
	}
	if len(keys.AESKey) != 32 {
		return nil, fmt.Errorf("aes key must be 32 bytes, got %d", len(keys.AESKey))
	}
	return &Service{keys: keys}, nil
}

// NewFromConfig decodes the hex-encoded key material from the privacy
// configuration section.
func NewFromConfig(cfg config.PrivacyConfig) (*Service, error) {
	hmacKey, err := hex.DecodeString(cfg.HMACKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid hmac key encoding: %w", err)
	}
	aesKey, err := hex.DecodeString(cfg.AESKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid aes key encoding: %w", err)
	}
	return New(Keys{HMACKey: hmacKey, AESKey: aesKey})
}

// HashKey produces a deterministic keyed hash of the given plaintext. The
// same input always hashes identically so index lookups work; the key is a
// process-wide secret so the digest cannot be reversed or forged from
// ciphertext alone.
func (s *Service) HashKey(plaintext string) string {
	mac := hmac.New(sha256.New, s.keys.HMACKey)
	mac.Write([]byte(plaintext))
	return hex.EncodeToString(mac.Sum(nil))
}

// EncryptField encrypts a single identity value with a fresh random nonce.
// Encryption is deliberately non-deterministic; deduplication relies on
// HashKey, never on comparing ciphertext. Nil input passes through as nil.
func (s *Service) EncryptField(plaintext *string) (*EncryptedField, error) {
	if plaintext == nil {
		return nil, nil
	}

	block, err := aes.NewCipher(s.keys.AESKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	sealed := gcm.Seal(nil, nonce, []byte(*plaintext), nil)
	tagOffset := len(sealed) - gcm.Overhead()

	return &EncryptedField{
		Algorithm:  algorithmAESGCM,
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(sealed[:tagOffset]),
		Tag:        base64.StdEncoding.EncodeToString(sealed[tagOffset:]),
	}, nil
}

// DecryptField reverses EncryptField. Nil input passes through as nil. A
// ciphertext that fails authentication yields a *DecryptionError.
func (s *Service) DecryptField(field *EncryptedField) (*string, error) {
	if field == nil {
		return nil, nil
	}
	if field.Algorithm != algorithmAESGCM {
		return nil, &DecryptionError{Err: fmt.Errorf("unsupported algorithm: %s", field.Algorithm)}
	}

	nonce, err := base64.StdEncoding.DecodeString(field.Nonce)
	if err != nil {
		return nil, &DecryptionError{Err: err}
	}
	ciphertext, err := base64.StdEncoding.DecodeString(field.Ciphertext)
	if err != nil {
		return nil, &DecryptionError{Err: err}
	}
	tag, err := base64.StdEncoding.DecodeString(field.Tag)
	if err != nil {
		return nil, &DecryptionError{Err: err}
	}

	block, err := aes.NewCipher(s.keys.AESKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, &DecryptionError{Err: fmt.Errorf("invalid nonce length: %d", len(nonce))}
	}

	plain, err := gcm.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return nil, &DecryptionError{Err: err}
	}

	value := string(plain)
	return &value, nil
}
