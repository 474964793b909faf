// SPDX-FileCopyrightText: 2024 Thibault NORMAND <me@zenithar.org>
//
// SPDX-License-Identifier: Apache-2.0 AND MIT

package cryptoutils

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/ruteri/shardwallet/interfaces"
)

const (
	// envelopeVersion is the first byte of every encrypted shard.
	envelopeVersion = 1
	// headerSize is VERSION || KDF || AEAD.
	headerSize = 3
	// saltSize is the size of the KDF salt in bytes.
	saltSize = 16
	// keySize is the size of the derived encryption key in bytes.
	keySize = 32
)

var (
	// ErrUnsupportedVersion is returned when an envelope has an unknown version byte.
	ErrUnsupportedVersion = errors.New("unsupported envelope version")
	// ErrCiphertextTooShort is returned when an envelope is truncated.
	ErrCiphertextTooShort = errors.New("ciphertext too short")
	// ErrAuthentication is returned when the password is wrong or the
	// ciphertext was modified.
	ErrAuthentication = errors.New("message authentication failed")
)

// operationError is an error that includes the operation name.
type operationError struct {
	operation string
	err       error
}

// Error returns the error message.
func (e *operationError) Error() string {
	if e.err == nil {
		return "op:" + e.operation + " - no error provided"
	}
	return "op:" + e.operation + " - " + e.err.Error()
}

// Unwrap returns the wrapped error.
func (e *operationError) Unwrap() error {
	return e.err
}

// Is returns true if the target error is the same as the wrapped error.
func (e *operationError) Is(target error) bool {
	return e.err == target
}

// decryptionError marks err as an interfaces.ErrDecryption failure while
// keeping the specific cause reachable through errors.Is.
func decryptionError(err error) error {
	return &operationError{operation: "Decrypt", err: errors.Join(interfaces.ErrDecryption, err)}
}

// ShardCipher encrypts shards with a password-derived key. The zero value
// uses scrypt and AES-GCM.
type ShardCipher struct {
	// KeyDerivation is the password key derivation function.
	KeyDerivation KDF
	// Encryption is the authenticated encryption with associated data.
	Encryption AEAD
}

// DefaultCipher is used by Encrypt and Decrypt.
var DefaultCipher = ShardCipher{KeyDerivation: ARGON2ID, Encryption: AESGCM}

// Encrypt encrypts a shard with DefaultCipher.
func Encrypt(plaintext, password []byte) ([]byte, error) {
	return DefaultCipher.Encrypt(plaintext, password)
}

// Decrypt decrypts a shard produced by any ShardCipher. The algorithms are
// read from the envelope, so only the password is needed.
func Decrypt(ciphertext, password []byte) ([]byte, error) {
	return DefaultCipher.Decrypt(ciphertext, password)
}

// Encrypt derives a key from the password and a fresh salt and seals the
// plaintext. The result is self-describing:
//
//	VERSION || KDF || AEAD || SALT || NONCE || CIPHERTEXT || TAG
//
// The header and salt are authenticated as additional data.
func (s ShardCipher) Encrypt(plaintext, password []byte) ([]byte, error) {
	buildKey, ok := kdfRegistry[s.KeyDerivation]
	if !ok {
		return nil, &operationError{"Encrypt", fmt.Errorf("key derivation mode not set")}
	}
	buildAEAD, ok := aeadRegistry[s.Encryption]
	if !ok {
		return nil, &operationError{"Encrypt", fmt.Errorf("encryption mode not set")}
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, &operationError{"Encrypt", fmt.Errorf("salt generation error: %w", err)}
	}

	key, err := buildKey(password, salt, keySize)
	if err != nil {
		return nil, &operationError{"Encrypt", fmt.Errorf("encryption key error: %w", err)}
	}
	defer WipeBytes(key)

	aead, err := buildAEAD(key)
	if err != nil {
		return nil, &operationError{"Encrypt", fmt.Errorf("encryption key error: %w", err)}
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, &operationError{"Encrypt", fmt.Errorf("nonce generation error: %w", err)}
	}

	prefixLen := headerSize + saltSize + len(nonce)
	out := make([]byte, 0, prefixLen+len(plaintext)+aead.Overhead())
	out = append(out, envelopeVersion, byte(s.KeyDerivation), byte(s.Encryption))
	out = append(out, salt...)
	out = append(out, nonce...)

	return aead.Seal(out, nonce, plaintext, out[:headerSize+saltSize]), nil
}

// Decrypt opens an envelope produced by Encrypt. The receiver's algorithms
// are ignored in favour of the ones recorded in the envelope. Any failure is
// reported as interfaces.ErrDecryption and no plaintext is returned.
func (s ShardCipher) Decrypt(ciphertext, password []byte) ([]byte, error) {
	if len(ciphertext) < headerSize+saltSize {
		return nil, decryptionError(ErrCiphertextTooShort)
	}
	if ciphertext[0] != envelopeVersion {
		return nil, decryptionError(fmt.Errorf("%w: %d", ErrUnsupportedVersion, ciphertext[0]))
	}

	buildKey, ok := kdfRegistry[KDF(ciphertext[1])]
	if !ok {
		return nil, decryptionError(fmt.Errorf("unknown key derivation function %d", ciphertext[1]))
	}
	buildAEAD, ok := aeadRegistry[AEAD(ciphertext[2])]
	if !ok {
		return nil, decryptionError(fmt.Errorf("unknown aead %d", ciphertext[2]))
	}

	salt := ciphertext[headerSize : headerSize+saltSize]
	key, err := buildKey(password, salt, keySize)
	if err != nil {
		return nil, decryptionError(err)
	}
	defer WipeBytes(key)

	var aead cipher.AEAD
	aead, err = buildAEAD(key)
	if err != nil {
		return nil, decryptionError(err)
	}

	nonceEnd := headerSize + saltSize + aead.NonceSize()
	if len(ciphertext) < nonceEnd+aead.Overhead() {
		return nil, decryptionError(ErrCiphertextTooShort)
	}

	plaintext, err := aead.Open(nil, ciphertext[headerSize+saltSize:nonceEnd], ciphertext[nonceEnd:], ciphertext[:headerSize+saltSize])
	if err != nil {
		return nil, decryptionError(ErrAuthentication)
	}
	return plaintext, nil
}
