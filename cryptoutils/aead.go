// SPDX-FileCopyrightText: 2024 Thibault NORMAND <me@zenithar.org>
//
// SPDX-License-Identifier: Apache-2.0 AND MIT

package cryptoutils

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// AEAD is the authenticated encryption with associated data type.
type AEAD uint8

const (
	// AESGCM is AES-256 in Galois/Counter Mode.
	AESGCM AEAD = iota
	// CHACHAPOLY is XChaCha20-Poly1305.
	CHACHAPOLY
)

// aeadRegistry is the authenticated encryption with associated data registry.
var aeadRegistry = map[AEAD]func([]byte) (cipher.AEAD, error){
	AESGCM: func(key []byte) (cipher.AEAD, error) {
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, &operationError{operation: "aesgcm", err: err}
		}

		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, &operationError{operation: "aesgcm", err: err}
		}

		return aead, nil
	},
	CHACHAPOLY: func(key []byte) (cipher.AEAD, error) {
		aead, err := chacha20poly1305.NewX(key)
		if err != nil {
			return nil, &operationError{operation: "chachapoly", err: err}
		}

		return aead, nil
	},
}

var aeadNames = map[AEAD]string{
	AESGCM:     "aes-gcm",
	CHACHAPOLY: "xchacha20-poly1305",
}

// String returns the configuration name of the AEAD.
func (a AEAD) String() string {
	if name, ok := aeadNames[a]; ok {
		return name
	}
	return fmt.Sprintf("AEAD(%d)", uint8(a))
}

// ParseAEAD parses an AEAD name as used in configuration files.
func ParseAEAD(name string) (AEAD, error) {
	for a, n := range aeadNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown aead %q", name)
}
