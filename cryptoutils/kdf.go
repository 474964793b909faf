// SPDX-FileCopyrightText: 2024 Thibault NORMAND <me@zenithar.org>
//
// SPDX-License-Identifier: Apache-2.0 AND MIT

package cryptoutils

import (
	"crypto/sha512"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// KDF is the password key derivation function type.
type KDF uint8

const (
	// SCRYPT derives shard keys with scrypt.
	SCRYPT KDF = iota
	// PBKDF2 derives shard keys with PBKDF2-HMAC-SHA512.
	PBKDF2
	// ARGON2ID derives shard keys with Argon2id.
	ARGON2ID
)

const (
	// scryptN is the CPU/memory cost parameter.
	scryptN = 1 << 15
	// scryptR is the block size parameter.
	scryptR = 8
	// scryptP is the parallelization parameter.
	scryptP = 1
	// pbkdf2IterationCount is the number of iterations for PBKDF2.
	pbkdf2IterationCount = 250000
	// argon2Iterations is the number of iterations for Argon2.
	argon2Iterations = 4
	// argon2Memory is the memory cost parameter for Argon2, in KiB.
	argon2Memory = 64 * 1024
	// argon2Threads is the number of threads for Argon2.
	argon2Threads = 4
)

// kdfRegistry maps each KDF to its implementation.
var kdfRegistry = map[KDF]func(password, salt []byte, dkLen int) ([]byte, error){
	PBKDF2: func(password, salt []byte, dkLen int) ([]byte, error) {
		return pbkdf2.Key(password, salt, pbkdf2IterationCount, dkLen, sha512.New), nil
	},
	SCRYPT: func(password, salt []byte, dkLen int) ([]byte, error) {
		return scrypt.Key(password, salt, scryptN, scryptR, scryptP, dkLen)
	},
	ARGON2ID: func(password, salt []byte, dkLen int) ([]byte, error) {
		return argon2.IDKey(password, salt, argon2Iterations, argon2Memory, argon2Threads, uint32(dkLen)), nil
	},
}

var kdfNames = map[KDF]string{
	SCRYPT:   "scrypt",
	PBKDF2:   "pbkdf2",
	ARGON2ID: "argon2id",
}

// String returns the configuration name of the KDF.
func (k KDF) String() string {
	if name, ok := kdfNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KDF(%d)", uint8(k))
}

// ParseKDF parses a KDF name as used in configuration files.
func ParseKDF(name string) (KDF, error) {
	for k, n := range kdfNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown key derivation function %q", name)
}
