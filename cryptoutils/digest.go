package cryptoutils

import (
	"crypto/sha256"
	"crypto/subtle"
)

// Fingerprint returns the SHA-256 digest of a secret. It lets callers record
// and later compare a reconstructed secret without storing it.
func Fingerprint(secret []byte) []byte {
	sum := sha256.Sum256(secret)
	return sum[:]
}

// FingerprintEqual compares two digests in constant time.
func FingerprintEqual(a, b []byte) bool {
	return len(a) == len(b) && subtle.ConstantTimeCompare(a, b) == 1
}

// WipeBytes securely wipes data from memory.
func WipeBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
