// Package cryptoutils provides the cryptographic operations that protect
// wallet shards at rest.
//
// Shards are encrypted under a key derived from a user password. The key
// derivation function and the AEAD are selectable through ShardCipher and are
// recorded in the output, so decryption only needs the password:
//
//   - Key derivation: scrypt, PBKDF2-HMAC-SHA512 or Argon2id
//   - Encryption: AES-256-GCM or XChaCha20-Poly1305
//   - A fresh 16 byte salt and a fresh nonce for every encryption
//
// # Encryption Format
//
//	[version (1)][kdf (1)][aead (1)][salt (16)][nonce][ciphertext][tag]
//
// Where:
//   - Version: currently 1
//   - KDF and AEAD: the numeric values of the KDF and AEAD constants
//   - Nonce: 12 bytes for AES-GCM, 24 bytes for XChaCha20-Poly1305
//
// The version, algorithm bytes and salt are authenticated as additional data.
// Changing any byte of the envelope makes Decrypt fail with
// interfaces.ErrDecryption, and no partial plaintext is ever returned.
//
// # Custodians
//
// SealForCustodian and OpenFromCustodian encrypt a shard to a secp256k1
// public key with ECIES, for shards handed to a third party that holds a key
// rather than a password.
//
// # Usage Example
//
//	encrypted, err := cryptoutils.Encrypt(shard, []byte(password))
//	if err != nil {
//	    return err
//	}
//
//	shard, err = cryptoutils.Decrypt(encrypted, []byte(password))
//	if errors.Is(err, interfaces.ErrDecryption) {
//	    // wrong password or corrupted shard
//	}
//
// Buffers that held plaintext should be cleared with WipeBytes once they are
// no longer needed.
package cryptoutils
